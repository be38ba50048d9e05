// Package md5ctx provides a copy-by-value MD5 digest context.
//
// crypto/md5's exported Hash is an interface backed by a pointer, so
// assigning it does not snapshot its internal state. The Digest driver
// in pkg/auth needs to capture a partial digest (everything up to but
// excluding H(A2)) and resume it later, unmodified, to verify the
// server's rspauth. Context stores the accumulated input instead of
// live hasher state, so a snapshot only needs to copy a byte slice rather
// than hasher internals. The slice still aliases its backing array across
// a bare struct copy, so callers must use Clone, not `:=`, to take a
// snapshot that further Updates cannot retroactively mutate.
package md5ctx

import (
	"crypto/md5"
	"encoding/hex"
)

// Context is a snapshot-safe MD5 accumulator. The zero value is ready to use.
type Context struct {
	buf []byte
}

// New returns an empty Context.
func New() Context {
	return Context{}
}

// Update appends p to the accumulated input.
func (c *Context) Update(p string) {
	c.buf = append(c.buf, p...)
}

// UpdateBytes appends p to the accumulated input.
func (c *Context) UpdateBytes(p []byte) {
	c.buf = append(c.buf, p...)
}

// Clone returns an independent copy of c; mutating the returned Context
// never affects c, and vice versa.
func (c Context) Clone() Context {
	buf := make([]byte, len(c.buf))
	copy(buf, c.buf)
	return Context{buf: buf}
}

// Sum finalizes the digest over everything accumulated so far and returns
// its lowercase hex encoding. Sum does not mutate c, so it may be called
// on an intermediate snapshot and again later after further Updates.
func (c Context) Sum() string {
	sum := md5.Sum(c.buf)
	return hex.EncodeToString(sum[:])
}

// SumHex is a convenience wrapper computing the lowercase hex MD5 digest
// of a single string in one step.
func SumHex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
