package auth

// CredentialsFunc supplies a username and password for realm, on the
// given attempt index (0-based, incremented each time the server rejects
// a prior attempt). Returning a non-nil err cancels the attempt, the Go
// equivalent of the original callback's non-zero return.
type CredentialsFunc func(realm string, attempt int) (username, password string, err error)

// zeroBytes scrubs b in place. Go strings are immutable, so the engine
// copies a caller-returned password into a byte slice before deriving
// H(A1) specifically so it has something it can zero afterward.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
