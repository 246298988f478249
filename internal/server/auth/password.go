package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the salt rounds the original deployment used.
const bcryptCost = 10

// HashPassword produces a salted bcrypt digest of the plaintext.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword reports whether the plaintext matches the digest.
// A malformed digest verifies false; it never propagates an error into the
// caller's control flow.
func VerifyPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// DummyDigest is verified against when a login targets an unknown email, so
// the unknown-user path costs the same as a wrong password. It matches no
// real password.
var DummyDigest = func() string {
	d, err := HashPassword("0f1e2d3c4b5a6978")
	if err != nil {
		panic(err)
	}
	return d
}()
