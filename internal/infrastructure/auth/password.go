package auth

import "golang.org/x/crypto/bcrypt"

// dummyHash is a bcrypt digest of a throwaway value, used to keep login
// timing constant when the account does not exist.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMye1VdLZbe8fBBGhHCAq8Kp1E3lRWbVxWu"

// HashPassword returns the bcrypt digest of the plaintext credential.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext matches the stored digest.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// DummyCompare performs a bcrypt comparison against a fixed digest so the
// caller's failure path costs the same as a real comparison.
func DummyCompare(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
}
