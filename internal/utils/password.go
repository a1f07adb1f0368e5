package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a bcrypt hash from the plaintext password. The default
// cost is used; rehashing on login is not needed unless the cost changes.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPasswordHash reports whether the plaintext password matches the stored
// bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
