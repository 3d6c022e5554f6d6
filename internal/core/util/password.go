package util

import "golang.org/x/crypto/bcrypt"

// GenerateEncrypt hashes a plaintext password with bcrypt at the default
// cost. Only the hash is ever persisted.
func GenerateEncrypt(password string) (string, error) {
	encrypted, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return "", err
	}

	return string(encrypted), nil
}

// ComparePassword checks a plaintext candidate against a stored bcrypt
// hash; a non-nil error means the credentials do not match.
func ComparePassword(password, encrypted string) error {
	return bcrypt.CompareHashAndPassword([]byte(encrypted), []byte(password))
}
