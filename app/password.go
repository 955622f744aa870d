package app

import "golang.org/x/crypto/bcrypt"

// passwordHashCost is deliberately above bcrypt.DefaultCost; login is
// rare enough that the extra work factor is affordable.
const passwordHashCost = 12

// EncryptPassword returns the bcrypt hash of a plaintext password.
func EncryptPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePasswords reports via error whether password matches storedHash.
func ComparePasswords(storedHash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password))
}
