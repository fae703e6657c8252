package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a one-way bcrypt hash. Each call uses a fresh random
// salt, so hashing the same input twice yields different outputs.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain re-hashes to hash under the salt and
// cost embedded in it.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
