package auth

import "golang.org/x/crypto/bcrypt"

// bcrypt only keys on the first 72 bytes; anything longer must be cut
// before hashing or GenerateFromPassword rejects it, while verification
// has to cut the same way so long passwords keep matching their hash.
const maxPasswordBytes = 72

func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(passwordBytes(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), passwordBytes(plain)) == nil
}
