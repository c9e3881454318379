package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"fmt"
)

const saltLength = 64

// HashPassword derives a credential from plaintext: a fresh random salt is
// drawn for every call and the hash is HMAC-SHA512 keyed by that salt.
// Both values must be persisted together; neither is meaningful alone.
func HashPassword(password string) (hash, salt []byte, err error) {
	salt = make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("generate salt: %w", err)
	}
	return computeHash(password, salt), salt, nil
}

// VerifyPassword recomputes the keyed MAC and compares in constant time.
func VerifyPassword(password string, hash, salt []byte) bool {
	return hmac.Equal(computeHash(password, salt), hash)
}

func computeHash(password string, salt []byte) []byte {
	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))
	return mac.Sum(nil)
}

// dummyHash and dummySalt feed the equal-cost verification on the
// unknown-username path of Login, so a lookup miss burns the same work as a
// password mismatch.
var dummyHash, dummySalt = func() ([]byte, []byte) {
	salt := make([]byte, saltLength)
	return computeHash("decoy", salt), salt
}()
