package auth

import (
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DerivedKeyLength is 32 bytes, the HMAC-SHA256 block of key material.
const DerivedKeyLength = 32

const (
	purposeBearerToken      = "yamdb-bearer-token-v1"
	purposeConfirmationCode = "yamdb-confirmation-code-v1"
)

var ErrInvalidMasterSecret = errors.New("master secret cannot be empty")

// DeriveKey derives an independent key for one purpose from the master
// secret using HKDF-SHA256. Different purposes give unrelated keys.
func DeriveKey(masterSecret []byte, purpose string) ([]byte, error) {
	if len(masterSecret) == 0 {
		return nil, ErrInvalidMasterSecret
	}

	r := hkdf.New(sha256.New, masterSecret, nil, []byte(purpose))
	key := make([]byte, DerivedKeyLength)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}
