// Package cryptox hashes account credentials with argon2id and a random
// per-account salt.
//
// Encoded form: "argon2id$<salt hex>$<verifier hex>", where verifier is
// sha256(argon2id(credential, salt)).
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/dmitrijs2005/nichescope/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	scheme   = "argon2id"
	saltSize = 16
)

var ErrMalformedHash = errors.New("malformed credential hash")

func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// HashCredential returns the encoded hash of credential under a fresh salt.
func HashCredential(credential string) string {
	salt := common.GenerateRandByteArray(saltSize)
	return encode(salt, MakeVerifier(DeriveMasterKey([]byte(credential), salt)))
}

// VerifyCredential reports whether credential matches encoded. The comparison
// is constant time; a malformed hash never matches.
func VerifyCredential(encoded, credential string) bool {
	salt, verifier, err := decode(encoded)
	if err != nil {
		return false
	}
	candidate := MakeVerifier(DeriveMasterKey([]byte(credential), salt))
	return subtle.ConstantTimeCompare(verifier, candidate) == 1
}

func encode(salt, verifier []byte) string {
	return strings.Join([]string{scheme, hex.EncodeToString(salt), hex.EncodeToString(verifier)}, "$")
}

func decode(encoded string) (salt, verifier []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != scheme {
		return nil, nil, ErrMalformedHash
	}
	if salt, err = hex.DecodeString(parts[1]); err != nil {
		return nil, nil, ErrMalformedHash
	}
	if verifier, err = hex.DecodeString(parts[2]); err != nil {
		return nil, nil, ErrMalformedHash
	}
	return salt, verifier, nil
}
