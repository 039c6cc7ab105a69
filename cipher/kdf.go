package cipher

import (
	"crypto/subtle"

	"golang.org/x/crypto/scrypt"
)

// KDF cost parameters.
const (
	scryptN = 16384
	scryptR = 8
	scryptP = 1

	keyMaterialLen = 80
	rngKeyLen      = 32
	rngIvLen       = 16
	authKeyLen     = 32
	authCheckLen   = 4

	saltLen = 32
)

// keyMaterial is the 80 bytes of scrypt output, sliced into the RNG key,
// RNG IV, and HMAC auth key.
type keyMaterial struct {
	rngKey  [rngKeyLen]byte
	rngIv   [rngIvLen]byte
	authKey [authKeyLen]byte
}

func (m *keyMaterial) authCheck() [authCheckLen]byte {
	var out [authCheckLen]byte
	copy(out[:], m.authKey[:authCheckLen])
	return out
}

// deriveKeyMaterial runs scrypt(password, salt, N=16384, r=8, p=1) and
// splits the 80-byte output into key, IV and auth key. Returns ErrKindKDFFailure
// on scrypt error (bad parameters or out-of-memory).
func deriveKeyMaterial(password, salt []byte) (*keyMaterial, error) {
	out, err := scrypt.Key(password, salt, scryptN, scryptR, scryptP, keyMaterialLen)
	if err != nil {
		return nil, newErr(ErrKindKDFFailure, -1, "scrypt: %v", err)
	}
	m := &keyMaterial{}
	copy(m.rngKey[:], out[0:rngKeyLen])
	copy(m.rngIv[:], out[rngKeyLen:rngKeyLen+rngIvLen])
	copy(m.authKey[:], out[rngKeyLen+rngIvLen:keyMaterialLen])
	return m, nil
}

// constantTimeEqual4 compares two 4-byte auth-check values without
// leaking timing information about where they first differ.
func constantTimeEqual4(a, b [authCheckLen]byte) bool {
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}
