package cipher

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"hash"
)

// Engine holds the session state owned by one
// encode or decode pass. Construct with New, initialize once with Init,
// drive exactly one stream, then discard. An Engine is not thread-safe
// and must never be reused across passes — its RNG and HMAC are
// monotonic.
type Engine struct {
	password []byte

	salt     []byte
	material *keyMaterial
	rng      *csprng
	binder   *alphabetBinder
	mac      hash.Hash

	initialized bool
}

// New constructs an Engine bound to password. Construction never fails;
// failures only occur in Init, where the KDF actually runs.
func New(password string) *Engine {
	return &Engine{password: []byte(password)}
}

// Init generates or adopts a salt, derives key material, and — when
// expectedAuthCheck is non-nil — validates the password against it
// before any stream processing begins. salt may be
// nil to request a fresh random 32-byte salt (the encode path);
// non-nil to adopt a salt parsed from a header (the decode path).
func (e *Engine) Init(salt []byte, expectedAuthCheck *[authCheckLen]byte) error {
	if salt == nil {
		salt = make([]byte, saltLen)
		if _, err := rand.Read(salt); err != nil {
			return newErr(ErrKindKDFFailure, -1, "generate salt: %v", err)
		}
	}

	material, err := deriveKeyMaterial(e.password, salt)
	if err != nil {
		return err
	}

	if expectedAuthCheck != nil {
		if !constantTimeEqual4(material.authCheck(), *expectedAuthCheck) {
			return newErr(ErrKindWrongPassword, -1, "auth check mismatch")
		}
	}

	rng, err := newCSPRNG(material.rngKey, material.rngIv)
	if err != nil {
		return newErr(ErrKindKDFFailure, -1, "init csprng: %v", err)
	}

	binder, err := newAlphabetBinder(rng)
	if err != nil {
		return err
	}

	e.salt = salt
	e.material = material
	e.rng = rng
	e.binder = binder
	e.mac = hmac.New(sha256.New, material.authKey[:])
	e.initialized = true
	return nil
}

// EncodeHeader renders the header line: salt and auth-check hex nibbles
// mapped through the header alphabet.
func (e *Engine) EncodeHeader() ([]byte, error) {
	if !e.initialized {
		return nil, newErr(ErrKindInvalidHeader, -1, "engine not initialized")
	}
	authCheck := e.material.authCheck()
	return encodeHeader(e.salt, authCheck), nil
}

// feedHMAC feeds emitted payload bytes into the running HMAC, in
// emission order, excluding line-wrap newlines and the header line.
func (e *Engine) feedHMAC(b []byte) {
	e.mac.Write(b)
}
