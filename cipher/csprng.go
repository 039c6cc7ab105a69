package cipher

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
)

// csprng is an append-only AES-256-CTR keystream, shared between the
// alphabet shuffle phase and the encode/decode payload phase. It is
// never rewound: every byte drawn from it is consumed exactly once,
// in an order that encode and decode must replicate exactly or the
// stream desynchronizes.
type csprng struct {
	stream cipher.Stream
}

// newCSPRNG initializes AES-256-CTR with the given key and IV.
func newCSPRNG(key [rngKeyLen]byte, iv [rngIvLen]byte) (*csprng, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	return &csprng{stream: cipher.NewCTR(block, iv[:])}, nil
}

// nextBytes returns the next n keystream bytes.
func (r *csprng) nextBytes(n int) []byte {
	out := make([]byte, n)
	r.stream.XORKeyStream(out, out) // XOR against zeros == raw keystream
	return out
}

// nextU64 returns a big-endian uint64 read from the next 8 keystream
// bytes.
func (r *csprng) nextU64() uint64 {
	return binary.BigEndian.Uint64(r.nextBytes(8))
}

// nextFloat returns a value in [0, 1) with 53 bits of precision:
// (nextU64() >> 11) * 2^-53.
func (r *csprng) nextFloat() float64 {
	const twoPow53 = 1.0 / (1 << 53)
	return float64(r.nextU64()>>11) * twoPow53
}
