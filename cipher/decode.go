package cipher

import (
	"bufio"
	"context"
	"crypto/hmac"
	"encoding/hex"
	"io"
	"unicode"
	"unicode/utf8"
)

// DecodeStream drives the decode state machine over the body and
// footer that follow the header line. Callers must strip the
// header line themselves (via DecodeHeaderLine) and initialize the
// engine with the parsed salt and auth-check before calling this.
//
// Unlike EncodeStream, decoding is genuinely streaming: the footer
// window and digit buffer are the only state carried between runes, so
// DecodeStream processes r one rune at a time and never buffers the
// whole input.
func (e *Engine) DecodeStream(ctx context.Context, r io.Reader, w io.Writer) error {
	if !e.initialized {
		return newErr(ErrKindInvalidHeader, -1, "engine not initialized")
	}

	br := bufio.NewReader(r)
	fw := newFooterWindow()
	var digitBuf []int

	var atomOffset int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		ru, size, err := br.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if ru == utf8.RuneError && size <= 1 {
			return newErr(ErrKindInvalidGlyph, atomOffset, "invalid UTF-8 in payload")
		}
		if unicode.IsSpace(ru) {
			continue
		}

		atomOffset++
		released, ok := fw.push(ru)
		if !ok {
			continue
		}
		if err := e.classifyAtom(released, &digitBuf, w, atomOffset); err != nil {
			return err
		}
	}

	return e.finalizeFooter(fw.remaining(), atomOffset)
}

// classifyAtom handles one atom released from the footer window: it is
// a keyword glyph (polymorphic keyword emission, inverted), a data glyph
// (accumulated into the 4-digit base-1024 buffer), or neither — which
// is INVALID_GLYPH. Corruption surfaces instead of being skipped.
func (e *Engine) classifyAtom(atom rune, digitBuf *[]int, w io.Writer, offset int64) error {
	buf := glyphBytes(atom)

	if ringIdx, ok := e.binder.isKeywordGlyph(atom); ok {
		e.feedHMAC(buf)
		*digitBuf = (*digitBuf)[:0] // discard any partial data block

		shift := int(e.rng.nextU64() % uint64(len(Keywords)))
		base := ((ringIdx - shift) % len(Keywords) + len(Keywords)) % len(Keywords)
		_, err := w.Write([]byte(Keywords[base]))
		return err
	}

	if digit, ok := e.binder.isDataGlyph(atom); ok {
		e.feedHMAC(buf)
		*digitBuf = append(*digitBuf, digit)
		if len(*digitBuf) < digitsPerBlock {
			return nil
		}

		var d [digitsPerBlock]int
		copy(d[:], *digitBuf)
		*digitBuf = (*digitBuf)[:0]

		masked := decodeBlock(d)
		var mask [blockSize]byte
		copy(mask[:], e.rng.nextBytes(blockSize))
		plain := xor5(masked, mask)

		_, err := w.Write(stripTrailingZeros(plain[:]))
		return err
	}

	return newErr(ErrKindInvalidGlyph, offset, "glyph %q is neither a keyword nor a data glyph", atom)
}

// stripTrailingZeros drops trailing 0x00 bytes introduced by the
// encoder's right-pad-to-5 rule. The strip applies to every block, not
// just the last one, because a keyword can force a short-changed block
// anywhere in the stream; legitimate trailing NUL bytes inside a block
// are therefore not preserved.
func stripTrailingZeros(b []byte) []byte {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return b[:end]
}

// finalizeFooter runs once the input is exhausted: the atoms left in
// the footer window at end-of-stream are the footer. Each must be a
// header-alphabet glyph; the resulting 64 hex chars must equal the
// finalized HMAC.
func (e *Engine) finalizeFooter(remaining []rune, offset int64) error {
	if len(remaining) != footerWindowSize {
		return newErr(ErrKindFileTruncated, offset, "footer has %d atoms, need %d", len(remaining), footerWindowSize)
	}

	nibbles := make([]byte, 0, footerWindowSize)
	for _, atom := range remaining {
		idx, ok := headerGlyphIndex[atom]
		if !ok {
			return newErr(ErrKindInvalidFooter, offset, "glyph %q is not a header glyph", atom)
		}
		nibbles = append(nibbles, hexDigits[idx])
	}

	got, err := hex.DecodeString(string(nibbles))
	if err != nil {
		return newErr(ErrKindInvalidFooter, offset, "footer hex: %v", err)
	}

	if !hmac.Equal(got, e.mac.Sum(nil)) {
		return newErr(ErrKindFileTampered, offset, "footer does not match computed HMAC")
	}
	return nil
}
