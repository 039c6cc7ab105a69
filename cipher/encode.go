package cipher

import (
	"context"
	"io"
)

// EncodeStream tokenizes plaintext read from r into keyword and data
// tokens, drives the encode state machine, and writes the payload
// followed by the HMAC footer to w. The tokenizer needs the whole
// logical unit at once, so EncodeStream reads r to completion before
// emitting anything; ctx is checked once per token so a caller can
// still cancel a large file between tokens.
func (e *Engine) EncodeStream(ctx context.Context, r io.Reader, w io.Writer) error {
	if !e.initialized {
		return newErr(ErrKindInvalidHeader, -1, "engine not initialized")
	}

	input, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	toks := tokenize(input)
	lw := newLineWriter(w)
	var pending []byte

	for _, t := range toks {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch t.kind {
		case tokenKeyword:
			if err := e.flushPending(&pending, lw); err != nil {
				return err
			}
			if err := e.emitKeyword(t.keyword, lw); err != nil {
				return err
			}
		case tokenData:
			pending = append(pending, t.data...)
			if err := e.drainFullBlocks(&pending, lw); err != nil {
				return err
			}
		}
	}

	if err := e.flushPending(&pending, lw); err != nil {
		return err
	}

	return e.writeFooter(w)
}

// emitKeyword encodes one keyword occurrence polymorphically: a
// new CSPRNG draw picks a per-occurrence offset into the keyword ring,
// so the same keyword encodes to a different glyph every time.
func (e *Engine) emitKeyword(kw string, lw *lineWriter) error {
	base, ok := keywordIndex[kw]
	if !ok {
		return newErr(ErrKindInvalidGlyph, -1, "%q is not in the keyword vocabulary", kw)
	}
	shift := int(e.rng.nextU64() % uint64(len(Keywords)))
	emitIdx := (base + shift) % len(Keywords)
	g := e.binder.keywordRing[emitIdx]

	buf := glyphBytes(g)
	e.feedHMAC(buf)
	_, err := lw.Write(buf)
	return err
}

// drainFullBlocks extracts and emits every complete 5-byte block
// currently buffered in pending, leaving 0-4 leftover bytes.
func (e *Engine) drainFullBlocks(pending *[]byte, lw *lineWriter) error {
	for len(*pending) >= blockSize {
		var block [blockSize]byte
		copy(block[:], (*pending)[:blockSize])
		*pending = (*pending)[blockSize:]
		if err := e.emitDataBlock(block, lw); err != nil {
			return err
		}
	}
	return nil
}

// flushPending emits any leftover bytes as one block, right-padded
// with 0x00 to 5 bytes. A no-op when pending is empty.
func (e *Engine) flushPending(pending *[]byte, lw *lineWriter) error {
	if len(*pending) == 0 {
		return nil
	}
	var block [blockSize]byte
	copy(block[:], *pending) // zero-value tail is the right-pad
	*pending = (*pending)[:0]
	return e.emitDataBlock(block, lw)
}

// emitDataBlock whitens one 5-byte block against the next CSPRNG mask
// and emits its 4 base-1024 digit glyphs.
func (e *Engine) emitDataBlock(block [blockSize]byte, lw *lineWriter) error {
	var mask [blockSize]byte
	copy(mask[:], e.rng.nextBytes(blockSize))
	masked := xor5(block, mask)

	for _, d := range encodeBlock(masked) {
		g := e.binder.dataAlphabet[d]
		buf := glyphBytes(g)
		e.feedHMAC(buf)
		if _, err := lw.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// writeFooter finalizes the running HMAC and appends its 64 hex
// nibbles as header-alphabet glyphs, preceded by a '\n' separator
//.
func (e *Engine) writeFooter(w io.Writer) error {
	if _, err := w.Write([]byte{'\n'}); err != nil {
		return err
	}
	sum := e.mac.Sum(nil)
	footer := make([]byte, 0, 64*4)
	for _, b := range sum {
		footer = append(footer, glyphBytes(HeaderAlphabet[b>>4])...)
		footer = append(footer, glyphBytes(HeaderAlphabet[b&0x0f])...)
	}
	_, err := w.Write(footer)
	return err
}
