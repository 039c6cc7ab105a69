package cipher

// alphabetBinder holds the password-derived shuffled alphabet split into
// the keyword ring KR and the data alphabet DA, plus
// their inverse lookups.
type alphabetBinder struct {
	keywordRing  [len(Keywords)]rune
	dataAlphabet [1024]rune

	glyphToKeywordIdx map[rune]int // KR glyph -> position in KR
	glyphToDigit      map[rune]int // DA glyph -> base-1024 digit
}

// newAlphabetBinder consumes rng to Fisher-Yates shuffle U, then
// partitions the shuffled sequence into KR (first len(Keywords) slots)
// and DA (next 1024 slots).
func newAlphabetBinder(rng *csprng) (*alphabetBinder, error) {
	u := rawAlphabet()
	if len(u) < minRawAlphabetSize {
		return nil, newErr(ErrKindAlphabetUnderflow, -1, "raw alphabet has %d glyphs, need >= %d", len(u), minRawAlphabetSize)
	}

	shuffle(u, rng)

	b := &alphabetBinder{
		glyphToKeywordIdx: make(map[rune]int, len(Keywords)),
		glyphToDigit:      make(map[rune]int, 1024),
	}
	for i := range b.keywordRing {
		g := u[i]
		b.keywordRing[i] = g
		b.glyphToKeywordIdx[g] = i
	}
	for j := range b.dataAlphabet {
		g := u[len(Keywords)+j]
		b.dataAlphabet[j] = g
		b.glyphToDigit[g] = j
	}
	return b, nil
}

// shuffle performs an in-place Fisher-Yates shuffle of u driven by rng,
// iterating i from len(u)-1 down to 1 with
// j = floor(rng.nextFloat() * (i+1)).
func shuffle(u []rune, rng *csprng) {
	for i := len(u) - 1; i >= 1; i-- {
		j := int(rng.nextFloat() * float64(i+1))
		u[i], u[j] = u[j], u[i]
	}
}

// isKeywordGlyph reports whether g belongs to the keyword ring and
// returns its ring index.
func (b *alphabetBinder) isKeywordGlyph(g rune) (int, bool) {
	idx, ok := b.glyphToKeywordIdx[g]
	return idx, ok
}

// isDataGlyph reports whether g belongs to the data alphabet and
// returns its base-1024 digit.
func (b *alphabetBinder) isDataGlyph(g rune) (int, bool) {
	d, ok := b.glyphToDigit[g]
	return d, ok
}
