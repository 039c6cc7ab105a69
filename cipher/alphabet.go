package cipher

// Raw alphabet ranges, in ascending order: misc symbols & pictographs,
// emoticons, transport & map symbols, supplemental symbols & pictographs.
var rawAlphabetRanges = [4][2]rune{
	{0x1F300, 0x1F5FF},
	{0x1F600, 0x1F64F},
	{0x1F680, 0x1F6FF},
	{0x1F900, 0x1F9FF},
}

// HeaderAlphabet is the fixed 16-glyph nibble map: moon phases 0..7 then
// clocks 1..8. Index i decodes hex nibble i.
var HeaderAlphabet = [16]rune{
	0x1F311, 0x1F312, 0x1F313, 0x1F314, // new, waxing crescent, first quarter, waxing gibbous
	0x1F315, 0x1F316, 0x1F317, 0x1F318, // full, waning gibbous, last quarter, waning crescent
	0x1F550, 0x1F551, 0x1F552, 0x1F553, // clock 1..4
	0x1F554, 0x1F555, 0x1F556, 0x1F557, // clock 5..8
}

// Keywords is the fixed, positionally-significant vocabulary K: the 32
// standard C keywords plus six directive/library tokens. The binding to
// glyphs is by position, so this order is part of the wire format and
// must never change.
var Keywords = [38]string{
	"auto", "break", "case", "char", "const", "continue", "default", "do",
	"double", "else", "enum", "extern", "float", "for", "goto", "if",
	"int", "long", "register", "return", "short", "signed", "sizeof",
	"static", "struct", "switch", "typedef", "union", "unsigned", "void",
	"volatile", "while",
	"include", "define", "main", "printf", "#include", "#define",
}

// headerSet returns the 16 header glyphs as a membership set.
func headerSet() map[rune]bool {
	m := make(map[rune]bool, len(HeaderAlphabet))
	for _, r := range HeaderAlphabet {
		m[r] = true
	}
	return m
}

// rawAlphabet enumerates U: every code point in the four pictographic
// ranges, ascending, excluding the header glyphs. ALPHABET_UNDERFLOW is
// the caller's responsibility to check against len(U) < 1080.
func rawAlphabet() []rune {
	excl := headerSet()
	out := make([]rune, 0, 1200)
	for _, rg := range rawAlphabetRanges {
		for c := rg[0]; c <= rg[1]; c++ {
			if excl[c] {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}

// minRawAlphabetSize is the floor below which the generator fails
// with ALPHABET_UNDERFLOW.
const minRawAlphabetSize = 1080

// keywordIndex maps a keyword string to its position in Keywords.
var keywordIndex = func() map[string]int {
	m := make(map[string]int, len(Keywords))
	for i, k := range Keywords {
		m[k] = i
	}
	return m
}()
