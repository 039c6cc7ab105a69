package cipher

// Analyze scans source and counts every occurrence of the vocabulary
// keywords, using the same tokenizer the encoder runs. The result maps
// each keyword found to its occurrence count; keywords absent from
// source have no entry.
func Analyze(source []byte) map[string]int {
	counts := make(map[string]int)
	for _, tok := range tokenize(source) {
		if tok.kind == tokenKeyword {
			counts[tok.keyword]++
		}
	}
	return counts
}
