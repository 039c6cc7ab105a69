package cipher

import (
	"regexp"
	"sort"
	"strings"
)

// tokenKind distinguishes a keyword match from a data run.
type tokenKind uint8

const (
	tokenData tokenKind = iota
	tokenKeyword
)

// token is one element of the alternating {keyword, data-run} sequence
// the tokenizer partitions input into.
type token struct {
	kind    tokenKind
	data    []byte // valid when kind == tokenData
	keyword string // valid when kind == tokenKeyword; always a member of Keywords
}

// keywordPattern matches the vocabulary K. Symbolic keywords (#include,
// #define) are listed first and unanchored, so a literal '#' always
// wins the leftmost match over their alphabetic prefixes. Alphabetic
// keywords are word-boundary anchored and sorted longest-first so
// "longest-match-wins" holds even if the vocabulary ever gains
// keywords sharing a prefix.
var keywordPattern = buildKeywordPattern()

func buildKeywordPattern() *regexp.Regexp {
	var symbolic, alphabetic []string
	for _, kw := range Keywords {
		if strings.HasPrefix(kw, "#") {
			symbolic = append(symbolic, regexp.QuoteMeta(kw))
		} else {
			alphabetic = append(alphabetic, kw)
		}
	}
	sort.Slice(alphabetic, func(i, j int) bool { return len(alphabetic[i]) > len(alphabetic[j]) })

	var alts []string
	for _, kw := range alphabetic {
		alts = append(alts, regexp.QuoteMeta(kw))
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(symbolic, "|"))
	if len(alts) > 0 {
		if sb.Len() > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(`\b(?:`)
		sb.WriteString(strings.Join(alts, "|"))
		sb.WriteString(`)\b`)
	}
	return regexp.MustCompile(sb.String())
}

// tokenize partitions input into alternating keyword and data-run
// tokens. It processes the whole buffer at once, so a keyword can
// never straddle a chunk boundary; callers that stream chunked input
// must buffer a whole logical unit (mojic's CLI reads whole files)
// before calling tokenize.
func tokenize(input []byte) []token {
	matches := keywordPattern.FindAllIndex(input, -1)

	toks := make([]token, 0, len(matches)*2+1)
	pos := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if start > pos {
			toks = append(toks, token{kind: tokenData, data: input[pos:start]})
		}
		toks = append(toks, token{kind: tokenKeyword, keyword: string(input[start:end])})
		pos = end
	}
	if pos < len(input) {
		toks = append(toks, token{kind: tokenData, data: input[pos:]})
	}
	return toks
}
