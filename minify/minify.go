// Package minify implements the optional whitespace-minification
// pre-filter applied to C source before encoding. It collapses runs of
// horizontal whitespace to a single space and strips // line comments,
// shrinking the data runs the cipher has to carry. String and character
// literals pass through untouched.
//
// Minification is lossy by design: a minified file round-trips through
// the cipher exactly, but does not byte-match the original source.
package minify

type state uint8

const (
	stateCode state = iota
	stateString
	stateChar
	stateLineComment
	stateBlockComment
)

// Source minifies one C source buffer. The transform is line-oriented:
// trailing horizontal whitespace is dropped, interior runs of spaces
// and tabs collapse to one space, and everything from an unquoted //
// to the end of the line is removed. /* */ comments are preserved
// (stripping them would need real lexing to keep license headers
// intact, which is not this filter's job).
func Source(src []byte) []byte {
	out := make([]byte, 0, len(src))
	st := stateCode
	pendingSpace := false

	flushSpace := func() {
		if pendingSpace {
			// Never emit a leading space after a newline.
			if n := len(out); n > 0 && out[n-1] != '\n' {
				out = append(out, ' ')
			}
			pendingSpace = false
		}
	}

	for i := 0; i < len(src); i++ {
		c := src[i]

		switch st {
		case stateLineComment:
			if c == '\n' {
				st = stateCode
				pendingSpace = false
				out = append(out, '\n')
			}
			continue

		case stateString:
			out = append(out, c)
			if c == '\\' && i+1 < len(src) {
				i++
				out = append(out, src[i])
			} else if c == '"' {
				st = stateCode
			}
			continue

		case stateChar:
			out = append(out, c)
			if c == '\\' && i+1 < len(src) {
				i++
				out = append(out, src[i])
			} else if c == '\'' {
				st = stateCode
			}
			continue

		case stateBlockComment:
			out = append(out, c)
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				i++
				out = append(out, '/')
				st = stateCode
			}
			continue
		}

		switch {
		case c == ' ' || c == '\t':
			pendingSpace = true
		case c == '\n':
			pendingSpace = false
			// Drop whitespace-only lines entirely.
			if n := len(out); n > 0 && out[n-1] != '\n' {
				out = append(out, '\n')
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			st = stateLineComment
			i++
			pendingSpace = false
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			flushSpace()
			st = stateBlockComment
			out = append(out, '/', '*')
			i++
		case c == '"':
			flushSpace()
			st = stateString
			out = append(out, c)
		case c == '\'':
			flushSpace()
			st = stateChar
			out = append(out, c)
		default:
			flushSpace()
			out = append(out, c)
		}
	}

	return out
}
