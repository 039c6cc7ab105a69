package vault

import "strings"

const (
	// MojicExt is the extension of encoded files.
	MojicExt = ".mojic"
	// RestoredExt is the extension appended to decoded files.
	RestoredExt = ".restored.c"
	// SourceExt is the extension of encodable C source files.
	SourceExt = ".c"
)

// EncodePath derives the output path for encoding: *.c -> *.mojic.
// ok is false for paths that are not C source (already-encoded .mojic
// files included), which directory walks skip rather than fail on.
func EncodePath(path string) (string, bool) {
	if strings.HasSuffix(path, SourceExt) {
		return strings.TrimSuffix(path, SourceExt) + MojicExt, true
	}
	return "", false
}

// DecodePath derives the output path for decoding:
// *.mojic -> *.restored.c.
func DecodePath(path string) (string, bool) {
	if !strings.HasSuffix(path, MojicExt) {
		return "", false
	}
	return strings.TrimSuffix(path, MojicExt) + RestoredExt, true
}
