package cipher

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

// TestWhitening_UniformDigits encodes a long run of identical bytes and
// chi-square-tests the resulting base-1024 digit distribution against
// uniform. The salt is fixed so the test is deterministic; the
// threshold is the df=1023 critical value at alpha=0.001 via the
// Wilson-Hilferty approximation.
func TestWhitening_UniformDigits(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical stress test")
	}

	const n = 10000
	plaintext := []byte(strings.Repeat(" ", n))
	salt := bytes.Repeat([]byte{0x2a}, saltLen)

	eng := New("hunter2pass")
	if err := eng.Init(salt, nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	var buf bytes.Buffer
	if err := eng.EncodeStream(context.Background(), bytes.NewReader(plaintext), &buf); err != nil {
		t.Fatalf("EncodeStream: %v", err)
	}

	counts := make([]int, 1024)
	total := 0
	for _, r := range buf.String() {
		if r == '\n' {
			continue
		}
		if d, ok := eng.binder.isDataGlyph(r); ok {
			counts[d]++
			total++
		}
	}

	wantDigits := 4 * (n / blockSize)
	// The footer's 64 header glyphs never collide with DA, so every
	// counted atom is a payload digit.
	if total != wantDigits {
		t.Fatalf("counted %d data glyphs, want %d", total, wantDigits)
	}

	expected := float64(total) / 1024.0
	chi2 := 0.0
	for _, c := range counts {
		d := float64(c) - expected
		chi2 += d * d / expected
	}

	const critical = 1168.5
	if chi2 > critical {
		t.Fatalf("chi-square = %.1f exceeds %.1f: digit distribution is not uniform", chi2, critical)
	}
}
