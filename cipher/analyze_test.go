package cipher

import "testing"

func TestAnalyze_Counts(t *testing.T) {
	src := []byte("#include <stdio.h>\nint main(void) { int x = 0; return x; }\n")
	counts := Analyze(src)

	want := map[string]int{
		"#include": 1,
		"int":      2,
		"main":     1,
		"void":     1,
		"return":   1,
	}
	for kw, n := range want {
		if counts[kw] != n {
			t.Errorf("counts[%q] = %d, want %d", kw, counts[kw], n)
		}
	}
	if counts["include"] != 0 {
		t.Errorf("counts[include] = %d, want 0 (anchored by #include)", counts["include"])
	}
}

func TestAnalyze_Empty(t *testing.T) {
	if got := Analyze(nil); len(got) != 0 {
		t.Fatalf("Analyze(nil) = %v, want empty", got)
	}
}
