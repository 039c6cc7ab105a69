package vault

import "testing"

func TestEncodePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"main.c", "main.mojic", true},
		{"src/util.c", "src/util.mojic", true},
		{"main.restored.c", "main.restored.mojic", true},
		{"main.mojic", "", false},
		{"README.md", "", false},
		{"c", "", false},
	}
	for _, tt := range tests {
		got, ok := EncodePath(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("EncodePath(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDecodePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"main.mojic", "main.restored.c", true},
		{"src/util.mojic", "src/util.restored.c", true},
		{"main.c", "", false},
		{"mojic", "", false},
	}
	for _, tt := range tests {
		got, ok := DecodePath(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("DecodePath(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
