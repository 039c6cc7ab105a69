package cipher

import "testing"

func TestEncodeDecodeBlock_Identity(t *testing.T) {
	tests := [][blockSize]byte{
		{0, 0, 0, 0, 0},
		{0xff, 0xff, 0xff, 0xff, 0xff},
		{1, 2, 3, 4, 5},
		{' ', ' ', ' ', ' ', '\n'},
	}

	for _, b := range tests {
		digits := encodeBlock(b)
		for _, d := range digits {
			if d < 0 || d >= 1024 {
				t.Fatalf("digit %d out of range for block %v", d, b)
			}
		}
		got := decodeBlock(digits)
		if got != b {
			t.Errorf("decodeBlock(encodeBlock(%v)) = %v, want %v", b, got, b)
		}
	}
}

func TestXor5_SelfInverse(t *testing.T) {
	a := [blockSize]byte{1, 2, 3, 4, 5}
	mask := [blockSize]byte{9, 8, 7, 6, 5}
	masked := xor5(a, mask)
	back := xor5(masked, mask)
	if back != a {
		t.Errorf("xor5 is not self-inverse: got %v, want %v", back, a)
	}
}

func TestStripTrailingZeros(t *testing.T) {
	tests := []struct {
		in   []byte
		want []byte
	}{
		{[]byte{1, 2, 3, 0, 0}, []byte{1, 2, 3}},
		{[]byte{0, 0, 0, 0, 0}, []byte{}},
		{[]byte{1, 2, 3, 4, 5}, []byte{1, 2, 3, 4, 5}},
		{[]byte{1, 0, 2, 0, 0}, []byte{1, 0, 2}},
	}
	for _, tt := range tests {
		got := stripTrailingZeros(tt.in)
		if string(got) != string(tt.want) {
			t.Errorf("stripTrailingZeros(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
