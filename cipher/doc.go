// Package cipher implements the mojic codec: a password-seeded,
// HMAC-sealed transform between C source text and a stream of Unicode
// pictographic glyphs.
//
// The codec combines three ideas:
//   - a key-derived, shuffled code alphabet (Fisher-Yates over a CSPRNG)
//   - a polymorphic keyword mapping, where the same keyword encodes to a
//     different glyph every occurrence
//   - XOR-whitening of the raw byte stream ahead of base-1024 glyph
//     encoding
//
// all sealed end to end by a running HMAC-SHA256 footer.
//
// # Data model
//
// Four fixed tables drive the codec: the raw alphabet U (candidate
// glyphs), the header alphabet H (16 glyphs used as a nibble map), the
// keyword vocabulary K (38 C keywords and directives), and the
// password-derived shuffle that splits U into the keyword ring KR and
// the data alphabet DA. See alphabet.go and binder.go.
//
// # Usage
//
//	eng := cipher.New(password)
//	if err := eng.Init(nil, nil); err != nil { ... }
//	header, _ := eng.EncodeHeader()
//	err := eng.EncodeStream(ctx, src, dst)
//
// An Engine drives exactly one encode or decode pass and must be
// discarded afterward; its RNG and HMAC state are monotonic and cannot
// be rewound or reused.
package cipher
