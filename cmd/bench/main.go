// bench - mojic cipher benchmark runner
//
// Measures, per case:
//   - Ciphertext expansion (plaintext bytes vs .mojic bytes on wire)
//   - Keyword glyph count (vocabulary keyword occurrences in the input)
//   - Encode and decode throughput
//
// Cases are C source files passed as arguments; with no arguments a
// built-in synthetic corpus runs. Output: CSV to bench_results.csv and
// a summary to stdout.
package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/notamitgamer/mojic/cipher"
)

const benchPassword = "bench-only-password"

type CaseResult struct {
	Name        string
	PlainBytes  int
	MojicBytes  int
	Expansion   float64
	Keywords    int
	EncodeNsOp  int64
	DecodeNsOp  int64
	EncodeMBps  float64
	DecodeMBps  float64
}

func main() {
	cases := builtinCases()
	if len(os.Args) > 1 {
		cases = nil
		for _, path := range os.Args[1:] {
			data, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Skip %s: %v\n", path, err)
				continue
			}
			cases = append(cases, benchCase{filepath.Base(path), data})
		}
	}
	if len(cases) == 0 {
		fmt.Fprintln(os.Stderr, "No benchmark cases")
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "mojic Benchmark Runner\n")
	fmt.Fprintf(os.Stderr, "======================\n")
	fmt.Fprintf(os.Stderr, "Corpus: %d cases\n\n", len(cases))

	var results []CaseResult
	var totalPlain, totalMojic int

	for _, c := range cases {
		r, err := runCase(c)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skip %s: %v\n", c.name, err)
			continue
		}
		results = append(results, r)
		totalPlain += r.PlainBytes
		totalMojic += r.MojicBytes
	}

	csvPath := "bench_results.csv"
	if csvFile, err := os.Create(csvPath); err == nil {
		writeCSV(csvFile, results)
		csvFile.Close()
		fmt.Fprintf(os.Stderr, "CSV written to: %s\n", csvPath)
	}

	fmt.Printf("\n=== SUMMARY ===\n")
	fmt.Printf("Cases:          %d\n", len(results))
	fmt.Printf("Plaintext:      %d bytes\n", totalPlain)
	fmt.Printf("Ciphertext:     %d bytes\n", totalMojic)
	if totalPlain > 0 {
		fmt.Printf("Expansion:      %.2fx\n", float64(totalMojic)/float64(totalPlain))
	}
}

type benchCase struct {
	name string
	data []byte
}

func builtinCases() []benchCase {
	return []benchCase{
		{"hello", []byte("#include <stdio.h>\nint main(void) { printf(\"hi\\n\"); return 0; }\n")},
		{"keyword-heavy", []byte(strings.Repeat("static const unsigned long int x; return x; ", 50))},
		{"whitespace", []byte(strings.Repeat("    \n", 200))},
		{"prose", []byte(strings.Repeat("the quick brown fox jumps over the lazy dog. ", 40))},
	}
}

func runCase(c benchCase) (CaseResult, error) {
	ciphertext, err := encode(c.data)
	if err != nil {
		return CaseResult{}, err
	}

	plain, err := decode(ciphertext)
	if err != nil {
		return CaseResult{}, err
	}
	if !bytes.Equal(plain, c.data) {
		return CaseResult{}, fmt.Errorf("round trip mismatch")
	}

	encNs := timeOp(func() error { _, err := encode(c.data); return err })
	decNs := timeOp(func() error { _, err := decode(ciphertext); return err })

	counts := cipher.Analyze(c.data)
	keywords := 0
	for _, n := range counts {
		keywords += n
	}

	return CaseResult{
		Name:       c.name,
		PlainBytes: len(c.data),
		MojicBytes: len(ciphertext),
		Expansion:  float64(len(ciphertext)) / float64(max(1, len(c.data))),
		Keywords:   keywords,
		EncodeNsOp: encNs,
		DecodeNsOp: decNs,
		EncodeMBps: mbps(len(c.data), encNs),
		DecodeMBps: mbps(len(c.data), decNs),
	}, nil
}

func encode(plaintext []byte) ([]byte, error) {
	eng := cipher.New(benchPassword)
	if err := eng.Init(nil, nil); err != nil {
		return nil, err
	}
	header, err := eng.EncodeHeader()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Write(header)
	if err := eng.EncodeStream(context.Background(), bytes.NewReader(plaintext), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(ciphertext []byte) ([]byte, error) {
	br := bufio.NewReader(bytes.NewReader(ciphertext))
	headerLine, err := br.ReadString('\n')
	if err != nil {
		return nil, err
	}
	hdr, err := cipher.DecodeHeaderLine(headerLine)
	if err != nil {
		return nil, err
	}
	eng := cipher.New(benchPassword)
	if err := eng.Init(hdr.Salt, &hdr.AuthCheck); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := eng.DecodeStream(context.Background(), br, &out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// timeOp runs op a few times and reports the best ns/op. The scrypt
// KDF dominates small inputs, which is the honest number for a tool
// that derives a fresh key per file.
func timeOp(op func() error) int64 {
	best := int64(0)
	const rounds = 3
	for i := 0; i < rounds; i++ {
		start := time.Now()
		if err := op(); err != nil {
			return 0
		}
		ns := time.Since(start).Nanoseconds()
		if best == 0 || ns < best {
			best = ns
		}
	}
	return best
}

func mbps(n int, ns int64) float64 {
	if ns == 0 {
		return 0
	}
	return float64(n) / (float64(ns) / 1e9) / (1 << 20)
}

func writeCSV(w io.Writer, results []CaseResult) {
	fmt.Fprintln(w, "name,plain_bytes,mojic_bytes,expansion,keywords,encode_ns,decode_ns,encode_mbps,decode_mbps")
	for _, r := range results {
		fmt.Fprintf(w, "%s,%d,%d,%.2f,%d,%d,%d,%.2f,%.2f\n",
			r.Name, r.PlainBytes, r.MojicBytes, r.Expansion, r.Keywords,
			r.EncodeNsOp, r.DecodeNsOp, r.EncodeMBps, r.DecodeMBps)
	}
}
