package vault

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

const testSource = "#include <stdio.h>\nint main(void) { printf(\"hi\\n\"); return 0; }\n"

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestEncodeDecodeFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "main.c", testSource)

	var opts Options
	encPath, err := opts.EncodeFile(context.Background(), src, "hunter2pass")
	if err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}
	if encPath != filepath.Join(dir, "main.mojic") {
		t.Fatalf("encode path = %s", encPath)
	}

	decPath, err := opts.DecodeFile(context.Background(), encPath, "hunter2pass")
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if decPath != filepath.Join(dir, "main.restored.c") {
		t.Fatalf("decode path = %s", decPath)
	}

	restored, err := os.ReadFile(decPath)
	if err != nil {
		t.Fatalf("read restored: %v", err)
	}
	if string(restored) != testSource {
		t.Fatalf("restored = %q, want %q", restored, testSource)
	}
}

func TestDecodeFile_WrongPasswordLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "main.c", testSource)

	var opts Options
	encPath, err := opts.EncodeFile(context.Background(), src, "hunter2pass")
	if err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}

	_, err = opts.DecodeFile(context.Background(), encPath, "wrongpass")
	if !IsWrongPassword(err) {
		t.Fatalf("got %v, want wrong-password error", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "main.restored.c")); !os.IsNotExist(statErr) {
		t.Fatal("partial output left behind after failed decode")
	}
}

func TestRotate(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "main.c", testSource)

	var opts Options
	encPath, err := opts.EncodeFile(context.Background(), src, "oldpassword")
	if err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}

	if err := opts.Rotate(context.Background(), encPath, "oldpassword", "newpassword"); err != nil {
		t.Fatalf("Rotate: %v", err)
	}

	if _, err := opts.DecodeFile(context.Background(), encPath, "oldpassword"); !IsWrongPassword(err) {
		t.Fatalf("old password still decodes after rotation: %v", err)
	}

	decPath, err := opts.DecodeFile(context.Background(), encPath, "newpassword")
	if err != nil {
		t.Fatalf("DecodeFile with new password: %v", err)
	}
	restored, _ := os.ReadFile(decPath)
	if string(restored) != testSource {
		t.Fatalf("restored = %q, want %q", restored, testSource)
	}
}

func TestRotate_WrongOldPasswordKeepsFile(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "main.c", testSource)

	var opts Options
	encPath, err := opts.EncodeFile(context.Background(), src, "hunter2pass")
	if err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}
	before, _ := os.ReadFile(encPath)

	if err := opts.Rotate(context.Background(), encPath, "wrongpass", "newpassword"); !IsWrongPassword(err) {
		t.Fatalf("got %v, want wrong-password error", err)
	}

	after, _ := os.ReadFile(encPath)
	if !bytes.Equal(before, after) {
		t.Fatal("failed rotation modified the file")
	}
}

func TestReseed(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "main.c", testSource)

	var opts Options
	encPath, err := opts.EncodeFile(context.Background(), src, "hunter2pass")
	if err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}
	before, _ := os.ReadFile(encPath)

	if err := opts.Reseed(context.Background(), encPath, "hunter2pass"); err != nil {
		t.Fatalf("Reseed: %v", err)
	}

	after, _ := os.ReadFile(encPath)
	if bytes.Equal(before, after) {
		t.Fatal("reseed produced byte-identical ciphertext")
	}

	decPath, err := opts.DecodeFile(context.Background(), encPath, "hunter2pass")
	if err != nil {
		t.Fatalf("DecodeFile after reseed: %v", err)
	}
	restored, _ := os.ReadFile(decPath)
	if string(restored) != testSource {
		t.Fatalf("restored = %q, want %q", restored, testSource)
	}
}

func TestEncodeFile_Minify(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "main.c", "int    x;   // noise\n")

	opts := Options{Minify: true}
	encPath, err := opts.EncodeFile(context.Background(), src, "hunter2pass")
	if err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}
	decPath, err := opts.DecodeFile(context.Background(), encPath, "hunter2pass")
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	restored, _ := os.ReadFile(decPath)
	if string(restored) != "int x;\n" {
		t.Fatalf("restored = %q, want minified source", restored)
	}
}

func TestEncodeFile_RejectsNonSource(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "notes.txt", "hello")

	var opts Options
	if _, err := opts.EncodeFile(context.Background(), path, "hunter2pass"); err == nil {
		t.Fatal("expected error for non-.c input")
	}
}

func TestCheckPassword(t *testing.T) {
	if err := CheckPassword("short"); err == nil {
		t.Fatal("5-char password accepted")
	}
	if err := CheckPassword("hunter2"); err != nil {
		t.Fatalf("7-char password rejected: %v", err)
	}
}
