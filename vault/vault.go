// Package vault orchestrates cipher passes over files on disk: encode,
// decode, password rotation, and re-seeding. It owns the three
// constraints the engine contract leaves to its caller: one engine per
// file, a unique salt per encoded file, and atomic
// write-to-temp-then-rename for every in-place rewrite.
//
// The cipher package stays a pure codec; all file I/O and all logging
// live here.
package vault

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/notamitgamer/mojic/cipher"
	"github.com/notamitgamer/mojic/minify"
)

// MinPasswordLen is the shortest password the orchestration layer
// accepts. The check runs before any KDF work.
const MinPasswordLen = 6

// ErrPasswordTooShort is returned by CheckPassword for passwords under
// MinPasswordLen bytes.
var ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", MinPasswordLen)

// CheckPassword validates a candidate password's length.
func CheckPassword(password string) error {
	if len(password) < MinPasswordLen {
		return ErrPasswordTooShort
	}
	return nil
}

// Options configures a vault operation.
type Options struct {
	// Minify runs the whitespace-minification pre-filter on plaintext
	// before encoding.
	Minify bool
	// Logger receives structured progress events. Nil means no logging.
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// EncodeFile encodes one C source file to its derived *.mojic path
// with a fresh engine and a fresh salt. Returns the output path. On
// any error the partial output file is removed.
func (o Options) EncodeFile(ctx context.Context, path, password string) (string, error) {
	outPath, ok := EncodePath(path)
	if !ok {
		return "", fmt.Errorf("%s: not a C source file", path)
	}

	plaintext, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if o.Minify {
		plaintext = minify.Source(plaintext)
	}

	if err := writeFileAtomic(outPath, func(w io.Writer) error {
		return encodeTo(ctx, w, plaintext, password)
	}); err != nil {
		return "", fmt.Errorf("encode %s: %w", path, err)
	}

	o.logger().Info("encoded",
		zap.String("in", path),
		zap.String("out", outPath),
		zap.Int("plaintext_bytes", len(plaintext)),
		zap.Bool("minified", o.Minify))
	return outPath, nil
}

// DecodeFile decodes one *.mojic file to its derived *.restored.c
// path. The header is parsed first so a wrong password fails before
// any body byte is processed. On any error the partial output file is
// removed.
func (o Options) DecodeFile(ctx context.Context, path, password string) (string, error) {
	outPath, ok := DecodePath(path)
	if !ok {
		return "", fmt.Errorf("%s: not a %s file", path, MojicExt)
	}

	in, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer in.Close()

	if err := writeFileAtomic(outPath, func(w io.Writer) error {
		return decodeFrom(ctx, in, w, password)
	}); err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}

	o.logger().Info("decoded",
		zap.String("in", path),
		zap.String("out", outPath))
	return outPath, nil
}

// Rotate re-encrypts path in place under newPassword: decode with
// oldPassword, re-encode with newPassword and a fresh salt into a temp
// file in the same directory, then rename over the original only on
// full success. The recovered plaintext never touches the disk.
func (o Options) Rotate(ctx context.Context, path, oldPassword, newPassword string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	var plaintext bytes.Buffer
	if err := decodeFrom(ctx, in, &plaintext, oldPassword); err != nil {
		return fmt.Errorf("rotate %s: %w", path, err)
	}

	if err := replaceFileAtomic(path, func(w io.Writer) error {
		return encodeTo(ctx, w, plaintext.Bytes(), newPassword)
	}); err != nil {
		return fmt.Errorf("rotate %s: %w", path, err)
	}

	o.logger().Info("rotated", zap.String("path", path))
	return nil
}

// Reseed re-encrypts path in place under the same password with a
// fresh salt, so the ciphertext bytes change while the plaintext and
// password stay fixed.
func (o Options) Reseed(ctx context.Context, path, password string) error {
	if err := o.Rotate(ctx, path, password, password); err != nil {
		return err
	}
	o.logger().Info("reseeded", zap.String("path", path))
	return nil
}

// encodeTo runs one full encode pass over plaintext: fresh engine,
// fresh salt, header line, payload, footer.
func encodeTo(ctx context.Context, w io.Writer, plaintext []byte, password string) error {
	eng := cipher.New(password)
	if err := eng.Init(nil, nil); err != nil {
		return err
	}
	header, err := eng.EncodeHeader()
	if err != nil {
		return err
	}
	if _, err := w.Write(header); err != nil {
		return err
	}
	return eng.EncodeStream(ctx, bytes.NewReader(plaintext), w)
}

// decodeFrom runs one full decode pass: parse the header line, let the
// auth check veto the password, then stream the body.
func decodeFrom(ctx context.Context, r io.Reader, w io.Writer, password string) error {
	br := bufio.NewReader(r)
	headerLine, err := br.ReadString('\n')
	if err != nil {
		return &cipher.Error{Kind: cipher.ErrKindInvalidHeader, Detail: "missing header line", Offset: -1}
	}
	hdr, err := cipher.DecodeHeaderLine(headerLine)
	if err != nil {
		return err
	}
	eng := cipher.New(password)
	if err := eng.Init(hdr.Salt, &hdr.AuthCheck); err != nil {
		return err
	}
	return eng.DecodeStream(ctx, br, w)
}

// writeFileAtomic writes to a temp file next to dst and renames it
// into place on success, so dst is either absent, the old content, or
// the complete new content — never a partial stream.
func writeFileAtomic(dst string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// replaceFileAtomic is writeFileAtomic preserving the original file's
// permission bits across the rename.
func replaceFileAtomic(dst string, write func(io.Writer) error) error {
	info, err := os.Stat(dst)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(dst, write); err != nil {
		return err
	}
	return os.Chmod(dst, info.Mode().Perm())
}

// IsWrongPassword reports whether err is the auth-check mismatch the
// decode path raises before touching the body, so callers can offer a
// retry prompt instead of aborting a batch.
func IsWrongPassword(err error) bool {
	return errors.Is(err, cipher.ErrWrongPassword)
}
