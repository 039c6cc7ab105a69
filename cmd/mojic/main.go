// mojic - password-seeded C source obfuscator
//
// Usage:
//
//	mojic encode [--minify] <path>   Encode *.c files to *.mojic
//	mojic decode <path>              Decode *.mojic files to *.restored.c
//	mojic rotate <path>              Re-encrypt *.mojic files under a new password
//	mojic reseed <path>              Re-encrypt *.mojic files with a fresh salt
//	mojic analyze [file]             Count obfuscatable keywords in C source
//	mojic version                    Print version info
//
// <path> may be a single file or a directory; directories are walked
// recursively and files with the wrong extension are skipped. Passwords
// are prompted on the terminal without echo; when stdin is not a
// terminal, a single line is read instead so the tool stays scriptable.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/notamitgamer/mojic/cipher"
	"github.com/notamitgamer/mojic/vault"
)

const version = "1.0.0"

var (
	flagMinify   bool
	flagJobs     int
	flagLogLevel string
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	cmd := os.Args[1]

	flags := pflag.NewFlagSet("mojic", pflag.ExitOnError)
	flags.BoolVar(&flagMinify, "minify", false, "minify C source before encoding")
	flags.IntVar(&flagJobs, "jobs", 4, "concurrent files during a directory walk")
	flags.StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.Usage = printUsage
	if err := flags.Parse(os.Args[2:]); err != nil {
		fatal("parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case "encode":
		cmdEncode(ctx, flags.Args())
	case "decode":
		cmdDecode(ctx, flags.Args())
	case "rotate":
		cmdRotate(ctx, flags.Args())
	case "reseed":
		cmdReseed(ctx, flags.Args())
	case "analyze":
		cmdAnalyze(flags.Args())
	case "version", "-v", "--version":
		fmt.Printf("mojic %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `mojic - password-seeded C source obfuscator

Usage:
  mojic encode [--minify] <path>   Encode *.c files to *.mojic
  mojic decode <path>              Decode *.mojic files to *.restored.c
  mojic rotate <path>              Re-encrypt *.mojic files under a new password
  mojic reseed <path>              Re-encrypt *.mojic files with a fresh salt
  mojic analyze [file]             Count obfuscatable keywords in C source
  mojic version                    Print version info

Options:
  --minify            Collapse whitespace and strip // comments before encoding
  --jobs=N            Concurrent files during a directory walk (default: 4)
  --log-level=LEVEL   debug, info, warn or error (default: info)

Each encoded file gets its own fresh 32-byte salt, so re-encoding the
same source twice never yields the same ciphertext. Rotation and
re-seeding rewrite files atomically: a temp file in the same directory
is renamed over the original only on full success.

Examples:
  mojic encode main.c              # writes main.mojic
  mojic encode --minify src/       # encodes every *.c under src/
  mojic decode main.mojic          # writes main.restored.c
  mojic rotate secrets.mojic       # prompts for old and new passwords
`)
}

func newLogger() *zap.Logger {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(flagLogLevel)); err != nil {
		fatal("bad --log-level %q: %v", flagLogLevel, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		fatal("build logger: %v", err)
	}
	return logger
}

func cmdEncode(ctx context.Context, args []string) {
	root := singlePathArg(args, "encode")
	logger := newLogger()
	defer logger.Sync()

	password := promptPassword("Password: ")
	opts := vault.Options{Minify: flagMinify, Logger: logger}

	runBatch(ctx, logger, collectTargets(logger, root, isEncodable), func(path string) error {
		_, err := opts.EncodeFile(ctx, path, password)
		return err
	})
}

func cmdDecode(ctx context.Context, args []string) {
	root := singlePathArg(args, "decode")
	logger := newLogger()
	defer logger.Sync()

	password := promptPassword("Password: ")
	opts := vault.Options{Logger: logger}

	runBatch(ctx, logger, collectTargets(logger, root, isMojic), func(path string) error {
		_, err := opts.DecodeFile(ctx, path, password)
		return err
	})
}

func cmdRotate(ctx context.Context, args []string) {
	root := singlePathArg(args, "rotate")
	logger := newLogger()
	defer logger.Sync()

	oldPassword := promptPassword("Old password: ")
	newPassword := promptPassword("New password: ")
	opts := vault.Options{Logger: logger}

	runBatch(ctx, logger, collectTargets(logger, root, isMojic), func(path string) error {
		return opts.Rotate(ctx, path, oldPassword, newPassword)
	})
}

func cmdReseed(ctx context.Context, args []string) {
	root := singlePathArg(args, "reseed")
	logger := newLogger()
	defer logger.Sync()

	password := promptPassword("Password: ")
	opts := vault.Options{Logger: logger}

	runBatch(ctx, logger, collectTargets(logger, root, isMojic), func(path string) error {
		return opts.Reseed(ctx, path, password)
	})
}

func cmdAnalyze(args []string) {
	var input io.Reader = os.Stdin
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			fatal("open file: %v", err)
		}
		defer f.Close()
		input = f
	}

	source, err := io.ReadAll(input)
	if err != nil {
		fatal("read input: %v", err)
	}

	counts := cipher.Analyze(source)
	if len(counts) == 0 {
		fmt.Println("no obfuscatable keywords found")
		return
	}

	keywords := make([]string, 0, len(counts))
	total := 0
	for kw, n := range counts {
		keywords = append(keywords, kw)
		total += n
	}
	sort.Strings(keywords)

	for _, kw := range keywords {
		fmt.Printf("%-10s %d\n", kw, counts[kw])
	}
	fmt.Printf("\n%d keyword occurrences across %d distinct keywords\n", total, len(keywords))
}

func isEncodable(path string) bool {
	_, ok := vault.EncodePath(path)
	return ok
}

func isMojic(path string) bool {
	_, ok := vault.DecodePath(path)
	return ok
}

// collectTargets resolves a file-or-directory argument into the list
// of files to process. A direct file argument must match; files found
// during a directory walk that don't match are skipped with a warning
// so a mixed tree completes.
func collectTargets(logger *zap.Logger, root string, match func(string) bool) []string {
	info, err := os.Stat(root)
	if err != nil {
		fatal("%v", err)
	}

	if !info.IsDir() {
		if !match(root) {
			fatal("%s: unsupported file type for this command", root)
		}
		return []string{root}
	}

	var targets []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !match(path) {
			logger.Warn("skipped", zap.String("path", path))
			return nil
		}
		targets = append(targets, path)
		return nil
	})
	if err != nil {
		fatal("walk %s: %v", root, err)
	}
	if len(targets) == 0 {
		fatal("%s: no matching files", root)
	}
	return targets
}

// runBatch processes targets with a bounded worker pool. Every file
// gets its own engine; failures are logged and counted but don't stop
// the rest of the batch, except context cancellation which drains it.
func runBatch(ctx context.Context, logger *zap.Logger, targets []string, process func(string) error) {
	jobs := flagJobs
	if jobs < 1 {
		jobs = 1
	}

	sem := make(chan struct{}, jobs)
	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0

	for _, path := range targets {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(path string) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := process(path); err != nil {
				logger.Error("failed", zap.String("path", path), zap.Error(err))
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}(path)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		fatal("interrupted: %v", err)
	}
	if failed > 0 {
		fatal("%d of %d files failed", failed, len(targets))
	}
}

func singlePathArg(args []string, cmd string) string {
	if len(args) != 1 {
		fatal("mojic %s: expected exactly one path argument", cmd)
	}
	return args[0]
}

// promptPassword reads a password without echo from the controlling
// terminal, falling back to a plain line read when stdin is piped. The
// length check runs before any KDF work.
func promptPassword(prompt string) string {
	var password string

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(os.Stderr, prompt)
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			fatal("read password: %v", err)
		}
		password = string(raw)
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			fatal("read password: %v", err)
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if err := vault.CheckPassword(password); err != nil {
		fatal("%v", err)
	}
	return password
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "mojic: "+format+"\n", args...)
	os.Exit(1)
}
