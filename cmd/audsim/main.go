// SPDX-License-Identifier: EPL-2.0

// Command audsim compares audio recordings from the command line or over
// HTTP.
//
//	audsim compare [-json] [-trim-db 20] [-log-level info] a.wav b.mp3
//	audsim serve [-addr :8000]
//	audsim generate [-dir audio_samples]
//	audsim normalize [-trim-db 20] in.mp3 out.wav
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/ik5/audsim"
	"github.com/ik5/audsim/formats/wav"
	"github.com/ik5/audsim/internal/config"
	"github.com/ik5/audsim/internal/logging"
	"github.com/ik5/audsim/internal/server"
	"github.com/ik5/audsim/internal/synth"
	"github.com/ik5/audsim/utils"
)

const usage = `usage: audsim <command> [flags] [args]

commands:
  compare    compare two recordings and print the report
  serve      run the HTTP API
  generate   write the demo recordings as WAV files
  normalize  write a recording as the analysis sees it
`

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "audsim:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch args[0] {
	case "compare":
		return compareCmd(ctx, cfg, args[1:], stdout)
	case "serve":
		return serveCmd(ctx, cfg, args[1:])
	case "generate":
		return generateCmd(args[1:], stdout)
	case "normalize":
		return normalizeCmd(cfg, args[1:], stdout)
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", args[0], usage)
		return errUsage
	}
}

// commonFlags registers the flags shared by the pipeline commands.
func commonFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.Float64Var(&cfg.TrimDB, "trim-db", cfg.TrimDB, "trim leading/trailing audio this many dB below the peak (0 disables)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.LogDevelopment, "log-dev", cfg.LogDevelopment, "human readable logs")
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logging.New(
		logging.WithDevelopment(cfg.LogDevelopment),
		logging.WithLevel(cfg.LogLevel),
		logging.WithFields(map[string]any{"service": "audsim"}),
	)
}

func newComparator(cfg config.Config, log *zap.Logger) (*audsim.Comparator, error) {
	acfg := audsim.DefaultConfig()
	acfg.TrimDB = cfg.TrimDB
	return audsim.New(acfg, audsim.WithLogger(log))
}

func compareCmd(ctx context.Context, cfg config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "print the result as JSON")
	commonFlags(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "compare needs exactly two files")
		return errUsage
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	cmp, err := newComparator(cfg, log)
	if err != nil {
		return err
	}
	res, err := cmp.CompareFiles(ctx, fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return res.Text(stdout)
}

func serveCmd(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.Int64Var(&cfg.MaxUploadBytes, "max-upload", cfg.MaxUploadBytes, "maximum request body in bytes")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per request analysis timeout")
	commonFlags(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	cmp, err := newComparator(cfg, log)
	if err != nil {
		return err
	}

	srv := server.New(cmp, log, server.Options{
		MaxUploadBytes: cfg.MaxUploadBytes,
		RequestTimeout: cfg.RequestTimeout,
	})
	return srv.ListenAndServe(ctx, cfg.Addr)
}

func generateCmd(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	dir := fs.String("dir", "audio_samples", "output directory")
	rate := fs.Int("rate", 22050, "sample rate in Hz")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *rate <= 0 {
		return fmt.Errorf("invalid rate %d", *rate)
	}

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		return err
	}
	for _, s := range synth.SampleSet(*rate) {
		path := filepath.Join(*dir, s.Name)
		if err := writeWAV(path, *rate, s.Samples); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "generated", path)
	}
	return nil
}

func normalizeCmd(cfg config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	fs.Float64Var(&cfg.TrimDB, "trim-db", cfg.TrimDB, "trim leading/trailing audio this many dB below the peak (0 disables)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "normalize needs an input and an output file")
		return errUsage
	}

	cmp, err := newComparator(cfg, zap.NewNop())
	if err != nil {
		return err
	}
	sig, err := cmp.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	if err := writeWAV(fs.Arg(1), sig.SampleRate(), sig.Samples()); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s: %d Hz mono, %v\n", fs.Arg(1), sig.SampleRate(), sig.Duration())
	return nil
}

func writeWAV(path string, rate int, samples []float64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return wav.WriteWAV16(f, rate, 1, utils.Float64sToInt16(samples))
}
