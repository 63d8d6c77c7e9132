// SPDX-License-Identifier: EPL-2.0

package audsim

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/audsim/audio"
	"github.com/ik5/audsim/features"
	"github.com/ik5/audsim/formats/aiff"
	"github.com/ik5/audsim/formats/mp3"
	"github.com/ik5/audsim/formats/vorbis"
	"github.com/ik5/audsim/formats/wav"
	"github.com/ik5/audsim/report"
	"github.com/ik5/audsim/similarity"
)

// DefaultTrimDB is the silence threshold used when trimming inputs.
const DefaultTrimDB = 20

// DefaultRegistry returns a registry with every bundled decoder.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	return reg
}

// Config collects the configuration of every stage.
type Config struct {
	Loader     audio.LoaderConfig
	Features   features.Config
	Similarity similarity.Options
	// TrimDB is passed to audio.Trim; 0 keeps silence.
	TrimDB float64
}

func DefaultConfig() Config {
	return Config{
		Loader:     audio.DefaultLoaderConfig(),
		Features:   features.DefaultConfig(),
		Similarity: similarity.DefaultOptions(),
		TrimDB:     DefaultTrimDB,
	}
}

type Option func(*Comparator)

func WithLogger(l *zap.Logger) Option {
	return func(c *Comparator) {
		if l != nil {
			c.log = l
		}
	}
}

func WithRegistry(r *audio.Registry) Option {
	return func(c *Comparator) {
		if r != nil {
			c.registry = r
		}
	}
}

// Comparator runs the whole pipeline. It is safe for concurrent use.
type Comparator struct {
	registry  *audio.Registry
	loader    *audio.Loader
	extractor *features.Extractor
	engine    *similarity.Engine
	trimDB    float64
	log       *zap.Logger
}

func New(cfg Config, opts ...Option) (*Comparator, error) {
	c := &Comparator{
		registry: DefaultRegistry(),
		trimDB:   cfg.TrimDB,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if cfg.Loader.SampleRate != cfg.Features.SampleRate {
		return nil, fmt.Errorf("%w: loader %d Hz, features %d Hz",
			features.ErrSampleRateMismatch, cfg.Loader.SampleRate, cfg.Features.SampleRate)
	}
	if cfg.TrimDB < 0 {
		return nil, fmt.Errorf("audsim: negative trim threshold %v", cfg.TrimDB)
	}

	var err error
	if c.extractor, err = features.NewExtractor(cfg.Features); err != nil {
		return nil, err
	}
	if c.engine, err = similarity.NewEngine(cfg.Similarity); err != nil {
		return nil, err
	}
	c.loader = audio.NewLoader(c.registry, cfg.Loader)
	return c, nil
}

// Input is a named stream. Name is used as the label of the input and to
// choose a decoder by extension.
type Input struct {
	Name   string
	Reader io.Reader
}

// CompareFiles compares the recordings at p1 and p2. Labels are the base
// names of the paths.
func (c *Comparator) CompareFiles(ctx context.Context, p1, p2 string) (report.Result, error) {
	paths := [2]string{p1, p2}
	return c.compare(ctx, [2]string{filepath.Base(p1), filepath.Base(p2)}, func(i int) (audio.Signal, error) {
		return c.LoadFile(paths[i])
	})
}

// CompareReaders compares two streams. The readers are read concurrently.
func (c *Comparator) CompareReaders(ctx context.Context, in1, in2 Input) (report.Result, error) {
	ins := [2]Input{in1, in2}
	return c.compare(ctx, [2]string{in1.Name, in2.Name}, func(i int) (audio.Signal, error) {
		sig, err := c.loader.LoadReader(ins[i].Reader, ins[i].Name)
		if err != nil {
			return audio.Signal{}, err
		}
		return c.trim(sig)
	})
}

// LoadFile loads and trims the recording at path, the way CompareFiles
// prepares its inputs.
func (c *Comparator) LoadFile(path string) (audio.Signal, error) {
	sig, err := c.loader.LoadFile(path)
	if err != nil {
		return audio.Signal{}, err
	}
	return c.trim(sig)
}

func (c *Comparator) trim(sig audio.Signal) (audio.Signal, error) {
	out, err := audio.Trim(sig, c.trimDB)
	if err != nil {
		return audio.Signal{}, fmt.Errorf("trim: %w", err)
	}
	return out, nil
}

func (c *Comparator) compare(ctx context.Context, labels [2]string, load func(int) (audio.Signal, error)) (report.Result, error) {
	started := time.Now()

	var sets [2]*features.FeatureSet
	g, gctx := errgroup.WithContext(ctx)
	for i := range sets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sig, err := load(i)
			if err != nil {
				return fmt.Errorf("%s: %w", labels[i], err)
			}
			if err := gctx.Err(); err != nil {
				return err
			}
			fs, err := c.extractor.Extract(sig)
			if err != nil {
				return fmt.Errorf("%s: extract: %w", labels[i], err)
			}

			c.log.Debug("features extracted",
				zap.String("input", labels[i]),
				zap.Duration("duration", sig.Duration()),
				zap.Stringer("shape", fs.Shape),
			)
			sets[i] = fs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report.Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return report.Result{}, err
	}

	b, err := c.engine.Compare(sets[0], sets[1])
	if err != nil {
		return report.Result{}, fmt.Errorf("compare: %w", err)
	}
	score := c.engine.Score(b)

	c.log.Info("comparison finished",
		zap.String("audio1", labels[0]),
		zap.String("audio2", labels[1]),
		zap.Float64("score", score),
		zap.Duration("took", time.Since(started)),
	)

	return report.Assemble(score, b,
		report.Input{Label: labels[0], Features: sets[0]},
		report.Input{Label: labels[1], Features: sets[1]},
	), nil
}
