// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/ik5/audsim/utils"
)

// Interpolation selects the kernel a Resampler uses between source frames.
type Interpolation int

const (
	// InterpolationSinc is a Kaiser-windowed sinc (bandlimited) kernel.
	// Its cutoff follows the lower Nyquist of the two rates, so it also
	// acts as the anti-aliasing filter when downsampling.
	InterpolationSinc Interpolation = iota
	// InterpolationCubic is a 4-tap Catmull-Rom kernel. Cheaper, no anti-aliasing.
	InterpolationCubic
)

func (i Interpolation) String() string {
	switch i {
	case InterpolationSinc:
		return "sinc"
	case InterpolationCubic:
		return "cubic"
	default:
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}
}

const (
	defaultZeroCrossings = 16
	kaiserBeta           = 8.6
	sincRolloff          = 0.95
	// table entries per input sample
	kernelPrecision = 512
)

// ResamplerOption tunes a Resampler.
type ResamplerOption func(*Resampler)

// WithInterpolation picks the interpolation kernel.
func WithInterpolation(i Interpolation) ResamplerOption {
	return func(r *Resampler) { r.interp = i }
}

// WithZeroCrossings sets how many sinc zero crossings are kept on each side
// of the kernel. More crossings give a steeper filter at a higher cost.
func WithZeroCrossings(n int) ResamplerOption {
	return func(r *Resampler) {
		if n > 0 {
			r.zeroCrossings = n
		}
	}
}

// Resampler streams from src to a target sample rate. Works on interleaved
// samples and preserves channel count. Equal rates pass samples through.
type Resampler struct {
	src      Source
	srcRate  float64
	dstRate  float64
	ratio    float64 // srcRate / dstRate - how many source frames per output frame
	channels int

	interp        Interpolation
	zeroCrossings int
	halfWidth     int       // kernel reach in source frames, each side
	table         []float64 // sampled kernel, |x| in source frames * kernelPrecision

	// sliding window of source frames; hist[0] is absolute frame histStart
	hist      []float32
	histStart int
	keepFrom  int
	srcBuf    []float32

	eof   bool
	total int // source frame count, valid once eof
	out   int // output frames produced so far

	acc []float64
}

func NewResampler(src Source, dstRate int, opts ...ResamplerOption) *Resampler {
	channels := max(src.Channels(), 1)

	r := &Resampler{
		src:           src,
		srcRate:       float64(src.SampleRate()),
		dstRate:       float64(dstRate),
		ratio:         float64(src.SampleRate()) / float64(dstRate),
		channels:      channels,
		interp:        InterpolationSinc,
		zeroCrossings: defaultZeroCrossings,
		srcBuf:        make([]float32, 4096*channels),
		acc:           make([]float64, channels),
	}

	for _, opt := range opts {
		opt(r)
	}

	switch r.interp {
	case InterpolationCubic:
		r.halfWidth = 2
	default:
		cutoff := math.Min(1, 1/r.ratio) * sincRolloff
		r.halfWidth = int(math.Ceil(float64(r.zeroCrossings) / cutoff))
		r.table = sincTable(cutoff, r.halfWidth)
	}

	return r
}

func (r *Resampler) SampleRate() int { return int(r.dstRate) }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("resampler: %w", err)
	}
	return nil
}

// ReadSamples produces dst samples at r.dstRate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if r.ratio == 1 {
		return r.src.ReadSamples(dst)
	}

	framesNeeded := len(dst) / r.channels
	written := 0

	for written < framesNeeded {
		pos := float64(r.out) * r.ratio
		center := int(math.Floor(pos))

		if err := r.fill(center + r.halfWidth); err != nil {
			return written * r.channels, err
		}

		if r.eof && pos >= float64(r.total) {
			return written * r.channels, io.EOF
		}

		frame := dst[written*r.channels : (written+1)*r.channels]
		if r.interp == InterpolationCubic {
			r.cubic(frame, pos, center)
		} else {
			r.sinc(frame, pos, center)
		}

		written++
		r.out++
		r.keepFrom = center - r.halfWidth
	}

	return written * r.channels, nil
}

// fill reads from the source until frame last is buffered or the source ends.
func (r *Resampler) fill(last int) error {
	for !r.eof && r.histStart+len(r.hist)/r.channels <= last {
		r.compact()

		n, err := r.src.ReadSamples(r.srcBuf)
		n -= n % r.channels
		if n > 0 {
			r.hist = append(r.hist, r.srcBuf[:n]...)
		}

		if err == io.EOF {
			r.eof = true
			r.total = r.histStart + len(r.hist)/r.channels
			break
		}
		if err != nil {
			return fmt.Errorf("resampler: %w", err)
		}
	}
	return nil
}

// compact drops frames no output can reach any more.
func (r *Resampler) compact() {
	drop := min(r.keepFrom-r.histStart, len(r.hist)/r.channels)
	if drop <= 0 {
		return
	}
	n := copy(r.hist, r.hist[drop*r.channels:])
	r.hist = r.hist[:n]
	r.histStart += drop
}

func (r *Resampler) available(idx int) bool {
	if idx < 0 || idx < r.histStart {
		return false
	}
	return idx-r.histStart < len(r.hist)/r.channels
}

func (r *Resampler) sample(idx, c int) float32 {
	return r.hist[(idx-r.histStart)*r.channels+c]
}

func (r *Resampler) sinc(frame []float32, pos float64, center int) {
	for c := range r.acc {
		r.acc[c] = 0
	}

	var wsum float64
	for k := -r.halfWidth + 1; k <= r.halfWidth; k++ {
		idx := center + k
		if !r.available(idx) {
			continue
		}
		w := r.kernel(float64(idx) - pos)
		wsum += w
		for c := range r.channels {
			r.acc[c] += w * float64(r.sample(idx, c))
		}
	}

	// normalising by the in-range weight keeps DC gain at 1, also at the edges
	for c := range r.channels {
		if wsum != 0 {
			frame[c] = float32(r.acc[c] / wsum)
		} else {
			frame[c] = 0
		}
	}
}

func (r *Resampler) cubic(frame []float32, pos float64, center int) {
	alpha := float32(pos - float64(center))
	for c := range r.channels {
		y0 := r.clamped(center-1, c)
		y1 := r.clamped(center, c)
		y2 := r.clamped(center+1, c)
		y3 := r.clamped(center+2, c)
		frame[c] = utils.CubicInterpolate(y0, y1, y2, y3, alpha)
	}
}

// clamped repeats the edge frames outside the stream.
func (r *Resampler) clamped(idx, c int) float32 {
	lo := max(r.histStart, 0)
	hi := r.histStart + len(r.hist)/r.channels - 1
	if hi < lo {
		return 0
	}
	idx = min(max(idx, lo), hi)
	return r.sample(idx, c)
}

func (r *Resampler) kernel(x float64) float64 {
	x = math.Abs(x) * kernelPrecision
	i := int(x)
	if i+1 >= len(r.table) {
		return 0
	}
	frac := x - float64(i)
	return r.table[i]*(1-frac) + r.table[i+1]*frac
}

// sincTable samples cutoff·sinc(cutoff·x)·kaiser(x/halfWidth) on [0, halfWidth].
func sincTable(cutoff float64, halfWidth int) []float64 {
	n := halfWidth*kernelPrecision + 2
	table := make([]float64, n)
	norm := besselI0(kaiserBeta)
	for i := range table {
		x := float64(i) / kernelPrecision
		t := x / float64(halfWidth)
		if t >= 1 {
			continue
		}
		window := besselI0(kaiserBeta*math.Sqrt(1-t*t)) / norm
		table[i] = cutoff * normalizedSinc(cutoff*x) * window
	}
	return table
}

func normalizedSinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// besselI0 is the zeroth order modified Bessel function of the first kind.
func besselI0(x float64) float64 {
	sum, term := 1.0, 1.0
	half := x / 2
	for k := 1; k < 64; k++ {
		term *= (half / float64(k)) * (half / float64(k))
		sum += term
		if term < sum*1e-16 {
			break
		}
	}
	return sum
}
