// SPDX-License-Identifier: EPL-2.0

package similarity

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrPathNeedsFullMatrix is returned when a path is requested from a
// rolling-row alignment.
var ErrPathNeedsFullMatrix = errors.New("dtw: ReturnPath requires MemoryMode=FullMatrix")

// MemoryMode controls how DTW stores its DP matrix.
type MemoryMode int

const (
	// RollingArray keeps two rows, O(m) memory, no path recovery.
	RollingArray MemoryMode = iota
	// FullMatrix keeps every cell, O(n·m) memory, supports ReturnPath.
	FullMatrix
)

// DTWOptions configures an alignment.
//
//   - Window: Sakoe-Chiba band half width. 0 means unconstrained. The band
//     is widened to |n-m| so the end cell stays reachable.
//   - SlopePenalty: extra cost of an insertion or deletion step.
//   - ReturnPath / MemoryMode: path recovery needs FullMatrix.
type DTWOptions struct {
	Window       int
	SlopePenalty float64
	ReturnPath   bool
	MemoryMode   MemoryMode
}

// CostFunc is the local distance between element i of the first sequence
// and element j of the second.
type CostFunc func(i, j int) float64

// Alignment is the result of DTW.
type Alignment struct {
	Distance float64  // cumulative cost of the optimal path
	Steps    int      // cells on the optimal path
	Path     [][2]int // (i, j) pairs from (0,0) to (n-1,m-1); nil unless requested
}

// Average is the mean local cost per path step.
func (a Alignment) Average() float64 {
	if a.Steps == 0 {
		return 0
	}
	return a.Distance / float64(a.Steps)
}

const (
	fromDiag uint8 = iota
	fromUp
	fromLeft
)

// DTW aligns two sequences of lengths n and m with the recurrence
//
//	D(i,j) = cost(i,j) + min(D(i-1,j-1), D(i-1,j)+p, D(i,j-1)+p)
//
// The path length is carried through the DP. Equal costs prefer the
// diagonal, then the shorter path, so swapping the two sequences (with a
// symmetric cost) gives the same Distance and Steps.
func DTW(n, m int, cost CostFunc, opts *DTWOptions) (Alignment, error) {
	if n == 0 || m == 0 {
		return Alignment{}, ErrEmptySequence
	}

	var o DTWOptions
	if opts != nil {
		o = *opts
	}
	if o.ReturnPath && o.MemoryMode != FullMatrix {
		return Alignment{}, ErrPathNeedsFullMatrix
	}

	window := math.MaxInt
	if o.Window > 0 {
		window = max(o.Window, abs(n-m))
	}

	inf := math.Inf(1)
	rows := 2
	if o.MemoryMode == FullMatrix {
		rows = n + 1
	}

	dist := make([][]float64, rows)
	steps := make([][]int, rows)
	for r := range dist {
		dist[r] = make([]float64, m+1)
		steps[r] = make([]int, m+1)
	}
	var dirs [][]uint8
	if o.ReturnPath {
		dirs = make([][]uint8, n)
		for i := range dirs {
			dirs[i] = make([]uint8, m)
		}
	}

	row := func(i int) int {
		if o.MemoryMode == FullMatrix {
			return i
		}
		return i % 2
	}

	for j := 1; j <= m; j++ {
		dist[0][j] = inf
	}

	for i := 1; i <= n; i++ {
		cur, prev := dist[row(i)], dist[row(i-1)]
		curSteps, prevSteps := steps[row(i)], steps[row(i-1)]
		cur[0] = inf

		for j := 1; j <= m; j++ {
			if abs(i-j) > window {
				cur[j] = inf
				continue
			}

			best, bestSteps, dir := prev[j-1], prevSteps[j-1], fromDiag
			if i == 1 && j == 1 {
				best, bestSteps = 0, 0
			}

			up, upSteps := prev[j]+o.SlopePenalty, prevSteps[j]
			left, leftSteps := cur[j-1]+o.SlopePenalty, curSteps[j-1]
			if up < best || (up == best && dir != fromDiag && upSteps < bestSteps) {
				best, bestSteps, dir = up, upSteps, fromUp
			}
			if left < best || (left == best && dir != fromDiag && leftSteps < bestSteps) {
				best, bestSteps, dir = left, leftSteps, fromLeft
			}

			cur[j] = cost(i-1, j-1) + best
			curSteps[j] = bestSteps + 1
			if dirs != nil {
				dirs[i-1][j-1] = dir
			}
		}
	}

	a := Alignment{
		Distance: dist[row(n)][m],
		Steps:    steps[row(n)][m],
	}
	if dirs != nil {
		a.Path = backtrack(dirs, n, m)
	}
	return a, nil
}

func backtrack(dirs [][]uint8, n, m int) [][2]int {
	path := make([][2]int, 0, n+m)
	i, j := n-1, m-1
	for {
		path = append(path, [2]int{i, j})
		if i == 0 && j == 0 {
			break
		}
		switch dirs[i][j] {
		case fromUp:
			i--
		case fromLeft:
			j--
		default:
			i--
			j--
		}
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}

// EuclideanCost compares frame vectors.
func EuclideanCost(a, b [][]float64) CostFunc {
	return func(i, j int) float64 {
		return floats.Distance(a[i], b[j], 2)
	}
}

// AbsCost compares scalars.
func AbsCost(a, b []float64) CostFunc {
	return func(i, j int) float64 {
		return math.Abs(a[i] - b[j])
	}
}

// Lockstep is the unaligned baseline: the mean Euclidean distance between
// frame k of a and frame k of b over the shorter sequence.
func Lockstep(a, b [][]float64) (float64, error) {
	n := min(len(a), len(b))
	if n == 0 {
		return 0, ErrEmptySequence
	}
	var sum float64
	for k := range n {
		sum += floats.Distance(a[k], b[k], 2)
	}
	return sum / float64(n), nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
