// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package oracle generates test input with seeded placement of NaN and
// infinity, and computes an independent reference median by quickselect,
// for comparison against the medianwindow engines under test.
package oracle

import (
	"math"
	mathrand "math/rand"

	"github.com/mlnoga/medianwindow/internal/qsort"
)

// uint32Source is satisfied by *fastrand.RNG (self-seeding, used by tests
// that don't need reproducibility) and by seededRNG (fixed-seed, used by
// the benchmark harness per spec.md's reproducibility requirement, which
// fastrand's API has no hook for).
type uint32Source interface {
	Uint32() uint32
	Uint32n(maxN uint32) uint32
}

// seededRNG adapts math/rand to uint32Source with a caller-chosen fixed
// seed, mirroring the original C harness's srand(TEST_SEED).
type seededRNG struct {
	r *mathrand.Rand
}

// NewSeeded returns a uint32Source with reproducible output for a given seed.
func NewSeeded(seed int64) uint32Source {
	return seededRNG{r: mathrand.New(mathrand.NewSource(seed))}
}

func (s seededRNG) Uint32() uint32             { return s.r.Uint32() }
func (s seededRNG) Uint32n(maxN uint32) uint32 { return s.r.Uint32() % maxN }

// GenerateInput returns n samples drawn uniformly from [low,high), with
// exactly nanCount of them replaced by NaN and infCount replaced by +/-Inf
// (alternating sign), all at positions shuffled uniformly by rng. Panics if
// nanCount+infCount>n, mirroring the calling harness's own precondition
// check rather than silently truncating.
func GenerateInput(rng uint32Source, n, nanCount, infCount int, low, high float64) []float64 {
	if nanCount+infCount > n {
		panic("oracle: nanCount+infCount exceeds n")
	}

	out := make([]float64, n)
	span := high - low
	for i := range out {
		out[i] = low + span*(float64(rng.Uint32())/float64(1<<32))
	}

	positions := make([]int, n)
	for i := range positions {
		positions[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := int(rng.Uint32n(uint32(i + 1)))
		positions[i], positions[j] = positions[j], positions[i]
	}

	for k := 0; k < nanCount; k++ {
		out[positions[k]] = math.NaN()
	}
	for k := 0; k < infCount; k++ {
		sign := 1.0
		if k%2 == 1 {
			sign = -1.0
		}
		out[positions[nanCount+k]] = math.Inf(int(sign))
	}
	return out
}

// Median computes the reference median of window under the given NaN
// policy by quickselect (internal/qsort), independent of either production engine's
// algorithm. strictNaN: any NaN present yields NaN. Otherwise NaN values
// are dropped and the median is taken over what remains, with an empty
// remainder yielding NaN.
func Median(window []float64, strictNaN bool) float64 {
	if strictNaN {
		for _, x := range window {
			if math.IsNaN(x) {
				return math.NaN()
			}
		}
	}

	buf := make([]float64, 0, len(window))
	for _, x := range window {
		if !math.IsNaN(x) {
			buf = append(buf, x)
		}
	}
	if len(buf) == 0 {
		return math.NaN()
	}
	if len(buf) == 1 {
		return buf[0]
	}

	upper := qsort.Select(append([]float64(nil), buf...), (len(buf)>>1)+1)
	if len(buf)&1 != 0 {
		return upper
	}
	lower := qsort.Select(append([]float64(nil), buf...), len(buf)>>1)
	return (lower + upper) / 2
}

// Run computes the expected medians for every emission of a sliding window
// run over input, using the same (window, step) cadence as the production
// dispatcher, but by recomputing each window's median from scratch.
func Run(input []float64, window, step int, strictNaN bool) []float64 {
	out := make([]float64, 0, (len(input)-window)/step+1)
	for p := window - 1; p < len(input); p += step {
		out = append(out, Median(input[p-window+1:p+1], strictNaN))
	}
	return out
}
