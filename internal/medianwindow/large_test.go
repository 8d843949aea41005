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

package medianwindow

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fastrand"

	"github.com/mlnoga/medianwindow/internal/oracle"
)

func TestLargeWindowEngineStreamingAgainstOracle(t *testing.T) {
	rng := fastrand.RNG{}
	const width = 16
	const n = 400

	for _, strict := range []bool{true, false} {
		input := oracle.GenerateInput(&rng, n, 10, 4, -50, 50)
		e := newLargeWindowEngine(width, strict)

		for j := 0; j < width; j++ {
			e.addNew(input[j])
		}
		checkResultAgainstOracle(t, e, input[0:width], strict)

		for j := width; j < n; j++ {
			e.updateOld(input[j])
			checkResultAgainstOracle(t, e, input[j-width+1:j+1], strict)
		}
	}
}

func checkResultAgainstOracle(t *testing.T, e *largeWindowEngine, window []float64, strict bool) {
	t.Helper()
	want := oracle.Median(window, strict)
	got := e.result()
	if math.IsNaN(want) {
		require.True(t, math.IsNaN(got), "window=%v", window)
		return
	}
	require.InDelta(t, want, got, 1e-9, "window=%v", window)
}

// TestLargeWindowEngineNaNHeavyPreservesHeapInvariants streams a NaN-dense
// sequence through a width wide enough to build 2+ tree levels in each
// 8-ary heap (width 48 → up to ~24 nodes per heap, more than 8+1). The heavy
// NaN density (about 40%) makes finite->NaN and NaN->finite transitions
// frequent, exercising the finite->NaN removal's swap-with-last sift
// direction and the cross-heap size transfer (maxRootToMinRoot/
// minRootToMaxRoot) at depth, not just at small depth.
func TestLargeWindowEngineNaNHeavyPreservesHeapInvariants(t *testing.T) {
	rng := fastrand.RNG{}
	const width = 48
	const n = 2000

	for _, strict := range []bool{true, false} {
		input := oracle.GenerateInput(&rng, n, n*2/5, n/20, -50, 50)
		e := newLargeWindowEngine(width, strict)

		for j := 0; j < width; j++ {
			e.addNew(input[j])
		}
		checkMaxHeapInvariant(t, e.heap.max)
		checkMinHeapInvariant(t, e.heap.min)
		require.LessOrEqual(t, len(e.heap.max), len(e.heap.min)+1)
		checkResultAgainstOracle(t, e, input[0:width], strict)

		for j := width; j < n; j++ {
			e.updateOld(input[j])
			checkMaxHeapInvariant(t, e.heap.max)
			checkMinHeapInvariant(t, e.heap.min)
			a, b := len(e.heap.max), len(e.heap.min)
			require.True(t, a-b == 0 || a-b == 1, "heap size skew a=%d b=%d at j=%d", a, b, j)
			if a > 0 && b > 0 {
				require.LessOrEqual(t, e.heap.max[0].value, e.heap.min[0].value, "cross-heap order violated at j=%d", j)
			}
			checkResultAgainstOracle(t, e, input[j-width+1:j+1], strict)
		}
	}
}

// TestStrategyAgreementSmallAndLargeEngines is spec.md §8's P4: for widths
// 2..8, the small engine (real dispatch target) and the large engine
// (forced, off its normal domain) must agree on every emission.
func TestStrategyAgreementSmallAndLargeEngines(t *testing.T) {
	rng := fastrand.RNG{}
	for width := 2; width <= MaxSmallWidth; width++ {
		for _, strict := range []bool{true, false} {
			input := oracle.GenerateInput(&rng, 200, 20, 6, -40, 40)

			small := newSmallWindowEngine(width, strict)
			large := newLargeWindowEngine(width, strict)
			for j := 0; j < width; j++ {
				large.addNew(input[j])
			}

			smallGot := small.median(input[0:width])
			largeGot := large.result()
			requireSameMedian(t, smallGot, largeGot, width, 0)

			for p := width; p < len(input); p++ {
				large.updateOld(input[p])
				smallGot := small.median(input[p-width+1 : p+1])
				largeGot := large.result()
				requireSameMedian(t, smallGot, largeGot, width, p)
			}
		}
	}
}

func requireSameMedian(t *testing.T, small, large float64, width, pos int) {
	t.Helper()
	if math.IsNaN(small) {
		require.True(t, math.IsNaN(large), "width=%d pos=%d: small=NaN large=%v", width, pos, large)
		return
	}
	require.InDelta(t, small, large, 1e-9, "width=%d pos=%d", width, pos)
}

func TestLargeWindowEngineAllFiniteNoNaNBookkeeping(t *testing.T) {
	rng := fastrand.RNG{}
	e := newLargeWindowEngine(32, false)
	input := make([]float64, 200)
	for i := range input {
		input[i] = float64(rng.Uint32n(10000))
	}
	for j := 0; j < 32; j++ {
		e.addNew(input[j])
	}
	require.Equal(t, 0, e.nanCount)
	for j := 32; j < len(input); j++ {
		e.updateOld(input[j])
		require.Equal(t, 0, e.nanCount)
	}
}
