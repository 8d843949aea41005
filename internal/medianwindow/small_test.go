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

func TestSmallWindowEngineStrictAgainstOracle(t *testing.T) {
	rng := fastrand.RNG{}
	for width := 2; width <= MaxSmallWidth; width++ {
		e := newSmallWindowEngine(width, true)
		for trial := 0; trial < 200; trial++ {
			window := oracle.GenerateInput(&rng, width, int(rng.Uint32n(uint32(width+1))), 0, -100, 100)
			want := oracle.Median(window, true)
			got := e.median(window)
			if math.IsNaN(want) {
				require.True(t, math.IsNaN(got))
			} else {
				require.InDelta(t, want, got, 1e-9)
			}
		}
	}
}

func TestSmallWindowEngineTolerantAgainstOracle(t *testing.T) {
	rng := fastrand.RNG{}
	for width := 2; width <= MaxSmallWidth; width++ {
		e := newSmallWindowEngine(width, false)
		for trial := 0; trial < 200; trial++ {
			nanCount := int(rng.Uint32n(uint32(width + 1)))
			window := oracle.GenerateInput(&rng, width, nanCount, 0, -100, 100)
			want := oracle.Median(window, false)
			got := e.median(window)
			if math.IsNaN(want) {
				require.True(t, math.IsNaN(got), "window=%v", window)
			} else {
				require.InDelta(t, want, got, 1e-9, "window=%v", window)
			}
		}
	}
}

func TestSmallWindowEngineTolerantWithInfinities(t *testing.T) {
	rng := fastrand.RNG{}
	for _, width := range []int{5, 7} {
		e := newSmallWindowEngine(width, false)
		for trial := 0; trial < 200; trial++ {
			window := oracle.GenerateInput(&rng, width, 0, 1, -100, 100)
			want := oracle.Median(window, false)
			got := e.median(window)
			require.InDelta(t, want, got, 1e-9, "window=%v", window)
		}
	}
}

func TestSmallWindowEngineAllNaNTolerant(t *testing.T) {
	e := newSmallWindowEngine(4, false)
	window := []float64{math.NaN(), math.NaN(), math.NaN(), math.NaN()}
	require.True(t, math.IsNaN(e.median(window)))
}

func TestSmallWindowEngineSingleSurvivorTolerant(t *testing.T) {
	e := newSmallWindowEngine(4, false)
	window := []float64{math.NaN(), math.NaN(), math.NaN(), 7.0}
	require.Equal(t, 7.0, e.median(window))
}
