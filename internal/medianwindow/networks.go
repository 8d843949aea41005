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

import "math"

// cas is a single comparator: it swaps v[i] and v[j] iff v[i]>v[j]. Strictly
// data-oblivious, no early exit — the branch only decides whether to move
// data, never whether to keep comparing.
func cas(v []float64, i, j int) {
	if v[i] > v[j] {
		v[i], v[j] = v[j], v[i]
	}
}

// netMedian2 sorts two elements enough to expose the median as their average.
// 1 comparator.
func netMedian2(v []float64) float64 {
	cas(v, 0, 1)
	return (v[0] + v[1]) / 2
}

// netMedian3 exposes the median at v[1]. 3 comparators.
func netMedian3(v []float64) float64 {
	cas(v, 0, 1)
	cas(v, 1, 2)
	cas(v, 0, 1)
	return v[1]
}

// netMedian4 exposes the two middle order statistics at v[1],v[2]. 4 comparators.
func netMedian4(v []float64) float64 {
	cas(v, 0, 1)
	cas(v, 2, 3)
	cas(v, 0, 2)
	cas(v, 1, 3)
	return (v[1] + v[2]) / 2
}

// netMedian5 exposes the median at v[2]. 7 comparators.
func netMedian5(v []float64) float64 {
	cas(v, 0, 1)
	cas(v, 2, 3)
	cas(v, 0, 2)
	cas(v, 1, 3)
	cas(v, 2, 4)
	cas(v, 1, 2)
	cas(v, 2, 4)
	return v[2]
}

// netMedian6 exposes the median as the average of v[2],v[3]. 10 comparators.
func netMedian6(v []float64) float64 {
	cas(v, 0, 1)
	cas(v, 4, 5)
	cas(v, 0, 5)
	cas(v, 1, 3)
	cas(v, 2, 4)
	cas(v, 0, 2)
	cas(v, 1, 4)
	cas(v, 3, 5)
	cas(v, 1, 2)
	cas(v, 3, 4)
	return (v[2] + v[3]) / 2
}

// netSort6 is a full 6-wide sorting network, used to pad a NaN-free,
// infinity-free width-5 window to extract the median via order statistics.
// 12 comparators.
func netSort6(v []float64) {
	cas(v, 0, 3)
	cas(v, 1, 4)
	cas(v, 2, 5)
	cas(v, 0, 2)
	cas(v, 3, 5)
	cas(v, 1, 3)
	cas(v, 2, 4)
	cas(v, 0, 1)
	cas(v, 2, 3)
	cas(v, 4, 5)
	cas(v, 1, 2)
	cas(v, 3, 4)
}

// netMedian7 exposes the median at v[3]. 13 comparators.
func netMedian7(v []float64) float64 {
	cas(v, 0, 6)
	cas(v, 1, 2)
	cas(v, 3, 4)
	cas(v, 0, 2)
	cas(v, 1, 4)
	cas(v, 3, 5)
	cas(v, 0, 1)
	cas(v, 2, 5)
	cas(v, 4, 6)
	cas(v, 1, 3)
	cas(v, 2, 4)
	cas(v, 3, 4)
	cas(v, 2, 3)
	return v[3]
}

// netMedian8 exposes the median as the average of v[3],v[4]. 16 comparators.
func netMedian8(v []float64) float64 {
	cas(v, 0, 2)
	cas(v, 1, 3)
	cas(v, 4, 6)
	cas(v, 5, 7)
	cas(v, 0, 4)
	cas(v, 1, 5)
	cas(v, 2, 6)
	cas(v, 3, 7)
	cas(v, 0, 1)
	cas(v, 2, 4)
	cas(v, 3, 5)
	cas(v, 6, 7)
	cas(v, 2, 3)
	cas(v, 4, 5)
	cas(v, 1, 4)
	cas(v, 3, 6)
	return (v[3] + v[4]) / 2
}

// netSort8 is a full 8-wide sorting network, used to pad a NaN-free,
// infinity-free width-7 window to extract the median via order statistics.
// 19 comparators.
func netSort8(v []float64) {
	cas(v, 0, 5)
	cas(v, 1, 3)
	cas(v, 2, 7)
	cas(v, 4, 6)
	cas(v, 0, 2)
	cas(v, 1, 4)
	cas(v, 3, 6)
	cas(v, 5, 7)
	cas(v, 0, 1)
	cas(v, 2, 4)
	cas(v, 3, 5)
	cas(v, 6, 7)
	cas(v, 1, 3)
	cas(v, 4, 6)
	cas(v, 2, 3)
	cas(v, 4, 5)
	cas(v, 1, 2)
	cas(v, 3, 4)
	cas(v, 5, 6)
}

// medianOfFiniteNetwork applies the minimum-comparator median network for a
// slice known to hold exactly n∈{1..8} finite-comparable (no NaN) values,
// optionally padding n=5 and n=7 into full sorting networks with +Inf
// sentinels when allowFullSortPad is set (valid only when the caller knows
// the slice contains no actual infinities, since the padding sentinel would
// otherwise be indistinguishable from a real +Inf value).
func medianOfFiniteNetwork(v []float64, allowFullSortPad bool) float64 {
	switch len(v) {
	case 1:
		return v[0]
	case 2:
		return netMedian2(v)
	case 3:
		return netMedian3(v)
	case 4:
		return netMedian4(v)
	case 5:
		if allowFullSortPad {
			padded := [6]float64{v[0], v[1], v[2], v[3], v[4], math.Inf(1)}
			netSort6(padded[:])
			return padded[2]
		}
		return netMedian5(v)
	case 6:
		return netMedian6(v)
	case 7:
		if allowFullSortPad {
			padded := [8]float64{v[0], v[1], v[2], v[3], v[4], v[5], v[6], math.Inf(1)}
			netSort8(padded[:])
			return padded[3]
		}
		return netMedian7(v)
	case 8:
		return netMedian8(v)
	default:
		panic("medianOfFiniteNetwork: width out of range 1..8")
	}
}
