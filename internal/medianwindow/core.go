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

// Package medianwindow computes a running median over a numeric sequence
// using a sliding window of fixed width. Widths 2..8 are handled by
// re-evaluated sort/median networks; widths >= 9 are handled by an
// incrementally maintained dual heap with a FIFO overlay. Both strategies
// honor the same NaN policy and agree on the median at every window
// position.
package medianwindow

// MaxSmallWidth is the largest window width served by the sort/median
// network engine. Widths above this threshold use the dual-heap engine.
const MaxSmallWidth = 8

// OutputLength returns the number of medians a run over N samples with the
// given window and step produces: floor((N-W)/S)+1.
func OutputLength(n, window, step int) int {
	return (n-window)/step + 1
}

// validate rejects malformed arguments before any allocation happens, per
// the component's single-failure-path contract: invalid input never
// partially executes.
func validate(input []float64, window, step int, output []float64) bool {
	if input == nil || len(input) == 0 {
		return false
	}
	if output == nil {
		return false
	}
	if window <= 1 || window > len(input) {
		return false
	}
	if step == 0 {
		return false
	}
	if len(output) < OutputLength(len(input), window, step) {
		return false
	}
	return true
}

// SlidingMedianWindow computes the sliding median of input over a window of
// the given width and step, honoring strictNaN (true: any NaN in a window
// yields NaN; false: NaNs are ignored and the median is taken over the
// remaining values), and writes one value per emission into output. Returns
// false without touching output on any validation failure; output is fully
// written on success.
func SlidingMedianWindow(input []float64, window, step int, strictNaN bool, output []float64) bool {
	if !validate(input, window, step, output) {
		return false
	}
	if window <= MaxSmallWidth {
		runSmall(input, window, step, strictNaN, output)
	} else {
		runLarge(input, window, step, strictNaN, output)
	}
	return true
}

// runSmall drives the small-window engine (C3): every emission slices the
// input directly, with no cross-window state.
func runSmall(input []float64, window, step int, strictNaN bool, output []float64) {
	engine := newSmallWindowEngine(window, strictNaN)
	outIdx := 0
	for p := window - 1; p < len(input); p += step {
		output[outIdx] = engine.median(input[p-window+1 : p+1])
		outIdx++
	}
}

// runLarge drives the large-window engine (C5): samples stream through the
// dual heap in arrival order, and a step-distance counter gates which
// steady-state updates produce an emission.
func runLarge(input []float64, window, step int, strictNaN bool, output []float64) {
	engine := newLargeWindowEngine(window, strictNaN)
	outIdx := 0
	stepDistance := 0

	for j := 0; j < len(input); j++ {
		if j < window {
			engine.addNew(input[j])
			if j != window-1 {
				continue
			}
			output[outIdx] = engine.result()
			outIdx++
			stepDistance = step - 1
			continue
		}

		engine.updateOld(input[j])
		if stepDistance == 0 {
			output[outIdx] = engine.result()
			outIdx++
			stepDistance = step - 1
		} else {
			stepDistance--
		}
	}
}
