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

// smallWindowEngine evaluates medians for widths 2..8 by re-applying a fixed
// median network to each window slice. No cross-window state: every
// emission copies the relevant input slice into a small stack buffer.
type smallWindowEngine struct {
	width      int
	strictNaN  bool
	buf        [MaxSmallWidth]float64
	compactBuf [MaxSmallWidth]float64
}

func newSmallWindowEngine(width int, strictNaN bool) *smallWindowEngine {
	return &smallWindowEngine{width: width, strictNaN: strictNaN}
}

// median computes the median of window, a slice of exactly e.width samples.
func (e *smallWindowEngine) median(window []float64) float64 {
	if e.strictNaN {
		return e.medianStrict(window)
	}
	return e.medianTolerant(window)
}

func (e *smallWindowEngine) medianStrict(window []float64) float64 {
	for _, x := range window {
		if math.IsNaN(x) {
			return math.NaN()
		}
	}
	buf := e.buf[:e.width]
	copy(buf, window)
	return medianOfFiniteNetwork(buf, false)
}

func (e *smallWindowEngine) medianTolerant(window []float64) float64 {
	k := 0     // NaN count
	infs := 0  // count of +/-Inf values
	buf := e.compactBuf[:0]
	for _, x := range window {
		if math.IsNaN(x) {
			k++
			continue
		}
		if math.IsInf(x, 0) {
			infs++
		}
		buf = append(buf, x)
	}
	v := e.width - k
	switch v {
	case 0:
		return math.NaN()
	case 1:
		return buf[0]
	}

	allowPad := k == 0 && infs == 0 && (e.width == 5 || e.width == 7)
	return medianOfFiniteNetwork(buf, allowPad)
}
