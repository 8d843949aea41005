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

// Package qsort is a quickselect/quicksort reference implementation used
// only by internal/oracle to compute an independent expected median; the
// medianwindow engines never import this package.
package qsort

// Sort sorts a of float64 in ascending order. a must not contain NaN.
func Sort(a []float64) {
	if len(a) > 1 {
		index := Partition(a)
		Sort(a[:index+1])
		Sort(a[index+1:])
	}
}

// Partition partitions a around its middle element as pivot (Hoare scheme)
// and returns the split index r: a[:r+1] holds values <= pivot and a[r+1:]
// values >= pivot.
// a must not contain NaN.
func Partition(a []float64) int {
	left, right := 0, len(a)-1
	mid := (left + right) >> 1
	pivot := a[mid]
	l := left - 1
	r := right + 1
	for {
		for {
			l++
			if a[l] >= pivot {
				break
			}
		}
		for {
			r--
			if a[r] <= pivot {
				break
			}
		}
		if l >= r {
			return r
		}
		a[l], a[r] = a[r], a[l]
	}
}

// SelectMedian returns the median of a, partially reordering it. For even
// length it returns the upper of the two middle order statistics; callers
// wanting the averaged median call Select twice (k = n>>1 and k+1).
func SelectMedian(a []float64) float64 {
	return Select(a, (len(a)>>1)+1)
}

// Select returns the kth smallest element of a (1-indexed), partially
// reordering it. a must not contain NaN.
func Select(a []float64, k int) float64 {
	left, right := 0, len(a)-1
	for left < right {
		mid := (left + right) >> 1
		pivot := a[mid]
		l, r := left-1, right+1
		for {
			for {
				l++
				if a[l] >= pivot {
					break
				}
			}
			for {
				r--
				if a[r] <= pivot {
					break
				}
			}
			if l >= r {
				break
			}
			a[l], a[r] = a[r], a[l]
		}
		index := r

		offset := index - left + 1
		if k <= offset {
			right = index
		} else {
			left = index + 1
			k = k - offset
		}
	}
	return a[left]
}
