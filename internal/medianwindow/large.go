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

// largeWindowEngine maintains a dual heap under slide for widths >= 9. The
// node arena is sized exactly to the window width and allocated once; after
// fill-up, samples are applied in place to the oldest node rather than
// allocating new ones.
type largeWindowEngine struct {
	width     int
	strictNaN bool

	heap  *dualHeap
	arena []node

	tail, head  *node
	currentSize int
	nanCount    int
}

func newLargeWindowEngine(width int, strictNaN bool) *largeWindowEngine {
	return &largeWindowEngine{
		width:     width,
		strictNaN: strictNaN,
		heap:      newDualHeap(width),
		arena:     make([]node, width),
	}
}

func (e *largeWindowEngine) putNaNSide(n *node) {
	n.kind = heapNaNSide
	n.isNaN = true
	e.nanCount++
}

// addNew binds the next arena slot to v during the fill-up phase (the first
// width samples of the run).
func (e *largeWindowEngine) addNew(v float64) {
	n := &e.arena[e.currentSize]
	n.value = v
	isNaN := math.IsNaN(v)

	if e.head == nil {
		if isNaN {
			e.putNaNSide(n)
		} else {
			e.heap.maxPush(n)
		}
		e.tail = n
	} else {
		if len(e.heap.max) > len(e.heap.min) {
			if isNaN {
				e.putNaNSide(n)
			} else {
				pos := e.heap.minPush(n)
				e.heap.minSiftUp(pos)
			}
		} else {
			if isNaN {
				e.putNaNSide(n)
			} else {
				pos := e.heap.maxPush(n)
				e.heap.maxSiftUp(pos)
			}
		}
		if e.heap.canRebalance() {
			e.heap.rebalanceRoots()
		}
		e.head.next = n
	}

	e.head = n
	e.currentSize++
}

// updateOld evicts the oldest resident sample (window.tail) and splices v
// into its place, restoring heap order and, if the sample's NaN category
// changed, migrating it between a heap and the NaN side-set.
func (e *largeWindowEngine) updateOld(v float64) {
	tailNode := e.tail
	e.tail = tailNode.next
	e.head.next = tailNode
	e.head = tailNode

	oldWasNaN := tailNode.isNaN
	newIsNaN := math.IsNaN(v)

	switch {
	case oldWasNaN && newIsNaN:
		return

	case oldWasNaN:
		tailNode.value = v
		tailNode.isNaN = false
		e.nanCount--
		if len(e.heap.max) > len(e.heap.min) {
			pos := e.heap.minPush(tailNode)
			e.heap.minSiftUp(pos)
		} else {
			pos := e.heap.maxPush(tailNode)
			e.heap.maxSiftUp(pos)
		}
		if e.heap.canRebalance() {
			e.heap.rebalanceRoots()
		}
		return
	}

	oldValue := tailNode.value
	pos := tailNode.pos
	kind := tailNode.kind
	tailNode.value = v

	if newIsNaN {
		if kind == heapMax {
			last := e.heap.maxPopLast()
			if last != tailNode {
				last.pos = pos
				e.heap.max[pos] = last
				if last.value > oldValue {
					e.heap.maxSiftUp(pos)
					if e.heap.canRebalance() {
						e.heap.rebalanceRoots()
					}
				} else {
					e.heap.maxSiftDown(pos)
				}
			}
		} else {
			last := e.heap.minPopLast()
			if last != tailNode {
				last.pos = pos
				e.heap.min[pos] = last
				if last.value < oldValue {
					e.heap.minSiftUp(pos)
					if e.heap.canRebalance() {
						e.heap.rebalanceRoots()
					}
				} else {
					e.heap.minSiftDown(pos)
				}
			}
		}
		e.putNaNSide(tailNode)

		if len(e.heap.max) > len(e.heap.min)+1 {
			e.heap.maxRootToMinRoot()
		} else if len(e.heap.min) > len(e.heap.max) {
			e.heap.minRootToMaxRoot()
		}
		return
	}

	// Finite replaces finite: overwrite in place, then restore heap order by
	// sifting toward the direction the value moved.
	if kind == heapMax {
		if v > oldValue {
			e.heap.maxSiftUp(pos)
			if e.heap.canRebalance() {
				e.heap.rebalanceRoots()
			}
		} else {
			e.heap.maxSiftDown(pos)
		}
	} else {
		if v < oldValue {
			e.heap.minSiftUp(pos)
			if e.heap.canRebalance() {
				e.heap.rebalanceRoots()
			}
		} else {
			e.heap.minSiftDown(pos)
		}
	}
}

// result extracts the median from the current heap state under the
// engine's NaN policy.
func (e *largeWindowEngine) result() float64 {
	if e.strictNaN {
		if e.nanCount > 0 {
			return math.NaN()
		}
	} else if len(e.heap.max) == 0 && len(e.heap.min) == 0 && e.nanCount > 0 {
		return math.NaN()
	}

	a, b := len(e.heap.max), len(e.heap.min)
	if a > b {
		return e.heap.max[0].value
	}
	return (e.heap.max[0].value + e.heap.min[0].value) / 2
}
