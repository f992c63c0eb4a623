// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package pix

import (
	"math/bits"
)

// CountPixels returns the number of foreground (1) pixels.  Pad bits are
// excluded regardless of their current state.
func (p *Pix) CountPixels() int {
	mask := p.lastWordMask()
	n := 0
	for y := 0; y < p.h; y++ {
		row := p.Row(y)
		for k := 0; k < p.wpl-1; k++ {
			n += bits.OnesCount32(row[k])
		}
		n += bits.OnesCount32(row[p.wpl-1] & mask)
	}
	return n
}

// Centroid returns the centroid of the foreground pixels relative to the
// upper-left corner.  ok is false when the image has no foreground.
func (p *Pix) Centroid() (x, y float64, ok bool) {
	mask := p.lastWordMask()
	var xsum, ysum, total int
	for i := 0; i < p.h; i++ {
		row := p.Row(i)
		rowsum := 0
		for k := 0; k < p.wpl; k++ {
			w := row[k]
			if k == p.wpl-1 {
				w &= mask
			}
			if w == 0 {
				continue
			}
			cnt := bits.OnesCount32(w)
			rowsum += cnt
			xsum += k*BitsPerWord*cnt + bitPositionSum(w)
		}
		total += rowsum
		ysum += rowsum * i
	}
	if total == 0 {
		return 0, 0, false
	}
	return float64(xsum) / float64(total), float64(ysum) / float64(total), true
}

// bitPositionSum returns the sum of the MSB-first bit indexes of the set
// bits in w: bit 31 (rightmost pixel) contributes 31, bit 30 contributes
// 30, and so on.
func bitPositionSum(w uint32) int {
	s := 0
	for w != 0 {
		i := bits.LeadingZeros32(w)
		s += i
		w &^= 1 << (31 - uint(i))
	}
	return s
}
