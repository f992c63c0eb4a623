// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package pix

import (
	"github.com/grailbio/base/log"
)

// Op selects the bitwise combination a rasterop applies to each
// destination pixel.  Src is the fetched source bit, Dst the existing
// destination bit.
type Op int

const (
	// OpClr writes 0.  No source needed.
	OpClr Op = iota
	// OpSet writes 1.  No source needed.
	OpSet
	// OpSrc writes the source bit.
	OpSrc
	// OpNotSrc writes the inverted source bit.
	OpNotSrc
	// OpSrcOrDst ORs the source into the destination.
	OpSrcOrDst
	// OpSrcAndDst ANDs the source into the destination.
	OpSrcAndDst
	// OpSrcXorDst XORs the source into the destination.
	OpSrcXorDst
	// OpNotSrcAndDst clears destination bits where the source is 1.
	OpNotSrcAndDst
	// OpNotDst inverts the destination.  No source needed.
	OpNotDst
)

// needsSrc reports whether the op reads source pixels at all.
func (op Op) needsSrc() bool {
	switch op {
	case OpClr, OpSet, OpNotDst:
		return false
	}
	return true
}

type combineFunc func(src, dst uint32) uint32

// fn returns the word-level combiner for op.  The indirect call costs a
// few percent over hand-specialized loops; not worth nine copies of the
// row loop until a profile says so.
func (op Op) fn() combineFunc {
	switch op {
	case OpClr:
		return func(_, _ uint32) uint32 { return 0 }
	case OpSet:
		return func(_, _ uint32) uint32 { return ^uint32(0) }
	case OpSrc:
		return func(s, _ uint32) uint32 { return s }
	case OpNotSrc:
		return func(s, _ uint32) uint32 { return ^s }
	case OpSrcOrDst:
		return func(s, d uint32) uint32 { return s | d }
	case OpSrcAndDst:
		return func(s, d uint32) uint32 { return s & d }
	case OpSrcXorDst:
		return func(s, d uint32) uint32 { return s ^ d }
	case OpNotSrcAndDst:
		return func(s, d uint32) uint32 { return ^s & d }
	case OpNotDst:
		return func(_, d uint32) uint32 { return ^d }
	}
	log.Panicf("pix: unknown rasterop op %d", int(op))
	return nil
}

// Rasterop combines the w x h rectangle of s at (sx, sy) into d at
// (dx, dy) under op.  The rectangle is clipped to the source extent and
// then to the destination extent; pixels outside the clipped rectangle
// are left untouched.  s may be nil for the source-free ops (OpClr,
// OpSet, OpNotDst).
//
// d and s must not share pixel storage unless the clipped rectangles are
// disjoint; callers that need a translated self-combine go through a
// snapshot copy (see the morph package).
func (d *Pix) Rasterop(dx, dy, w, h int, op Op, s *Pix, sx, sy int) {
	if !op.needsSrc() {
		// Clip to the destination only.
		if dx < 0 {
			w += dx
			dx = 0
		}
		if dy < 0 {
			h += dy
			dy = 0
		}
		if dx+w > d.w {
			w = d.w - dx
		}
		if dy+h > d.h {
			h = d.h - dy
		}
		if w <= 0 || h <= 0 {
			return
		}
		rasteropUniLow(d, dx, dy, w, h, op.fn())
		return
	}
	if s == nil {
		log.Panicf("pix.Rasterop: op %d requires a source", int(op))
	}

	// Clip to the source extent, dragging the destination origin along.
	if sx < 0 {
		dx -= sx
		w += sx
		sx = 0
	}
	if sy < 0 {
		dy -= sy
		h += sy
		sy = 0
	}
	if sx+w > s.w {
		w = s.w - sx
	}
	if sy+h > s.h {
		h = s.h - sy
	}
	// Clip to the destination extent, dragging the source origin along.
	if dx < 0 {
		sx -= dx
		w += dx
		dx = 0
	}
	if dy < 0 {
		sy -= dy
		h += dy
		dy = 0
	}
	if dx+w > d.w {
		w = d.w - dx
	}
	if dy+h > d.h {
		h = d.h - dy
	}
	if w <= 0 || h <= 0 {
		return
	}
	rasteropLow(d, dx, dy, w, h, op.fn(), s, sx, sy)
}

// rowMasks returns the first/last destination word indexes of the bit
// span [dx, dx+w) and the partial-word masks at each end.
func rowMasks(dx, w int) (first, last int, firstMask, lastMask uint32) {
	first = dx >> 5
	last = (dx + w - 1) >> 5
	firstMask = ^uint32(0) >> uint(dx&31)
	lastMask = ^uint32(0) << uint(31-((dx+w-1)&31))
	return
}

// rasteropUniLow applies a source-free combiner to the clipped rectangle.
func rasteropUniLow(d *Pix, dx, dy, w, h int, f combineFunc) {
	first, last, firstMask, lastMask := rowMasks(dx, w)
	for i := 0; i < h; i++ {
		row := d.Row(dy + i)
		for k := first; k <= last; k++ {
			m := ^uint32(0)
			if k == first {
				m &= firstMask
			}
			if k == last {
				m &= lastMask
			}
			row[k] = (row[k] &^ m) | (f(0, row[k]) & m)
		}
	}
}

// fetch32 returns the 32 source bits starting at bit position pos within
// row, most significant bit first.  pos may be negative or extend past
// the row; out-of-range words read as zero.  (The bits those positions
// contribute are always masked off by the caller; zero-filling just keeps
// the word reads in bounds.)
func fetch32(row []uint32, pos int) uint32 {
	iw := pos >> 5 // arithmetic shift: floor division for negative pos
	off := uint(pos & 31)
	var w0, w1 uint32
	if iw >= 0 && iw < len(row) {
		w0 = row[iw]
	}
	if off == 0 {
		return w0
	}
	if iw+1 >= 0 && iw+1 < len(row) {
		w1 = row[iw+1]
	}
	return w0<<off | w1>>(32-off)
}

// rasteropLow applies a two-operand combiner to the clipped rectangle.
// The general case has (dx-sx) % 32 != 0, so every destination word needs
// a shifted double-word fetch from the source row; fetch32 degrades to a
// single aligned read when the phases happen to match.
func rasteropLow(d *Pix, dx, dy, w, h int, f combineFunc, s *Pix, sx, sy int) {
	first, last, firstMask, lastMask := rowMasks(dx, w)
	// Source bit position corresponding to destination bit first*32.
	startPos := sx - (dx & 31)
	for i := 0; i < h; i++ {
		drow := d.Row(dy + i)
		srow := s.Row(sy + i)
		pos := startPos
		for k := first; k <= last; k++ {
			m := ^uint32(0)
			if k == first {
				m &= firstMask
			}
			if k == last {
				m &= lastMask
			}
			sb := fetch32(srow, pos)
			drow[k] = (drow[k] &^ m) | (f(sb, drow[k]) & m)
			pos += 32
		}
	}
}
