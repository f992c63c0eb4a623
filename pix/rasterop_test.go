// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package pix_test

import (
	"math/rand"
	"testing"

	"github.com/grailbio/morph/pix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allOps = []pix.Op{
	pix.OpClr, pix.OpSet, pix.OpSrc, pix.OpNotSrc,
	pix.OpSrcOrDst, pix.OpSrcAndDst, pix.OpSrcXorDst,
	pix.OpNotSrcAndDst, pix.OpNotDst,
}

func opNeedsSrc(op pix.Op) bool {
	switch op {
	case pix.OpClr, pix.OpSet, pix.OpNotDst:
		return false
	}
	return true
}

func combineBits(op pix.Op, s, d int) int {
	switch op {
	case pix.OpClr:
		return 0
	case pix.OpSet:
		return 1
	case pix.OpSrc:
		return s
	case pix.OpNotSrc:
		return 1 - s
	case pix.OpSrcOrDst:
		return s | d
	case pix.OpSrcAndDst:
		return s & d
	case pix.OpSrcXorDst:
		return s ^ d
	case pix.OpNotSrcAndDst:
		return (1 - s) & d
	case pix.OpNotDst:
		return 1 - d
	}
	panic("unknown op")
}

// naiveRasterop is the per-pixel reference model for Rasterop: a pixel is
// combined only when both its source and destination coordinates are in
// range, everything else is left untouched.
func naiveRasterop(d *pix.Pix, dx, dy, w, h int, op pix.Op, s *pix.Pix, sx, sy int) *pix.Pix {
	out := d.Copy()
	dw, dh, _ := d.Dimensions()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dxx, dyy := dx+x, dy+y
			if dxx < 0 || dxx >= dw || dyy < 0 || dyy >= dh {
				continue
			}
			sbit := 0
			if opNeedsSrc(op) {
				sw, sh, _ := s.Dimensions()
				sxx, syy := sx+x, sy+y
				if sxx < 0 || sxx >= sw || syy < 0 || syy >= sh {
					continue
				}
				sbit = s.GetPixel(sxx, syy)
			}
			v := combineBits(op, sbit, out.GetPixel(dxx, dyy))
			if v == 1 {
				out.SetPixel(dxx, dyy)
			} else {
				out.ClearPixel(dxx, dyy)
			}
		}
	}
	return out
}

func requirePixEqual(t *testing.T, got, want *pix.Pix, args ...interface{}) {
	t.Helper()
	if !got.Equal(want) {
		t.Fatalf("pix mismatch: %v", args)
	}
}

func TestRasteropAligned(t *testing.T) {
	s := mustNew(t, 64, 8)
	s.SetPixel(0, 0)
	s.SetPixel(33, 5)
	d := mustNew(t, 64, 8)
	d.Rasterop(0, 0, 64, 8, pix.OpSrc, s, 0, 0)
	requirePixEqual(t, d, s, "full-image aligned copy")

	// Word-aligned translation.
	d2 := mustNew(t, 64, 8)
	d2.Rasterop(32, 0, 64, 8, pix.OpSrcOrDst, s, 0, 0)
	assert.Equal(t, 1, d2.GetPixel(32, 0))
	assert.Equal(t, 0, d2.GetPixel(0, 0))
	// (33, 5) lands past the right edge and is clipped off.
	assert.Equal(t, 1, d2.CountPixels())
}

func TestRasteropSubWordShift(t *testing.T) {
	s := mustNew(t, 40, 2)
	s.SetPixel(30, 0)
	s.SetPixel(31, 0)
	s.SetPixel(32, 0)

	// Shift right by 3: crosses the word boundary the other way.
	d := mustNew(t, 40, 2)
	d.Rasterop(3, 0, 40, 2, pix.OpSrc, s, 0, 0)
	for x := 0; x < 40; x++ {
		want := 0
		if x >= 33 && x <= 35 {
			want = 1
		}
		require.Equal(t, want, d.GetPixel(x, 0), "x=%d", x)
	}

	// Shift left by 7.
	d = mustNew(t, 40, 2)
	d.Rasterop(-7, 0, 40, 2, pix.OpSrc, s, 0, 0)
	for x := 0; x < 40; x++ {
		want := 0
		if x >= 23 && x <= 25 {
			want = 1
		}
		require.Equal(t, want, d.GetPixel(x, 0), "x=%d", x)
	}
}

func TestRasteropDegenerateRect(t *testing.T) {
	s := mustNew(t, 16, 4)
	s.SetAll()
	d := mustNew(t, 16, 4)
	d.Rasterop(0, 0, 0, 4, pix.OpSrc, s, 0, 0)
	d.Rasterop(0, 0, 16, -2, pix.OpSrc, s, 0, 0)
	d.Rasterop(20, 0, 4, 4, pix.OpSet, nil, 0, 0)
	d.Rasterop(0, 0, 16, 4, pix.OpSrc, s, 16, 0)
	assert.Equal(t, 0, d.CountPixels())
}

func TestRasteropUniOps(t *testing.T) {
	d := mustNew(t, 50, 6)
	d.Rasterop(10, 1, 20, 3, pix.OpSet, nil, 0, 0)
	assert.Equal(t, 60, d.CountPixels())
	assert.Equal(t, 1, d.GetPixel(10, 1))
	assert.Equal(t, 1, d.GetPixel(29, 3))
	assert.Equal(t, 0, d.GetPixel(30, 3))

	d.Rasterop(0, 0, 50, 6, pix.OpNotDst, nil, 0, 0)
	assert.Equal(t, 50*6-60, d.CountPixels())

	d.Rasterop(0, 0, 50, 6, pix.OpClr, nil, 0, 0)
	assert.Equal(t, 0, d.CountPixels())
}

func TestRasteropRandomVsNaive(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	nIter := 400
	for iter := 0; iter < nIter; iter++ {
		dw, dh := r.Intn(100)+1, r.Intn(20)+1
		sw, sh := r.Intn(100)+1, r.Intn(20)+1
		d := mustNew(t, dw, dh)
		s := mustNew(t, sw, sh)
		randomize(d, r, 0.5)
		randomize(s, r, 0.5)

		// Offsets and sizes deliberately run past every edge.
		dx, dy := r.Intn(120)-40, r.Intn(30)-10
		sx, sy := r.Intn(120)-40, r.Intn(30)-10
		w, h := r.Intn(130), r.Intn(35)
		op := allOps[r.Intn(len(allOps))]

		want := naiveRasterop(d, dx, dy, w, h, op, s, sx, sy)
		d.Rasterop(dx, dy, w, h, op, s, sx, sy)
		if !d.Equal(want) {
			t.Fatalf("iter %d: op %d dst %dx%d src %dx%d rect (%d,%d,%d,%d) from (%d,%d)",
				iter, op, dw, dh, sw, sh, dx, dy, w, h, sx, sy)
		}
	}
}
