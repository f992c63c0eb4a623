// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package pix

import (
	"unsafe"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/simd"
)

// BitsPerWord is the number of pixels stored in one raster word.
const BitsPerWord = 32

// wordPadding is the number of extra words allocated past the end of every
// pixel buffer.  The base/simd *Unsafe functions are allowed to read and
// write a full vector at the tail of a buffer, so the underlying allocation
// must extend at least bytesPerVec past the last addressed byte; 16 words =
// 64 bytes covers the widest vector.  (This mirrors what simd.MakeUnsafe
// does for byte buffers.)
const wordPadding = 16

// Pix is a 1 bit/pixel raster.  Rows are packed into 32-bit words, most
// significant bit leftmost.  The zero value is not usable; construct with
// New, NewTemplate, or one of the copy/border functions.
type Pix struct {
	w, h int
	// wpl is the number of words per row, ceil(w/32).
	wpl  int
	data []uint32
}

func makeWords(n int) []uint32 {
	return make([]uint32, n, n+wordPadding)
}

// New returns a w x h Pix with all bits zero.
func New(w, h int) (*Pix, error) {
	if w < 1 || h < 1 {
		return nil, errors.E("pix.New: dimensions not >= 1", w, h)
	}
	wpl := (w + BitsPerWord - 1) / BitsPerWord
	return &Pix{
		w:    w,
		h:    h,
		wpl:  wpl,
		data: makeWords(h * wpl),
	}, nil
}

// NewTemplate returns a zeroed Pix with the same dimensions as s.
func NewTemplate(s *Pix) *Pix {
	return &Pix{
		w:    s.w,
		h:    s.h,
		wpl:  s.wpl,
		data: makeWords(len(s.data)),
	}
}

// Width returns the image width in pixels.
func (p *Pix) Width() int { return p.w }

// Height returns the image height in rows.
func (p *Pix) Height() int { return p.h }

// Wpl returns the number of 32-bit words per row.
func (p *Pix) Wpl() int { return p.wpl }

// Depth returns the bit depth, which is always 1 for a Pix.
func (p *Pix) Depth() int { return 1 }

// Dimensions returns the width, height and depth of p.
func (p *Pix) Dimensions() (w, h, depth int) {
	return p.w, p.h, 1
}

// Row returns the word slice backing row y.
func (p *Pix) Row(y int) []uint32 {
	p.checkRowRange(y)
	base := y * p.wpl
	return p.data[base : base+p.wpl]
}

// Data returns the full word buffer, rows in order.
func (p *Pix) Data() []uint32 { return p.data }

// rawBytes reinterprets the word buffer as bytes for the base/simd fill
// routines and hashing.  The tail padding requirement of the *Unsafe simd
// variants is satisfied by the wordPadding in the underlying allocation.
func (p *Pix) rawBytes() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&p.data[0])), len(p.data)*4)
}

// Clone returns a new handle sharing p's pixel storage.  It is intended
// for read-snapshot use; writing through either handle is visible through
// both.
func (p *Pix) Clone() *Pix {
	q := *p
	return &q
}

// Copy returns a deep copy of p.
func (p *Pix) Copy() *Pix {
	q := &Pix{
		w:    p.w,
		h:    p.h,
		wpl:  p.wpl,
		data: makeWords(len(p.data)),
	}
	copy(q.data, p.data)
	return q
}

// CopyFrom overwrites p's pixels from s.  If the dimensions differ, p is
// reallocated to s's dimensions, so p always ends up a deep copy of s.
func (p *Pix) CopyFrom(s *Pix) {
	if p == s {
		return
	}
	if p.w != s.w || p.h != s.h {
		p.w, p.h, p.wpl = s.w, s.h, s.wpl
		p.data = makeWords(len(s.data))
	}
	copy(p.data, s.data)
}

// SizesEqual reports whether p and q have identical dimensions.
func (p *Pix) SizesEqual(q *Pix) bool {
	return p.w == q.w && p.h == q.h
}

// ClearAll sets every bit, pad bits included, to 0.
func (p *Pix) ClearAll() {
	simd.Memset8Unsafe(p.rawBytes(), 0)
}

// SetAll sets every bit, pad bits included, to 1.
func (p *Pix) SetAll() {
	simd.Memset8Unsafe(p.rawBytes(), 0xff)
}

// GetPixel returns the bit at (x, y), or 0 if (x, y) is outside the image.
func (p *Pix) GetPixel(x, y int) int {
	if x < 0 || x >= p.w || y < 0 || y >= p.h {
		return 0
	}
	word := p.data[y*p.wpl+x/BitsPerWord]
	return int(word >> (31 - uint(x&31)) & 1)
}

// SetPixel sets the bit at (x, y).  Out-of-range coordinates are ignored.
func (p *Pix) SetPixel(x, y int) {
	if x < 0 || x >= p.w || y < 0 || y >= p.h {
		return
	}
	p.data[y*p.wpl+x/BitsPerWord] |= 1 << (31 - uint(x&31))
}

// ClearPixel clears the bit at (x, y).  Out-of-range coordinates are
// ignored.
func (p *Pix) ClearPixel(x, y int) {
	if x < 0 || x >= p.w || y < 0 || y >= p.h {
		return
	}
	p.data[y*p.wpl+x/BitsPerWord] &^= 1 << (31 - uint(x&31))
}

// lastWordMask returns the mask of valid (non-pad) bits in the last word
// of each row, or ^0 when the width is word-aligned.
func (p *Pix) lastWordMask() uint32 {
	npad := uint(p.wpl*BitsPerWord - p.w)
	return ^uint32(0) << npad
}

// SetPadBits forces the pad bits of every row to v (0 or 1).  Several
// whole-buffer operations (SetAll, rasterops ending in a partial word)
// leave pad bits in unspecified states; normalizing them makes
// whole-buffer comparisons and hashing meaningful.
func (p *Pix) SetPadBits(v int) {
	mask := p.lastWordMask()
	if mask == ^uint32(0) {
		return
	}
	for y := 0; y < p.h; y++ {
		i := y*p.wpl + p.wpl - 1
		if v == 0 {
			p.data[i] &= mask
		} else {
			p.data[i] |= ^mask
		}
	}
}

// Equal reports whether p and q have the same dimensions and identical
// visible pixels.  Pad bits are excluded from the comparison.
func (p *Pix) Equal(q *Pix) bool {
	if !p.SizesEqual(q) {
		return false
	}
	mask := p.lastWordMask()
	for y := 0; y < p.h; y++ {
		prow, qrow := p.Row(y), q.Row(y)
		for k := 0; k < p.wpl-1; k++ {
			if prow[k] != qrow[k] {
				return false
			}
		}
		if (prow[p.wpl-1]^qrow[p.wpl-1])&mask != 0 {
			return false
		}
	}
	return true
}

func (p *Pix) checkRowRange(y int) {
	if y < 0 || y >= p.h {
		log.Panicf("pix: row %d out of range [0, %d)", y, p.h)
	}
}
