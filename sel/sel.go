// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package sel provides structuring elements for binary morphology: small
// grids of hit/miss/don't-care cells with a designated origin.
package sel

import (
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// Cell is the role a single structuring-element position plays.
type Cell int

const (
	// DontCare positions do not constrain the image.
	DontCare Cell = iota
	// Hit positions must land on foreground.
	Hit
	// Miss positions must land on background.
	Miss
)

// Sel is a structuring element: an sy x sx grid of cells with origin
// (cy, cx).  Cell (i, j) addresses row i, column j.
type Sel struct {
	sy, sx int
	cy, cx int
	name   string
	data   [][]Cell
}

// New returns an all-DontCare Sel of the given dimensions with origin
// (0, 0).  The name is optional and used only for debugging output.
func New(sy, sx int, name string) (*Sel, error) {
	if sy < 1 || sx < 1 {
		return nil, errors.E("sel.New: dimensions not >= 1", sy, sx)
	}
	data := make([][]Cell, sy)
	cells := make([]Cell, sy*sx)
	for i := range data {
		data[i] = cells[i*sx : (i+1)*sx]
	}
	return &Sel{sy: sy, sx: sx, name: name, data: data}, nil
}

// NewBrick returns an sy x sx Sel with every cell set to c and origin
// (cy, cx).  Invalid dimensions or an out-of-range origin are programmer
// errors and panic.
func NewBrick(sy, sx, cy, cx int, c Cell) *Sel {
	s, err := New(sy, sx, "")
	if err != nil {
		log.Panicf("sel.NewBrick: %v", err)
	}
	if cy < 0 || cy >= sy || cx < 0 || cx >= sx {
		log.Panicf("sel.NewBrick: origin (%d, %d) outside %dx%d grid", cy, cx, sy, sx)
	}
	s.cy, s.cx = cy, cx
	if c != DontCare {
		for i := 0; i < sy; i++ {
			for j := 0; j < sx; j++ {
				s.data[i][j] = c
			}
		}
	}
	return s
}

// Name returns the Sel's debug name.
func (s *Sel) Name() string { return s.name }

// Parameters returns the grid dimensions and origin.
func (s *Sel) Parameters() (sy, sx, cy, cx int) {
	return s.sy, s.sx, s.cy, s.cx
}

// SetOrigin moves the origin to (cy, cx).
func (s *Sel) SetOrigin(cy, cx int) {
	if cy < 0 || cy >= s.sy || cx < 0 || cx >= s.sx {
		log.Panicf("sel.SetOrigin: origin (%d, %d) outside %dx%d grid", cy, cx, s.sy, s.sx)
	}
	s.cy, s.cx = cy, cx
}

// Cell returns the cell at row i, column j.  Out-of-range positions read
// as DontCare.
func (s *Sel) Cell(i, j int) Cell {
	if i < 0 || i >= s.sy || j < 0 || j >= s.sx {
		return DontCare
	}
	return s.data[i][j]
}

// SetCell sets the cell at row i, column j.
func (s *Sel) SetCell(i, j int, c Cell) {
	if i < 0 || i >= s.sy || j < 0 || j >= s.sx {
		log.Panicf("sel.SetCell: (%d, %d) outside %dx%d grid", i, j, s.sy, s.sx)
	}
	if c != DontCare && c != Hit && c != Miss {
		log.Panicf("sel.SetCell: invalid cell value %d", int(c))
	}
	s.data[i][j] = c
}

// MaxTranslations returns the largest image translations the Sel induces
// in each cardinal direction, over all Hit and Miss cells: xp is the
// farthest such cell left of the origin column, xn the farthest right of
// it, and yp/yn likewise the farthest above and below the origin row.  All four are clamped at zero.  These bound the edge
// strips whose pixels would depend on data outside the image.
func (s *Sel) MaxTranslations() (xp, yp, xn, yn int) {
	for i := 0; i < s.sy; i++ {
		for j := 0; j < s.sx; j++ {
			if s.data[i][j] == DontCare {
				continue
			}
			if v := s.cx - j; v > xp {
				xp = v
			}
			if v := j - s.cx; v > xn {
				xn = v
			}
			if v := s.cy - i; v > yp {
				yp = v
			}
			if v := i - s.cy; v > yn {
				yn = v
			}
		}
	}
	return
}

// String renders the grid for debugging: 'o' for hit, 'x' for miss, '.'
// for don't-care, with the origin position upper-cased.
func (s *Sel) String() string {
	var b strings.Builder
	if s.name != "" {
		b.WriteString(s.name)
		b.WriteByte('\n')
	}
	for i := 0; i < s.sy; i++ {
		for j := 0; j < s.sx; j++ {
			ch := byte('.')
			switch s.data[i][j] {
			case Hit:
				ch = 'o'
			case Miss:
				ch = 'x'
			}
			if i == s.cy && j == s.cx {
				ch = upper(ch)
			}
			b.WriteByte(ch)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func upper(ch byte) byte {
	switch ch {
	case 'o':
		return 'O'
	case 'x':
		return 'X'
	default:
		// Origin on a don't-care cell.
		return 'C'
	}
}
