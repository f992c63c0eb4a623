// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package morph

import (
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/morph/pix"
	"github.com/grailbio/morph/sel"
)

// processArgs1 validates the arguments shared by Dilate, Erode and HMT
// and resolves the destination.  It returns the destination to write and
// a read snapshot of s: a shared clone when d and s are distinct buffers,
// or a disjoint copy when the call is in-place (d == s), since d is about
// to be overwritten.
func processArgs1(d, s *pix.Pix, se *sel.Sel) (*pix.Pix, *pix.Pix, error) {
	if err := checkArgs(d, s, se); err != nil {
		return nil, nil, err
	}
	if d == nil {
		return pix.NewTemplate(s), s.Clone(), nil
	}
	if d == s {
		return d, s.Copy(), nil
	}
	return d, s.Clone(), nil
}

// processArgs2 is the validation-only preamble for the composite
// operators, which delegate pixel work to the primitives.
func processArgs2(d, s *pix.Pix, se *sel.Sel) (*pix.Pix, error) {
	if err := checkArgs(d, s, se); err != nil {
		return nil, err
	}
	if d == nil {
		return pix.NewTemplate(s), nil
	}
	return d, nil
}

func checkArgs(d, s *pix.Pix, se *sel.Sel) error {
	if s == nil {
		return errors.E("morph: source pix not defined")
	}
	if se == nil {
		return errors.E("morph: sel not defined")
	}
	if s.Depth() != 1 {
		return errors.E("morph: source pix not 1 bpp", s.Depth())
	}
	sy, sx, _, _ := se.Parameters()
	if sx < 1 || sy < 1 {
		return errors.E("morph: sel of size 0")
	}
	if d != nil && !s.SizesEqual(d) {
		return errors.E("morph: pix sizes unequal")
	}
	return nil
}

// Dilate dilates s by the hits of se into d and returns d.  The result is
// the union of copies of s translated by (j-cx, i-cy) for every hit cell
// (i, j).  Destination modes: d == nil allocates a fresh result, d != s
// writes into d (sizes must match), d == s updates in place.
func Dilate(d, s *pix.Pix, se *sel.Sel) (*pix.Pix, error) {
	d, t, err := processArgs1(d, s, se)
	if err != nil {
		return nil, err
	}
	w, h, _ := s.Dimensions()
	sy, sx, cy, cx := se.Parameters()
	d.ClearAll()
	for i := 0; i < sy; i++ {
		for j := 0; j < sx; j++ {
			if se.Cell(i, j) == sel.Hit {
				d.Rasterop(j-cx, i-cy, w, h, pix.OpSrcOrDst, t, 0, 0)
			}
		}
	}
	return d, nil
}

// Erode erodes s by the hits of se into d and returns d.  The result is
// the intersection of copies of s translated by (cx-j, cy-i) — the
// opposite sign to dilation — for every hit cell (i, j).  Under the
// asymmetric boundary condition the edge strips whose pixels would
// depend on out-of-image data are cleared; under the symmetric condition
// they are left as the translate clipping produced them, which is
// equivalent to eroding against an all-ON surround.  Destination modes
// as in Dilate.
func Erode(d, s *pix.Pix, se *sel.Sel) (*pix.Pix, error) {
	d, t, err := processArgs1(d, s, se)
	if err != nil {
		return nil, err
	}
	bc := GetBoundaryCondition()
	w, h, _ := s.Dimensions()
	sy, sx, cy, cx := se.Parameters()
	d.SetAll()
	for i := 0; i < sy; i++ {
		for j := 0; j < sx; j++ {
			if se.Cell(i, j) == sel.Hit {
				d.Rasterop(cx-j, cy-i, w, h, pix.OpSrcAndDst, t, 0, 0)
			}
		}
	}
	if bc == Asymmetric {
		clearEdgeStrips(d, se, w, h)
	}
	return d, nil
}

// HMT computes the hit-miss transform of s by se into d and returns d:
// the intersection of the erosion of s by the hits with the erosion of
// the complement of s by the misses.  The edge strips are cleared under
// both boundary conditions.  A Sel with neither hits nor misses yields
// an all-zero result.  Destination modes as in Dilate.
func HMT(d, s *pix.Pix, se *sel.Sel) (*pix.Pix, error) {
	d, t, err := processArgs1(d, s, se)
	if err != nil {
		return nil, err
	}
	w, h, _ := s.Dimensions()
	sy, sx, cy, cx := se.Parameters()
	first := true
	for i := 0; i < sy; i++ {
		for j := 0; j < sx; j++ {
			switch se.Cell(i, j) {
			case sel.Hit:
				if first {
					d.ClearAll()
					d.Rasterop(cx-j, cy-i, w, h, pix.OpSrc, t, 0, 0)
					first = false
				} else {
					d.Rasterop(cx-j, cy-i, w, h, pix.OpSrcAndDst, t, 0, 0)
				}
			case sel.Miss:
				if first {
					d.SetAll()
					d.Rasterop(cx-j, cy-i, w, h, pix.OpNotSrc, t, 0, 0)
					first = false
				} else {
					d.Rasterop(cx-j, cy-i, w, h, pix.OpNotSrcAndDst, t, 0, 0)
				}
			}
		}
	}
	if first {
		// No hit or miss cell ever fired; define the result as empty
		// rather than leaving whatever d held.
		d.ClearAll()
	}
	clearEdgeStrips(d, se, w, h)
	return d, nil
}

// clearEdgeStrips zeroes the four border strips whose width is given by
// the Sel's maximum translations.
func clearEdgeStrips(d *pix.Pix, se *sel.Sel, w, h int) {
	xp, yp, xn, yn := se.MaxTranslations()
	if xp > 0 {
		d.Rasterop(0, 0, xp, h, pix.OpClr, nil, 0, 0)
	}
	if xn > 0 {
		d.Rasterop(w-xn, 0, xn, h, pix.OpClr, nil, 0, 0)
	}
	if yp > 0 {
		d.Rasterop(0, 0, w, yp, pix.OpClr, nil, 0, 0)
	}
	if yn > 0 {
		d.Rasterop(0, h-yn, w, yn, pix.OpClr, nil, 0, 0)
	}
}

// Open computes the morphological opening of s by the hits of se:
// an erosion followed by a dilation with the same Sel.  Destination
// modes as in Dilate.
func Open(d, s *pix.Pix, se *sel.Sel) (*pix.Pix, error) {
	d, err := processArgs2(d, s, se)
	if err != nil {
		return nil, err
	}
	t, err := Erode(nil, s, se)
	if err != nil {
		return nil, err
	}
	if _, err := Dilate(d, t, se); err != nil {
		return nil, err
	}
	return d, nil
}

// Close computes the morphological closing of s by the hits of se:
// a dilation followed by an erosion with the same Sel.  Under the
// asymmetric boundary condition this can lose foreground near the
// border; see CloseSafe.  Destination modes as in Dilate.
func Close(d, s *pix.Pix, se *sel.Sel) (*pix.Pix, error) {
	d, err := processArgs2(d, s, se)
	if err != nil {
		return nil, err
	}
	t, err := Dilate(nil, s, se)
	if err != nil {
		return nil, err
	}
	if _, err := Erode(d, t, se); err != nil {
		return nil, err
	}
	return d, nil
}

// CloseSafe is Close with a border pad that preserves the extensive
// property s ⊆ close(s) under the asymmetric boundary condition: the
// image is padded with OFF pixels sized to the Sel's maximum
// translations (horizontal pad rounded up to whole words so the interior
// rasterops stay word-aligned), closed in place, and the pad removed.
// Under the symmetric condition it is identical to Close.  A
// caller-provided d of the wrong size is a warning, not an error: the
// result is written into d anyway, reallocating it.
func CloseSafe(d, s *pix.Pix, se *sel.Sel) (*pix.Pix, error) {
	if s == nil {
		return nil, errors.E("morph.CloseSafe: source pix not defined")
	}
	if se == nil {
		return nil, errors.E("morph.CloseSafe: sel not defined")
	}
	if s.Depth() != 1 {
		return nil, errors.E("morph.CloseSafe: source pix not 1 bpp", s.Depth())
	}
	if d != nil && !s.SizesEqual(d) {
		log.Error.Printf("morph: close safe: src and dest sizes unequal")
	}

	// The symmetric convention is already extensive without padding.
	if GetBoundaryCondition() == Symmetric {
		return Close(d, s, se)
	}

	xp, yp, xn, yn := se.MaxTranslations()
	xmax := xp
	if xn > xmax {
		xmax = xn
	}
	xbord := 32 * ((xmax + 31) / 32) // full 32-bit words

	p1, err := pix.AddBorder(s, xbord, xbord, yp, yn, 0)
	if err != nil {
		return nil, err
	}
	if _, err := Close(p1, p1, se); err != nil {
		return nil, err
	}
	p2, err := pix.RemoveBorder(p1, xbord, xbord, yp, yn)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return p2, nil
	}
	d.CopyFrom(p2)
	return d, nil
}

// OpenGeneralized computes the generalized opening of s by se: a
// hit-miss transform followed by a dilation with the same Sel.  Only the
// hits contribute to the dilation, since dilation ignores misses.  The
// operation is idempotent.  Destination modes as in Dilate.
func OpenGeneralized(d, s *pix.Pix, se *sel.Sel) (*pix.Pix, error) {
	d, err := processArgs2(d, s, se)
	if err != nil {
		return nil, err
	}
	t, err := HMT(nil, s, se)
	if err != nil {
		return nil, err
	}
	if _, err := Dilate(d, t, se); err != nil {
		return nil, err
	}
	return d, nil
}

// CloseGeneralized computes the generalized closing of s by se: a
// dilation by the hits followed by a hit-miss transform.  It is the dual
// of OpenGeneralized and likewise idempotent.  Destination modes as in
// Dilate.
func CloseGeneralized(d, s *pix.Pix, se *sel.Sel) (*pix.Pix, error) {
	d, err := processArgs2(d, s, se)
	if err != nil {
		return nil, err
	}
	t, err := Dilate(nil, s, se)
	if err != nil {
		return nil, err
	}
	if _, err := HMT(d, t, se); err != nil {
		return nil, err
	}
	return d, nil
}
