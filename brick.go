// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package morph

import (
	"github.com/grailbio/base/errors"
	"github.com/grailbio/morph/pix"
	"github.com/grailbio/morph/sel"
)

// The brick operators run an all-hit rectangular Sel of width hsize and
// height vsize with origin (hsize/2, vsize/2).  When both dimensions
// exceed 1 the operation is done separably: a 1 x hsize horizontal pass
// followed by a vsize x 1 vertical pass, which costs O(hsize + vsize)
// rasterops instead of O(hsize * vsize).

func checkBrickArgs(s *pix.Pix, hsize, vsize int) error {
	if s == nil {
		return errors.E("morph: source pix not defined")
	}
	if s.Depth() != 1 {
		return errors.E("morph: source pix not 1 bpp", s.Depth())
	}
	if hsize < 1 || vsize < 1 {
		return errors.E("morph: hsize and vsize not >= 1", hsize, vsize)
	}
	return nil
}

// copyResult implements the 1x1 brick identity: a plain copy of s into d
// (or a fresh copy when d is nil).
func copyResult(d, s *pix.Pix) *pix.Pix {
	if d == nil {
		return s.Copy()
	}
	d.CopyFrom(s)
	return d
}

// DilateBrick dilates s by an hsize x vsize all-hit brick.  Destination
// modes as in Dilate.
func DilateBrick(d, s *pix.Pix, hsize, vsize int) (*pix.Pix, error) {
	if err := checkBrickArgs(s, hsize, vsize); err != nil {
		return nil, err
	}
	if hsize == 1 && vsize == 1 {
		return copyResult(d, s), nil
	}
	if hsize == 1 || vsize == 1 { // no intermediate result
		se := sel.NewBrick(vsize, hsize, vsize/2, hsize/2, sel.Hit)
		return Dilate(d, s, se)
	}
	selh := sel.NewBrick(1, hsize, 0, hsize/2, sel.Hit)
	selv := sel.NewBrick(vsize, 1, vsize/2, 0, sel.Hit)
	t, err := Dilate(nil, s, selh)
	if err != nil {
		return nil, err
	}
	return Dilate(d, t, selv)
}

// ErodeBrick erodes s by an hsize x vsize all-hit brick.  Destination
// modes as in Dilate.
func ErodeBrick(d, s *pix.Pix, hsize, vsize int) (*pix.Pix, error) {
	if err := checkBrickArgs(s, hsize, vsize); err != nil {
		return nil, err
	}
	if hsize == 1 && vsize == 1 {
		return copyResult(d, s), nil
	}
	if hsize == 1 || vsize == 1 {
		se := sel.NewBrick(vsize, hsize, vsize/2, hsize/2, sel.Hit)
		return Erode(d, s, se)
	}
	selh := sel.NewBrick(1, hsize, 0, hsize/2, sel.Hit)
	selv := sel.NewBrick(vsize, 1, vsize/2, 0, sel.Hit)
	t, err := Erode(nil, s, selh)
	if err != nil {
		return nil, err
	}
	return Erode(d, t, selv)
}

// OpenBrick opens s by an hsize x vsize all-hit brick.  Destination
// modes as in Dilate.
func OpenBrick(d, s *pix.Pix, hsize, vsize int) (*pix.Pix, error) {
	if err := checkBrickArgs(s, hsize, vsize); err != nil {
		return nil, err
	}
	if hsize == 1 && vsize == 1 {
		return copyResult(d, s), nil
	}
	if hsize == 1 || vsize == 1 {
		se := sel.NewBrick(vsize, hsize, vsize/2, hsize/2, sel.Hit)
		return Open(d, s, se)
	}
	// Separable: both component operations split into a horizontal and a
	// vertical pass, ping-ponging between the scratch buffer and the
	// destination so only one intermediate is ever allocated.
	selh := sel.NewBrick(1, hsize, 0, hsize/2, sel.Hit)
	selv := sel.NewBrick(vsize, 1, vsize/2, 0, sel.Hit)
	t, err := Erode(nil, s, selh)
	if err != nil {
		return nil, err
	}
	if d, err = Erode(d, t, selv); err != nil {
		return nil, err
	}
	if _, err = Dilate(t, d, selh); err != nil {
		return nil, err
	}
	if _, err = Dilate(d, t, selv); err != nil {
		return nil, err
	}
	return d, nil
}

// CloseBrick closes s by an hsize x vsize all-hit brick.  Destination
// modes as in Dilate.
func CloseBrick(d, s *pix.Pix, hsize, vsize int) (*pix.Pix, error) {
	if err := checkBrickArgs(s, hsize, vsize); err != nil {
		return nil, err
	}
	if hsize == 1 && vsize == 1 {
		return copyResult(d, s), nil
	}
	if hsize == 1 || vsize == 1 {
		se := sel.NewBrick(vsize, hsize, vsize/2, hsize/2, sel.Hit)
		return Close(d, s, se)
	}
	selh := sel.NewBrick(1, hsize, 0, hsize/2, sel.Hit)
	selv := sel.NewBrick(vsize, 1, vsize/2, 0, sel.Hit)
	t, err := Dilate(nil, s, selh)
	if err != nil {
		return nil, err
	}
	if d, err = Dilate(d, t, selv); err != nil {
		return nil, err
	}
	if _, err = Erode(t, d, selh); err != nil {
		return nil, err
	}
	if _, err = Erode(d, t, selv); err != nil {
		return nil, err
	}
	return d, nil
}

// CloseSafeBrick is CloseBrick with the border pad of CloseSafe.  For
// bricks the pad is uniform on all four sides, derived from
// max(hsize/2, vsize/2) rounded up to whole words; this is simpler than
// CloseSafe's per-direction pad and always at least as large.
// Destination modes as in Dilate.
func CloseSafeBrick(d, s *pix.Pix, hsize, vsize int) (*pix.Pix, error) {
	if err := checkBrickArgs(s, hsize, vsize); err != nil {
		return nil, err
	}
	if hsize == 1 && vsize == 1 {
		return copyResult(d, s), nil
	}

	// The symmetric convention handles the border correctly without
	// added pixels.
	if GetBoundaryCondition() == Symmetric {
		return CloseBrick(d, s, hsize, vsize)
	}

	maxtrans := hsize / 2
	if vsize/2 > maxtrans {
		maxtrans = vsize / 2
	}
	bordsize := 32 * ((maxtrans + 31) / 32) // full 32-bit words
	sb, err := pix.AddBorder(s, bordsize, bordsize, bordsize, bordsize, 0)
	if err != nil {
		return nil, err
	}

	var db *pix.Pix
	if hsize == 1 || vsize == 1 {
		se := sel.NewBrick(vsize, hsize, vsize/2, hsize/2, sel.Hit)
		if db, err = Close(nil, sb, se); err != nil {
			return nil, err
		}
	} else {
		selh := sel.NewBrick(1, hsize, 0, hsize/2, sel.Hit)
		selv := sel.NewBrick(vsize, 1, vsize/2, 0, sel.Hit)
		t, err := Dilate(nil, sb, selh)
		if err != nil {
			return nil, err
		}
		if db, err = Dilate(nil, t, selv); err != nil {
			return nil, err
		}
		if _, err = Erode(t, db, selh); err != nil {
			return nil, err
		}
		if _, err = Erode(db, t, selv); err != nil {
			return nil, err
		}
	}

	res, err := pix.RemoveBorder(db, bordsize, bordsize, bordsize, bordsize)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return res, nil
	}
	d.CopyFrom(res)
	return d, nil
}
