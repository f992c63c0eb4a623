// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package pix

import (
	"github.com/grailbio/base/errors"
)

// AddBorder returns a new Pix of dimensions (w+left+right, h+top+bottom)
// with s placed at (left, top) and the added rows and columns set to
// fill (0 or 1).
func AddBorder(s *Pix, left, right, top, bottom, fill int) (*Pix, error) {
	if s == nil {
		return nil, errors.E("pix.AddBorder: source pix not defined")
	}
	if left < 0 || right < 0 || top < 0 || bottom < 0 {
		return nil, errors.E("pix.AddBorder: negative border", left, right, top, bottom)
	}
	d, err := New(s.w+left+right, s.h+top+bottom)
	if err != nil {
		return nil, err
	}
	if fill != 0 {
		d.SetAll()
	}
	d.Rasterop(left, top, s.w, s.h, OpSrc, s, 0, 0)
	return d, nil
}

// RemoveBorder returns a new Pix holding the interior rectangle of s with
// the given border widths stripped.  It is the inverse of AddBorder.
func RemoveBorder(s *Pix, left, right, top, bottom int) (*Pix, error) {
	if s == nil {
		return nil, errors.E("pix.RemoveBorder: source pix not defined")
	}
	if left < 0 || right < 0 || top < 0 || bottom < 0 {
		return nil, errors.E("pix.RemoveBorder: negative border", left, right, top, bottom)
	}
	w := s.w - left - right
	h := s.h - top - bottom
	if w < 1 || h < 1 {
		return nil, errors.E("pix.RemoveBorder: border consumes whole image", w, h)
	}
	d, err := New(w, h)
	if err != nil {
		return nil, err
	}
	d.Rasterop(0, 0, w, h, OpSrc, s, left, top)
	return d, nil
}
