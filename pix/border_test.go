// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package pix_test

import (
	"testing"

	"github.com/grailbio/morph/pix"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBorder(t *testing.T) {
	s := mustNew(t, 8, 8)
	s.SetPixel(0, 0)
	s.SetPixel(7, 7)

	b, err := pix.AddBorder(s, 32, 32, 2, 3, 0)
	require.NoError(t, err)
	w, h, _ := b.Dimensions()
	expect.EQ(t, w, 72)
	expect.EQ(t, h, 13)
	expect.EQ(t, b.CountPixels(), 2)
	expect.EQ(t, b.GetPixel(32, 2), 1)
	expect.EQ(t, b.GetPixel(39, 9), 1)

	ones, err := pix.AddBorder(s, 1, 1, 1, 1, 1)
	require.NoError(t, err)
	// 10x10 frame of ones around the mostly-empty 8x8 interior.
	expect.EQ(t, ones.CountPixels(), 10*10-8*8+2)
	expect.EQ(t, ones.GetPixel(0, 0), 1)
	expect.EQ(t, ones.GetPixel(2, 2), 0)
}

func TestRemoveBorderRoundTrip(t *testing.T) {
	s := mustNew(t, 37, 11)
	s.SetPixel(0, 0)
	s.SetPixel(36, 10)
	s.SetPixel(18, 5)

	b, err := pix.AddBorder(s, 32, 32, 4, 4, 1)
	require.NoError(t, err)
	back, err := pix.RemoveBorder(b, 32, 32, 4, 4)
	require.NoError(t, err)
	assert.True(t, back.Equal(s))
}

func TestRemoveBorderErrors(t *testing.T) {
	s := mustNew(t, 10, 10)
	_, err := pix.RemoveBorder(s, 5, 5, 0, 0)
	assert.Error(t, err)
	_, err = pix.RemoveBorder(s, -1, 0, 0, 0)
	assert.Error(t, err)
	_, err = pix.AddBorder(s, 0, 0, -2, 0, 0)
	assert.Error(t, err)
	_, err = pix.AddBorder(nil, 1, 1, 1, 1, 0)
	assert.Error(t, err)
}
