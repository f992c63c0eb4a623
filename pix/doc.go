// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package pix provides a packed 1 bit/pixel raster buffer and the
// word-level rasterop primitive that the morph package is built on.
//
// A Pix stores each image row as a run of 32-bit words with the leftmost
// pixel in the most significant bit.  Bits past the image width in the
// last word of a row are pad bits: their value is unspecified, operations
// treat them as don't-care on read and may overwrite them.
//
// Rasterop is the only way pixels move: it combines a rectangle of a
// source Pix into a destination Pix under a fixed bitwise operation,
// handling sub-word shifts and partial edge words.  Everything the morph
// package does is a sequence of translated whole-image rasterops.
package pix
