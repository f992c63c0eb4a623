// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package morph implements binary morphology (dilation, erosion, the
// hit-miss transform, opening, closing, and their generalizations) on
// 1 bit/pixel pix.Pix rasters.  Every operator is a fold of translated
// whole-image rasterops over the cells of a structuring element.
//
// A process-wide boundary condition selects how pixels outside the image
// are treated.  Under the default asymmetric convention, outside pixels
// are OFF for both dilation and erosion; erosion (and the hit-miss
// transform) must then clear the edge strips whose values would depend on
// out-of-image data.  Under the symmetric convention, outside pixels are
// OFF for dilation and ON for erosion, erosion clears no strips, and
// erosion is the strict dual of dilation; the hit-miss transform clears
// its edge strips under both conventions.  Closing under the asymmetric
// convention can lose foreground near the border; CloseSafe pads the
// image first so that the extensive property s ⊆ close(s) holds.
//
// Every operator takes an optional destination: pass nil to get a fresh
// result, an existing Pix of the same size to write into it, or the
// source itself for an in-place update (the kernel snapshots the source
// before writing).
package morph
