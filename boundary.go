// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package morph

import (
	"sync/atomic"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// BoundaryCondition selects how pixels outside the image are treated by
// erosion-like operations.
type BoundaryCondition int32

const (
	// Asymmetric treats all pixels outside the image as OFF for both
	// dilation and erosion.  This is the default.
	Asymmetric BoundaryCondition = iota
	// Symmetric treats outside pixels as OFF for dilation and ON for
	// erosion, making erosion the strict dual of dilation.
	Symmetric
)

// boundaryCondition is the one piece of process-wide state.  It is read
// once near the start of each erosion-like operation; callers set it
// before a batch of operations and must not change it mid-batch.
var boundaryCondition int32 // BoundaryCondition; default Asymmetric

// ResetBoundaryCondition sets the process-wide boundary condition.  Any
// value other than Asymmetric or Symmetric logs a warning and falls back
// to Asymmetric.
func ResetBoundaryCondition(bc BoundaryCondition) {
	if bc != Asymmetric && bc != Symmetric {
		log.Error.Printf("morph: invalid boundary condition %d; using asymmetric", int32(bc))
		bc = Asymmetric
	}
	atomic.StoreInt32(&boundaryCondition, int32(bc))
}

// GetBoundaryCondition returns the current process-wide boundary
// condition.
func GetBoundaryCondition() BoundaryCondition {
	return BoundaryCondition(atomic.LoadInt32(&boundaryCondition))
}

// OpType distinguishes dilation-like from erosion-like operations for
// BorderPixelColor.
type OpType int

const (
	// Dilation identifies dilation-like operations.
	Dilation OpType = iota
	// Erosion identifies erosion-like operations.
	Erosion
)

// BorderPixelColor returns the pixel value that added border pixels
// should carry so that an operation of the given type at the given bit
// depth behaves as if the image continued past its edge.  Under the
// asymmetric convention, and for dilation under either convention, the
// value is 0.  For symmetric erosion it is the all-ones value of the
// depth: 1 at depth 1, up to (1<<depth)-1 below depth 32, and 0xffffff00
// at depth 32 (the RGB all-ones word with an empty alpha byte).
func BorderPixelColor(typ OpType, depth int) (uint32, error) {
	if typ != Dilation && typ != Erosion {
		return 0, errors.E("morph.BorderPixelColor: invalid op type", int(typ))
	}
	switch depth {
	case 1, 2, 4, 8, 16, 32:
	default:
		return 0, errors.E("morph.BorderPixelColor: invalid depth", depth)
	}
	if GetBoundaryCondition() == Asymmetric || typ == Dilation {
		return 0, nil
	}
	if depth < 32 {
		return 1<<uint(depth) - 1, nil
	}
	return 0xffffff00, nil
}
