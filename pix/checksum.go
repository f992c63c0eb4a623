// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package pix

import (
	"blainsmith.com/go/seahash"
)

// Checksum returns a 64-bit content fingerprint of the visible pixels.
// Pad bits are forced to zero first, so two images with equal pixels hash
// equally no matter what operations produced them.  The hash runs over
// the in-memory word bytes and is therefore not portable across byte
// orders; it is meant for in-process dedup and test comparison, not for
// storage.
func (p *Pix) Checksum() uint64 {
	p.SetPadBits(0)
	return seahash.Sum64(p.rawBytes())
}
