package morph_test

import (
	"math/rand"
	"testing"

	"github.com/grailbio/morph"
	"github.com/grailbio/morph/pix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceMatchesHandChain(t *testing.T) {
	r := rand.New(rand.NewSource(61))
	s := mustNew(t, 80, 60)
	randomize(s, r, 0.4)

	got, err := morph.Sequence(s,
		morph.Process{Kind: morph.ProcOpen, HSize: 3, VSize: 3},
		morph.Process{Kind: morph.ProcDilate, HSize: 2, VSize: 2},
		morph.Process{Kind: morph.ProcErode, HSize: 1, VSize: 3},
	)
	require.NoError(t, err)

	t1, err := morph.OpenBrick(nil, s, 3, 3)
	require.NoError(t, err)
	t2, err := morph.DilateBrick(nil, t1, 2, 2)
	require.NoError(t, err)
	want, err := morph.ErodeBrick(nil, t2, 1, 3)
	require.NoError(t, err)
	assert.True(t, got.Equal(want))
}

func TestSequenceBorderBracket(t *testing.T) {
	// An explicit border is stripped again after the last step, and the
	// (safe) closing keeps the corner pixel.
	s := mustNew(t, 16, 16)
	s.SetPixel(0, 0)
	got, err := morph.Sequence(s,
		morph.Process{Kind: morph.ProcAddBorder, Border: 32},
		morph.Process{Kind: morph.ProcClose, HSize: 3, VSize: 3},
	)
	require.NoError(t, err)
	w, h, _ := got.Dimensions()
	assert.Equal(t, 16, w)
	assert.Equal(t, 16, h)
	assert.Equal(t, 1, got.GetPixel(0, 0))
}

func TestSequenceLeavesSourceAlone(t *testing.T) {
	s := mustNew(t, 20, 20)
	s.SetPixel(10, 10)
	sum := s.Checksum()
	_, err := morph.Sequence(s, morph.Process{Kind: morph.ProcDilate, HSize: 5, VSize: 5})
	require.NoError(t, err)
	assert.Equal(t, sum, s.Checksum())
}

func TestSequenceErrors(t *testing.T) {
	s := mustNew(t, 10, 10)
	_, err := morph.Sequence(nil, morph.Process{Kind: morph.ProcDilate, HSize: 3, VSize: 3})
	assert.Error(t, err)
	_, err = morph.Sequence(s)
	assert.Error(t, err)
	_, err = morph.Sequence(s, morph.Process{Kind: morph.ProcessKind(99)})
	assert.Error(t, err)
	_, err = morph.Sequence(s, morph.Process{Kind: morph.ProcDilate, HSize: 0, VSize: 3})
	assert.Error(t, err)
}

func TestSequenceEach(t *testing.T) {
	r := rand.New(rand.NewSource(62))
	srcs := make([]*pix.Pix, 8)
	for i := range srcs {
		srcs[i] = mustNew(t, 30+i, 20)
		randomize(srcs[i], r, 0.5)
	}
	procs := []morph.Process{
		{Kind: morph.ProcClose, HSize: 3, VSize: 3},
		{Kind: morph.ProcOpen, HSize: 2, VSize: 2},
	}
	got, err := morph.SequenceEach(srcs, procs...)
	require.NoError(t, err)
	require.Len(t, got, len(srcs))
	for i, s := range srcs {
		want, err := morph.Sequence(s, procs...)
		require.NoError(t, err)
		assert.True(t, got[i].Equal(want), "input %d", i)
	}

	_, err = morph.SequenceEach([]*pix.Pix{srcs[0], nil}, procs...)
	assert.Error(t, err)
}
