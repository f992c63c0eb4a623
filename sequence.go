package morph

import (
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/morph/pix"
	"github.com/pkg/errors"
)

// ProcessKind identifies one step of a morph sequence.
type ProcessKind int

const (
	// ProcDilate dilates by an HSize x VSize brick.
	ProcDilate ProcessKind = iota
	// ProcErode erodes by an HSize x VSize brick.
	ProcErode
	// ProcOpen opens by an HSize x VSize brick.
	ProcOpen
	// ProcClose safe-closes by an HSize x VSize brick.
	ProcClose
	// ProcAddBorder pads the image with Border OFF pixels on every side.
	// The border is removed again after the last step.
	ProcAddBorder
)

// Process is one step of a morph sequence: a brick operation or a border
// pad.  HSize and VSize are the brick dimensions for the morph kinds;
// Border is the pad width for ProcAddBorder.
type Process struct {
	Kind   ProcessKind
	HSize  int
	VSize  int
	Border int
}

// Sequence runs the given steps over s in order and returns the final
// image.  s itself is never modified.  A ProcAddBorder step brackets the
// remaining steps: the pad it adds is stripped from the final result.
// Closings use CloseSafeBrick, so a sequence without an explicit border
// still gets extensive closings.
func Sequence(s *pix.Pix, procs ...Process) (*pix.Pix, error) {
	if s == nil {
		return nil, errors.New("morph sequence: source pix not defined")
	}
	if len(procs) == 0 {
		return nil, errors.New("morph sequence: no steps")
	}
	cur := s.Copy()
	border := 0
	for i, p := range procs {
		var next *pix.Pix
		var err error
		switch p.Kind {
		case ProcDilate:
			next, err = DilateBrick(nil, cur, p.HSize, p.VSize)
		case ProcErode:
			next, err = ErodeBrick(nil, cur, p.HSize, p.VSize)
		case ProcOpen:
			next, err = OpenBrick(nil, cur, p.HSize, p.VSize)
		case ProcClose:
			next, err = CloseSafeBrick(nil, cur, p.HSize, p.VSize)
		case ProcAddBorder:
			next, err = pix.AddBorder(cur, p.Border, p.Border, p.Border, p.Border, 0)
			if err == nil {
				border += p.Border
			}
		default:
			return nil, errors.Errorf("morph sequence: invalid process kind %d", int(p.Kind))
		}
		if err != nil {
			return nil, errors.Wrapf(err, "morph sequence: step %d", i)
		}
		cur = next
	}
	if border > 0 {
		res, err := pix.RemoveBorder(cur, border, border, border, border)
		if err != nil {
			return nil, errors.Wrap(err, "morph sequence: remove border")
		}
		return res, nil
	}
	return cur, nil
}

// SequenceEach runs the same sequence over each input bitmap in
// parallel and returns the results in input order.  The inputs are
// independent, so this is safe as long as the boundary condition is not
// changed while the batch is in flight.
func SequenceEach(srcs []*pix.Pix, procs ...Process) ([]*pix.Pix, error) {
	out := make([]*pix.Pix, len(srcs))
	err := traverse.Each(len(srcs), func(i int) error {
		r, err := Sequence(srcs[i], procs...)
		if err != nil {
			return errors.Wrapf(err, "input %d", i)
		}
		out[i] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
