package tickarray

import (
	"github.com/johnayoung/go-clmm-kernel/pkg/fixedpoint"
	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
)

// maxSwapArrays is the number of tick arrays a single swap instruction may
// supply; three arrays give a swap enough runway to cross a realistic
// number of initialized ticks in one instruction without the caller having
// to pre-compute exactly how many it will need.
const maxSwapArrays = 3

// Sequence is an ordered view over up to three tick arrays, the structure a
// swap step walks across to find the next initialized tick and apply its
// crossing. It carries no direction of its own: a swap's direction is
// supplied to each NextInitializedTick call, since the same sequence could
// otherwise silently scan the wrong way if it disagreed with the swap that
// built it.
type Sequence struct {
	arrays []*Array
}

// NewSequence builds a tick array sequence. Arrays must be supplied in
// ascending StartTickIndex order regardless of swap direction; the
// sequence itself handles walking them forward or backward.
func NewSequence(arrays []*Array) (*Sequence, error) {
	if len(arrays) == 0 || len(arrays) > maxSwapArrays {
		return nil, kerrors.ErrInvalidTickArraySequence
	}
	for i := 1; i < len(arrays); i++ {
		if arrays[i].StartTickIndex <= arrays[i-1].StartTickIndex {
			return nil, kerrors.ErrInvalidTickArraySequence
		}
	}
	return &Sequence{arrays: arrays}, nil
}

// arrayFor returns the array covering tickIndex, or nil if none of the
// supplied arrays cover it.
func (s *Sequence) arrayFor(tickIndex int32) *Array {
	for _, a := range s.arrays {
		if a.Contains(tickIndex) {
			return a
		}
	}
	return nil
}

// NextInitializedTick scans from currentTick (exclusive) in the given
// swap direction (aToB scans toward lower ticks, !aToB toward higher ones)
// and returns the next initialized tick index reachable within the
// supplied arrays, and whether one was found within range. If none is
// found, the caller should treat the edge of the last supplied array as the
// stopping point for this step.
func (s *Sequence) NextInitializedTick(currentTick, tickSpacing int32, aToB bool) (tickIndex int32, found bool, err error) {
	if aToB {
		return s.scanBackward(currentTick, tickSpacing)
	}
	return s.scanForward(currentTick, tickSpacing)
}

func (s *Sequence) scanForward(currentTick, tickSpacing int32) (int32, bool, error) {
	// currentTick may not sit on the tick-spacing grid, e.g. a pool's current
	// tick that rounds down from an arbitrary sqrt price rather than from a
	// crossing; ceiling it up finds the smallest aligned candidate strictly
	// above currentTick in one step instead of stepping past it.
	candidate := ceilToSpacing(currentTick, tickSpacing)
	if candidate == currentTick {
		candidate += tickSpacing
	}
	for {
		arr := s.arrayFor(candidate)
		if arr == nil {
			return s.edgeTick(false), false, nil
		}
		tick, err := arr.GetTick(candidate)
		if err != nil {
			return 0, false, err
		}
		if tick.Initialized {
			return candidate, true, nil
		}
		candidate += tickSpacing
	}
}

func (s *Sequence) scanBackward(currentTick, tickSpacing int32) (int32, bool, error) {
	// currentTick is not guaranteed to sit on the tick-spacing grid: a prior
	// a-to-b crossing leaves it one below the tick that was just crossed, so
	// the first candidate has to floor down to the nearest aligned position
	// rather than look currentTick up directly. Flooring an already-aligned
	// currentTick lands on itself, so that case still needs the explicit
	// step back to keep the scan exclusive of the starting tick.
	candidate := floorToSpacing(currentTick, tickSpacing)
	if candidate == currentTick {
		candidate -= tickSpacing
	}
	for {
		if candidate < fixedpoint.MinTick {
			return fixedpoint.MinTick, false, nil
		}
		arr := s.arrayFor(candidate)
		if arr == nil {
			return s.edgeTick(true), false, nil
		}
		tick, err := arr.GetTick(candidate)
		if err != nil {
			return 0, false, err
		}
		if tick.Initialized {
			return candidate, true, nil
		}
		candidate -= tickSpacing
	}
}

// floorToSpacing rounds tick down to the nearest multiple of tickSpacing,
// toward negative infinity, since Go's integer division truncates toward
// zero instead.
func floorToSpacing(tick, tickSpacing int32) int32 {
	q := tick / tickSpacing
	if tick%tickSpacing != 0 && tick < 0 {
		q--
	}
	return q * tickSpacing
}

// ceilToSpacing rounds tick up to the nearest multiple of tickSpacing,
// toward positive infinity.
func ceilToSpacing(tick, tickSpacing int32) int32 {
	q := tick / tickSpacing
	if tick%tickSpacing != 0 && tick > 0 {
		q++
	}
	return q * tickSpacing
}

// edgeTick returns the boundary tick of the sequence in the scan direction,
// used as the stopping point when no further initialized tick is supplied.
func (s *Sequence) edgeTick(backward bool) int32 {
	if backward {
		return s.arrays[0].StartTickIndex
	}
	last := s.arrays[len(s.arrays)-1]
	return last.EndTickIndex() - 1
}

// GetTick returns the tick record at tickIndex from whichever array in the
// sequence covers it.
func (s *Sequence) GetTick(tickIndex int32) (*Tick, error) {
	arr := s.arrayFor(tickIndex)
	if arr == nil {
		return nil, kerrors.ErrTickNotFound
	}
	return arr.GetTick(tickIndex)
}
