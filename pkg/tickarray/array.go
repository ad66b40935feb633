package tickarray

import (
	"github.com/johnayoung/go-clmm-kernel/pkg/fixedpoint"
	"github.com/johnayoung/go-clmm-kernel/pkg/kerrors"
)

// Array is a fixed-size window of fixedpoint.TicksPerArray consecutive
// ticks (spaced by the pool's tick spacing), the unit of account a pool
// allocates and addresses by StartTickIndex.
type Array struct {
	StartTickIndex int32
	TickSpacing    int32
	Ticks          [fixedpoint.TicksPerArray]Tick
}

// NewArray validates and constructs an array for the given start index and
// tick spacing, mirroring validateTickRangeIsValid's divisibility and
// bounds checks.
func NewArray(startTickIndex, tickSpacing int32) (*Array, error) {
	if tickSpacing <= 0 {
		return nil, kerrors.ErrUnsupportedTickSpacing
	}
	ticksInArray := fixedpoint.TicksPerArray * tickSpacing
	if startTickIndex%ticksInArray != 0 {
		return nil, kerrors.ErrInvalidStartTickIndex
	}
	if startTickIndex < fixedpoint.MinTick || startTickIndex > fixedpoint.MaxTick {
		return nil, kerrors.ErrInvalidStartTickIndex
	}
	return &Array{StartTickIndex: startTickIndex, TickSpacing: tickSpacing}, nil
}

// EndTickIndex is the exclusive upper bound of ticks this array covers.
func (a *Array) EndTickIndex() int32 {
	return a.StartTickIndex + fixedpoint.TicksPerArray*a.TickSpacing
}

// Contains reports whether tickIndex falls within this array's range.
func (a *Array) Contains(tickIndex int32) bool {
	return tickIndex >= a.StartTickIndex && tickIndex < a.EndTickIndex()
}

// offset converts a tick index into this array's slot, validating
// alignment to the tick spacing.
func (a *Array) offset(tickIndex int32) (int, error) {
	if !a.Contains(tickIndex) {
		return 0, kerrors.ErrTickNotFound
	}
	if (tickIndex-a.StartTickIndex)%a.TickSpacing != 0 {
		return 0, kerrors.ErrInvalidTickIndex
	}
	return int((tickIndex - a.StartTickIndex) / a.TickSpacing), nil
}

// GetTick returns a pointer to the tick record at tickIndex.
func (a *Array) GetTick(tickIndex int32) (*Tick, error) {
	i, err := a.offset(tickIndex)
	if err != nil {
		return nil, err
	}
	return &a.Ticks[i], nil
}

// AlignedStartTick rounds a tick index down to the start of the array that
// would contain it, for the given tick spacing.
func AlignedStartTick(tickIndex, tickSpacing int32) int32 {
	ticksInArray := fixedpoint.TicksPerArray * tickSpacing
	offset := tickIndex % ticksInArray
	if offset < 0 {
		offset += ticksInArray
	}
	return tickIndex - offset
}
