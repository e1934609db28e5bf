package ordering

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestAllocate_EmptyColumn(t *testing.T) {
	require.Equal(t, BasePosition, Allocate(nil, nil))
}

func TestAllocate_AppendAfterPrev(t *testing.T) {
	got := Allocate(f(5), nil)
	require.Greater(t, got, 5.0)
}

func TestAllocate_InsertBeforeNext(t *testing.T) {
	got := Allocate(nil, f(5))
	require.Less(t, got, 5.0)
}

func TestAllocate_MidpointStrictlyBetween(t *testing.T) {
	cases := []struct{ prev, next float64 }{
		{1, 2},
		{1, 1000},
		{-3, -1},
		{0.0001, 0.0002},
	}
	for _, tc := range cases {
		got := Allocate(f(tc.prev), f(tc.next))
		require.Greater(t, got, tc.prev)
		require.Less(t, got, tc.next)
	}
}

// Simulates dropping many tasks into the same slot: each insert becomes the
// new predecessor of the fixed successor. Keys must stay strictly increasing
// even after the midpoint gap collapses.
func TestAllocate_RepeatedSameSlotInsertsStrictlyIncrease(t *testing.T) {
	prev := 1.0
	next := 2.0
	for i := 0; i < 200; i++ {
		got := Allocate(&prev, &next)
		require.Greater(t, got, prev, "iteration %d", i)
		prev = got
	}
}

func TestAllocate_CollapsedGapStillMakesProgress(t *testing.T) {
	prev := 1.0
	next := prev + Epsilon/4 // gap already below the usable minimum
	got := Allocate(&prev, &next)
	require.Greater(t, got, prev)
}
