package align

import (
	"cmp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seriesindex/addr"
)

func kaInts(pairs ...[2]int) []KeyAddr[int] {
	out := make([]KeyAddr[int], 0, len(pairs))
	for _, p := range pairs {
		out = append(out, KeyAddr[int]{Key: p[0], Addr: addr.Address(p[1])})
	}
	return out
}

func TestAlignOrderedMerge(t *testing.T) {
	l := kaInts([2]int{1, 0}, [2]int{3, 1}, [2]int{5, 2})
	r := kaInts([2]int{2, 0}, [2]int{3, 1}, [2]int{6, 2})

	out, err := AlignOrdered(l, r, cmp.Compare[int])
	require.NoError(t, err)
	require.Len(t, out, 5)

	wantKeys := []int{1, 2, 3, 5, 6}
	for i, row := range out {
		assert.Equal(t, wantKeys[i], row.Key)
	}

	assert.NotNil(t, out[0].Left)
	assert.Nil(t, out[0].Right)

	assert.Nil(t, out[1].Left)
	assert.NotNil(t, out[1].Right)

	assert.NotNil(t, out[2].Left)
	assert.NotNil(t, out[2].Right)
	assert.Equal(t, addr.Address(1), *out[2].Left)
	assert.Equal(t, addr.Address(1), *out[2].Right)

	assert.NotNil(t, out[3].Left)
	assert.Nil(t, out[3].Right)

	assert.Nil(t, out[4].Left)
	assert.NotNil(t, out[4].Right)
}

func TestAlignOrderedComparisonFailed(t *testing.T) {
	l := kaInts([2]int{1, 0})
	r := kaInts([2]int{2, 0})

	panicky := func(a, b int) int {
		panic("incomparable")
	}

	out, err := AlignOrdered(l, r, panicky)
	require.ErrorIs(t, err, ErrComparisonFailed)
	assert.Nil(t, out)
}

func TestAlignUnorderedOrderPreserved(t *testing.T) {
	// L keys [1,2], R keys [2,1] -- every R key is also an L key, at a
	// different address; AlignUnordered must emit L entirely, then only
	// R's keys absent from L (here none).
	l := kaInts([2]int{1, 10}, [2]int{2, 20})
	r := kaInts([2]int{2, 30}, [2]int{1, 40})

	out := AlignUnordered(l, r)
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].Key)
	assert.Equal(t, addr.Address(10), *out[0].Left)
	assert.Equal(t, 2, out[1].Key)
	assert.Equal(t, addr.Address(20), *out[1].Left)
}

func TestAlignUnorderedAppendsNonOverlapping(t *testing.T) {
	l := kaInts([2]int{1, 0})
	r := kaInts([2]int{2, 0}, [2]int{1, 1}, [2]int{3, 2})

	out := AlignUnordered(l, r)
	require.Len(t, out, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{out[0].Key, out[1].Key, out[2].Key})
	assert.NotNil(t, out[0].Left)
	assert.NotNil(t, out[1].Right)
	assert.NotNil(t, out[2].Right)
}

func TestAlignOrderedOneSideEmpty(t *testing.T) {
	l := kaInts([2]int{1, 0}, [2]int{2, 1})
	var r []KeyAddr[int]

	out, err := AlignOrdered(l, r, cmp.Compare[int])
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.NotNil(t, out[0].Left)
	assert.Nil(t, out[0].Right)
}
