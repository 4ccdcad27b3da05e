package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seriesindex/addr"
)

func collect[K any](seq func(yield func(View[K]) bool)) []View[K] {
	var out []View[K]
	for v := range seq {
		out = append(out, v)
	}
	return out
}

func TestWindowedSizeAtBeginning(t *testing.T) {
	keys := []string{"a", "b", "c", "d"}
	got := collect(WindowedSize(keys, 3, AtBeginning))

	require.Len(t, got, 4)
	assert.Equal(t, []string{"a"}, got[0].Keys)
	assert.Equal(t, Incomplete, got[0].Completeness)
	assert.Equal(t, []string{"a", "b"}, got[1].Keys)
	assert.Equal(t, Incomplete, got[1].Completeness)
	assert.Equal(t, []string{"a", "b", "c"}, got[2].Keys)
	assert.Equal(t, Complete, got[2].Completeness)
	assert.Equal(t, []string{"b", "c", "d"}, got[3].Keys)
	assert.Equal(t, Complete, got[3].Completeness)
}

func TestWindowedSizeSkip(t *testing.T) {
	keys := []int{1, 2, 3, 4}
	got := collect(WindowedSize(keys, 3, Skip))
	require.Len(t, got, 2)
	assert.Equal(t, []int{1, 2, 3}, got[0].Keys)
	assert.Equal(t, []int{2, 3, 4}, got[1].Keys)
}

func TestWindowedSizeAtEnding(t *testing.T) {
	keys := []int{1, 2, 3, 4}
	got := collect(WindowedSize(keys, 3, AtEnding))
	require.Len(t, got, 4)
	assert.Equal(t, []int{1, 2, 3}, got[0].Keys)
	assert.Equal(t, Complete, got[0].Completeness)
	assert.Equal(t, []int{2, 3, 4}, got[1].Keys)
	assert.Equal(t, Complete, got[1].Completeness)
	assert.Equal(t, []int{3, 4}, got[2].Keys)
	assert.Equal(t, Incomplete, got[2].Completeness)
	assert.Equal(t, []int{4}, got[3].Keys)
	assert.Equal(t, Incomplete, got[3].Completeness)
}

func TestChunkedSizeSkipDropsRemainder(t *testing.T) {
	keys := []int{1, 2, 3, 4, 5}
	got := collect(ChunkedSize(keys, 2, Skip))
	require.Len(t, got, 2)
	assert.Equal(t, []int{1, 2}, got[0].Keys)
	assert.Equal(t, []int{3, 4}, got[1].Keys)
}

func TestChunkedSizeAtEndingKeepsRemainder(t *testing.T) {
	keys := []int{1, 2, 3, 4, 5}
	got := collect(ChunkedSize(keys, 2, AtEnding))
	require.Len(t, got, 3)
	assert.Equal(t, []int{5}, got[2].Keys)
	assert.Equal(t, Incomplete, got[2].Completeness)
}

func TestWindowedWhile(t *testing.T) {
	keys := []int{1, 2, 3, 10, 11}
	cond := func(first, cur int) bool { return cur-first <= 2 }
	got := collect(WindowedWhile(keys, cond))

	require.Len(t, got, 5)
	assert.Equal(t, []int{1, 2, 3}, got[0].Keys)
	assert.Equal(t, []int{2, 3}, got[1].Keys)
	assert.Equal(t, []int{3}, got[2].Keys)
	assert.Equal(t, []int{10, 11}, got[3].Keys)
	assert.Equal(t, []int{11}, got[4].Keys)
}

func TestChunkedWhile(t *testing.T) {
	keys := []int{1, 2, 3, 10, 11, 12}
	cond := func(first, cur int) bool { return cur-first <= 2 }
	got := collect(ChunkedWhile(keys, cond))

	require.Len(t, got, 2)
	assert.Equal(t, []int{1, 2, 3}, got[0].Keys)
	assert.Equal(t, []int{10, 11, 12}, got[1].Keys)
}

func TestChunkedUsingBackwardAttachesTailToLastMarker(t *testing.T) {
	keys := []int{1, 2, 3, 4, 5, 6, 7}
	markers := []int{3, 6}
	got := collect(ChunkedUsing(keys, markers, addr.Backward, IntCompare[int]))

	require.Len(t, got, 2)
	assert.Equal(t, []int{1, 2, 3}, got[0].Keys)
	assert.Equal(t, []int{4, 5, 6, 7}, got[1].Keys)
}

func TestChunkedUsingForwardLeadingAttachesToFirstMarker(t *testing.T) {
	keys := []int{1, 2, 3, 4, 5, 6, 7}
	markers := []int{3, 6}
	got := collect(ChunkedUsing(keys, markers, addr.Forward, IntCompare[int]))

	require.Len(t, got, 2)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got[0].Keys)
	assert.Equal(t, []int{6, 7}, got[1].Keys)
}

func TestChunkedUsingNoMarkers(t *testing.T) {
	keys := []int{1, 2, 3}
	got := collect(ChunkedUsing(keys, nil, addr.Forward, IntCompare[int]))
	require.Len(t, got, 1)
	assert.Equal(t, keys, got[0].Keys)
}

func TestWindowedSizeEarlyStop(t *testing.T) {
	keys := []int{1, 2, 3, 4, 5}
	var seen int
	for w := range WindowedSize(keys, 2, Skip) {
		seen++
		_ = w
		if seen == 1 {
			break
		}
	}
	assert.Equal(t, 1, seen)
}
