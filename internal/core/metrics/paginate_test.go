package metrics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runhub/runhub/internal/core/activity"
)

func makeActs(n int) []activity.Activity {
	acts := make([]activity.Activity, n)
	for i := range acts {
		acts[i] = activity.Activity{ID: int64(i + 1), Name: fmt.Sprintf("run %d", i+1)}
	}
	return acts
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		n, pageSize, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{5, 0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.n, tt.pageSize), "TotalPages(%d, %d)", tt.n, tt.pageSize)
	}
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 5))
	assert.Equal(t, 1, ClampPage(-3, 5))
	assert.Equal(t, 3, ClampPage(3, 5))
	assert.Equal(t, 5, ClampPage(9, 5), "page beyond total clamps to last page")
	assert.Equal(t, 1, ClampPage(2, 0), "no pages clamps to 1")
}

func TestPage_SliceBounds(t *testing.T) {
	acts := makeActs(25)

	first := Page(acts, 1, 10)
	require.Len(t, first, 10)
	assert.Equal(t, int64(1), first[0].ID)

	last := Page(acts, 3, 10)
	require.Len(t, last, 5)
	assert.Equal(t, int64(21), last[0].ID)
}

func TestPage_UnionCoversCollectionInOrder(t *testing.T) {
	// Every valid page concatenated must reproduce the collection exactly.
	for _, n := range []int{0, 1, 9, 10, 11, 37} {
		acts := makeActs(n)
		union := make([]activity.Activity, 0, n)
		for page := 1; page <= TotalPages(n, 10); page++ {
			chunk := Page(acts, page, 10)
			assert.LessOrEqual(t, len(chunk), 10)
			union = append(union, chunk...)
		}
		assert.Equal(t, acts, union, "n=%d", n)
	}
}

func TestPage_OutOfRangeClamps(t *testing.T) {
	acts := makeActs(12)

	// Collection shrank under the current page: show the last page, not nothing.
	got := Page(acts, 99, 10)
	require.Len(t, got, 2)
	assert.Equal(t, int64(11), got[0].ID)
}
