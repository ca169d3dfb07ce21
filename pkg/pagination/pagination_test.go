package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbers(items []Item) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		if it.Ellipsis {
			out = append(out, -1)
		} else {
			out = append(out, it.Number)
		}
	}
	return out
}

func TestWindowSmallTotals(t *testing.T) {
	for totalPages := 1; totalPages <= 5; totalPages++ {
		for current := 1; current <= totalPages; current++ {
			items := Window(current, totalPages)
			require.Len(t, items, totalPages)
			for i, it := range items {
				assert.False(t, it.Ellipsis)
				assert.Equal(t, i+1, it.Number)
				assert.Equal(t, it.Number == current, it.Active)
			}
		}
	}
}

func TestWindowNearStart(t *testing.T) {
	for current := 1; current <= 3; current++ {
		items := Window(current, 10)
		assert.Equal(t, []int{1, 2, 3, 4, -1, 10}, numbers(items))
	}
}

func TestWindowNearEnd(t *testing.T) {
	for current := 8; current <= 10; current++ {
		items := Window(current, 10)
		assert.Equal(t, []int{1, -1, 7, 8, 9, 10}, numbers(items))
	}
}

func TestWindowInterior(t *testing.T) {
	for _, tc := range []struct {
		current int
		want    []int
	}{
		{4, []int{1, -1, 3, 4, 5, -1, 10}},
		{5, []int{1, -1, 4, 5, 6, -1, 10}},
		{6, []int{1, -1, 5, 6, 7, -1, 10}},
		{7, []int{1, -1, 6, 7, 8, -1, 10}},
	} {
		items := Window(tc.current, 10)
		assert.Equal(t, tc.want, numbers(items), "current=%d", tc.current)

		active := 0
		for _, it := range items {
			if it.Active {
				active++
				assert.Equal(t, tc.current, it.Number)
			}
		}
		assert.Equal(t, 1, active)
	}
}

func TestWindowThreePages(t *testing.T) {
	items := Window(2, 3)
	assert.Equal(t, []int{1, 2, 3}, numbers(items))
	assert.True(t, items[1].Active)
	assert.False(t, items[0].Active)
	assert.False(t, items[2].Active)
}

func TestWindowOutOfRangeCurrent(t *testing.T) {
	items := Window(99, 10)
	assert.Equal(t, []int{1, -1, 7, 8, 9, 10}, numbers(items))
	assert.True(t, items[len(items)-1].Active)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(0, 5))
	assert.Equal(t, 1, Clamp(1, 5))
	assert.Equal(t, 5, Clamp(9, 5))
	assert.Equal(t, 2, Clamp(3, 2))
	assert.Equal(t, 1, Clamp(1, 0))
}
