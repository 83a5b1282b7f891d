package frames

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorWalksWithStep(t *testing.T) {
	data := [][]float32{{0, 1, 2, 3, 4, 5, 6, 7}}
	c, err := New(data, 2, 4)
	require.NoError(t, err)
	require.Equal(t, 4, c.Count())

	var starts []int64
	var firsts []float32
	for {
		block, start, ok := c.Next()
		if !ok {
			break
		}
		require.Len(t, block, 1)
		require.Len(t, block[0], 4)
		starts = append(starts, start)
		firsts = append(firsts, block[0][0])
	}
	assert.Equal(t, []int64{0, 2, 4, 6}, starts)
	assert.Equal(t, []float32{0, 2, 4, 6}, firsts)
}

func TestCursorZeroPadsTail(t *testing.T) {
	data := [][]float32{{1, 2, 3, 4, 5, 6}}
	c, err := New(data, 4, 4)
	require.NoError(t, err)

	first, _, ok := c.Next()
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2, 3, 4}, first[0])

	second, start, ok := c.Next()
	require.True(t, ok)
	assert.Equal(t, int64(4), start)
	assert.Equal(t, []float32{5, 6, 0, 0}, second[0])

	_, _, ok = c.Next()
	assert.False(t, ok)
}

func TestCursorMultiChannel(t *testing.T) {
	data := [][]float32{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
	}
	c, err := New(data, 4, 4)
	require.NoError(t, err)

	block, _, ok := c.Next()
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2, 3, 4}, block[0])
	assert.Equal(t, []float32{5, 6, 7, 8}, block[1])
}

func TestCursorBlocksAreFreshAllocations(t *testing.T) {
	data := [][]float32{{1, 2, 3, 4}}
	c, err := New(data, 4, 4)
	require.NoError(t, err)

	block, _, _ := c.Next()
	block[0][0] = 99
	assert.Equal(t, float32(1), data[0][0], "cursor must not alias source data")
}

func TestCursorValidation(t *testing.T) {
	_, err := New(nil, 1, 1)
	assert.Error(t, err)

	_, err = New([][]float32{{1}, {1, 2}}, 1, 1)
	assert.Error(t, err)

	_, err = New([][]float32{{1}}, 0, 4)
	assert.Error(t, err)

	_, err = New([][]float32{{1}}, 4, 0)
	assert.Error(t, err)
}

func TestCursorEmptyData(t *testing.T) {
	c, err := New([][]float32{{}}, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Count())
	_, _, ok := c.Next()
	assert.False(t, ok)
}
