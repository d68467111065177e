package history

import (
	"sync"
	"testing"

	"spectral-workbench/internal/grid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(t *testing.T, v float64) *grid.Grid {
	t.Helper()
	g, err := grid.NewFilled(2, 2, v)
	require.NoError(t, err)
	return g
}

func TestEmptyChain(t *testing.T) {
	c := NewChain()

	assert.Nil(t, c.Current())
	assert.Nil(t, c.Original())
	assert.False(t, c.Undo())
	assert.False(t, c.Redo())
	assert.False(t, c.Push("spectrum", filled(t, 1)))
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Steps())
}

func TestStepsWithoutPushedSteps(t *testing.T) {
	c := NewChain()

	require.NotPanics(t, func() { c.Steps() })
	assert.Nil(t, c.Steps())

	c.Reset(filled(t, 0))
	assert.Nil(t, c.Steps())

	require.True(t, c.Push("Fourier Spectrum", filled(t, 1)))
	require.True(t, c.Undo())
	assert.Nil(t, c.Steps())
}

func TestChainPushAndUndo(t *testing.T) {
	c := NewChain()
	original := filled(t, 0)
	c.Reset(original)

	first, second := filled(t, 1), filled(t, 2)
	require.True(t, c.Push("Fourier Spectrum", first))
	require.True(t, c.Push("Wavelet Pyramid", second))

	assert.Same(t, second, c.Current())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"Fourier Spectrum", "Wavelet Pyramid"}, c.Steps())

	assert.True(t, c.Undo())
	assert.Same(t, first, c.Current())
	assert.True(t, c.Undo())
	assert.Same(t, original, c.Current())

	assert.False(t, c.Undo())
	assert.Same(t, original, c.Current())
	assert.Same(t, original, c.Original())
}

func TestChainRedo(t *testing.T) {
	c := NewChain()
	c.Reset(filled(t, 0))

	first, second := filled(t, 1), filled(t, 2)
	c.Push("a", first)
	c.Push("b", second)
	c.Undo()
	c.Undo()

	assert.True(t, c.CanRedo())
	assert.True(t, c.Redo())
	assert.Same(t, first, c.Current())
	assert.True(t, c.Redo())
	assert.Same(t, second, c.Current())
	assert.False(t, c.Redo())
}

func TestChainPushTruncatesRedo(t *testing.T) {
	c := NewChain()
	c.Reset(filled(t, 0))
	c.Push("a", filled(t, 1))
	c.Push("b", filled(t, 2))
	c.Undo()

	third := filled(t, 3)
	c.Push("c", third)

	assert.False(t, c.CanRedo())
	assert.Equal(t, []string{"a", "c"}, c.Steps())
	assert.Same(t, third, c.Current())
}

func TestChainResetDropsSteps(t *testing.T) {
	c := NewChain()
	c.Reset(filled(t, 0))
	c.Push("a", filled(t, 1))

	next := filled(t, 5)
	c.Reset(next)

	assert.Equal(t, 1, c.Len())
	assert.Same(t, next, c.Current())
	assert.False(t, c.CanUndo())
	assert.False(t, c.CanRedo())
}

func TestChainConcurrentAccess(t *testing.T) {
	c := NewChain()
	c.Reset(filled(t, 0))
	step := filled(t, 1)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				c.Push("step", step)
				_ = c.Current()
				c.Undo()
			}
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, c.Len(), 1)
	assert.Same(t, c.Original(), c.Current())
}
