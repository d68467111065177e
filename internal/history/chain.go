// Package history keeps the results derived from one loaded image. Each new
// step is applied to the most recent result; undo never drops the original.
package history

import (
	"sync"

	"spectral-workbench/internal/grid"
)

// Entry is one result in the chain. The original has an empty Step.
type Entry struct {
	Step   string
	Result *grid.Grid
}

type Chain struct {
	mu      sync.RWMutex
	entries []Entry
	// cursor indexes the current entry; entries past it can be redone.
	cursor int
}

// NewChain returns an empty chain. It accepts steps after the first Reset.
func NewChain() *Chain {
	return &Chain{cursor: -1}
}

// Reset starts a new chain with original as its only entry.
func (c *Chain) Reset(original *grid.Grid) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = []Entry{{Result: original}}
	c.cursor = 0
}

// Push records result as the newest step and discards anything undone.
// It reports false when no original has been loaded.
func (c *Chain) Push(step string, result *grid.Grid) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cursor < 0 {
		return false
	}

	c.entries = append(c.entries[:c.cursor+1], Entry{Step: step, Result: result})
	c.cursor++
	return true
}

// Current returns the newest live result, or nil before Reset.
func (c *Chain) Current() *grid.Grid {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.cursor < 0 {
		return nil
	}
	return c.entries[c.cursor].Result
}

func (c *Chain) Original() *grid.Grid {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.entries) == 0 {
		return nil
	}
	return c.entries[0].Result
}

func (c *Chain) Undo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cursor < 1 {
		return false
	}
	c.cursor--
	return true
}

func (c *Chain) Redo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cursor < 0 || c.cursor >= len(c.entries)-1 {
		return false
	}
	c.cursor++
	return true
}

func (c *Chain) CanUndo() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cursor >= 1
}

func (c *Chain) CanRedo() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cursor >= 0 && c.cursor < len(c.entries)-1
}

// Len counts the live entries, the original included.
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cursor + 1
}

// Steps names the live steps after the original, oldest first. It is nil
// until a step has been pushed.
func (c *Chain) Steps() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.cursor < 1 {
		return nil
	}

	steps := make([]string, 0, c.cursor)
	for i := 1; i <= c.cursor; i++ {
		steps = append(steps, c.entries[i].Step)
	}
	return steps
}
