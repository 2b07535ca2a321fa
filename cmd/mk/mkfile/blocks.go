package mkfile

// BlockStack tracks nested ifdef/ifndef frames.
type BlockStack struct {
	frames []bool
}

func (b *BlockStack) Push(active bool) {
	b.frames = append(b.frames, active)
}

// Pop removes the innermost frame. It reports false when the stack was
// already empty.
func (b *BlockStack) Pop() bool {
	if len(b.frames) == 0 {
		return false
	}
	b.frames = b.frames[:len(b.frames)-1]
	return true
}

// Active reports whether lines are currently evaluated. Only the innermost
// frame is consulted: an active block nested inside an inactive one counts
// as active.
func (b *BlockStack) Active() bool {
	if len(b.frames) == 0 {
		return true
	}
	return b.frames[len(b.frames)-1]
}

func (b *BlockStack) Depth() int { return len(b.frames) }
