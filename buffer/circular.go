// Package buffer provides the fixed-size circular buffer the convergence
// driver's predicates use to look at a trailing window of a chain's
// saved values without retaining the whole run.
package buffer

// CircularFloat is a circular buffer of float64s with the ability to
// iterate over the first and second halves of the values collected, in
// the order they were appended. Splitting a window in half this way is
// what a Gelman-Rubin-style convergence predicate needs: compare the
// distribution of the trailing window's first half against its second.
type CircularFloat struct {
	buffer    []float64
	pos       int   // current write position in buffer
	BufSize   int   // fixed number of floats maintained in memory
	Count     int   // number of floats in memory; always <= BufSize
	TotalSeen int64 // total number of times Add has been called
}

// NewCircularFloat creates a new circular buffer of totalSize. If
// totalSize is not a multiple of 2, it is rounded down to one.
func NewCircularFloat(totalSize int) *CircularFloat {
	half := totalSize / 2
	total := half + half

	return &CircularFloat{
		buffer:  make([]float64, total),
		pos:     0,
		BufSize: total,
		Count:   0,
	}
}

func (c *CircularFloat) nextPos() int {
	return (c.pos + 1) % c.BufSize
}

// Add appends v to the buffer, overwriting the oldest entry once full.
func (c *CircularFloat) Add(v float64) {
	c.TotalSeen++

	c.buffer[c.pos] = v
	c.pos = c.nextPos()

	c.Count++
	if c.Count > c.BufSize {
		c.Count = c.BufSize
	}
}

// Full reports whether the buffer has seen at least BufSize values, the
// precondition for FirstHalf/SecondHalf to return a usable iterator.
func (c *CircularFloat) Full() bool {
	return c.Count >= c.BufSize
}

// Values returns the buffer's current contents in insertion order, oldest
// first. Only valid once Full reports true; used when a predicate needs
// the whole window rather than just one half.
func (c *CircularFloat) Values() []float64 {
	if !c.Full() {
		return nil
	}
	out := make([]float64, c.BufSize)
	cur := c.pos
	for i := 0; i < c.BufSize; i++ {
		out[i] = c.buffer[cur]
		cur = (cur + 1) % c.BufSize
	}
	return out
}

// FirstHalf returns an iterator over the first (oldest) half of the
// stored values. Returns nil until Add has been called at least BufSize
// times.
func (c *CircularFloat) FirstHalf() *CircularFloatIterator {
	if !c.Full() {
		return nil
	}

	return &CircularFloatIterator{
		buf:    c,
		curr:   c.pos,
		remain: c.BufSize / 2,
	}
}

// SecondHalf returns an iterator over the second (most recent) half of
// the stored values. Returns nil until Add has been called at least
// BufSize times.
func (c *CircularFloat) SecondHalf() *CircularFloatIterator {
	if !c.Full() {
		return nil
	}

	half := c.BufSize / 2
	pos := (c.pos + half) % c.BufSize

	return &CircularFloatIterator{
		buf:    c,
		curr:   pos,
		remain: half,
	}
}

// CircularFloatIterator iterates over one half of a CircularFloat buffer.
type CircularFloatIterator struct {
	buf    *CircularFloat
	curr   int
	remain int
}

// Next reports whether there are more values to read via Value.
func (i *CircularFloatIterator) Next() bool {
	return i.remain > 0
}

// Value returns the next float64 to be read. Only valid while Next
// reports true.
func (i *CircularFloatIterator) Value() float64 {
	v := i.buf.buffer[i.curr]
	i.curr = (i.curr + 1) % i.buf.BufSize
	i.remain--
	return v
}
