package editor

import (
	"time"

	"github.com/iw2rmb/inputkit/layout"
)

// ClickCounter turns host press events into MouseEvent click counts. Presses
// within Interval of each other and within Slop of the previous press count
// up to a triple click, after which counting starts over.
type ClickCounter struct {
	Interval time.Duration // default: 500ms
	Slop     float32       // default: 4 text units

	last      time.Time
	lastPoint layout.Point
	count     int
}

// Press records a press at p and returns its click count.
func (c *ClickCounter) Press(at time.Time, p layout.Point) int {
	interval := c.Interval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	slop := c.Slop
	if slop <= 0 {
		slop = 4
	}

	d := p.Sub(c.lastPoint)
	near := d.X*d.X+d.Y*d.Y <= slop*slop
	if c.count > 0 && c.count < 3 && near && at.Sub(c.last) <= interval && !at.Before(c.last) {
		c.count++
	} else {
		c.count = 1
	}
	c.last = at
	c.lastPoint = p
	return c.count
}

// Reset forgets the previous press.
func (c *ClickCounter) Reset() {
	c.count = 0
	c.last = time.Time{}
}
