package evaluator

import (
	"fmt"
	"io"
	"sync"
)

// OutputSink collects the lines printed by a script. With a writer
// attached, lines are written through instead of buffered.
type OutputSink struct {
	mu    sync.Mutex
	lines []string
	w     io.Writer
}

func NewOutputSink(w io.Writer) *OutputSink {
	return &OutputSink{w: w}
}

func (o *OutputSink) WriteLine(line string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.w != nil {
		fmt.Fprintln(o.w, line)
		return
	}
	o.lines = append(o.lines, line)
}

// Lines returns a copy of the buffered lines.
func (o *OutputSink) Lines() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.lines...)
}

// Drain returns the buffered lines and clears the buffer.
func (o *OutputSink) Drain() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	lines := o.lines
	o.lines = nil
	return lines
}
