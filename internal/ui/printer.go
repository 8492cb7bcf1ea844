// Package ui prints a review run to the terminal.
package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/Cyclone1070/codereview/internal/workflow"
)

// Printer writes workflow events as a plain transcript, for pipes and
// redirected output. Terminals get a Transcript instead.
type Printer struct {
	out io.Writer
	f   formatter
}

// NewPrinter creates a Printer. verbose adds the tool trace lines.
func NewPrinter(out io.Writer, verbose bool) *Printer {
	return &Printer{out: out, f: formatter{verbose: verbose}}
}

// Run prints events until the channel is closed or ctx is done.
func (p *Printer) Run(ctx context.Context, events <-chan workflow.Event) {
	for {
		select {
		case e, ok := <-events:
			if !ok {
				return
			}
			p.Handle(e)
		case <-ctx.Done():
			// Flush whatever is already queued.
			for {
				select {
				case e, ok := <-events:
					if !ok {
						return
					}
					p.Handle(e)
				default:
					return
				}
			}
		}
	}
}

// Handle prints a single event.
func (p *Printer) Handle(e workflow.Event) {
	for _, line := range p.f.lines(e) {
		fmt.Fprintln(p.out, line)
	}
}
