package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// LinePrompter reads whole lines from a terminal or pipe. Read errors are
// swallowed and come back as an empty line. Once ctx is done, Prompt stops
// waiting and returns an empty line.
type LinePrompter struct {
	ctx   context.Context
	in    *bufio.Reader
	out   io.Writer
	lines chan readResult
	start sync.Once
	err   error // first read error; no reads happen after it

	// OnEOF, if set, is called every time a read hits end of input.
	OnEOF func()
}

type readResult struct {
	line string
	err  error
}

func NewLinePrompter(ctx context.Context, in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		ctx:   ctx,
		in:    bufio.NewReader(in),
		out:   out,
		lines: make(chan readResult, 1),
	}
}

// readLines feeds lines to Prompt until the first error.
func (p *LinePrompter) readLines() {
	for {
		line, err := p.in.ReadString('\n')
		p.lines <- readResult{line: line, err: err}
		if err != nil {
			return
		}
	}
}

// Prompt prints prompt on its own line and returns the next trimmed line.
func (p *LinePrompter) Prompt(prompt string) string {
	fmt.Fprintln(p.out, prompt)
	if p.err != nil {
		p.handleErr(p.err)
		return ""
	}
	p.start.Do(func() { go p.readLines() })

	select {
	case <-p.ctx.Done():
		return ""
	case res := <-p.lines:
		if res.err != nil {
			p.err = res.err
			p.handleErr(res.err)
		}
		return strings.TrimSpace(res.line)
	}
}

func (p *LinePrompter) handleErr(err error) {
	if errors.Is(err, io.EOF) && p.OnEOF != nil {
		p.OnEOF()
	}
}
