package console

import (
	"bytes"
	"context"
	"io"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLinePrompter_Prompt(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(context.Background(), strings.NewReader("  d \r\nWhich\n"), &out)

	assert.Equal(t, "d", p.Prompt(""))
	assert.Equal(t, "Which", p.Prompt("Which Item?   "))
	assert.Equal(t, "\nWhich Item?   \n", out.String())
}

func TestLinePrompter_EOF(t *testing.T) {
	eofs := 0
	var out bytes.Buffer
	p := NewLinePrompter(context.Background(), strings.NewReader("last"), &out)
	p.OnEOF = func() { eofs++ }

	assert.Equal(t, "last", p.Prompt(""), "a final line without newline is still returned")
	assert.Equal(t, "", p.Prompt(""))
	assert.Equal(t, 2, eofs)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestLinePrompter_ReadErrorIsEmptyLine(t *testing.T) {
	called := false
	p := NewLinePrompter(context.Background(), failingReader{}, &bytes.Buffer{})
	p.OnEOF = func() { called = true }

	assert.Equal(t, "", p.Prompt(""))
	assert.False(t, called, "only end of input triggers OnEOF")
}

func TestLinePrompter_ContextCancelUnblocks(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	p := NewLinePrompter(ctx, pr, &bytes.Buffer{})

	got := make(chan string, 1)
	go func() { got <- p.Prompt("") }()

	select {
	case line := <-got:
		t.Fatalf("Prompt returned %q before any input", line)
	case <-time.After(50 * time.Millisecond):
	}

	cancel()
	select {
	case line := <-got:
		assert.Equal(t, "", line)
	case <-time.After(2 * time.Second):
		t.Fatal("Prompt still blocked after the context was cancelled")
	}
}
