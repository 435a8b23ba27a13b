// Package testutil drives bubbletea models in tests.
package testutil

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// syncBuffer guards the program output, which is written from the
// renderer goroutine while tests read it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// TestProgram runs a model in the background with captured output
type TestProgram struct {
	t       *testing.T
	program *tea.Program
	output  *syncBuffer
	done    chan struct{}
	final   tea.Model
	err     error
}

// NewTestProgram starts model with no terminal attached
func NewTestProgram(t *testing.T, model tea.Model) *TestProgram {
	t.Helper()

	tp := &TestProgram{
		t:      t,
		output: &syncBuffer{},
		done:   make(chan struct{}),
	}
	tp.program = tea.NewProgram(model,
		// key presses are delivered with Send
		tea.WithInput(nil),
		tea.WithOutput(tp.output),
		tea.WithoutSignalHandler(),
	)

	go func() {
		defer close(tp.done)
		tp.final, tp.err = tp.program.Run()
	}()
	t.Cleanup(tp.Quit)

	return tp
}

// Send delivers a message to the running program
func (tp *TestProgram) Send(msg tea.Msg) {
	tp.program.Send(msg)
}

// Type sends each rune of s as a key press
func (tp *TestProgram) Type(s string) {
	for _, r := range s {
		tp.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// SendKey sends a special key press
func (tp *TestProgram) SendKey(k tea.KeyType) {
	tp.Send(tea.KeyMsg{Type: k})
}

// Output returns everything rendered so far
func (tp *TestProgram) Output() string {
	return tp.output.String()
}

// WaitForOutput polls the output until needle appears or timeout elapses
func (tp *TestProgram) WaitForOutput(needle string, timeout time.Duration) bool {
	tp.t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(tp.Output(), needle) {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// FinalModel waits for the program to exit and returns its last model
func (tp *TestProgram) FinalModel(timeout time.Duration) tea.Model {
	tp.t.Helper()

	select {
	case <-tp.done:
		if tp.err != nil {
			tp.t.Fatalf("program error: %v", tp.err)
		}
		return tp.final
	case <-time.After(timeout):
		tp.t.Fatalf("program did not exit within %s", timeout)
		return nil
	}
}

// Quit stops the program if it is still running
func (tp *TestProgram) Quit() {
	select {
	case <-tp.done:
	default:
		tp.program.Quit()
		<-tp.done
	}
}
