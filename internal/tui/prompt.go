package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

type promptReply struct {
	input string
	ok    bool
}

// promptRequestMsg carries a server's input request into the update loop.
// Exactly one reply must be sent on reply.
type promptRequestMsg struct {
	meta      string
	sensitive bool
	reply     chan<- promptReply
}

// PromptBridge lets a navigation running in a command goroutine ask the
// user for input through the model.
type PromptBridge struct {
	requests chan promptRequestMsg
}

func NewPromptBridge() *PromptBridge {
	return &PromptBridge{requests: make(chan promptRequestMsg)}
}

// Prompt blocks until the model answers or ctx is done.
func (b *PromptBridge) Prompt(ctx context.Context, meta string, sensitive bool) (string, bool) {
	reply := make(chan promptReply, 1)
	select {
	case b.requests <- promptRequestMsg{meta: meta, sensitive: sensitive, reply: reply}:
	case <-ctx.Done():
		return "", false
	}
	select {
	case r := <-reply:
		return r.input, r.ok
	case <-ctx.Done():
		return "", false
	}
}

// wait returns a command that delivers the next prompt request.
func (b *PromptBridge) wait() tea.Cmd {
	if b == nil {
		return nil
	}
	return func() tea.Msg {
		return <-b.requests
	}
}
