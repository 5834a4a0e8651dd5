package ui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"calchat/config"
)

type streamChunkMsg struct {
	Chunk string
}

type turnDoneMsg struct {
	Reply string
}

type markdownRenderedMsg struct {
	EntryIndex int
	Rendered   string
}

// exitWords end the conversation when typed as a whole message.
var exitWords = map[string]bool{
	"exit":    true,
	"quit":    true,
	"bye":     true,
	"goodbye": true,
}

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	a.textarea, tiCmd = a.textarea.Update(msg)
	a.viewport, vpCmd = a.viewport.Update(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.textarea.SetWidth(msg.Width)
		// Title, blank line, input, status bar
		a.viewport.Width = msg.Width
		a.viewport.Height = msg.Height - a.textarea.Height() - 3
		a.ready = true
		a.refreshViewport()
		return a, tea.Batch(tiCmd, vpCmd)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit

		case "alt+y":
			if reply := a.lastAssistantReply(); reply != "" {
				clipboard.WriteAll(reply)
			}
			return a, tea.Batch(tiCmd, vpCmd)

		case "enter":
			if a.waiting {
				return a, tea.Batch(tiCmd, vpCmd)
			}
			input := strings.TrimSpace(a.textarea.Value())
			if input == "" {
				a.textarea.Reset()
				return a, tea.Batch(tiCmd, vpCmd)
			}
			if exitWords[strings.ToLower(input)] {
				return a, tea.Quit
			}

			a.textarea.Reset()
			a.entries = append(a.entries, entry{role: "user", content: input})
			a.currentResp.Reset()
			a.waiting = true
			a.refreshViewport()
			return a, tea.Batch(a.sendTurn(input), a.loadingSpinner.Tick, tiCmd)
		}

	case spinner.TickMsg:
		if a.waiting {
			var cmd tea.Cmd
			a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
			a.refreshViewport()
			return a, tea.Batch(cmd, tiCmd, vpCmd)
		}

	case streamChunkMsg:
		a.currentResp.WriteString(msg.Chunk)
		a.refreshViewport()
		return a, tea.Batch(a.waitForStream(), tiCmd, vpCmd)

	case turnDoneMsg:
		a.waiting = false
		a.currentResp.Reset()
		a.entries = append(a.entries, entry{role: "assistant", content: msg.Reply})
		a.refreshViewport()
		return a, tea.Batch(a.renderMarkdownAsync(len(a.entries)-1, msg.Reply), tiCmd, vpCmd)

	case markdownRenderedMsg:
		if msg.EntryIndex >= 0 && msg.EntryIndex < len(a.entries) {
			a.entries[msg.EntryIndex].rendered = msg.Rendered
			a.refreshViewport()
		}
		return a, tea.Batch(tiCmd, vpCmd)
	}

	return a, tea.Batch(tiCmd, vpCmd)
}

// sendTurn runs one agent turn in the background and feeds its stream events
// through the channel the Update loop drains.
func (a *AppView) sendTurn(input string) tea.Cmd {
	ch := make(chan tea.Msg, 32)
	a.stream = ch

	go func() {
		reply := a.session.Send(context.Background(), input, func(chunk string) {
			ch <- streamChunkMsg{Chunk: chunk}
		})
		ch <- turnDoneMsg{Reply: reply}
		close(ch)
	}()

	return a.waitForStream()
}

func (a *AppView) waitForStream() tea.Cmd {
	ch := a.stream
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		if config.DebugLog != nil {
			if _, done := msg.(turnDoneMsg); done {
				config.DebugLog.Printf("[ui] turn complete")
			}
		}
		return msg
	}
}
