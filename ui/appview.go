// Package ui implements the terminal chat interface: a scrolling transcript
// viewport above a multi-line input, with streamed replies and markdown
// rendering for finished assistant messages.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"calchat/agent"
)

// entry is one transcript line pair: who spoke and what they said. Rendered
// holds the markdown-rendered form once the async render completes.
type entry struct {
	role     string
	content  string
	rendered string
}

type AppView struct {
	session *agent.Session

	// UI components
	viewport       viewport.Model
	textarea       textarea.Model
	loadingSpinner spinner.Model

	// Window state
	width  int
	height int
	ready  bool

	// Transcript state
	entries     []entry
	currentResp *strings.Builder // Pointer to avoid copy panic
	waiting     bool

	// Channel carrying stream events for the in-flight turn
	stream chan tea.Msg

	modelName string
}

func NewAppView(session *agent.Session, modelName string) AppView {
	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Alt+Enter for newline; Enter alone sends (handled separately)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	// Dynamic prompt: "> " for first line, "| " for continuation lines
	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = AssistantStyle

	return AppView{
		session:        session,
		textarea:       ta,
		viewport:       viewport.New(0, 0),
		loadingSpinner: sp,
		currentResp:    &strings.Builder{},
		modelName:      modelName,
	}
}

func (a AppView) Init() tea.Cmd {
	return textarea.Blink
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading calchat..."
	}

	title := AssistantStyle.Render("calchat") + TitleStyle.Render(fmt.Sprintf(" - %s", a.modelName))

	statusBar := StatusStyle.Render(fmt.Sprintf("Ctrl+C %s  Alt+Enter %s  Enter %s  Alt+Y %s",
		statusDesc("Quit"),
		statusDesc("New Line"),
		statusDesc("Send"),
		statusDesc("Copy last reply"),
	))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		a.viewport.View(),
		a.textarea.View(),
		statusBar,
	)
}

func statusDesc(s string) string {
	return lipgloss.NewStyle().Foreground(successColor).Bold(true).Render(s)
}

// lastAssistantReply returns the most recent finished assistant message, or
// empty when there is none yet.
func (a AppView) lastAssistantReply() string {
	for i := len(a.entries) - 1; i >= 0; i-- {
		if a.entries[i].role == "assistant" {
			return a.entries[i].content
		}
	}
	return ""
}
