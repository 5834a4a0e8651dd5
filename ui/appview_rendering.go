package ui

import (
	"regexp"
	"strings"
	"time"

	markdown "github.com/MichaelMure/go-term-markdown"
	tea "github.com/charmbracelet/bubbletea"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	"calchat/config"
)

// refreshViewport rebuilds the transcript from the entries plus any
// in-flight streamed text and scrolls to the bottom.
func (a *AppView) refreshViewport() {
	if !a.ready {
		return
	}

	var b strings.Builder
	for _, e := range a.entries {
		switch e.role {
		case "user":
			b.WriteString(UserStyle.Render("You: "))
			b.WriteString(e.content)
		case "assistant":
			b.WriteString(AssistantStyle.Render("AI Agent: "))
			if e.rendered != "" {
				b.WriteString(strings.TrimRight(e.rendered, "\n"))
			} else {
				b.WriteString(e.content)
			}
		}
		b.WriteString("\n\n")
	}

	if a.waiting {
		b.WriteString(AssistantStyle.Render("AI Agent: "))
		if a.currentResp.Len() > 0 {
			b.WriteString(a.currentResp.String())
		} else {
			b.WriteString(a.loadingSpinner.View())
		}
		b.WriteString("\n")
	}

	a.viewport.SetContent(b.String())
	a.viewport.GotoBottom()
}

var linkPattern = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)

// preprocessLinks strips markdown link syntax [text](url) down to the bare
// URL so terminal emulators handle detection and clickability themselves.
func preprocessLinks(content string) string {
	return linkPattern.ReplaceAllString(content, "$2")
}

func (a AppView) renderMarkdownAsync(entryIndex int, content string) tea.Cmd {
	width := a.width
	return func() tea.Msg {
		if config.DebugLog != nil {
			config.DebugLog.Printf("Starting async markdown render for entry %d - length: %d chars", entryIndex, len(content))
		}
		startTime := time.Now()

		content = preprocessLinks(content)

		// Render with go-term-markdown. Disable autolink so plain URLs stay
		// plain text.
		defaultExt := markdown.Extensions()
		customExt := defaultExt &^ parser.Autolink
		p := parser.NewWithExtensions(customExt)
		r := markdown.NewRenderer(width-4, 0)
		doc := p.Parse([]byte(content))
		rendered := gomarkdown.Render(doc, r)

		if config.DebugLog != nil {
			config.DebugLog.Printf("Markdown rendered in %v", time.Since(startTime))
		}

		return markdownRenderedMsg{
			EntryIndex: entryIndex,
			Rendered:   string(rendered),
		}
	}
}
