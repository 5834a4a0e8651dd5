package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"calchat/agent"
	"calchat/calcom"
	"calchat/config"
	"calchat/provider"
	"calchat/tools"
	"calchat/ui"
)

const Version = "v0.1.0"

func main() {
	plain := flag.Bool("plain", false, "run a line-based REPL instead of the full-screen interface")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.DataDir())

	apiKey := config.CompletionAPIKey(cfg.ProviderID)
	if apiKey == "" && config.CompletionKeyRequired(cfg.ProviderID) {
		fmt.Fprintf(os.Stderr, "Missing API key for provider %q.\n", cfg.ProviderID)
		fmt.Fprintf(os.Stderr, "Set OPENAI_API_KEY or ANTHROPIC_API_KEY to match the configured provider.\n")
		os.Exit(1)
	}

	calKey := config.CalComAPIKey()
	if calKey == "" {
		fmt.Fprintln(os.Stderr, "Warning: CAL_COM_API_KEY is not set. Cal.com operations will be unavailable.")
	}

	p, err := provider.NewProvider(provider.Config{
		Type:    provider.MapProviderIDToType(cfg.ProviderID),
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		APIKey:  apiKey,
	})
	if err != nil {
		fmt.Printf("Failed to initialize provider: %v\n", err)
		os.Exit(1)
	}

	runner := tools.NewRunner(calcom.NewClient(calKey, cfg.CalComBaseURL, cfg.CalComFindURL))
	session := agent.NewSession(p, runner)

	if *plain {
		runPlain(session)
		return
	}

	program := tea.NewProgram(
		ui.NewAppView(session, p.GetModel()),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running calchat: %v\n", err)
		os.Exit(1)
	}
}

// runPlain is a minimal stdin/stdout loop for terminals where the full-screen
// interface is unwanted (pipes, dumb terminals).
func runPlain(session *agent.Session) {
	fmt.Println()
	fmt.Println("AI Agent: Hello! I can help you schedule meetings on Cal.com or view your existing ones.")
	fmt.Println("AI Agent: For Cal.com actions, ensure your Cal.com API key is configured.")
	fmt.Println("AI Agent: To book, I'll generally need: Event Type ID, date, time, timezone, duration, title, participant details, and the description of the meeting.")
	fmt.Println("AI Agent: To view meetings, I'll need your Cal.com email, the date, and your timezone context.")
	fmt.Println("AI Agent: To cancel a meeting, please provide the date, time, timezone, and reason (optional).")
	fmt.Println("--------------------------------------------------------------------")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		input := scanner.Text()

		switch strings.ToLower(input) {
		case "exit", "quit", "bye", "goodbye":
			fmt.Println("AI Agent: Goodbye! Have a great day.")
			return
		}
		if strings.TrimSpace(input) == "" {
			continue
		}

		reply := session.Send(context.Background(), input, nil)
		fmt.Printf("AI Agent: %s\n", reply)
	}
}
