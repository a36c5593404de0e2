package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"brochat/config"
	"brochat/model"
	"brochat/provider"
	"brochat/storage"
	"brochat/ui/templates"
)

const (
	Version = "v0.1.0"
)

func showError(title, message string) {
	p := tea.NewProgram(
		templates.NewErrorModal(title, message),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		showError("Configuration Error", err.Error())
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.DataDir())
	if config.DebugLog != nil {
		config.DebugLog.Printf("brochat %s: provider=%s host=%s model=%s timeout=%s",
			Version, cfg.Provider, cfg.Host, cfg.ModelName, cfg.RequestTimeout)
	}

	chatModel, err := provider.NewChatModel(provider.Config{
		Type:    provider.MapProviderIDToType(cfg.Provider),
		BaseURL: cfg.Host,
		Model:   cfg.ModelName,
	})
	if err != nil {
		showError("Model Configuration Error", err.Error())
		os.Exit(1)
	}

	if err := run(cfg, chatModel); err != nil {
		fmt.Fprintf(os.Stderr, "Error running brochat: %v\n", err)
		os.Exit(1)
	}
}

// run owns every resource the program holds open, so they are released
// before main decides the exit code.
func run(cfg *config.Config, chatModel model.ChatModel) error {
	usage, closeUsage := openUsageLedger(cfg.DataDir(), cfg.UsageLog)
	defer closeUsage()

	layout := templates.NewChatLayout(chatModel, templates.Options{
		Title:         cfg.Title,
		UserName:      cfg.UserName,
		AssistantName: cfg.AssistantName,
		SystemPrompt:  cfg.SystemPrompt,
		Timeout:       cfg.RequestTimeout,
		Usage:         usage,
	})

	p := tea.NewProgram(
		layout,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}

// openUsageLedger opens the usage store when enabled. The ledger is
// optional: on failure the chat runs without it. The returned recorder is a
// nil interface when there is no store.
func openUsageLedger(dataDir string, enabled bool) (model.UsageRecorder, func()) {
	if !enabled {
		return nil, func() {}
	}

	store, err := storage.NewUsageStore(dataDir)
	if err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("Warning: usage ledger disabled: %v", err)
		}
		return nil, func() {}
	}

	if totals, err := store.Totals(context.Background(), ""); err == nil && config.DebugLog != nil {
		config.DebugLog.Printf("Usage ledger: %d turns, %d in / %d out tokens, %s avg",
			totals.Turns, totals.InputTokens, totals.OutputTokens, totals.AvgResponseTime)
	}

	return store, func() {
		if err := store.Close(); err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("Warning: failed to close usage ledger: %v", err)
		}
	}
}
