// Command remind-mcp provides an MCP server over the reminder list.
//
// This server exposes tools for creating, listing, completing, updating
// and deleting reminders, plus the completed/deleted history.
//
// Usage:
//
//	./remind-mcp          # Start MCP server (stdio)
//	./remind-mcp --help   # Show help
//
// Environment:
//
//	REMIND_*  Override any config key (e.g. REMIND_STORAGE_PATH=/tmp/r.db)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/notexe/remind/internal/app"
	"github.com/notexe/remind/internal/config"
	"github.com/notexe/remind/internal/mail"
	"github.com/notexe/remind/internal/reminder"
	"github.com/notexe/remind/internal/storage"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			printHelp()
			return
		}
	}

	cfg, err := config.Load(config.GetDefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if cfg.Storage.Backend == storage.BackendSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create data directory: %v\n", err)
			os.Exit(1)
		}
	}

	kv, err := storage.Open(cfg.StorageOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	store := reminder.NewStore(kv)
	history := reminder.NewHistoryLog(kv)
	verifier := mail.NewRelayClient(cfg.Notify.RelayURL)
	a := app.New(store, history, cfg.Features, verifier)

	s := app.NewMCPServer(a)

	if err := server.ServeStdio(s.MCPServer()); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`MCP Reminder Server - reminder management via MCP protocol

USAGE:
    remind-mcp          Start MCP server (communicates via stdio)
    remind-mcp --help   Show this help

ENVIRONMENT:
    REMIND_*  Override any config key, e.g.
              REMIND_STORAGE_BACKEND=redis
              REMIND_STORAGE_PATH=/path/to/remind.db

TOOLS:
    add_reminder       Add a reminder (text, date, time, message, tag, recurrence)
    list_reminders     List reminders (optional date/tag/query filters)
    complete_reminder  Toggle a reminder's completed state
    delete_reminder    Delete a reminder permanently
    update_reminder    Update reminder fields
    get_history        Show the completed/deleted log, newest first

CONFIGURATION:
    Add to your MCP client config:
    {
      "mcpServers": {
        "remind": {
          "command": "/path/to/remind-mcp",
          "args": []
        }
      }
    }`)
}
