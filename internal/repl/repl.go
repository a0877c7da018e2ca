// Package repl implements the interactive shell over the reminder list.
package repl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/notexe/remind/internal/app"
	"github.com/notexe/remind/internal/config"
	"github.com/notexe/remind/internal/reminder"
	"github.com/notexe/remind/internal/ui"
)

type REPL struct {
	app       *app.App
	config    *config.Config
	rl        *readline.Instance
	formatter *ui.Formatter
}

func NewREPL(a *app.App, cfg *config.Config) (*REPL, error) {
	rl, err := setupReadline()
	if err != nil {
		return nil, fmt.Errorf("failed to setup readline: %w", err)
	}

	theme := cfg.UI.Theme
	if a.Store.Settings().DarkMode {
		theme = config.ThemeDark
	}
	formatter := ui.NewFormatter(ui.ThemeByName(theme), cfg.UI.ColoredOutput)

	return &REPL{
		app:       a,
		config:    cfg,
		rl:        rl,
		formatter: formatter,
	}, nil
}

func (r *REPL) Start(ctx context.Context) error {
	defer r.rl.Close()

	r.displayWelcome()

	for {
		input, err := r.readInput()
		if err != nil {
			if isEOF(err) {
				fmt.Println("\nGoodbye!")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if input == "" {
			continue
		}

		isCommand, command, args := r.parseCommand(input)
		if !isCommand {
			r.displayInfo("Commands start with / (type /help for the list).")
			continue
		}

		if err := r.handleCommand(ctx, command, args); err != nil {
			r.displayError(err)
		}

		if command == "/quit" || command == "/exit" || command == "/q" {
			return nil
		}
	}
}

func (r *REPL) handleCommand(ctx context.Context, command, args string) error {
	switch command {
	case "/help", "/h":
		r.displayHelp()
		return nil

	case "/list", "/l":
		return r.handleList(args)

	case "/add", "/a":
		return r.handleAdd(args)

	case "/done", "/d":
		return r.handleDone(args)

	case "/rm":
		return r.handleDelete(args)

	case "/search", "/s":
		return r.handleList(args)

	case "/history":
		return r.handleHistory()

	case "/clear-history":
		if err := r.app.History.Clear(); err != nil {
			return err
		}
		r.displaySuccess("History cleared")
		return nil

	case "/export":
		path := args
		if path == "" {
			path = "reminders-export.json"
		}
		if err := r.app.ExportTo(path); err != nil {
			return err
		}
		r.displaySuccess("Data exported to " + path)
		return nil

	case "/import":
		if args == "" {
			return fmt.Errorf("usage: /import <file>")
		}
		count, err := r.app.ImportFrom(args)
		if err != nil {
			return err
		}
		r.displaySuccess(fmt.Sprintf("%d items imported successfully", count))
		return nil

	case "/clear":
		if err := r.app.ClearAll(); err != nil {
			return err
		}
		r.displaySuccess("All reminders cleared")
		return nil

	case "/email":
		return r.handleEmail(ctx, args)

	case "/verify":
		if args == "" {
			return fmt.Errorf("usage: /verify <code>")
		}
		if err := r.app.ConfirmVerification(args); err != nil {
			return err
		}
		r.displaySuccess("Email verified")
		return nil

	case "/theme":
		return r.handleTheme(args)

	case "/quote":
		fmt.Println(r.formatter.FormatQuote(ui.QuoteOfTheDay(time.Now())))
		return nil

	case "/quit", "/exit", "/q":
		fmt.Println("\nGoodbye!")
		return nil

	default:
		return fmt.Errorf("unknown command: %s (type /help for available commands)", command)
	}
}

func (r *REPL) handleList(args string) error {
	filter := parseFilter(args)
	items, err := r.app.List(filter)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		r.displayInfo(emptyMessage(filter))
		return nil
	}
	now := time.Now()
	for _, item := range items {
		fmt.Println(r.formatter.FormatReminder(item, now))
	}
	return nil
}

// handleAdd parses "/add <date> <time> <text...> [#tag] [+daily]".
func (r *REPL) handleAdd(args string) error {
	fields := strings.Fields(args)
	if len(fields) < 3 {
		return fmt.Errorf("usage: /add <YYYY-MM-DD> <HH:MM> <text> [#tag] [+daily|+weekly|+monthly|+yearly]")
	}

	item := reminder.Reminder{Date: fields[0], Time: fields[1]}
	var text []string
	for _, f := range fields[2:] {
		switch {
		case strings.HasPrefix(f, "#"):
			item.Tag = strings.TrimPrefix(f, "#")
		case strings.HasPrefix(f, "+"):
			item.Recurrence = strings.TrimPrefix(f, "+")
		default:
			text = append(text, f)
		}
	}
	item.Text = strings.Join(text, " ")

	added, err := r.app.Add(item)
	if err != nil {
		return err
	}
	r.displaySuccess("Reminder added: " + added.Text)
	return nil
}

func (r *REPL) handleDone(args string) error {
	if args == "" {
		return fmt.Errorf("usage: /done <id>")
	}
	item, err := r.app.Resolve(args)
	if err != nil {
		return err
	}
	toggled, err := r.app.ToggleComplete(item.ID)
	if err != nil {
		return err
	}
	if toggled.Completed {
		r.displaySuccess("Reminder marked as completed")
	} else {
		r.displayInfo("Reminder marked as incomplete")
	}
	return nil
}

func (r *REPL) handleDelete(args string) error {
	if args == "" {
		return fmt.Errorf("usage: /rm <id>")
	}
	item, err := r.app.Resolve(args)
	if err != nil {
		return err
	}
	if _, err := r.app.Delete(item.ID); err != nil {
		return err
	}
	r.displayWarning("Reminder deleted")
	return nil
}

func (r *REPL) handleHistory() error {
	entries, err := r.app.History.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		r.displayInfo("History is empty.")
		return nil
	}
	// Newest first, like the web UI.
	for i := len(entries) - 1; i >= 0; i-- {
		fmt.Println(r.formatter.FormatHistoryEntry(entries[i]))
	}
	return nil
}

func (r *REPL) handleEmail(ctx context.Context, args string) error {
	if args == "" {
		acct := r.app.Store.Account()
		if acct.Email == "" {
			r.displayInfo("No email configured. Use /email <address> to set one.")
			return nil
		}
		state := "unverified"
		if acct.Verified {
			state = "verified"
		}
		r.displayInfo(fmt.Sprintf("Notification email: %s (%s)", acct.Email, state))
		return nil
	}

	previewURL, err := r.app.StartVerification(ctx, args)
	if err != nil {
		return err
	}
	msg := "Verification code sent to " + args + ". Use /verify <code> to confirm."
	if previewURL != "" {
		msg += "\nPreview: " + previewURL
	}
	r.displaySuccess(msg)
	return nil
}

func (r *REPL) handleTheme(args string) error {
	var dark bool
	switch args {
	case config.ThemeDark:
		dark = true
	case config.ThemeLight:
		dark = false
	case "":
		dark = !r.app.Store.Settings().DarkMode
	default:
		return fmt.Errorf("usage: /theme [light|dark]")
	}

	if err := r.app.SetTheme(dark); err != nil {
		return err
	}
	name := config.ThemeLight
	if dark {
		name = config.ThemeDark
	}
	r.formatter = ui.NewFormatter(ui.ThemeByName(name), r.config.UI.ColoredOutput)
	r.displaySuccess("Switched to " + name + " mode")
	return nil
}

// parseFilter splits free-form filter tokens: YYYY-MM-DD filters by
// date, #tag by tag, everything else becomes the search query.
func parseFilter(args string) reminder.Filter {
	var f reminder.Filter
	var query []string
	for _, tok := range strings.Fields(args) {
		switch {
		case strings.HasPrefix(tok, "#"):
			f.Tag = strings.TrimPrefix(tok, "#")
		case looksLikeDate(tok):
			f.Date = tok
		default:
			query = append(query, tok)
		}
	}
	f.Query = strings.Join(query, " ")
	return f
}

func looksLikeDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	_, err := time.Parse(reminder.DateLayout, s)
	return err == nil
}

func emptyMessage(f reminder.Filter) string {
	switch {
	case f.Query != "":
		return fmt.Sprintf("No reminders found for %q", f.Query)
	case f.Tag != "" && f.Tag != "all":
		return fmt.Sprintf("No %q reminders found", f.Tag)
	case f.Date != "":
		return "No reminders found for " + f.Date
	default:
		return "No reminders yet. Add one with /add!"
	}
}
