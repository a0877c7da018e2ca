// Command remind manages a personal reminder list from the terminal.
//
// Without arguments it starts an interactive shell. With a subcommand it
// performs one operation and exits:
//
//	remind add -text "Standup" -date 2025-09-01 -time 09:00 -tag work -recur daily
//	remind list -date 2025-09-01
//	remind search standup
//	remind done <id>
//	remind watch
//
// Environment:
//
//	REMIND_*  Override any config key (e.g. REMIND_STORAGE_BACKEND=redis)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/notexe/remind/internal/app"
	"github.com/notexe/remind/internal/config"
	"github.com/notexe/remind/internal/mail"
	"github.com/notexe/remind/internal/notify"
	"github.com/notexe/remind/internal/reminder"
	"github.com/notexe/remind/internal/repl"
	"github.com/notexe/remind/internal/storage"
	"github.com/notexe/remind/internal/ui"
)

func main() {
	configPath := flag.String("config", config.GetDefaultConfigPath(), "Path to configuration file")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if *noColor {
		cfg.UI.ColoredOutput = false
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if cfg.Storage.Backend == storage.BackendSQLite {
		if err := ensureParentDir(cfg.Storage.Path); err != nil {
			fmt.Fprintf(os.Stderr, "Error preparing data directory: %v\n", err)
			os.Exit(1)
		}
	}

	kv, err := storage.Open(cfg.StorageOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	store := reminder.NewStore(kv)
	history := reminder.NewHistoryLog(kv)
	verifier := mail.NewRelayClient(cfg.Notify.RelayURL)
	application := app.New(store, history, cfg.Features, verifier)

	theme := cfg.UI.Theme
	if store.Settings().DarkMode {
		theme = config.ThemeDark
	}
	formatter := ui.NewFormatter(ui.ThemeByName(theme), cfg.UI.ColoredOutput)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := flag.Arg(0)
	args := flag.Args()
	if len(args) > 0 {
		args = args[1:]
	}

	if err := run(ctx, cmd, args, application, cfg, formatter); err != nil {
		fmt.Fprintln(os.Stderr, formatter.FormatError(err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, args []string, a *app.App, cfg *config.Config, f *ui.Formatter) error {
	switch cmd {
	case "":
		shell, err := repl.NewREPL(a, cfg)
		if err != nil {
			return err
		}
		return shell.Start(ctx)

	case "add":
		return cmdAdd(args, a, f)

	case "list":
		return cmdList(args, a, f)

	case "search":
		return cmdSearch(args, a, f)

	case "edit":
		return cmdEdit(args, a, f)

	case "done":
		return cmdDone(args, a, f)

	case "rm":
		return cmdDelete(args, a, f)

	case "history":
		return cmdHistory(args, a, f)

	case "export":
		return cmdExport(args, a, f)

	case "import":
		return cmdImport(args, a, f)

	case "clear":
		if err := a.ClearAll(); err != nil {
			return err
		}
		fmt.Println(f.FormatSuccess("All reminders cleared"))
		return nil

	case "email":
		return cmdEmail(ctx, args, a, f)

	case "verify":
		if len(args) != 1 {
			return fmt.Errorf("usage: remind verify <code>")
		}
		if err := a.ConfirmVerification(args[0]); err != nil {
			return err
		}
		fmt.Println(f.FormatSuccess("Email verified"))
		return nil

	case "theme":
		return cmdTheme(args, a, f)

	case "watch":
		return cmdWatch(ctx, a, cfg)

	case "help", "--help", "-h":
		printHelp()
		return nil

	default:
		return fmt.Errorf("unknown command: %s (run remind help)", cmd)
	}
}

func cmdAdd(args []string, a *app.App, f *ui.Formatter) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	text := fs.String("text", "", "Reminder text (required)")
	date := fs.String("date", "", "Date as YYYY-MM-DD (required)")
	timeOfDay := fs.String("time", "", "Time as HH:MM (required)")
	message := fs.String("message", "", "Optional longer message")
	tag := fs.String("tag", "", "Optional tag/category")
	recur := fs.String("recur", "", "Recurrence: daily, weekly, monthly or yearly")
	if err := fs.Parse(args); err != nil {
		return err
	}

	added, err := a.Add(reminder.Reminder{
		Text:       *text,
		Date:       *date,
		Time:       *timeOfDay,
		Message:    *message,
		Tag:        *tag,
		Recurrence: *recur,
	})
	if err != nil {
		return err
	}
	fmt.Println(f.FormatSuccess("Reminder added: " + added.Text))
	fmt.Println(f.FormatDim("id: " + added.ID))
	return nil
}

func cmdList(args []string, a *app.App, f *ui.Formatter) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	date := fs.String("date", "", "Filter by date (YYYY-MM-DD)")
	tag := fs.String("tag", "", "Filter by tag")
	search := fs.String("search", "", "Filter by text or tag substring")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return printList(a, f, reminder.Filter{Date: *date, Tag: *tag, Query: *search})
}

func cmdSearch(args []string, a *app.App, f *ui.Formatter) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: remind search <query>")
	}
	return printList(a, f, reminder.Filter{Query: strings.Join(args, " ")})
}

func printList(a *app.App, f *ui.Formatter, filter reminder.Filter) error {
	items, err := a.List(filter)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println(f.FormatInfo("No reminders found."))
		return nil
	}
	now := time.Now()
	for _, item := range items {
		fmt.Println(f.FormatReminder(item, now))
	}
	return nil
}

func cmdEdit(args []string, a *app.App, f *ui.Formatter) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: remind edit <id> [-text ...] [-date ...] [-time ...] [-message ...] [-tag ...] [-recur ...]")
	}
	id := args[0]

	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	text := fs.String("text", "", "New text")
	date := fs.String("date", "", "New date (YYYY-MM-DD)")
	timeOfDay := fs.String("time", "", "New time (HH:MM)")
	message := fs.String("message", "", "New message")
	tag := fs.String("tag", "", "New tag")
	recur := fs.String("recur", "", "New recurrence kind")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	item, err := a.Resolve(id)
	if err != nil {
		return err
	}

	var fields app.UpdateFields
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "text":
			fields.Text = text
		case "date":
			fields.Date = date
		case "time":
			fields.Time = timeOfDay
		case "message":
			fields.Message = message
		case "tag":
			fields.Tag = tag
		case "recur":
			fields.Recurrence = recur
		}
	})

	updated, err := a.Update(item.ID, fields)
	if err != nil {
		return err
	}
	fmt.Println(f.FormatSuccess("Reminder updated: " + updated.Text))
	return nil
}

func cmdDone(args []string, a *app.App, f *ui.Formatter) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: remind done <id>")
	}
	item, err := a.Resolve(args[0])
	if err != nil {
		return err
	}
	toggled, err := a.ToggleComplete(item.ID)
	if err != nil {
		return err
	}
	if toggled.Completed {
		fmt.Println(f.FormatSuccess("Reminder marked as completed"))
	} else {
		fmt.Println(f.FormatInfo("Reminder marked as incomplete"))
	}
	return nil
}

func cmdDelete(args []string, a *app.App, f *ui.Formatter) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: remind rm <id>")
	}
	item, err := a.Resolve(args[0])
	if err != nil {
		return err
	}
	if _, err := a.Delete(item.ID); err != nil {
		return err
	}
	fmt.Println(f.FormatWarning("Reminder deleted"))
	return nil
}

func cmdHistory(args []string, a *app.App, f *ui.Formatter) error {
	if len(args) == 1 && args[0] == "clear" {
		if err := a.History.Clear(); err != nil {
			return err
		}
		fmt.Println(f.FormatSuccess("History cleared"))
		return nil
	}

	entries, err := a.History.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println(f.FormatInfo("History is empty."))
		return nil
	}
	for i := len(entries) - 1; i >= 0; i-- {
		fmt.Println(f.FormatHistoryEntry(entries[i]))
	}
	return nil
}

func cmdExport(args []string, a *app.App, f *ui.Formatter) error {
	path := "reminders-export.json"
	if len(args) == 1 {
		path = args[0]
	}
	if err := a.ExportTo(path); err != nil {
		return err
	}
	fmt.Println(f.FormatSuccess("Data exported to " + path))
	return nil
}

func cmdImport(args []string, a *app.App, f *ui.Formatter) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: remind import <file>")
	}
	count, err := a.ImportFrom(args[0])
	if err != nil {
		return err
	}
	fmt.Println(f.FormatSuccess(fmt.Sprintf("%d items imported successfully", count)))
	return nil
}

func cmdEmail(ctx context.Context, args []string, a *app.App, f *ui.Formatter) error {
	if len(args) == 0 {
		acct := a.Store.Account()
		if acct.Email == "" {
			fmt.Println(f.FormatInfo("No email configured. Use remind email <address> to set one."))
			return nil
		}
		state := "unverified"
		if acct.Verified {
			state = "verified"
		}
		fmt.Println(f.FormatInfo(fmt.Sprintf("Notification email: %s (%s)", acct.Email, state)))
		return nil
	}

	previewURL, err := a.StartVerification(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Println(f.FormatSuccess("Verification code sent to " + args[0]))
	if previewURL != "" {
		fmt.Println(f.FormatDim("Preview: " + previewURL))
	}
	fmt.Println(f.FormatInfo("Confirm with: remind verify <code>"))
	return nil
}

func cmdTheme(args []string, a *app.App, f *ui.Formatter) error {
	var dark bool
	switch {
	case len(args) == 0:
		dark = !a.Store.Settings().DarkMode
	case args[0] == config.ThemeDark:
		dark = true
	case args[0] == config.ThemeLight:
		dark = false
	default:
		return fmt.Errorf("usage: remind theme [light|dark]")
	}

	if err := a.SetTheme(dark); err != nil {
		return err
	}
	name := config.ThemeLight
	if dark {
		name = config.ThemeDark
	}
	fmt.Println(f.FormatSuccess("Switched to " + name + " mode"))
	return nil
}

func cmdWatch(ctx context.Context, a *app.App, cfg *config.Config) error {
	if !cfg.Features.Notification {
		return fmt.Errorf("notifications are disabled (features.notification)")
	}

	var mailer notify.Mailer
	switch cfg.Notify.Provider {
	case config.ProviderTemplate:
		t := cfg.Notify.Template
		mailer = mail.NewTemplateSender(t.Endpoint, t.ServiceID, t.TemplateID, t.UserID, cfg.Notify.FromName)
	default:
		mailer = mail.NewRelayClient(cfg.Notify.RelayURL)
	}

	notifier := notify.New(a.Store, mailer, notify.NewClock(), cfg.Features.Recurrence)
	return notifier.Run(ctx)
}

func ensureParentDir(path string) error {
	dir := strings.TrimSuffix(path, "/")
	if i := strings.LastIndex(dir, "/"); i > 0 {
		return os.MkdirAll(dir[:i], 0o755)
	}
	return nil
}

func printHelp() {
	fmt.Println(`remind - personal reminder list

USAGE:
    remind [flags]                Start the interactive shell
    remind [flags] <command>      Run one command

COMMANDS:
    add       Add a reminder (-text, -date, -time, -message, -tag, -recur)
    list      List reminders (-date, -tag, -search)
    search    Search reminders by text or tag
    edit      Update a reminder's fields
    done      Toggle a reminder's completion
    rm        Delete a reminder
    history   Show (or clear) the completed/deleted log
    export    Write reminders to a JSON file
    import    Merge a previously exported JSON file
    clear     Delete all reminders
    email     Show or set the notification email address
    verify    Confirm an emailed verification code
    theme     Switch between light and dark output
    watch     Run the due-reminder notifier loop
    help      Show this help

FLAGS:
    -config <path>   Configuration file (default ~/.remind/config.yaml)
    -no-color        Disable colored output`)
}
