package repl

import (
	"fmt"
	"time"

	"github.com/notexe/remind/internal/ui"
)

func (r *REPL) displayWelcome() {
	now := time.Now()
	header := r.formatter.FormatHeader("Reminders — " + now.Format("Monday, January 2, 2006"))
	quote := r.formatter.FormatQuote(ui.QuoteOfTheDay(now))
	fmt.Println(r.formatter.Theme().Box.Render(header + "\n" + quote))
	fmt.Println(r.formatter.FormatDim("Type /help for commands, /quit to exit."))
}

func (r *REPL) displayError(err error) {
	fmt.Println(r.formatter.FormatError(err.Error()))
}

func (r *REPL) displaySuccess(msg string) {
	fmt.Println(r.formatter.FormatSuccess(msg))
}

func (r *REPL) displayWarning(msg string) {
	fmt.Println(r.formatter.FormatWarning(msg))
}

func (r *REPL) displayInfo(msg string) {
	fmt.Println(r.formatter.FormatInfo(msg))
}

func (r *REPL) displayHelp() {
	fmt.Println(`Commands:
  /add <YYYY-MM-DD> <HH:MM> <text> [#tag] [+daily|+weekly|+monthly|+yearly]
  /list [YYYY-MM-DD] [#tag] [query]   List reminders (filters combine)
  /search <query>                     Search by text or tag
  /done <id>                          Toggle completion (id prefix works)
  /rm <id>                            Delete a reminder
  /history                            Show completed/deleted history
  /clear-history                      Empty the history log
  /export [file]                      Export reminders to JSON
  /import <file>                      Import a previous export
  /clear                              Delete all reminders
  /email [address]                    Show or set the notification email
  /verify <code>                      Confirm the verification code
  /theme [light|dark]                 Switch or toggle the theme
  /quote                              Show the quote of the day
  /help                               Show this help
  /quit                               Exit`)
}
