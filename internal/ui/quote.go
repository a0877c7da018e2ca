package ui

import "time"

// Quote is one motivational quote shown on startup.
type Quote struct {
	Text   string
	Author string
}

var quotes = []Quote{
	{"The best way to predict the future is to create it.", "Abraham Lincoln"},
	{"It always seems impossible until it's done.", "Nelson Mandela"},
	{"Don't count the days, make the days count.", "Muhammad Ali"},
	{"You miss 100% of the shots you don't take.", "Wayne Gretzky"},
	{"The only way to do great work is to love what you do.", "Steve Jobs"},
	{"Believe you can and you're halfway there.", "Theodore Roosevelt"},
	{"What you get by achieving your goals is not as important as what you become by achieving your goals.", "Zig Ziglar"},
	{"The future belongs to those who believe in the beauty of their dreams.", "Eleanor Roosevelt"},
	{"Success is not final, failure is not fatal: it is the courage to continue that counts.", "Winston Churchill"},
	{"The only limit to our realization of tomorrow will be our doubts of today.", "Franklin D. Roosevelt"},
}

// QuoteOfTheDay picks a quote deterministically from the date, so the
// same quote shows all day and changes daily.
func QuoteOfTheDay(now time.Time) Quote {
	day := now.Format("Mon Jan 2 2006")
	seed := 0
	for _, c := range day {
		seed += int(c)
	}
	return quotes[seed%len(quotes)]
}
