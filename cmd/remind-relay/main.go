// Command remind-relay is the mail relay behind the reminder client.
//
// It exposes two endpoints the client posts to:
//
//	POST /send-verification  {"email": ..., "code": ...}
//	POST /send-reminder      {"email": ..., "reminder": {...}}
//
// Messages go out over SMTP using the credentials from the relay
// section of the config file (or REMIND_RELAY_* environment variables).
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/notexe/remind/internal/config"
	"github.com/notexe/remind/internal/relay"
)

func main() {
	configPath := flag.String("config", config.GetDefaultConfigPath(), "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger := log.New()
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		logger.SetLevel(log.DebugLevel)
	}

	smtp := cfg.Relay.SMTP
	sender := relay.NewSMTPSender(smtp.Host, smtp.Port, smtp.Username, smtp.Password, smtp.From, smtp.PreviewBase)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	relay.Register(e, sender, logger)

	logger.Infof("mail relay listening on %s", cfg.Relay.ListenAddr)
	e.Logger.Fatal(e.Start(cfg.Relay.ListenAddr))
}
