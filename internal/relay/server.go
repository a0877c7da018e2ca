// Package relay implements the mail relay HTTP server. It forwards
// verification codes and due-reminder notifications through a test mail
// account and reports a preview URL for each delivered message.
package relay

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// Sender delivers a single mail and returns a preview URL when the
// backing account provides one.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) (previewURL string, err error)
}

// Register wires up the relay routes on the provided Echo instance.
func Register(e *echo.Echo, sender Sender, logger *log.Logger) {
	e.POST("/send-verification", sendVerification(sender, logger))
	e.POST("/send-reminder", sendReminder(sender, logger))
	e.GET("/healthz", healthz())
}

type verificationRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type reminderRequest struct {
	Email    string          `json:"email"`
	Reminder *reminderFields `json:"reminder"`
}

type reminderFields struct {
	Text    string `json:"text"`
	Date    string `json:"date,omitempty"`
	Time    string `json:"time"`
	Message string `json:"message,omitempty"`
}

type sendResponse struct {
	Success    bool   `json:"success"`
	PreviewURL string `json:"previewUrl"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

func sendVerification(sender Sender, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req verificationRequest
		if err := c.Bind(&req); err != nil || req.Email == "" || req.Code == "" {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Email and code required"})
		}

		previewURL, err := sender.Send(c.Request().Context(),
			req.Email,
			"Your Verification Code",
			"Your verification code is: "+req.Code,
			"<p>Your verification code is: <b>"+req.Code+"</b></p>",
		)
		if err != nil {
			logger.WithError(err).Error("verification mail failed")
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to send email"})
		}

		logger.WithField("to", req.Email).Info("verification mail sent")
		return c.JSON(http.StatusOK, sendResponse{Success: true, PreviewURL: previewURL})
	}
}

func sendReminder(sender Sender, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req reminderRequest
		if err := c.Bind(&req); err != nil || req.Email == "" || req.Reminder == nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "Email and reminder details required"})
		}

		r := req.Reminder
		text := "This is a reminder for: " + r.Text + " scheduled at " + r.Time
		html := "<h3>Reminder: " + r.Text + "</h3><p>Time: " + r.Time + "</p>"
		if r.Message != "" {
			text += "\n\n" + r.Message
			html += "<p>" + r.Message + "</p>"
		}

		previewURL, err := sender.Send(c.Request().Context(),
			req.Email,
			"Reminder: "+r.Text,
			text,
			html,
		)
		if err != nil {
			logger.WithError(err).Error("reminder mail failed")
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to send reminder"})
		}

		logger.WithFields(log.Fields{"to": req.Email, "reminder": r.Text}).Info("reminder mail sent")
		return c.JSON(http.StatusOK, sendResponse{Success: true, PreviewURL: previewURL})
	}
}
