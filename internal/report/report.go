// Package report runs the optional side effects of a run: persisting
// the history record, emailing the summary and sounding the alert.
// Each side effect is contained; one failing never blocks the others.
package report

import (
	"fmt"

	"codeberg.org/mutker/hostwatch/internal/errors"
	"codeberg.org/mutker/hostwatch/internal/history"
	"codeberg.org/mutker/hostwatch/internal/logger"
	"codeberg.org/mutker/hostwatch/internal/notify"
)

const (
	AlertSubject      = "🚨 System Alert Report"
	LogSummarySubject = "🚨 Log Summary Report"
)

// Reporter holds the constructed collaborators. A nil mailer means
// credentials were absent; email requests are then skipped with a
// printed marker instead of failing the run.
type Reporter struct {
	store  *history.Store
	mailer notify.Mailer
	beeper notify.Beeper
}

func New(store *history.Store, mailer notify.Mailer, beeper notify.Beeper) *Reporter {
	return &Reporter{store: store, mailer: mailer, beeper: beeper}
}

// Request describes one run's requested side effects
type Request struct {
	Summary     any
	LogFile     string
	Alerts      []string
	AlertsFound bool

	Persist   bool
	Email     bool
	Subject   string
	Body      string
	Recipient string
	Beep      bool
}

// Run executes the requested side effects in a fixed order. Failures
// are printed with their code marker and never propagate.
func (r *Reporter) Run(req Request) {
	if req.Persist {
		r.persist(req)
	}
	if req.Email {
		r.email(req)
	}
	if req.Beep && req.AlertsFound {
		r.beep()
	}
}

func (r *Reporter) persist(req Request) {
	if err := r.store.Append(req.Summary, req.LogFile, req.Alerts); err != nil {
		fmt.Printf("❌ Failed to save summary: %v\n", err)
		logger.Error().
			Str("error_code", string(errors.CodeOf(err))).
			Err(err).
			Msg("Persisting history record failed")
		return
	}
	fmt.Printf("Summary saved to %s\n", r.store.Path())
}

func (r *Reporter) email(req Request) {
	if r.mailer == nil {
		fmt.Println("❌ EMAIL_ADDRESS and EMAIL_PASSWORD must be set in environment.")
		logger.Warn().
			Str("error_code", string(errors.ErrMissingCredentials)).
			Msg("Email requested but credentials are missing, skipping")
		return
	}
	if err := r.mailer.Send(req.Subject, req.Body, req.Recipient); err != nil {
		fmt.Printf("❌ Failed to send email: %v\n", err)
		logger.Error().
			Str("error_code", string(errors.ErrDeliveryFailed)).
			Err(err).
			Msg("Email delivery failed")
		return
	}
	fmt.Printf("📧 Email sent to %s\n", req.Recipient)
}

func (r *Reporter) beep() {
	if err := r.beeper.Beep(); err != nil {
		logger.Warn().Err(err).Msg("Audible alert failed")
	}
}
