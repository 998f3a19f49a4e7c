package notify

// Mailer delivers a plain-text report to a single recipient
type Mailer interface {
	Send(subject, body, recipient string) error
}

// Beeper triggers the platform audible alert
type Beeper interface {
	Beep() error
}
