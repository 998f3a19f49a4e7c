package notify_test

import (
	"testing"

	"codeberg.org/mutker/hostwatch/internal/config"
	"codeberg.org/mutker/hostwatch/internal/errors"
	"codeberg.org/mutker/hostwatch/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMailerMissingCredentials(t *testing.T) {
	tests := []struct {
		name  string
		creds config.Credentials
	}{
		{"both absent", config.Credentials{}},
		{"password absent", config.Credentials{Address: "monitor@example.com"}},
		{"address absent", config.Credentials{Password: "hunter2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := notify.NewMailer(notify.SMTPConfig{
				Host:        "smtp.gmail.com",
				Port:        465,
				Credentials: tt.creds,
			})
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrMissingCredentials))
			assert.Contains(t, err.Error(), "EMAIL_ADDRESS and EMAIL_PASSWORD")
		})
	}
}

func TestNewMailerCompleteCredentials(t *testing.T) {
	mailer, err := notify.NewMailer(notify.SMTPConfig{
		Host: "smtp.gmail.com",
		Port: 465,
		Credentials: config.Credentials{
			Address:  "monitor@example.com",
			Password: "hunter2",
		},
	})
	require.NoError(t, err)
	assert.NotNil(t, mailer)
}
