package config

import (
	"os"
	"strings"

	"codeberg.org/mutker/hostwatch/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Tool selects which CLI surface a flag set is built for
type Tool string

const (
	ToolMonitor Tool = "hostwatch"
	ToolAnalyze Tool = "logscan"
)

const (
	DefaultLogLevel    = "info"
	defaultHistoryPath = "summary.json"
	defaultSMTPHost    = "smtp.gmail.com"
	defaultSMTPPort    = 465
	defaultService     = "sshd"
	defaultDBPath      = "/var/lib/hostwatch/metrics.db"

	configEnvVar = "HOSTWATCH_CONFIG"
)

// DefaultKeywords is the keyword set shared by both tools
var DefaultKeywords = []string{"warn", "critical", "error", "fail"}

// Credentials carry the environment-provided email account
type Credentials struct {
	Address  string
	Password string
}

// Complete reports whether both credentials are present
func (c Credentials) Complete() bool {
	return c.Address != "" && c.Password != ""
}

type Config struct {
	Keywords    []string
	SaveSummary bool
	Beep        bool
	Email       bool
	Recipient   string
	File        string
	Service     string
	Record      bool
	Database    string
	HistoryPath string
	LogLevel    string
	SMTPHost    string
	SMTPPort    int
	Credentials Credentials
}

// Load parses flags, the optional TOML config file, and the environment
// into a Config for the given tool. Explicit flags override file values.
func Load(tool Tool, args []string) (*Config, error) {
	errFactory := errors.New()

	fs := pflag.NewFlagSet(string(tool), pflag.ContinueOnError)
	fs.StringSliceP("keywords", "k", DefaultKeywords, "Alert keywords")
	fs.Bool("save-summary", false, "Save summary to JSON history")
	fs.Bool("get-beep", false, "Beep if alerts are found")
	fs.Bool("get-email", false, "Send summary via email")
	fs.String("recipient", "", "Email recipient")
	fs.String("history", defaultHistoryPath, "Path to the JSON history file")
	fs.String("log-level", DefaultLogLevel, "Log level (debug, info, warn, error)")

	switch tool {
	case ToolMonitor:
		fs.String("service", defaultService, "Service to check with the init system")
		fs.Bool("record", false, "Record the snapshot to the telemetry database")
		fs.String("database", defaultDBPath, "Path to the telemetry database")
	case ToolAnalyze:
		fs.StringP("file", "f", "", "Path to log file")
	}

	if err := fs.Parse(args); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidArgument, err)
	}

	v := viper.New()
	v.SetDefault("keywords", DefaultKeywords)
	v.SetDefault("history", defaultHistoryPath)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("service", defaultService)
	v.SetDefault("database", defaultDBPath)
	v.SetDefault("smtp_host", defaultSMTPHost)
	v.SetDefault("smtp_port", defaultSMTPPort)

	v.SetConfigName("hostwatch")
	v.SetConfigType("toml")
	if path := os.Getenv(configEnvVar); path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("/etc")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err).
				WithMessage("Failed to read config file")
		}
	}

	// Credentials come from the environment only, never from the file
	if err := v.BindEnv("email_address", "EMAIL_ADDRESS"); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}
	if err := v.BindEnv("email_password", "EMAIL_PASSWORD"); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	// Explicit flags override config file values
	fs.Visit(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		switch f.Value.Type() {
		case "stringSlice":
			if value, err := fs.GetStringSlice(f.Name); err == nil {
				v.Set(key, value)
			}
		case "bool":
			if value, err := fs.GetBool(f.Name); err == nil {
				v.Set(key, value)
			}
		default:
			v.Set(key, f.Value.String())
		}
	})

	cfg := &Config{
		Keywords:    v.GetStringSlice("keywords"),
		SaveSummary: v.GetBool("save_summary"),
		Beep:        v.GetBool("get_beep"),
		Email:       v.GetBool("get_email"),
		Recipient:   v.GetString("recipient"),
		File:        v.GetString("file"),
		Service:     v.GetString("service"),
		Record:      v.GetBool("record"),
		Database:    v.GetString("database"),
		HistoryPath: v.GetString("history"),
		LogLevel:    v.GetString("log_level"),
		SMTPHost:    v.GetString("smtp_host"),
		SMTPPort:    v.GetInt("smtp_port"),
		Credentials: Credentials{
			Address:  v.GetString("email_address"),
			Password: v.GetString("email_password"),
		},
	}

	if err := cfg.validate(tool); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate(tool Tool) error {
	errFactory := errors.New()

	if !isValidLogLevel(c.LogLevel) {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	if c.Email && c.Recipient == "" {
		return errFactory.WithMessage(errors.ErrInvalidArgument,
			"--recipient is required when using --get-email")
	}

	if tool == ToolAnalyze && c.File == "" {
		return errFactory.WithMessage(errors.ErrInvalidArgument,
			"--file is required")
	}

	return nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "warning", "error":
		return true
	default:
		return false
	}
}
