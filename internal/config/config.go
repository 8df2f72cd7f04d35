package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownSource               = errors.New("unknown questions source")
	ErrMissingQuestionsURL         = errors.New("questions.url is required for the http source")
	ErrUnknownCommand              = errors.New("unknown command")
)

// Question source kinds.
const (
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

// Commands.
const (
	CommandServe = "serve"
	CommandSeed  = "seed"
)

// Config holds application configuration loaded from files, environment variables and flags.
type Config struct {
	Env              string    `mapstructure:"env"`       // current application environment (local, dev, production etc)
	Command          string    `mapstructure:"-"`         // serve or seed, from the first positional argument
	TelegramAPIToken string    `mapstructure:"-"`         // Telegram API token loaded from environment, empty disables the bot
	HTTP             HTTP      `mapstructure:"http"`      // web surface
	Questions        Questions `mapstructure:"questions"` // where questions come from
	Sessions         Sessions  `mapstructure:"sessions"`  // in-memory session housekeeping
	DB               DB        `mapstructure:"database"`  // database configuration section
}

type HTTP struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Questions struct {
	Source  string        `mapstructure:"source"`  // file, http or postgres
	Path    string        `mapstructure:"path"`    // JSON file, used by the file source and by seed
	URL     string        `mapstructure:"url"`     // JSON resource, used by the http source
	Timeout time.Duration `mapstructure:"timeout"` // http source request timeout
}

type Sessions struct {
	IdleTimeout   time.Duration `mapstructure:"idle_timeout"`   // sessions untouched for longer are dropped
	PruneSchedule string        `mapstructure:"prune_schedule"` // cron expression of the pruning job
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// TelegramEnabled reports whether the Telegram surface should run.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramAPIToken != ""
}

// Load reads configuration from the .env file, config files, environment
// variables and the command line args (without the program name).
func Load(args []string) (*Config, error) {
	// A missing .env file is fine: variables may come from the real environment.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", "10s")
	v.SetDefault("http.write_timeout", "10s")
	v.SetDefault("http.shutdown_timeout", "5s")
	v.SetDefault("questions.source", SourceFile)
	v.SetDefault("questions.path", "questions.json")
	v.SetDefault("questions.timeout", "5s")
	v.SetDefault("sessions.idle_timeout", "30m")
	v.SetDefault("sessions.prune_schedule", "@every 5m")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Command line flags win over everything else.
	flags := newFlagSet()
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("error binding flags: %w", err)
	}

	if path, _ := flags.GetString("config"); path != "" {
		v.SetConfigFile(path)
	}

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	cfg.Command = CommandServe
	if flags.NArg() > 0 {
		cfg.Command = flags.Arg(0)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("quizz", pflag.ContinueOnError)
	flags.String("config", "", "path to a config file")
	flags.String("http.addr", "", "address of the web surface")
	flags.String("questions.source", "", "questions source: file, http or postgres")
	flags.String("questions.path", "", "path to the questions JSON file")
	flags.String("questions.url", "", "URL of the questions JSON resource")
	return flags
}

func (c *Config) validate() error {
	switch c.Command {
	case CommandServe:
	case CommandSeed:
		if c.DB.URL == "" {
			return fmt.Errorf("seed: %w: DATABASE_URL", ErrMissingEnvironmentVariables)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, c.Command)
	}

	switch c.Questions.Source {
	case SourceFile:
	case SourceHTTP:
		if c.Questions.URL == "" {
			return ErrMissingQuestionsURL
		}
	case SourcePostgres:
		if c.DB.URL == "" {
			return fmt.Errorf("postgres source: %w: DATABASE_URL", ErrMissingEnvironmentVariables)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, c.Questions.Source)
	}

	return nil
}
