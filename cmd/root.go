package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/lepinkainen/tmdbkit/internal/config"
	apperrors "github.com/lepinkainen/tmdbkit/internal/errors"
	"github.com/lepinkainen/tmdbkit/tmdb"
)

// CLI represents the complete command structure of tmdbkit
type CLI struct {
	Globals

	Search   SearchCmd   `cmd:"" help:"Search movies, shows and people"`
	Discover DiscoverCmd `cmd:"" help:"Discover movies or shows by filters"`
	Movie    MovieCmd    `cmd:"" help:"Show movie details"`
	Show     ShowCmd     `cmd:"" help:"Show TV show, season or episode details"`
	Person   PersonCmd   `cmd:"" help:"Show person details or credits"`
	Find     FindCmd     `cmd:"" help:"Find items by an external id"`
	Genres   GenresCmd   `cmd:"" help:"List genres"`
	Image    ImageCmd    `cmd:"" help:"Download an image"`
	Login    LoginCmd    `cmd:"" help:"Open a user or guest session"`
	Token    TokenCmd    `cmd:"" help:"Inspect a v4 read access token"`
}

// Globals are the flags shared by every command. Flags override the config
// file and environment.
type Globals struct {
	Config             string `help:"Path to a config file" type:"path"`
	APIKey             string `name:"api-key" help:"TMDB v3 API key" env:"TMDB_API_KEY"`
	AccessToken        string `name:"access-token" help:"TMDB v4 read access token" env:"TMDB_ACCESS_TOKEN"`
	Language           string `short:"l" help:"Response language, e.g. en-US"`
	Output             string `short:"o" help:"Output format: table, json or yaml"`
	Debug              bool   `help:"Enable debug logging"`
	MaxThrottleRetries int    `name:"max-throttle-retries" help:"Give up after this many 429 responses (0 = never)" default:"-1"`
	Rate               int    `help:"Client-side requests per second (0 = unpaced)"`
}

// app carries what commands need at run time. Kong binds it into the Run
// methods.
type app struct {
	ctx    context.Context
	client *tmdb.Client
	out    *Printer
	logger *slog.Logger
}

// Execute runs the CLI and exits with a status derived from the error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("tmdbkit"),
		kong.Description("A command line client for TheMovieDB."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return apperrors.ExitFailure
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return apperrors.ExitConfig
	}

	logger := newLogger(stderr, cli.Debug)

	if err := loadConfig(cli.Config); err != nil {
		logger.Error("Failed to load config", "error", err)
		return apperrors.ExitCode(err)
	}
	applyGlobals(&cli.Globals)

	printer, err := NewPrinter(stdout, config.OutputFormat)
	if err != nil {
		logger.Error("Invalid output format", "error", err)
		return apperrors.ExitCode(err)
	}

	a := &app{
		ctx:    ctx,
		client: config.NewClient(logger),
		out:    printer,
		logger: logger,
	}

	err = kctx.Run(a)
	if err != nil && !apperrors.IsStopProcessingError(err) {
		logger.Error("Command failed", "command", kctx.Command(), "error", err)
	}
	return apperrors.ExitCode(err)
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(humanlog.NewHandler(w, &humanlog.Options{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// loadConfig reads .env, the config file and the environment into the
// config package. A missing config file is not an error.
func loadConfig(path string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	if err := viper.BindEnv("tmdb.api_key", "TMDB_API_KEY"); err != nil {
		return err
	}
	if err := viper.BindEnv("tmdb.access_token", "TMDB_ACCESS_TOKEN"); err != nil {
		return err
	}

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "tmdbkit"))
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return apperrors.NewConfigError("file", err.Error())
		}
	}

	config.InitConfig()
	return nil
}

func applyGlobals(g *Globals) {
	if g.APIKey != "" {
		config.APIKey = g.APIKey
	}
	if g.AccessToken != "" {
		config.AccessToken = g.AccessToken
	}
	if g.Language != "" {
		config.Language = g.Language
	}
	if g.Output != "" {
		config.OutputFormat = g.Output
	}
	if g.MaxThrottleRetries >= 0 {
		config.MaxThrottleRetries = g.MaxThrottleRetries
	}
	if g.Rate > 0 {
		config.RequestsPerSecond = g.Rate
	}
}

// requireCredentials fails commands that call the API without a key or token.
func requireCredentials() error {
	if !config.HasCredentials() {
		return apperrors.NewConfigError("tmdb.api_key", "set TMDB_API_KEY, --api-key or tmdb.api_key in config.yaml")
	}
	return nil
}
