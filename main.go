package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	charmlog "github.com/charmbracelet/log"

	app "github.com/rocketscienceinc/tictactoe/internal"
	"github.com/rocketscienceinc/tictactoe/internal/config"
)

var version = "dev"

type CLI struct {
	Config  string           `short:"c" help:"Path to the config file." default:"config.yml" type:"path"`
	Version kong.VersionFlag `help:"Print version and exit."`
}

// main - is the entry point of the application. It initializes the configuration, logger, and runs the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	var cli CLI
	kong.Parse(&cli,
		kong.Name("tictactoe"),
		kong.Description("Two players, one terminal, one board."),
		kong.Vars{"version": version},
	)

	conf := config.MustLoad(cli.Config)

	logFile, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		panic(fmt.Errorf("failed to open log file: %w", err))
	}
	defer logFile.Close()

	logger := initLogger(conf, logFile)

	if err = app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initialize logger. The terminal belongs to the board, so records go to w.
func initLogger(conf *config.Config, w io.Writer) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	case "info":
		level = slog.LevelInfo
	}

	if conf.LogFormat == "text" {
		return slog.New(charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.Level(level),
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Prefix:          "TICTACTOE",
		}))
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
