package main

import (
	"embed"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"pingclock/internal/config"
)

//go:embed static/*
var staticFiles embed.FS

var version = "dev"

func main() {
	// .env only feeds the Envar lookups below
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("Could not load .env file: %v", err)
	}

	app := kingpin.New("pingclock", "Live reachability and latency chart for one host")
	app.Version(version)
	app.HelpFlag.Short('h')

	configPath := app.Flag("config", "Path to YAML config file").Envar("PINGCLOCK_CONFIG").String()
	logLevel := app.Flag("log-level", "Only log messages with the given severity or above").Envar("PINGCLOCK_LOG_LEVEL").Enum("debug", "info", "warn", "error")

	serveCmd := app.Command("serve", "Run the sampler and the web interface").Default()
	serveFlags := config.RegisterFlags(serveCmd)

	reportCmd := app.Command("report", "Render a journaled session into charts and a text listing")
	reportJournal := reportCmd.Flag("journal", "SQLite journal path").Envar("PINGCLOCK_JOURNAL").String()
	reportOut := reportCmd.Flag("out", "Directory the report is written under").Default("reports").String()
	reportSession := reportCmd.Flag("session", "Session id (latest when empty)").String()

	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	overrides := func(cfg *config.Config) {
		if *logLevel != "" {
			cfg.LogLevel = *logLevel
		}
		if cmd == serveCmd.FullCommand() {
			serveFlags.Apply(cfg)
		}
		if *reportJournal != "" {
			cfg.JournalPath = *reportJournal
		}
	}

	cfg, err := loadConfig(*configPath, overrides)
	if err != nil {
		kingpin.FatalUsage("%v", err)
	}
	setLogLevel(cfg.LogLevel)

	switch cmd {
	case serveCmd.FullCommand():
		err = runServe(cfg, *configPath, overrides)
	case reportCmd.FullCommand():
		err = runReport(cfg, *reportOut, *reportSession)
	}
	if err != nil {
		log.Errorln(err)
		os.Exit(1)
	}
}

// loadConfig layers the config file and command-line overrides over the
// defaults and validates the result
func loadConfig(path string, overrides func(*config.Config)) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	overrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func setLogLevel(l string) {
	switch l {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}
