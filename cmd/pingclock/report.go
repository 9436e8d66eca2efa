package main

import (
	"errors"
	"fmt"

	"pingclock/internal/config"
	"pingclock/internal/database"
	"pingclock/internal/report"
)

func runReport(cfg config.Config, outputDir, sessionID string) error {
	if cfg.JournalPath == "" {
		return errors.New("report needs a journal: pass --journal or set journal in the config file")
	}

	db, err := database.Open(cfg.JournalPath)
	if err != nil {
		return fmt.Errorf("cannot open journal: %w", err)
	}
	defer db.Close()

	dir, err := report.NewGenerator(db).GenerateReport(outputDir, sessionID)
	if err != nil {
		return err
	}
	fmt.Printf("Report written to %s\n", dir)
	return nil
}
