package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"

	"pingclock/internal/config"
	"pingclock/internal/monitor"
	"pingclock/internal/web"
)

type instantProber struct{}

func (instantProber) Probe(context.Context, string) (time.Duration, error) {
	return time.Millisecond, nil
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pingclock.yaml")
	writeConfig(t, path, "host: file.example\ninterval: 2s\n")

	cfg, err := loadConfig(path, func(c *config.Config) { c.Interval = 3 * time.Second })
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Host != "file.example" || cfg.Interval != 3*time.Second {
		t.Errorf("cfg = %+v", cfg)
	}

	if _, err := loadConfig(path, func(c *config.Config) { c.Interval = time.Millisecond }); err == nil {
		t.Error("invalid override accepted")
	}
}

func TestSetLogLevel(t *testing.T) {
	defer log.SetLevel(log.GetLevel())

	tests := map[string]log.Level{
		"debug": log.DebugLevel,
		"warn":  log.WarnLevel,
		"error": log.ErrorLevel,
		"info":  log.InfoLevel,
		"":      log.InfoLevel,
	}
	for in, want := range tests {
		setLogLevel(in)
		if got := log.GetLevel(); got != want {
			t.Errorf("setLogLevel(%q) -> %v, want %v", in, got, want)
		}
	}
}

func TestReloadRestartsChangedSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pingclock.yaml")
	writeConfig(t, path, "host: a.example\ninterval: 1s\n")
	noOverrides := func(*config.Config) {}

	cfg, err := loadConfig(path, noOverrides)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	mon := monitor.New(ctx, instantProber{})
	t.Cleanup(func() {
		cancel()
		mon.Stop()
		mon.Wait()
	})
	srv := web.New(mon, "127.0.0.1:0", web.Defaults{Host: cfg.Host, Interval: cfg.Interval}, nil, nil)
	rl := &reloader{current: cfg, path: path, overrides: noOverrides, mon: mon, srv: srv}

	if err := mon.Start(cfg.Host, cfg.Interval); err != nil {
		t.Fatal(err)
	}
	first := mon.Snapshot().SessionID

	// unrelated change keeps the session
	writeConfig(t, path, "host: a.example\ninterval: 1s\nlog_level: info\n")
	rl.reload()
	if got := mon.Snapshot().SessionID; got != first {
		t.Fatalf("session restarted on unrelated change")
	}

	writeConfig(t, path, "host: b.example\ninterval: 500ms\n")
	rl.reload()
	snap := mon.Snapshot()
	if !snap.Running || snap.SessionID == first || snap.Host != "b.example" || snap.Interval != 500*time.Millisecond {
		t.Errorf("after reload: %+v", snap)
	}

	// invalid files are ignored
	writeConfig(t, path, "host: \"\"\n")
	rl.reload()
	if mon.Snapshot().Host != "b.example" {
		t.Errorf("invalid config applied")
	}
}

func TestDisplayAddr(t *testing.T) {
	if got := displayAddr(":8080"); got != "localhost:8080" {
		t.Errorf("displayAddr(:8080) = %q", got)
	}
	if got := displayAddr("0.0.0.0:9000"); got != "0.0.0.0:9000" {
		t.Errorf("displayAddr = %q", got)
	}
}

func TestWatchConfigFailureIsNotFatal(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone", "pingclock.yaml")

	done := make(chan struct{})
	go func() {
		watchConfig(context.Background(), missing, func() {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watchConfig did not return for an unwatchable path")
	}
}
