package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"pingclock/internal/config"
	"pingclock/internal/database"
	"pingclock/internal/history"
	"pingclock/internal/metrics"
	"pingclock/internal/models"
	"pingclock/internal/monitor"
	"pingclock/internal/ping"
	"pingclock/internal/web"
)

func runServe(cfg config.Config, configPath string, overrides func(*config.Config)) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prober, closeProber, err := ping.New(ping.Options{
		Method:      cfg.Method,
		TCPPort:     cfg.TCPPort,
		PayloadSize: cfg.PayloadSize,
	})
	if err != nil {
		return fmt.Errorf("cannot create prober: %w", err)
	}
	defer closeProber()

	state := monitor.NewState(history.DefaultCapacity)
	collector := metrics.New(state)
	observers := []models.Observer{collector}

	// The journal writer outlives the sampler so the final stop is recorded
	var (
		journal    *database.DB
		writerDone = make(chan struct{})
	)
	writerCtx, stopWriter := context.WithCancel(context.Background())
	defer stopWriter()
	if cfg.JournalPath != "" {
		journal, err = database.Open(cfg.JournalPath)
		if err != nil {
			return fmt.Errorf("cannot open journal: %w", err)
		}
		defer journal.Close()

		writer := database.NewWriter(journal, database.DefaultWriterBuffer)
		observers = append(observers, writer)
		go func() {
			defer close(writerDone)
			writer.Run(writerCtx)
		}()
		log.Infof("Journaling sessions to %s", cfg.JournalPath)
	} else {
		close(writerDone)
	}

	mon := monitor.New(ctx, prober,
		monitor.WithState(state),
		monitor.WithTimeout(cfg.Timeout),
		monitor.WithLatencyMode(cfg.LatencyMode),
		monitor.WithObservers(observers...),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collector,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := web.New(mon, cfg.Listen,
		web.Defaults{Host: cfg.Host, Interval: cfg.Interval},
		staticFiles,
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	)

	if cfg.Autostart {
		if err := mon.Start(cfg.Host, cfg.Interval); err != nil {
			return fmt.Errorf("autostart failed: %w", err)
		}
	}

	grp, groupCtx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		return srv.Run(groupCtx)
	})

	if journal != nil {
		grp.Go(func() error {
			journal.MaintenanceWorker(groupCtx, cfg.Retention)
			return nil
		})
	}

	if configPath != "" {
		rl := &reloader{current: cfg, path: configPath, overrides: overrides, mon: mon, srv: srv}
		grp.Go(func() error {
			watchConfig(groupCtx, configPath, rl.reload)
			return nil
		})
	}

	log.Infof("Web interface available at http://%s", displayAddr(cfg.Listen))

	err = grp.Wait()
	log.Info("Shutting down...")
	stop()
	mon.Stop()
	mon.Wait()
	stopWriter()
	<-writerDone

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// watchConfig runs the config watcher. Losing hot reload is logged and
// does not stop the server.
func watchConfig(ctx context.Context, path string, onChange func()) {
	if err := config.Watch(ctx, path, onChange); err != nil {
		log.Warnf("Config hot reload disabled: %v", err)
	}
}

// reloader applies config file changes to the running process
type reloader struct {
	current   config.Config
	path      string
	overrides func(*config.Config)
	mon       *monitor.Monitor
	srv       *web.Server
}

func (r *reloader) reload() {
	next, err := loadConfig(r.path, r.overrides)
	if err != nil {
		log.Warnf("Ignoring config change: %v", err)
		return
	}
	prev := r.current
	r.current = next

	setLogLevel(next.LogLevel)
	r.srv.SetDefaults(web.Defaults{Host: next.Host, Interval: next.Interval})

	if next.Method != prev.Method || next.Listen != prev.Listen || next.JournalPath != prev.JournalPath || next.Timeout != prev.Timeout {
		log.Warn("Probe method, timeout, listen address and journal changes take effect after a restart")
	}

	snap := r.mon.Snapshot()
	if !snap.Running || (snap.Host == next.Host && snap.Interval == next.Interval) {
		return
	}
	log.Infof("Restarting session: %s every %v", next.Host, next.Interval)
	if err := r.mon.Restart(next.Host, next.Interval); err != nil {
		log.Errorf("Restart after config change failed: %v", err)
	}
}

func displayAddr(listen string) string {
	if len(listen) > 0 && listen[0] == ':' {
		return "localhost" + listen
	}
	return listen
}
