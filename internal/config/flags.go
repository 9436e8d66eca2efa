package config

import (
	"strconv"
	"time"

	"github.com/alecthomas/kingpin/v2"
)

// Flags holds command-line overrides. Unset flags leave the config alone.
type Flags struct {
	host        *string
	interval    *time.Duration
	timeout     *time.Duration
	method      *string
	tcpPort     *int
	latencyMode *string
	autostart   optionalBool
	listen      *string
	journal     *string
	retention   *time.Duration
}

// RegisterFlags declares the sampler and server flags on cmd
func RegisterFlags(cmd *kingpin.CmdClause) *Flags {
	f := &Flags{
		host:        cmd.Flag("host", "Host to probe").Envar("PINGCLOCK_HOST").String(),
		interval:    cmd.Flag("interval", "Probe interval").Envar("PINGCLOCK_INTERVAL").Duration(),
		timeout:     cmd.Flag("timeout", "Probe timeout").Envar("PINGCLOCK_TIMEOUT").Duration(),
		method:      cmd.Flag("method", "Probe method: icmp, exec or tcp").Envar("PINGCLOCK_METHOD").Enum("icmp", "exec", "tcp"),
		tcpPort:     cmd.Flag("tcp-port", "Port used by the tcp probe method").Envar("PINGCLOCK_TCP_PORT").Int(),
		latencyMode: cmd.Flag("latency", "Latency measurement: wall or reported").Envar("PINGCLOCK_LATENCY").Enum("wall", "reported"),
		listen:      cmd.Flag("listen", "Web server listen address").Envar("PINGCLOCK_LISTEN").String(),
		journal:     cmd.Flag("journal", "SQLite journal path (disabled when empty)").Envar("PINGCLOCK_JOURNAL").String(),
		retention:   cmd.Flag("retention", "How long journal rows are kept").Envar("PINGCLOCK_RETENTION").Duration(),
	}
	cmd.Flag("autostart", "Start sampling immediately (--no-autostart overrides the config file)").
		Envar("PINGCLOCK_AUTOSTART").SetValue(&f.autostart)
	return f
}

// Apply copies every flag that was given onto cfg
func (f *Flags) Apply(cfg *Config) {
	if *f.host != "" {
		cfg.Host = *f.host
	}
	if *f.interval != 0 {
		cfg.Interval = *f.interval
	}
	if *f.timeout != 0 {
		cfg.Timeout = *f.timeout
	}
	if *f.method != "" {
		cfg.Method = *f.method
	}
	if *f.tcpPort != 0 {
		cfg.TCPPort = *f.tcpPort
	}
	if *f.latencyMode != "" {
		cfg.LatencyMode = *f.latencyMode
	}
	if f.autostart.set {
		cfg.Autostart = f.autostart.value
	}
	if *f.listen != "" {
		cfg.Listen = *f.listen
	}
	if *f.journal != "" {
		cfg.JournalPath = *f.journal
	}
	if *f.retention != 0 {
		cfg.Retention = *f.retention
	}
}

// optionalBool is a bool flag that remembers whether it was given, so an
// explicit false can override the config file
type optionalBool struct {
	set   bool
	value bool
}

func (b *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	b.set, b.value = true, v
	return nil
}

func (b *optionalBool) String() string { return strconv.FormatBool(b.value) }

func (b *optionalBool) IsBoolFlag() bool { return true }
