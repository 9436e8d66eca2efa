// Package ping implements the reachability probes used by the sampler.
package ping

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"pingclock/internal/models"
)

// Probe methods
const (
	MethodICMP = "icmp"
	MethodExec = "exec"
	MethodTCP  = "tcp"
)

// Options selects and tunes a prober
type Options struct {
	Method      string
	TCPPort     int
	PayloadSize uint16
}

// New builds the prober for opts.Method. When raw ICMP sockets cannot be
// opened it falls back to the system ping binary, then to TCP.
// The returned close func releases any sockets.
func New(opts Options) (models.Prober, func() error, error) {
	noop := func() error { return nil }

	switch opts.Method {
	case MethodICMP, "":
		p, err := NewICMP(opts.PayloadSize)
		if err == nil {
			return p, p.Close, nil
		}
		log.Warnf("ICMP probing unavailable (%v), falling back to system ping", err)
		fallthrough
	case MethodExec:
		p, err := NewExec()
		if err == nil {
			return p, noop, nil
		}
		if opts.Method == MethodExec {
			return nil, nil, err
		}
		log.Warnf("System ping unavailable (%v), falling back to TCP port %d", err, opts.TCPPort)
		return NewTCP(opts.TCPPort), noop, nil
	case MethodTCP:
		return NewTCP(opts.TCPPort), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown probe method %q", opts.Method)
	}
}
