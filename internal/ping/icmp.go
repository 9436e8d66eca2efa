package ping

import (
	"context"
	"fmt"
	"net"
	"time"

	goping "github.com/digineo/go-ping"
)

// ICMPProber sends ICMP echo requests over raw sockets.
// It needs CAP_NET_RAW (or root) on most systems.
type ICMPProber struct {
	pinger   *goping.Pinger
	resolver resolver
	has4     bool
	has6     bool
}

// NewICMP opens the ICMP sockets for every address family the host supports
func NewICMP(payloadSize uint16) (*ICMPProber, error) {
	var bind4, bind6 string
	if ln, err := net.Listen("tcp4", "127.0.0.1:0"); err == nil {
		// ipv4 enabled
		ln.Close()
		bind4 = "0.0.0.0"
	}
	if ln, err := net.Listen("tcp6", "[::1]:0"); err == nil {
		// ipv6 enabled
		ln.Close()
		bind6 = "::"
	}

	pinger, err := goping.New(bind4, bind6)
	if err != nil {
		return nil, fmt.Errorf("cannot open icmp sockets: %w", err)
	}
	if payloadSize > 0 && pinger.PayloadSize() != payloadSize {
		pinger.SetPayloadSize(payloadSize)
	}

	return &ICMPProber{
		pinger:   pinger,
		resolver: net.DefaultResolver,
		has4:     bind4 != "",
		has6:     bind6 != "",
	}, nil
}

// Probe resolves host and waits for a single echo reply
func (p *ICMPProber) Probe(ctx context.Context, host string) (time.Duration, error) {
	addr, err := resolveHost(ctx, p.resolver, host, p.has4, p.has6)
	if err != nil {
		return 0, err
	}

	rtt, err := p.pinger.PingContext(ctx, &addr)
	if err != nil {
		return 0, fmt.Errorf("echo %s (%s): %w", host, addr.String(), err)
	}
	return rtt, nil
}

// Close releases the raw sockets
func (p *ICMPProber) Close() error {
	p.pinger.Close()
	return nil
}
