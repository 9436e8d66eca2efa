package ping

import (
	"context"
	"fmt"
	"net"
)

// resolver is the subset of net.Resolver the probers need
type resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// resolveHost returns the first address of host, preferring IPv4 when allowed
func resolveHost(ctx context.Context, r resolver, host string, allow4, allow6 bool) (net.IPAddr, error) {
	if ip := net.ParseIP(host); ip != nil {
		return net.IPAddr{IP: ip}, nil
	}

	addrs, err := r.LookupIPAddr(ctx, host)
	if err != nil {
		if ctx.Err() != nil {
			return net.IPAddr{}, fmt.Errorf("resolve %s: %w", host, ctx.Err())
		}
		return net.IPAddr{}, fmt.Errorf("resolve %s: %w: %w", host, ErrResolve, err)
	}

	var fallback *net.IPAddr
	for i := range addrs {
		is4 := addrs[i].IP.To4() != nil
		if is4 && allow4 {
			return addrs[i], nil
		}
		if !is4 && allow6 && fallback == nil {
			fallback = &addrs[i]
		}
	}
	if fallback != nil {
		return *fallback, nil
	}
	return net.IPAddr{}, fmt.Errorf("resolve %s: %w: no usable address", host, ErrResolve)
}
