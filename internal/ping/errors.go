package ping

import (
	"context"
	"errors"
	"net"

	"pingclock/internal/models"
)

var (
	// ErrResolve reports that the host name could not be resolved
	ErrResolve = errors.New("name resolution failed")
	// ErrUnreachable reports that the host did not answer in time
	ErrUnreachable = errors.New("host unreachable")
)

// Classify maps a probe error onto the failure taxonomy.
// Timeouts win over resolution errors so a slow DNS server reads as a timeout.
func Classify(err error) models.Failure {
	if err == nil {
		return models.FailureNone
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrUnreachable) {
		return models.FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return models.FailureTimeout
	}

	if errors.Is(err, ErrResolve) {
		return models.FailureResolve
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return models.FailureResolve
	}
	var addrErr *net.AddrError
	if errors.As(err, &addrErr) {
		return models.FailureResolve
	}

	return models.FailureIO
}
