package ping

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"
)

var rttPatterns = []*regexp.Regexp{
	regexp.MustCompile(`time[=<]([0-9.]+)\s*ms`),
	regexp.MustCompile(`round-trip min/avg/max(?:/stddev)? = [0-9.]+/([0-9.]+)/`),
	regexp.MustCompile(`rtt min/avg/max/mdev = [0-9.]+/([0-9.]+)/`),
}

// Output fragments printed by ping implementations when the name lookup fails
var resolveMarkers = []string{
	"unknown host",
	"cannot resolve",
	"name or service not known",
	"temporary failure in name resolution",
	"could not find host",
	"no address associated with hostname",
}

// ExecProber runs the system ping binary once per probe
type ExecProber struct {
	path string
}

// NewExec creates a prober using the ping binary found on PATH
func NewExec() (*ExecProber, error) {
	path, err := exec.LookPath("ping")
	if err != nil {
		return nil, fmt.Errorf("ping binary not available: %w", err)
	}
	return &ExecProber{path: path}, nil
}

// Probe sends one echo request through the system ping command
func (p *ExecProber) Probe(ctx context.Context, host string) (time.Duration, error) {
	timeout := 5 * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}

	cmd := exec.CommandContext(ctx, p.path, pingArgs(host, timeout)...)
	output, err := cmd.CombinedOutput()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, fmt.Errorf("ping %s: %w", host, ctxErr)
	}
	if err != nil {
		if looksUnresolved(string(output)) {
			return 0, fmt.Errorf("ping %s: %w", host, ErrResolve)
		}
		if _, isExit := err.(*exec.ExitError); isExit {
			return 0, fmt.Errorf("ping %s: %w", host, ErrUnreachable)
		}
		return 0, fmt.Errorf("ping %s: %w", host, err)
	}

	return parsePingOutput(string(output)), nil
}

// pingArgs builds platform-specific arguments for a single echo request
func pingArgs(host string, timeout time.Duration) []string {
	if runtime.GOOS == "windows" {
		return []string{"-n", "1", "-w", strconv.FormatInt(timeout.Milliseconds(), 10), host}
	}
	// -W takes whole seconds on Linux and the BSDs
	secs := int(math.Ceil(timeout.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return []string{"-c", "1", "-W", strconv.Itoa(secs), host}
}

func looksUnresolved(output string) bool {
	lower := strings.ToLower(output)
	for _, marker := range resolveMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// parsePingOutput parses RTT from ping output.
// Linux/Mac print "time=XX.X ms", Windows "time=XXms" or "time<1ms".
func parsePingOutput(output string) time.Duration {
	for _, re := range rttPatterns {
		matches := re.FindStringSubmatch(output)
		if len(matches) > 1 {
			if ms, err := strconv.ParseFloat(matches[1], 64); err == nil {
				return time.Duration(ms * float64(time.Millisecond))
			}
		}
	}
	return 0
}
