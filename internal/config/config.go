package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for pingclock
type Config struct {
	Host        string        `yaml:"host" validate:"required,hostname_rfc1123|ip"`
	Interval    time.Duration `yaml:"interval" validate:"gte=100ms,lte=24h"`
	Timeout     time.Duration `yaml:"timeout" validate:"gt=0"`
	Method      string        `yaml:"method" validate:"oneof=icmp exec tcp"`
	TCPPort     int           `yaml:"tcp_port" validate:"min=1,max=65535"`
	PayloadSize uint16        `yaml:"payload_size" validate:"lte=65500"`
	LatencyMode string        `yaml:"latency" validate:"oneof=wall reported"`
	Autostart   bool          `yaml:"autostart"`
	Listen      string        `yaml:"listen" validate:"required"`
	JournalPath string        `yaml:"journal"`
	Retention   time.Duration `yaml:"retention" validate:"gte=0"`
	LogLevel    string        `yaml:"log_level" validate:"oneof=debug info warn error"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Host:        "www.baidu.com",
		Interval:    time.Second,
		Timeout:     5 * time.Second,
		Method:      "icmp",
		TCPPort:     80,
		PayloadSize: 56,
		LatencyMode: "wall",
		Listen:      ":8080",
		Retention:   7 * 24 * time.Hour,
		LogLevel:    "info",
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if msgs := Messages(err); len(msgs) > 0 {
			return fmt.Errorf("invalid configuration: %s", joinMessages(msgs))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// FromYAML decodes YAML from r on top of base. Keys absent from the
// document keep base's values; unknown keys are an error.
func FromYAML(r io.Reader, base Config) (Config, error) {
	cfg := base
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return base, nil
		}
		return base, fmt.Errorf("cannot parse config: %w", err)
	}
	return cfg, nil
}

// Load reads the YAML file at path over the defaults.
// An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("cannot load config file: %w", err)
	}
	defer f.Close()

	return FromYAML(f, cfg)
}
