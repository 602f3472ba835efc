// Package config loads msfclock's settings from an optional YAML file,
// following the teacher's convention that command-line flags always win
// over the config file, which in turn wins over built-in defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the flat settings struct for one msfclock invocation.
type Config struct {
	SamplePeriodMs int    `yaml:"sample_period_ms"`
	Backend        string `yaml:"backend"` // "gpio" or "serial"

	GPIOChip      string `yaml:"gpio_chip"`
	GPIOLine      int    `yaml:"gpio_line"`
	GPIOActiveLow bool   `yaml:"gpio_active_low"`

	SerialDevice string `yaml:"serial_device"`
	SerialLine   string `yaml:"serial_line"` // "dcd" or "cts"

	Advertise     bool   `yaml:"advertise"`
	AdvertiseName string `yaml:"advertise_name"`
	AdvertisePort int    `yaml:"advertise_port"`

	RigModel int    `yaml:"rig_model"`
	RigPort  string `yaml:"rig_port"`
}

// Default returns the built-in defaults, matching DefaultSamplePeriodMs in
// the msf package.
func Default() Config {
	return Config{
		SamplePeriodMs: 10,
		Backend:        "gpio",
		GPIOChip:       "gpiochip0",
		GPIOLine:       17,
		SerialLine:     "dcd",
		AdvertiseName:  "msftime",
		AdvertisePort:  5900,
	}
}

// Load reads and merges a YAML config file over the defaults. A missing
// path is not an error; Default() is returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}
