// Package config handles aocvm.toml run configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Modes for each machine kind.
var (
	DeviceModes     = []string{"run", "halting", "samples"}
	DuetModes       = []string{"pair", "sound", "coprocessor"}
	AssembunnyModes = []string{"run", "clock"}
)

// Config is a complete run configuration.
type Config struct {
	Verbose    bool       `toml:"verbose"`
	Device     Device     `toml:"device"`
	Duet       Duet       `toml:"duet"`
	Assembunny Assembunny `toml:"assembunny"`
}

// Device configures the register machine.
type Device struct {
	Mode            string   `toml:"mode"`
	Registers       []uint64 `toml:"registers"`        // Initial register values.
	HaltingIp       uint64   `toml:"halting_ip"`       // Instruction watched in halting mode.
	HaltingRegister int      `toml:"halting_register"` // Register sampled in halting mode.
	Limit           int      `toml:"limit"`            // Most halting values to collect.
}

// Duet configures the dual program machine.
type Duet struct {
	Mode string `toml:"mode"`
}

// Assembunny configures the self-modifying machine.
type Assembunny struct {
	Mode       string  `toml:"mode"`
	Registers  []int64 `toml:"registers"`   // Initial register values.
	ClockLimit int64   `toml:"clock_limit"` // Search bound in clock mode.
	MaxTicks   int     `toml:"max_ticks"`   // 0 is unlimited.
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Device: Device{
			Mode:  "run",
			Limit: 1 << 16,
		},
		Duet: Duet{
			Mode: "pair",
		},
		Assembunny: Assembunny{
			Mode:       "run",
			ClockLimit: 1 << 16,
		},
	}
}

// Parse decodes TOML text over the defaults.
func Parse(text string) (cfg *Config, err error) {
	cfg = Default()

	md, err := toml.Decode(text, cfg)
	if err != nil {
		cfg = nil
		return
	}

	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		cfg = nil
		err = fmt.Errorf("%w: %v", ErrKeyUnknown, strings.Join(keys, ", "))
		return
	}

	err = cfg.Validate()
	if err != nil {
		cfg = nil
	}

	return
}

// Load reads a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks modes and register files.
func (cfg *Config) Validate() (err error) {
	var errs []error

	check := func(kind string, mode string, modes []string) {
		if !slices.Contains(modes, mode) {
			errs = append(errs, fmt.Errorf("%w: %v.mode = %q", ErrModeInvalid, kind, mode))
		}
	}

	check("device", cfg.Device.Mode, DeviceModes)
	check("duet", cfg.Duet.Mode, DuetModes)
	check("assembunny", cfg.Assembunny.Mode, AssembunnyModes)

	if len(cfg.Device.Registers) > 6 {
		errs = append(errs, fmt.Errorf("%w: device.registers", ErrRegisterCount))
	}
	if cfg.Device.HaltingRegister < 0 || cfg.Device.HaltingRegister >= 6 {
		errs = append(errs, fmt.Errorf("%w: device.halting_register = %d", ErrRegisterInvalid, cfg.Device.HaltingRegister))
	}
	if len(cfg.Assembunny.Registers) > 4 {
		errs = append(errs, fmt.Errorf("%w: assembunny.registers", ErrRegisterCount))
	}

	return errors.Join(errs...)
}
