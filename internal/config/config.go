package config

import (
	"os"

	"codeberg.org/mutker/amdsmictl/internal/amdsmi"
	"codeberg.org/mutker/amdsmictl/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel = "info"

	defaultInterval    = 5
	defaultTelemetryDB = "/var/lib/amdsmictl/telemetry.db"

	// envConfigPath overrides the config file location, mainly for tests
	envConfigPath = "AMDSMICTL_CONFIG"
)

// hardwareClasses maps config names to the native init flags they select
var hardwareClasses = map[string]amdsmi.InitFlags{
	"all":          amdsmi.InitAllProcessors,
	"amd_cpus":     amdsmi.InitAMDCPUs,
	"amd_gpus":     amdsmi.InitAMDGPUs,
	"amd_apus":     amdsmi.InitAMDAPUs,
	"non_amd_cpus": amdsmi.InitNonAMDCPUs,
	"non_amd_gpus": amdsmi.InitNonAMDGPUs,
}

type Config struct {
	Interval    int
	Hardware    []string
	Debug       bool
	Verbose     bool
	LogLevel    string `mapstructure:"log_level"`
	Telemetry   bool
	TelemetryDB string `mapstructure:"database"`
}

func defaultHardware() []string {
	return []string{"amd_gpus"}
}

// Load reads configuration from /etc/amdsmictl.toml (or the file named by
// AMDSMICTL_CONFIG), with command line flags taking precedence over file
// values.
func Load() (*Config, error) {
	errFactory := errors.New()

	fs := pflag.NewFlagSet("amdsmictl", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Int("interval", defaultInterval, "Seconds between telemetry samples")
	fs.StringSlice("hardware", defaultHardware(), "Hardware classes to monitor")
	fs.Bool("debug", false, "Enable debugging mode")
	fs.Bool("verbose", false, "Enable verbose logging")
	fs.Bool("telemetry", false, "Persist telemetry samples to the database")
	fs.String("database", defaultTelemetryDB, "Path to the telemetry database")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v := viper.New()
	v.SetDefault("interval", defaultInterval)
	v.SetDefault("hardware", defaultHardware())
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("database", defaultTelemetryDB)

	if err := v.BindPFlags(fs); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	if path := os.Getenv(envConfigPath); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("amdsmictl")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrReadConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Interval <= 0 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "interval must be positive")
	}

	if len(c.Hardware) == 0 {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "at least one hardware class is required")
	}

	for _, class := range c.Hardware {
		if _, ok := hardwareClasses[class]; !ok {
			return errFactory.WithData(errors.ErrInvalidConfig, class)
		}
	}

	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	if c.Telemetry && c.TelemetryDB == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "telemetry requires a database path")
	}

	return nil
}

// InitFlags returns the union of native init flags selected by the
// configured hardware classes. Call Validate first; unknown classes
// contribute nothing here.
func (c *Config) InitFlags() amdsmi.InitFlags {
	var flags amdsmi.InitFlags
	for _, class := range c.Hardware {
		flags |= hardwareClasses[class]
	}

	return flags
}
