package telemetry

import "codeberg.org/mutker/amdsmictl/internal/errors"

const (
	defaultDirPerm = 0o755
	defaultDBPath  = "/var/lib/amdsmictl/telemetry.db"

	defaultBatchSize    = 16
	defaultBatchTimeout = 30 // seconds
)

type Config struct {
	Enabled      bool
	DBPath       string
	BatchSize    int
	BatchTimeout int
}

func DefaultConfig() Config {
	return Config{
		Enabled:      false,
		DBPath:       defaultDBPath,
		BatchSize:    defaultBatchSize,
		BatchTimeout: defaultBatchTimeout,
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()

	if !c.Enabled {
		return nil
	}

	if c.DBPath == "" {
		return errFactory.New(ErrInvalidDBPath)
	}

	if c.BatchSize < 1 {
		return errFactory.WithMessage(ErrInvalidConfig, "batch size must be at least 1")
	}

	return nil
}
