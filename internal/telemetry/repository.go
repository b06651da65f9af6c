package telemetry

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"codeberg.org/mutker/amdsmictl/internal/errors"
	"codeberg.org/mutker/amdsmictl/internal/logger"
	_ "github.com/mattn/go-sqlite3"
)

type repository struct {
	db            *sql.DB
	cfg           Config
	mu            sync.Mutex
	buffer        []*Sample
	flushTicker   *time.Ticker
	shutdownChan  chan struct{}
	flushDoneChan chan struct{}
}

func NewRepository(cfg Config) (Repository, error) {
	errFactory := errors.New()

	if cfg.DBPath == "" {
		return nil, errFactory.New(ErrInvalidDBPath)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	// WAL keeps readers out of the writer's way; the daemon writes in bursts
	dsn := cfg.DBPath + "?_journal=WAL&_auto_vacuum=2"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	if err := ensureSchema(db); err != nil {
		db.Close()

		return nil, err
	}

	logger.Info().
		Str("path", cfg.DBPath).
		Int("schema_version", SchemaVersion).
		Int("batch_size", cfg.BatchSize).
		Int("batch_timeout", cfg.BatchTimeout).
		Msg("Telemetry repository initialized")

	repo := &repository{
		db:            db,
		cfg:           cfg,
		buffer:        make([]*Sample, 0, cfg.BatchSize),
		shutdownChan:  make(chan struct{}),
		flushDoneChan: make(chan struct{}),
	}

	if cfg.BatchSize > 1 && cfg.BatchTimeout > 0 {
		repo.flushTicker = time.NewTicker(time.Duration(cfg.BatchTimeout) * time.Second)
		go repo.flusher()
	} else {
		close(repo.flushDoneChan)
	}

	return repo, nil
}

func (r *repository) Record(sample *Sample) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buffer = append(r.buffer, sample)

	if len(r.buffer) >= r.cfg.BatchSize {
		return r.flush()
	}

	return nil
}

func (r *repository) Close() error {
	errFactory := errors.New()

	close(r.shutdownChan)

	if r.flushTicker != nil {
		r.flushTicker.Stop()
	}
	<-r.flushDoneChan

	r.mu.Lock()
	flushErr := r.flush()
	r.mu.Unlock()

	if err := r.db.Close(); err != nil {
		return errFactory.Wrap(ErrStorageInit, err)
	}

	return flushErr
}

// flusher periodically drains the buffer so samples land on disk even when
// the daemon writes slower than the batch size
func (r *repository) flusher() {
	defer close(r.flushDoneChan)

	for {
		select {
		case <-r.shutdownChan:
			return
		case <-r.flushTicker.C:
			r.mu.Lock()
			if err := r.flush(); err != nil {
				logger.Error().Err(err).Msg("Periodic telemetry flush failed")
			}
			r.mu.Unlock()
		}
	}
}

// flush writes the buffered samples in one transaction. Caller holds the
// mutex.
func (r *repository) flush() error {
	errFactory := errors.New()

	if len(r.buffer) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return errFactory.Wrap(ErrStorageWrite, err)
	}

	stmt, err := tx.Prepare(insertSampleSQL)
	if err != nil {
		tx.Rollback()

		return errFactory.Wrap(ErrStorageWrite, err)
	}
	defer stmt.Close()

	for _, sample := range r.buffer {
		_, err := stmt.Exec(
			sample.Timestamp.Unix(),
			sample.DeviceUUID,
			sample.Activity.Gfx,
			sample.Activity.Umc,
			sample.Activity.Mm,
			sample.Thermal.EdgeTemperature,
			sample.Power.SocketPower,
			sample.Power.GfxVoltage,
			int64(sample.Power.EnergyMicrojoules),
			int64(sample.Memory.VRAMUsed),
			sample.ProcessCount,
		)
		if err != nil {
			tx.Rollback()

			return errFactory.Wrap(ErrStorageWrite, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrStorageWrite, err)
	}

	logger.Debug().Int("samples", len(r.buffer)).Msg("Flushed telemetry batch")
	r.buffer = r.buffer[:0]

	return nil
}
