package telemetry

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	recorded []*Sample
	closed   bool
}

func (f *fakeRepo) Record(sample *Sample) error {
	f.recorded = append(f.recorded, sample)

	return nil
}

func (f *fakeRepo) Close() error {
	f.closed = true

	return nil
}

func testSample(uuid string) *Sample {
	return &Sample{
		Timestamp:    time.Unix(1700000000, 0),
		DeviceUUID:   uuid,
		Activity:     ActivityMetrics{Gfx: 80, Umc: 30, Mm: 5},
		Thermal:      ThermalMetrics{EdgeTemperature: 65000},
		Power:        PowerMetrics{SocketPower: 220, GfxVoltage: 1050, EnergyMicrojoules: 123456},
		Memory:       MemoryMetrics{VRAMUsed: 1 << 30},
		ProcessCount: 3,
	}
}

func TestServiceRecord(t *testing.T) {
	repo := &fakeRepo{}
	svc := &service{repo: repo, cfg: DefaultConfig()}

	sample := testSample("gpu-0")
	require.NoError(t, svc.Record(context.Background(), sample))
	require.Len(t, repo.recorded, 1)
	assert.Equal(t, sample, repo.recorded[0])
}

func TestServiceRecordNilSample(t *testing.T) {
	svc := &service{repo: &fakeRepo{}, cfg: DefaultConfig()}

	assert.Error(t, svc.Record(context.Background(), nil))
}

func TestServiceRecordCancelledContext(t *testing.T) {
	repo := &fakeRepo{}
	svc := &service{repo: repo, cfg: DefaultConfig()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, svc.Record(ctx, testSample("gpu-0")))
	assert.Empty(t, repo.recorded)
}

func TestServiceClose(t *testing.T) {
	repo := &fakeRepo{}
	svc := &service{repo: repo, cfg: DefaultConfig()}

	require.NoError(t, svc.Close())
	assert.True(t, repo.closed)
}

func TestNewServiceDisabledIsNoop(t *testing.T) {
	collector, err := NewService(Config{Enabled: false})
	require.NoError(t, err)

	assert.NoError(t, collector.Record(context.Background(), nil))
	assert.NoError(t, collector.Close())
}

func TestNewServiceRejectsInvalidConfig(t *testing.T) {
	_, err := NewService(Config{Enabled: true, DBPath: "", BatchSize: 1})
	assert.Error(t, err)
}

func TestRepositoryRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "telemetry.db")
	cfg := Config{
		Enabled:   true,
		DBPath:    dbPath,
		BatchSize: 1, // flush on every record
	}

	repo, err := NewRepository(cfg)
	require.NoError(t, err)

	require.NoError(t, repo.Record(testSample("gpu-0")))
	sample := testSample("gpu-1")
	sample.Timestamp = sample.Timestamp.Add(time.Second)
	require.NoError(t, repo.Record(sample))
	require.NoError(t, repo.Close())

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM samples`).Scan(&count))
	assert.Equal(t, 2, count)

	var uuid string
	var vram int64
	require.NoError(t, db.QueryRow(`
        SELECT device_uuid, vram_used FROM samples ORDER BY timestamp LIMIT 1
    `).Scan(&uuid, &vram))
	assert.Equal(t, "gpu-0", uuid)
	assert.Equal(t, int64(1<<30), vram)
}

func TestRepositorySchemaVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "telemetry.db")
	repo, err := NewRepository(Config{Enabled: true, DBPath: dbPath, BatchSize: 1})
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	version, err := GetSchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, version)
}
