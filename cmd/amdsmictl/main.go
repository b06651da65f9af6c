package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/mutker/amdsmictl/internal/amdsmi"
	"codeberg.org/mutker/amdsmictl/internal/config"
	"codeberg.org/mutker/amdsmictl/internal/logger"
	"codeberg.org/mutker/amdsmictl/internal/pid"
	"codeberg.org/mutker/amdsmictl/internal/telemetry"
)

// device is one monitored processor together with its identity
type device struct {
	uuid      string
	processor amdsmi.Processor
}

var cfg *config.Config

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	logger.Debug().Msg("Config loaded")
}

func main() {
	if err := pid.Write(); err != nil {
		logger.Fatal().Err(err).Msg("failed to write PID file")
	}
	defer pid.Remove()

	lib, err := amdsmi.Init(cfg.InitFlags())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize AMD SMI library")
	}
	defer lib.Close()

	sockets, devices, err := discover(lib)
	if err != nil {
		logger.Fatal().Err(err).Msg("device discovery failed")
	}
	defer closeHandles(sockets, devices)

	if len(devices) == 0 {
		logger.Fatal().Msg("no processors found for the configured hardware classes")
	}

	collector, err := telemetry.NewService(telemetryConfig())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		if err := collector.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close telemetry collector")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if err := loop(ctx, devices, collector); err != nil {
		logger.Error().Err(err).Msg("error in main loop")
	}

	logger.Info().Msg("Exiting...")
}

func telemetryConfig() telemetry.Config {
	tcfg := telemetry.DefaultConfig()
	tcfg.Enabled = cfg.Telemetry
	if cfg.TelemetryDB != "" {
		tcfg.DBPath = cfg.TelemetryDB
	}

	return tcfg
}

// discover enumerates all sockets and their processors. The returned
// sockets stay open for the lifetime of the daemon; processors borrow the
// library through their own references.
func discover(lib amdsmi.Library) ([]amdsmi.Socket, []device, error) {
	sockets, err := lib.SocketHandles()
	if err != nil {
		return nil, nil, err
	}

	var devices []device
	for _, socket := range sockets {
		processors, err := socket.ProcessorHandles()
		if err != nil {
			return sockets, devices, err
		}

		for _, processor := range processors {
			uuid, err := processor.DeviceUUID()
			if err != nil {
				logger.Warn().Err(err).Msg("failed to read device UUID")
				uuid = "unknown"
			}

			logger.Info().Str("uuid", uuid).Msg("Detected processor")
			devices = append(devices, device{uuid: uuid, processor: processor})
		}
	}

	return sockets, devices, nil
}

func closeHandles(sockets []amdsmi.Socket, devices []device) {
	for _, dev := range devices {
		if err := dev.processor.Close(); err != nil {
			logger.Error().Err(err).Str("uuid", dev.uuid).Msg("failed to close processor handle")
		}
	}
	for _, socket := range sockets {
		if err := socket.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close socket handle")
		}
	}
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

func loop(ctx context.Context, devices []device, collector telemetry.Collector) error {
	interval := time.Duration(cfg.Interval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info().
		Int("devices", len(devices)).
		Dur("interval", interval).
		Msg("Monitoring started")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			for _, dev := range devices {
				sample, err := sampleDevice(dev)
				if err != nil {
					// One misbehaving device must not stop the others
					logger.Warn().Err(err).Str("uuid", dev.uuid).Msg("failed to sample device")

					continue
				}

				logSample(sample)

				if err := collector.Record(ctx, sample); err != nil {
					logger.Error().Err(err).Msg("failed to record telemetry sample")
				}
			}
		}
	}
}

func sampleDevice(dev device) (*telemetry.Sample, error) {
	activity, err := dev.processor.DeviceActivity()
	if err != nil {
		return nil, err
	}

	sample := &telemetry.Sample{
		Timestamp:  time.Now(),
		DeviceUUID: dev.uuid,
		Activity: telemetry.ActivityMetrics{
			Gfx: int(activity.GfxActivity),
			Umc: int(activity.UmcActivity),
			Mm:  int(activity.MmActivity),
		},
	}

	// The remaining metrics are optional; not every processor class
	// supports every sensor.
	if temp, err := dev.processor.DeviceTemperature(amdsmi.TemperatureTypeEdge, amdsmi.TemperatureMetricCurrent); err == nil {
		sample.Thermal.EdgeTemperature = temp
	} else {
		logger.Debug().Err(err).Str("uuid", dev.uuid).Msg("temperature unavailable")
	}

	if power, err := dev.processor.DevicePowerConsumption(); err == nil {
		sample.Power.SocketPower = int(power.CurrentSocketPower)
		sample.Power.GfxVoltage = int(power.GfxVoltage)
	} else {
		logger.Debug().Err(err).Str("uuid", dev.uuid).Msg("power info unavailable")
	}

	if energy, err := dev.processor.DeviceEnergyConsumption(); err == nil {
		sample.Power.EnergyMicrojoules = energy.Energy
	} else {
		logger.Debug().Err(err).Str("uuid", dev.uuid).Msg("energy counter unavailable")
	}

	if vram, err := dev.processor.DeviceMemoryUsage(amdsmi.MemoryTypeVRAM); err == nil {
		sample.Memory.VRAMUsed = vram
	} else {
		logger.Debug().Err(err).Str("uuid", dev.uuid).Msg("memory usage unavailable")
	}

	if processes, err := dev.processor.DeviceProcessList(); err == nil {
		sample.ProcessCount = len(processes)
	} else {
		logger.Debug().Err(err).Str("uuid", dev.uuid).Msg("process list unavailable")
	}

	return sample, nil
}

func logSample(sample *telemetry.Sample) {
	logger.Info().
		Str("uuid", sample.DeviceUUID).
		Int("gfx_activity", sample.Activity.Gfx).
		Int("umc_activity", sample.Activity.Umc).
		Int64("edge_temp", sample.Thermal.EdgeTemperature).
		Int("socket_power", sample.Power.SocketPower).
		Uint64("vram_used", sample.Memory.VRAMUsed).
		Int("processes", sample.ProcessCount).
		Msg("Sampled device")
}
