// Command sdlog-sim drives the full logging path with generated sensor
// readings, following the target's single-threaded main-loop model: one
// pass over the sensors per iteration, one write per due reading.
package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/edaniels/golog"

	"github.com/stemsat/sdlog"
	"github.com/stemsat/sdlog/internal/config"
	"github.com/stemsat/sdlog/internal/record"
	"github.com/stemsat/sdlog/internal/storage"
)

func main() {
	cfgPath := flag.String("config", "kit.yaml", "path to the kit config file")
	setClock := flag.Bool("clock", true, "mark the clock as set before logging")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	logger := golog.NewDevelopmentLogger("sdlog-sim")

	kit := sdlog.New(
		sdlog.WithDevice(storage.NewDiskDevice(cfg.Kit.RootDir)),
		sdlog.WithLogger(logger),
	)

	if *setClock {
		kit.SetClockNow()
	}

	if !kit.Begin(cfg.Kit.ChipSelect, cfg.Kit.Prefix, cfg.Kit.CSV) {
		logger.Fatal("could not open a log file")
	}
	logger.Infow("logging", "file", kit.FileName(), "csv", cfg.Kit.CSV)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	start := time.Now()
	deadline := start.Add(time.Duration(cfg.Simulation.DurationSeconds) * time.Second)

	next := make([]time.Time, len(cfg.Sensors))
	for i := range next {
		next[i] = start
	}

	written := 0
	for time.Now().Before(deadline) {
		now := time.Now()
		millis := uint32(now.Sub(start).Milliseconds())

		for i, s := range cfg.Sensors {
			if now.Before(next[i]) {
				continue
			}
			next[i] = now.Add(time.Duration(s.IntervalMs) * time.Millisecond)

			if n := writeReading(kit, cfg.Kit.CSV, s, millis, rng); n == 0 {
				logger.Warnw("write fault", "sensor", s.Name)
			} else {
				written++
			}
		}

		time.Sleep(time.Millisecond)
	}

	logger.Infow("done", "readings", written, "elapsed", time.Since(start))
}

func writeReading(kit *sdlog.Logger, csv bool, s config.SensorConfig, millis uint32, rng *rand.Rand) int {
	typ, _ := record.ParseSensorType(s.Type)

	v := func() float32 { return float32(rng.NormFloat64()) }

	switch typ {
	case record.Acceleration:
		d := sdlog.Acceleration{Timestamp: millis, X: v(), Y: v(), Z: 9.81 + v()}
		if csv {
			return kit.WriteAcceleration(s.Name, d)
		}
		return kit.BinaryWriteAcceleration(s.ID, d)
	case record.Magnetic:
		d := sdlog.Magnetic{Timestamp: millis, X: 20 * v(), Y: 20 * v(), Z: 20 * v()}
		if csv {
			return kit.WriteMagnetic(s.Name, d)
		}
		return kit.BinaryWriteMagnetic(s.ID, d)
	case record.Gyro:
		d := sdlog.Gyro{Timestamp: millis, X: v(), Y: v(), Z: v()}
		if csv {
			return kit.WriteGyro(s.Name, d)
		}
		return kit.BinaryWriteGyro(s.ID, d)
	case record.Orientation:
		d := sdlog.Orientation{Timestamp: millis, Roll: 10 * v(), Pitch: 10 * v(), Heading: float32(rng.Intn(360))}
		if csv {
			return kit.WriteOrientation(s.Name, d)
		}
		return kit.BinaryWriteOrientation(s.ID, d)
	case record.Temperature:
		d := sdlog.Temperature{Timestamp: millis, Celsius: 21 + v()}
		if csv {
			return kit.WriteTemperature(s.Name, d)
		}
		return kit.BinaryWriteTemperature(s.ID, d)
	case record.Luminosity:
		d := sdlog.Luminosity{Timestamp: millis, Lux: 300 + 50*v()}
		if csv {
			return kit.WriteLuminosity(s.Name, d)
		}
		return kit.BinaryWriteLuminosity(s.ID, d)
	case record.UV:
		d := sdlog.UVLight{Timestamp: millis, Index: 2.5 + v()}
		if csv {
			return kit.WriteUVLight(s.Name, d)
		}
		return kit.BinaryWriteUVLight(s.ID, d)
	case record.Pressure:
		d := sdlog.Pressure{Timestamp: millis, Millibars: 1013.25 + v()}
		if csv {
			return kit.WritePressure(s.Name, d)
		}
		return kit.BinaryWritePressure(s.ID, d)
	}

	return 0
}
