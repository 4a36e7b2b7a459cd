package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/famecs/famecs/internal/component"
	"github.com/famecs/famecs/internal/config"
	"github.com/famecs/famecs/internal/core/ecs"
	"github.com/famecs/famecs/internal/core/event"
	coresys "github.com/famecs/famecs/internal/core/system"
	"github.com/famecs/famecs/internal/scenario"
	"github.com/famecs/famecs/internal/scripting"
	"github.com/famecs/famecs/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/famecs.toml"
	if p := os.Getenv("FAMECS_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if stop := startProfile(cfg.Profile); stop != nil {
		defer stop()
	}

	// 3. Create the manager; index transitions are published on the bus
	bus := event.NewBus()
	manager := ecs.NewManager(
		ecs.WithLogger(log.Named("ecs")),
		ecs.WithObserver(event.NewManagerObserver(bus)),
		ecs.WithCapacity(cfg.Index.Capacity),
	)
	event.Subscribe(bus, func(ev event.FamilyCreated) {
		log.Debug("new family", zap.Stringer("key", ev.Family))
	})
	event.Subscribe(bus, func(ev event.EntityDestroyed) {
		log.Debug("entity gone", zap.Uint64("entity", uint64(ev.EntityID)), zap.Stringer("family", ev.Family))
	})

	// 4. Load the scenario
	catalog := scenario.NewCatalog()
	component.Register(catalog)
	world := scenario.NewWorld(manager, catalog)
	st, err := scenario.Load(cfg.Scenario.Path, world)
	if err != nil {
		return fmt.Errorf("scenario: %w", err)
	}
	log.Info("scenario loaded",
		zap.String("path", cfg.Scenario.Path),
		zap.Int("sources", st.Sources),
		zap.Int("entities", st.Entities),
		zap.Int("families", len(manager.Families())))

	// 5. Create systems and register with runner
	runner := coresys.NewRunner()
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(system.NewHonorsSystem(manager, cfg.Honors.Threshold, log.Named("honors")))
	runner.Register(system.NewExpirySystem(manager, log.Named("expiry")))
	if cfg.Scripting.Enabled {
		engine, err := scripting.NewEngine(cfg.Scripting.Dir, world, log.Named("lua"))
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer engine.Close()
		runner.Register(system.NewScriptSystem(engine, log.Named("lua")))
	}
	report := system.NewReportSystem(manager, cfg.Index.ReportInterval, cfg.Index.CheckEveryTick, log.Named("report"))
	runner.Register(report)
	runner.Register(system.NewCleanupSystem(manager, log.Named("cleanup")))

	// 6. Start tick loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Session.TickRate)
	defer ticker.Stop()

	log.Info("session started",
		zap.String("name", cfg.Session.Name),
		zap.Duration("tick", cfg.Session.TickRate),
		zap.Int("systems", runner.Len()))

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Session.TickRate)
			if err := report.Err(); err != nil {
				return fmt.Errorf("tick %d: %w", runner.Ticks(), err)
			}
			if cfg.Session.MaxTicks > 0 && runner.Ticks() >= uint64(cfg.Session.MaxTicks) {
				log.Info("session finished",
					zap.Uint64("ticks", runner.Ticks()),
					zap.Int("entities", manager.Len()))
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

// startProfile starts the configured profiler and returns its stop func, or nil
// when profiling is off.
func startProfile(cfg config.ProfileConfig) func() {
	var mode func(*profile.Profile)
	switch cfg.Mode {
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	case "block":
		mode = profile.BlockProfile
	case "mutex":
		mode = profile.MutexProfile
	case "trace":
		mode = profile.TraceProfile
	default:
		return nil
	}
	p := profile.Start(mode, profile.ProfilePath(cfg.Dir), profile.NoShutdownHook, profile.Quiet)
	return p.Stop
}
