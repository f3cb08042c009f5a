package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/axtarget/axtarchat/internal/core"
	"github.com/axtarget/axtarchat/internal/stats"
	"gopkg.in/yaml.v3"
)

func init() {
	core.RegisterModule(&Module{})
}

// Compile-time interface guards.
var (
	_ core.Module       = (*Module)(nil)
	_ core.Configurable = (*Module)(nil)
	_ core.Provisioner  = (*Module)(nil)
	_ core.Validator    = (*Module)(nil)
	_ core.Starter      = (*Module)(nil)
	_ core.Stopper      = (*Module)(nil)
)

// Config holds the configuration for the cron.scheduler module.
type Config struct {
	// SweepSchedule is the cron expression for the rate-limit window sweep.
	SweepSchedule string `yaml:"sweep_schedule"`

	// SweepGrace is how long an expired window is kept before eviction.
	SweepGrace time.Duration `yaml:"sweep_grace"`

	// PurgeSchedule is the cron expression for the usage log purge.
	PurgeSchedule string `yaml:"purge_schedule"`

	// Retention is how long usage log rows are kept.
	Retention time.Duration `yaml:"retention"`
}

func (c *Config) defaults() {
	if c.SweepGrace <= 0 {
		c.SweepGrace = 5 * time.Minute
	}
	if c.Retention <= 0 {
		c.Retention = 30 * 24 * time.Hour
	}
}

// Module wires the scheduler into the module system. It resolves the
// rate limiter and usage recorder services at start time, after every
// module has been provisioned.
type Module struct {
	config    Config
	appCtx    *core.AppContext
	logger    *slog.Logger
	scheduler *Scheduler
}

// ModuleInfo implements core.Module.
func (m *Module) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "cron.scheduler",
		New: func() core.Module { return &Module{} },
	}
}

// Configure implements core.Configurable.
func (m *Module) Configure(node *yaml.Node) error {
	if err := node.Decode(&m.config); err != nil {
		return fmt.Errorf("cron: decode config: %w", err)
	}
	m.config.defaults()
	return nil
}

// Provision implements core.Provisioner.
func (m *Module) Provision(ctx *core.AppContext) error {
	m.config.defaults()
	m.appCtx = ctx
	m.logger = ctx.Logger
	m.scheduler = NewScheduler(ctx.Logger)
	return nil
}

// Validate implements core.Validator.
func (m *Module) Validate() error {
	if m.config.SweepGrace < 0 {
		return fmt.Errorf("cron: sweep_grace must be positive, got %s", m.config.SweepGrace)
	}
	if m.config.Retention < 0 {
		return fmt.Errorf("cron: retention must be positive, got %s", m.config.Retention)
	}
	return nil
}

// Start implements core.Starter. It registers a job per available service
// and launches the scheduler. A missing service skips its job so the
// scheduler remains useful in partial deployments.
func (m *Module) Start() error {
	if svc, ok := m.appCtx.Service("chat.limiter"); ok {
		store, ok := svc.(WindowStore)
		if !ok {
			return fmt.Errorf("cron: service chat.limiter does not implement WindowStore")
		}
		err := m.scheduler.RegisterJob(&WindowSweepJob{
			Store:        store,
			Grace:        m.config.SweepGrace,
			Logger:       m.logger,
			ScheduleExpr: m.config.SweepSchedule,
		})
		if err != nil {
			return err
		}
	} else {
		m.logger.Warn("cron: no rate limiter registered, skipping window sweep job")
	}

	if svc, ok := m.appCtx.Service("stats.recorder"); ok {
		recorder, ok := svc.(stats.Recorder)
		if !ok {
			return fmt.Errorf("cron: service stats.recorder does not implement stats.Recorder")
		}
		err := m.scheduler.RegisterJob(&UsagePurgeJob{
			Recorder:     recorder,
			Retention:    m.config.Retention,
			Logger:       m.logger,
			ScheduleExpr: m.config.PurgeSchedule,
		})
		if err != nil {
			return err
		}
	} else {
		m.logger.Warn("cron: no usage recorder registered, skipping purge job")
	}

	return m.scheduler.Start()
}

// Stop implements core.Stopper.
func (m *Module) Stop(ctx context.Context) error {
	if m.scheduler == nil {
		return nil
	}
	return m.scheduler.Stop(ctx)
}
