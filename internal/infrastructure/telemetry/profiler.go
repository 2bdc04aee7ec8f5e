package telemetry

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"
)

type ProfilerConfig struct {
	Enabled         bool
	ServerAddress   string
	ApplicationName string
	// ProfileTypes falls back to DefaultProfileTypes
	ProfileTypes []pyroscope.ProfileType
}

// DefaultProfileTypes covers CPU, heap and goroutine profiles.
var DefaultProfileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
}

// Profiler pushes continuous profiles to Pyroscope
type Profiler struct {
	agent    *pyroscope.Profiler
	log      *zap.Logger
	stopOnce sync.Once
}

// NewProfiler starts the Pyroscope agent when cfg is enabled.
func NewProfiler(cfg ProfilerConfig, log *zap.Logger) (*Profiler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Profiler{log: log}
	if !cfg.Enabled {
		log.Info("Continuous profiling disabled")
		return p, nil
	}

	switch {
	case cfg.ServerAddress == "":
		return nil, errors.New("profiling enabled without a server address")
	case cfg.ApplicationName == "":
		return nil, errors.New("profiling enabled without an application name")
	}

	types := cfg.ProfileTypes
	if len(types) == 0 {
		types = DefaultProfileTypes
	}
	tags := make(map[string]string)
	if host, err := os.Hostname(); err == nil && host != "" {
		tags["hostname"] = host
	}

	agent, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.ApplicationName,
		ServerAddress:   cfg.ServerAddress,
		ProfileTypes:    types,
		Tags:            tags,
		Logger:          log.Named("pyroscope").Sugar(),
	})
	if err != nil {
		return nil, fmt.Errorf("start pyroscope: %w", err)
	}
	p.agent = agent
	log.Info("Continuous profiling enabled",
		zap.String("server_address", cfg.ServerAddress),
		zap.String("application_name", cfg.ApplicationName),
	)
	return p, nil
}

func (p *Profiler) IsEnabled() bool {
	return p.agent != nil
}

// Stop flushes the last profiles. Later calls return nil.
func (p *Profiler) Stop() error {
	var err error
	p.stopOnce.Do(func() {
		if p.agent == nil {
			return
		}
		if err = p.agent.Stop(); err != nil {
			err = fmt.Errorf("stop pyroscope: %w", err)
			return
		}
		p.log.Info("Continuous profiling stopped")
	})
	return err
}
