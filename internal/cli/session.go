package cli

import (
	"errors"

	"github.com/mesh-intelligence/stockroom/internal/journal"
	"github.com/mesh-intelligence/stockroom/internal/metrics"
	"github.com/mesh-intelligence/stockroom/internal/paths"
	"github.com/mesh-intelligence/stockroom/internal/placement"
)

// session is an engine together with the optional journal and metrics
// recorder wired into it. Close flushes both.
type session struct {
	engine      *placement.Engine
	journal     *journal.Journal
	recorder    *metrics.Recorder
	metricsFile string
}

// openSession loads the configuration and builds an engine from it.
func (a *app) openSession() (*session, error) {
	cfg, err := loadConfig(a.configDir)
	if err != nil {
		return nil, userErrorf("%w", err)
	}

	s := &session{metricsFile: a.flags.metricsFile}
	opts := []placement.Option{placement.WithLogger(a.logger)}

	if a.flags.journal || cfg.Journal {
		dataDir, err := paths.ResolveDataDir(a.flags.dataDir, cfg.DataDir)
		if err != nil {
			return nil, sysErrorf("resolve data dir: %w", err)
		}
		j, err := journal.Open(dataDir)
		if err != nil {
			return nil, sysErrorf("open journal: %w", err)
		}
		s.journal = j
		opts = append(opts, placement.WithEventSink(j))
	}
	if s.metricsFile != "" {
		s.recorder = metrics.NewRecorder()
		opts = append(opts, placement.WithRecorder(s.recorder))
	}

	e, err := placement.NewFromConfig(cfg, opts...)
	if err != nil {
		if s.journal != nil {
			s.journal.Close()
		}
		return nil, userErrorf("%w", err)
	}
	s.engine = e
	a.logger.Debug("engine ready",
		"strategy", e.StrategyName(),
		"filters", e.FilterNames(),
		"journal", s.journal != nil)
	return s, nil
}

// Close writes the metrics textfile and closes the journal.
func (s *session) Close() error {
	var errs []error
	if s.recorder != nil {
		errs = append(errs, s.recorder.WriteTextfile(s.metricsFile))
	}
	if s.journal != nil {
		errs = append(errs, s.journal.Close())
	}
	if err := errors.Join(errs...); err != nil {
		return sysErrorf("close session: %w", err)
	}
	return nil
}
