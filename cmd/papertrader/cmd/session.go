package cmd

import (
	"fmt"

	"github.com/rustyeddy/papertrader/config"
	"github.com/rustyeddy/papertrader/sim"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// sessionFlags are shared by play and replay.
type sessionFlags struct {
	bars        string
	instrument  string
	from        string
	to          string
	startOffset int
	noJournal   bool
}

// apply overrides cfg with any flags the user set.
func (f sessionFlags) apply(cfg *config.Config) {
	if f.bars != "" {
		cfg.Data.File = f.bars
	}
	if f.instrument != "" {
		cfg.Data.Instrument = f.instrument
	}
	if f.from != "" {
		cfg.Data.From = f.from
	}
	if f.to != "" {
		cfg.Data.To = f.to
	}
	if f.startOffset >= 0 {
		cfg.Simulation.StartOffset = f.startOffset
	}
	if f.noJournal {
		cfg.Journal = config.JournalConfig{Type: "none"}
	}
}

// openSession builds a session from cfg. The returned close func flushes
// the journal and the logger.
func openSession(cfg *config.Config) (*sim.Session, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	series, err := cfg.Data.LoadBars()
	if err != nil {
		return nil, nil, fmt.Errorf("load bars: %w", err)
	}

	j, err := cfg.Journal.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("create journal: %w", err)
	}

	sess, err := sim.NewSession(series, sim.Options{
		InitialCapital: cfg.Account.Capital(),
		StartOffset:    cfg.Simulation.StartOffset,
		Currency:       cfg.Account.Currency,
		Journal:        j,
		Logger:         logger.With(zap.String("account", cfg.Account.ID)),
	})
	if err != nil {
		if j != nil {
			j.Close()
		}
		return nil, nil, err
	}

	closeFn := func() {
		if j != nil {
			if err := j.Close(); err != nil {
				logger.Warn("close journal", zap.Error(err))
			}
		}
		_ = logger.Sync()
	}
	return sess, closeFn, nil
}

func (f *sessionFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.bars, "bars", "b", "", "CSV file of daily bars (date,open,high,low,close,volume)")
	fs.StringVar(&f.instrument, "instrument", "", "instrument symbol")
	fs.StringVar(&f.from, "from", "", "first date to load (YYYY-MM-DD)")
	fs.StringVar(&f.to, "to", "", "stop before this date (YYYY-MM-DD)")
	fs.IntVar(&f.startOffset, "start", -1, "first trading day index (overrides simulation.start_offset)")
	fs.BoolVar(&f.noJournal, "no-journal", false, "do not write a journal")
}
