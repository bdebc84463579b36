package sim

import (
	"sync"
	"time"

	"github.com/rustyeddy/papertrader/internal/id"
	"github.com/rustyeddy/papertrader/internal/logging"
	"github.com/rustyeddy/papertrader/journal"
	"github.com/rustyeddy/papertrader/market"
	"github.com/rustyeddy/papertrader/portfolio"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultInitialCapital is used when Options leaves InitialCapital zero.
var DefaultInitialCapital = decimal.NewFromInt(10_000)

// Options configures a Session. The zero value is usable.
type Options struct {
	// InitialCapital defaults to DefaultInitialCapital when zero.
	InitialCapital market.Cash
	// StartOffset is the first day shown, letting the user see some
	// history before trading. It is clamped to the last bar.
	StartOffset int
	// Currency is an ISO code used for display. Defaults to "USD".
	Currency string

	// Journal, when set, receives every fill, an equity snapshot on
	// each advance and the session summary once the last day is reached
	// (re-recorded if trading continues on that day).
	Journal journal.Journal
	Logger  *zap.Logger
}

// EquityPoint is the portfolio value at the close of one day.
type EquityPoint struct {
	Day       int
	Date      time.Time
	Valuation market.Cash
}

// Session is one independent simulation run over a bar series. Each
// session owns its ledger, cursor and log; nothing is shared between
// sessions. Methods are safe to call from multiple goroutines.
type Session struct {
	mu sync.Mutex

	id       string
	created  time.Time
	currency string
	start    int

	series *market.BarSeries
	ledger *portfolio.Ledger
	exec   *Executor
	cursor *Cursor
	log    ActivityLog
	equity []EquityPoint

	journal  journal.Journal
	logger   *zap.Logger
	finished bool
}

// NewSession starts a simulation on series. It fails with
// market.ErrEmptySeries when there is nothing to trade.
func NewSession(series *market.BarSeries, opts Options) (*Session, error) {
	cursor, err := NewCursor(series, opts.StartOffset)
	if err != nil {
		return nil, err
	}

	capital := opts.InitialCapital
	if capital.IsZero() {
		capital = DefaultInitialCapital
	}
	currency := opts.Currency
	if currency == "" {
		currency = "USD"
	}

	ledger := portfolio.NewLedger(capital)
	s := &Session{
		id:       id.New(),
		created:  time.Now().UTC(),
		currency: currency,
		start:    cursor.Day(),
		series:   series,
		ledger:   ledger,
		exec:     NewExecutor(ledger),
		cursor:   cursor,
		journal:  opts.Journal,
	}
	s.logger = logging.OrNop(opts.Logger).With(
		zap.String("session_id", s.id),
		zap.String("instrument", series.Instrument()),
	)

	s.logger.Info("session started",
		zap.Int("days", series.Len()),
		zap.Int("day", cursor.Day()),
		zap.String("initial_capital", capital.String()),
	)

	s.mu.Lock()
	s.finishLocked()
	s.mu.Unlock()

	return s, nil
}

func (s *Session) ID() string                { return s.id }
func (s *Session) Currency() string          { return s.currency }
func (s *Session) Series() *market.BarSeries { return s.series }

// Day returns the zero-based index of the current bar.
func (s *Session) Day() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.Day()
}

// Done reports whether the last bar has been reached.
func (s *Session) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.AtEnd()
}

// CurrentBar returns the bar trades are executed against.
func (s *Session) CurrentBar() market.Bar {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.Current()
}

// VisibleWindow returns up to width bars ending today. It never changes
// simulation state.
func (s *Session) VisibleWindow(width int) []market.Bar {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.Window(width)
}

// Portfolio marks the ledger at today's close.
func (s *Session) Portfolio() portfolio.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Snapshot(s.cursor.Current().Close)
}

// Submit executes intent at today's close. Rejected intents return a
// *RejectionError and leave the ledger and activity log untouched.
func (s *Session) Submit(intent Intent) (Fill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := s.cursor.Day()
	bar := s.cursor.Current()

	fill, err := s.exec.Execute(intent, day, bar)
	if err != nil {
		s.logger.Info("intent rejected",
			zap.Int("day", day),
			zap.Stringer("intent", intent),
			zap.String("price", bar.Close.String()),
			zap.Error(err),
		)
		return Fill{}, err
	}

	if err := s.log.Append(fill); err != nil {
		// The cursor never moves backwards, so this cannot happen.
		panic(err)
	}

	s.logger.Debug("intent filled",
		zap.Int("day", day),
		zap.Stringer("intent", intent),
		zap.Int64("qty", fill.Quantity),
		zap.String("price", fill.Price.String()),
		zap.String("notional", notional(fill).String()),
	)

	if s.journal != nil {
		err := s.journal.RecordFill(journal.FillRecord{
			FillID:      fill.ID,
			SessionID:   s.id,
			Instrument:  s.series.Instrument(),
			Day:         fill.Day,
			Date:        fill.Date,
			Action:      fill.Intent.String(),
			Quantity:    fill.Quantity,
			Price:       fill.Price,
			Cash:        fill.Cash,
			Shares:      fill.Shares,
			Description: fill.Describe(s.currency),
		})
		if err != nil {
			s.logger.Warn("journal fill", zap.String("fill_id", fill.ID), zap.Error(err))
		}
	}

	// Trading on the last day changes the final result.
	if s.finished {
		s.recordSessionLocked(s.reportLocked())
	}

	return fill, nil
}

// AdvanceDay moves to the next bar and records the day's closing value.
// On the last bar it returns ErrAlreadyAtEnd and changes nothing.
func (s *Session) AdvanceDay() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cursor.Advance(); err != nil {
		return err
	}

	bar := s.cursor.Current()
	point := EquityPoint{
		Day:       s.cursor.Day(),
		Date:      bar.Date,
		Valuation: s.ledger.Valuation(bar.Close),
	}
	s.equity = append(s.equity, point)

	if s.journal != nil {
		err := s.journal.RecordEquity(journal.EquitySnapshot{
			SessionID: s.id,
			Day:       point.Day,
			Date:      point.Date,
			Cash:      s.ledger.Cash(),
			Shares:    s.ledger.Shares(),
			Price:     bar.Close,
			Valuation: point.Valuation,
		})
		if err != nil {
			s.logger.Warn("journal equity", zap.Int("day", point.Day), zap.Error(err))
		}
	}

	s.finishLocked()
	return nil
}

// Activity returns a copy of every accepted decision in order.
func (s *Session) Activity() []Fill {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Entries()
}

// ActivityLines renders the activity log as display lines.
func (s *Session) ActivityLines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.Describe(s.currency)
}

// EquityCurve returns the closing value recorded on each advance.
func (s *Session) EquityCurve() []EquityPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]EquityPoint, len(s.equity))
	copy(out, s.equity)
	return out
}

// FinalReport values the portfolio at today's close. It may be called at
// any time; Report.Complete tells whether the series has ended.
func (s *Session) FinalReport() Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reportLocked()
}

func (s *Session) reportLocked() Report {
	r := NewReport(s.ledger, s.cursor.Current())
	r.Day = s.cursor.Day()
	r.Fills = s.log.Len()
	r.Complete = s.cursor.AtEnd()
	return r
}

// finishLocked records the session summary the first time the last bar
// is reached.
func (s *Session) finishLocked() {
	if s.finished || !s.cursor.AtEnd() {
		return
	}
	s.finished = true

	r := s.reportLocked()
	s.logger.Info("session finished",
		zap.Int("fills", r.Fills),
		zap.String("final_valuation", r.FinalValuation.String()),
		zap.String("profit", r.Profit.String()),
		zap.String("roi_percent", r.ROIPercent.StringFixed(2)),
	)
	s.recordSessionLocked(r)
}

func (s *Session) recordSessionLocked(r Report) {
	if s.journal == nil {
		return
	}
	err := s.journal.RecordSession(journal.SessionRecord{
		SessionID:      s.id,
		Instrument:     s.series.Instrument(),
		Currency:       s.currency,
		Created:        s.created,
		Start:          s.series.Start(),
		End:            s.series.End(),
		Days:           s.series.Len(),
		StartOffset:    s.start,
		InitialCapital: r.InitialCapital,
		FinalValuation: r.FinalValuation,
		Profit:         r.Profit,
		ROIPercent:     r.ROIPercent,
		Cash:           r.Cash,
		Shares:         r.Shares,
		Fills:          r.Fills,
	})
	if err != nil {
		s.logger.Warn("journal session", zap.Error(err))
	}
}
