package replay

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rustyeddy/papertrader/market"
	"github.com/rustyeddy/papertrader/sim"
)

// Options controls how replay behaves.
type Options struct {
	// CloseAtEnd walks to the last bar after the final row and sells any
	// shares still held.
	CloseAtEnd bool
}

// Result counts what happened to each decision row.
type Result struct {
	Applied  int
	Rejected int
}

// Decision is one dated intent read from a decisions file.
type Decision struct {
	Day    string // YYYY-MM-DD
	Intent sim.Intent
}

// Read parses dated decisions.
//
// CSV format:
//
//	date,action
//
// A header row is optional. When present, the "date" and "action"
// columns are located by name, so a fills file written by the CSV
// journal reads as is. Lines starting with '#' are skipped.
func Read(r io.Reader) ([]Decision, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []Decision
	dateCol, actionCol := 0, 1
	first := true
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 || strings.HasPrefix(strings.TrimSpace(row[0]), "#") {
			continue
		}

		if first {
			first = false
			if d, a, ok := headerColumns(row); ok {
				dateCol, actionCol = d, a
				continue
			}
		}

		if len(row) <= dateCol || len(row) <= actionCol {
			return nil, fmt.Errorf("bad row (need date and action): %v", row)
		}
		d, err := parseRow(row[dateCol], row[actionCol])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
}

// ReadFile reads a whole decisions file into memory, so the file may be
// overwritten (for example by a journal) once it returns.
func ReadFile(path string) ([]Decision, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f)
}

// Apply trades decisions against a session.
//
// Notes:
//   - The session is advanced until its current bar has the decision's date.
//   - Decisions must be in date order. A date with no bar is an error.
//   - Rejected decisions are counted and skipped.
func Apply(ctx context.Context, sess *sim.Session, decisions []Decision, opts Options) (Result, error) {
	var res Result
	for _, d := range decisions {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := apply(sess, d, &res); err != nil {
			return res, err
		}
	}

	if opts.CloseAtEnd {
		if err := closeAtEnd(sess, &res); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Decisions reads r with Read and replays it with Apply.
func Decisions(ctx context.Context, r io.Reader, sess *sim.Session, opts Options) (Result, error) {
	decisions, err := Read(r)
	if err != nil {
		return Result{}, err
	}
	return Apply(ctx, sess, decisions, opts)
}

// File reads path with ReadFile and replays it with Apply.
func File(ctx context.Context, path string, sess *sim.Session, opts Options) (Result, error) {
	decisions, err := ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	return Apply(ctx, sess, decisions, opts)
}

func headerColumns(row []string) (date, action int, ok bool) {
	date, action = -1, -1
	for i, name := range row {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			date = i
		case "action":
			action = i
		}
	}
	return date, action, date >= 0 && action >= 0
}

func parseRow(dateStr, actionStr string) (Decision, error) {
	t, err := market.ParseDate(strings.TrimSpace(dateStr))
	if err != nil {
		return Decision{}, err
	}
	day := t.Format(market.DateLayout)

	intent, err := sim.ParseIntent(actionStr)
	if err != nil {
		return Decision{}, fmt.Errorf("%s: %w", day, err)
	}
	return Decision{Day: day, Intent: intent}, nil
}

func apply(sess *sim.Session, d Decision, res *Result) error {
	if err := advanceTo(sess, d.Day); err != nil {
		return err
	}

	_, err := sess.Submit(d.Intent)
	var rej *sim.RejectionError
	switch {
	case errors.As(err, &rej):
		res.Rejected++
		return nil
	case err != nil:
		return err
	}
	res.Applied++
	return nil
}

// advanceTo moves the session forward until today is day (YYYY-MM-DD).
func advanceTo(sess *sim.Session, day string) error {
	for {
		cur := sess.CurrentBar().Day()
		switch {
		case cur == day:
			return nil
		case cur > day:
			return fmt.Errorf("no bar for %s (current day %s)", day, cur)
		}
		if err := sess.AdvanceDay(); err != nil {
			if errors.Is(err, sim.ErrAlreadyAtEnd) {
				return fmt.Errorf("%s is after the last bar %s: %w", day, cur, err)
			}
			return err
		}
	}
}

func closeAtEnd(sess *sim.Session, res *Result) error {
	for !sess.Done() {
		if err := sess.AdvanceDay(); err != nil {
			return err
		}
	}
	if sess.Portfolio().Shares == 0 {
		return nil
	}
	if _, err := sess.Submit(sim.SellFull); err != nil {
		return fmt.Errorf("close at end: %w", err)
	}
	res.Applied++
	return nil
}
