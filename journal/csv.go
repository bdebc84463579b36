package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

var (
	fillsHeader    = []string{"fill_id", "session_id", "instrument", "day", "date", "action", "quantity", "price", "cash", "shares", "description"}
	equityHeader   = []string{"session_id", "day", "date", "cash", "shares", "price", "valuation"}
	sessionsHeader = []string{"session_id", "instrument", "currency", "created", "start_date", "end_date", "days", "start_offset",
		"initial_capital", "final_valuation", "profit", "roi_percent", "cash", "shares", "fills"}
)

// CSVJournal writes fills and equity to separate CSV files. Session
// summaries go to a third file when a path is given and are dropped
// otherwise. A session re-recorded after last-day trades appends a new
// row; the latest row for an ID wins.
type CSVJournal struct {
	fills    *csv.Writer
	equity   *csv.Writer
	sessions *csv.Writer
	files    []*os.File
}

func NewCSV(fillsPath, equityPath, sessionsPath string) (*CSVJournal, error) {
	j := &CSVJournal{}

	open := func(path string, header []string) (*csv.Writer, error) {
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		j.files = append(j.files, f)

		w := csv.NewWriter(f)
		if err := w.Write(header); err != nil {
			return nil, err
		}
		w.Flush()
		return w, w.Error()
	}

	var err error
	if j.fills, err = open(fillsPath, fillsHeader); err != nil {
		j.closeFiles()
		return nil, err
	}
	if j.equity, err = open(equityPath, equityHeader); err != nil {
		j.closeFiles()
		return nil, err
	}
	if sessionsPath != "" {
		if j.sessions, err = open(sessionsPath, sessionsHeader); err != nil {
			j.closeFiles()
			return nil, err
		}
	}

	return j, nil
}

func (j *CSVJournal) RecordFill(f FillRecord) error {
	return writeRow(j.fills, []string{
		f.FillID,
		f.SessionID,
		f.Instrument,
		strconv.Itoa(f.Day),
		f.Date.Format(time.RFC3339),
		f.Action,
		strconv.FormatInt(f.Quantity, 10),
		f.Price.String(),
		f.Cash.String(),
		strconv.FormatInt(f.Shares, 10),
		f.Description,
	})
}

func (j *CSVJournal) RecordEquity(e EquitySnapshot) error {
	return writeRow(j.equity, []string{
		e.SessionID,
		strconv.Itoa(e.Day),
		e.Date.Format(time.RFC3339),
		e.Cash.String(),
		strconv.FormatInt(e.Shares, 10),
		e.Price.String(),
		e.Valuation.String(),
	})
}

func (j *CSVJournal) RecordSession(s SessionRecord) error {
	if j.sessions == nil {
		return nil
	}
	return writeRow(j.sessions, []string{
		s.SessionID,
		s.Instrument,
		s.Currency,
		s.Created.Format(time.RFC3339),
		s.Start.Format(time.RFC3339),
		s.End.Format(time.RFC3339),
		strconv.Itoa(s.Days),
		strconv.Itoa(s.StartOffset),
		s.InitialCapital.String(),
		s.FinalValuation.String(),
		s.Profit.String(),
		s.ROIPercent.StringFixed(2),
		s.Cash.String(),
		strconv.FormatInt(s.Shares, 10),
		strconv.Itoa(s.Fills),
	})
}

func writeRow(w *csv.Writer, row []string) error {
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (j *CSVJournal) Close() error {
	for _, w := range []*csv.Writer{j.fills, j.equity, j.sessions} {
		if w == nil {
			continue
		}
		w.Flush()
		if err := w.Error(); err != nil {
			j.closeFiles()
			return err
		}
	}
	return j.closeFiles()
}

func (j *CSVJournal) closeFiles() error {
	var first error
	for _, f := range j.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	j.files = nil
	return first
}
