package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordFill(f FillRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO fills
		(fill_id, session_id, instrument, day, date, action, quantity, price, cash, shares, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.FillID, f.SessionID, f.Instrument, f.Day, f.Date, f.Action,
		f.Quantity, f.Price, f.Cash, f.Shares, f.Description,
	)
	return err
}

func (j *SQLite) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity
		(session_id, day, date, cash, shares, price, valuation)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.Day, e.Date, e.Cash, e.Shares, e.Price, e.Valuation,
	)
	return err
}

// RecordSession inserts or replaces the session summary.
func (j *SQLite) RecordSession(s SessionRecord) error {
	_, err := j.db.Exec(`
		INSERT OR REPLACE INTO sessions
		(session_id, instrument, currency, created, start_date, end_date, days, start_offset,
		 initial_capital, final_valuation, profit, roi_percent, cash, shares, fills)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.SessionID, s.Instrument, s.Currency, s.Created, s.Start, s.End, s.Days, s.StartOffset,
		s.InitialCapital, s.FinalValuation, s.Profit, s.ROIPercent, s.Cash, s.Shares, s.Fills,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
