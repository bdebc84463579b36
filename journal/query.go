package journal

import (
	"database/sql"
	"fmt"
)

const fillColumns = `fill_id, session_id, instrument, day, date, action, quantity, price, cash, shares, description`

type scanner interface {
	Scan(dest ...any) error
}

func scanFill(s scanner) (FillRecord, error) {
	var rec FillRecord
	err := s.Scan(
		&rec.FillID,
		&rec.SessionID,
		&rec.Instrument,
		&rec.Day,
		&rec.Date,
		&rec.Action,
		&rec.Quantity,
		&rec.Price,
		&rec.Cash,
		&rec.Shares,
		&rec.Description,
	)
	return rec, err
}

// GetFill returns a single fill record by ID.
func (j *SQLite) GetFill(fillID string) (FillRecord, error) {
	row := j.db.QueryRow(`SELECT `+fillColumns+` FROM fills WHERE fill_id = ?`, fillID)

	rec, err := scanFill(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return FillRecord{}, fmt.Errorf("fill %q not found", fillID)
		}
		return FillRecord{}, err
	}
	return rec, nil
}

// ListFills returns a session's fills in the order they were made.
func (j *SQLite) ListFills(sessionID string) ([]FillRecord, error) {
	rows, err := j.db.Query(`
		SELECT `+fillColumns+`
		FROM fills
		WHERE session_id = ?
		ORDER BY day ASC, rowid ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FillRecord
	for rows.Next() {
		rec, err := scanFill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEquity returns a session's equity curve ordered by day.
func (j *SQLite) ListEquity(sessionID string) ([]EquitySnapshot, error) {
	rows, err := j.db.Query(`
		SELECT session_id, day, date, cash, shares, price, valuation
		FROM equity
		WHERE session_id = ?
		ORDER BY day ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquitySnapshot
	for rows.Next() {
		var e EquitySnapshot
		if err := rows.Scan(
			&e.SessionID,
			&e.Day,
			&e.Date,
			&e.Cash,
			&e.Shares,
			&e.Price,
			&e.Valuation,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

const sessionColumns = `session_id, instrument, currency, created, start_date, end_date, days, start_offset,
	initial_capital, final_valuation, profit, roi_percent, cash, shares, fills`

func scanSession(s scanner) (SessionRecord, error) {
	var rec SessionRecord
	err := s.Scan(
		&rec.SessionID,
		&rec.Instrument,
		&rec.Currency,
		&rec.Created,
		&rec.Start,
		&rec.End,
		&rec.Days,
		&rec.StartOffset,
		&rec.InitialCapital,
		&rec.FinalValuation,
		&rec.Profit,
		&rec.ROIPercent,
		&rec.Cash,
		&rec.Shares,
		&rec.Fills,
	)
	return rec, err
}

// GetSession returns a finished session's summary.
func (j *SQLite) GetSession(sessionID string) (SessionRecord, error) {
	row := j.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE session_id = ?`, sessionID)

	rec, err := scanSession(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return SessionRecord{}, fmt.Errorf("session %q not found", sessionID)
		}
		return SessionRecord{}, err
	}
	return rec, nil
}

// ListSessions returns all recorded sessions, newest first.
func (j *SQLite) ListSessions() ([]SessionRecord, error) {
	rows, err := j.db.Query(`SELECT ` + sessionColumns + ` FROM sessions ORDER BY created DESC, session_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
