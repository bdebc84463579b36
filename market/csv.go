package market

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CSVBarsFeed reads daily bar CSV rows:
//
//	date,open,high,low,close,volume
//
// where date is YYYY-MM-DD or RFC3339.
//
// A header row is optional. When present its column names are matched
// case-insensitively, so exports carrying extra columns (for example an
// "Adj Close" column) load as long as the six required names appear.
// Rows outside [From, To) are skipped when those bounds are set.
type CSVBarsFeed struct {
	r    *csv.Reader
	from time.Time
	to   time.Time
	cols map[string]int
	line int

	sawFirst bool
}

var barColumns = []string{"date", "open", "high", "low", "close", "volume"}

func defaultColumns() map[string]int {
	cols := make(map[string]int, len(barColumns))
	for i, name := range barColumns {
		cols[name] = i
	}
	return cols
}

func NewCSVBarsFeed(r io.Reader, from, to time.Time) *CSVBarsFeed {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &CSVBarsFeed{r: cr, from: from, to: to, cols: defaultColumns()}
}

// Next returns the next bar in range. ok is false at end of input.
func (f *CSVBarsFeed) Next() (Bar, bool, error) {
	for {
		row, err := f.r.Read()
		if err == io.EOF {
			return Bar{}, false, nil
		}
		if err != nil {
			return Bar{}, false, err
		}
		f.line++
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}

		if !f.sawFirst {
			f.sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "date") {
				cols, err := headerColumns(row)
				if err != nil {
					return Bar{}, false, err
				}
				f.cols = cols
				continue
			}
		}

		b, err := f.parseRow(row)
		if err != nil {
			return Bar{}, false, fmt.Errorf("line %d: %w", f.line, err)
		}
		if !inRange(b.Date, f.from, f.to) {
			continue
		}
		return b, true, nil
	}
}

func headerColumns(row []string) (map[string]int, error) {
	cols := make(map[string]int, len(row))
	for i, name := range row {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, want := range barColumns {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("header is missing column %q", want)
		}
	}
	return cols, nil
}

func (f *CSVBarsFeed) field(row []string, name string) (string, error) {
	i := f.cols[name]
	if i >= len(row) {
		return "", fmt.Errorf("missing %s column", name)
	}
	return strings.TrimSpace(row[i]), nil
}

func (f *CSVBarsFeed) parseRow(row []string) (Bar, error) {
	var b Bar

	ds, err := f.field(row, "date")
	if err != nil {
		return Bar{}, err
	}
	if b.Date, err = ParseDate(ds); err != nil {
		return Bar{}, err
	}

	prices := []*Price{&b.Open, &b.High, &b.Low, &b.Close}
	for i, name := range barColumns[1:5] {
		s, err := f.field(row, name)
		if err != nil {
			return Bar{}, err
		}
		if *prices[i], err = ParsePrice(s); err != nil {
			return Bar{}, fmt.Errorf("%s: %w", name, err)
		}
	}

	vs, err := f.field(row, "volume")
	if err != nil {
		return Bar{}, err
	}
	if vs != "" {
		// Some providers emit volume as a float ("1234.0").
		v, err := decimal.NewFromString(vs)
		if err != nil {
			return Bar{}, fmt.Errorf("bad volume %q: %w", vs, err)
		}
		b.Volume = v.IntPart()
	}

	return b, nil
}

// ParseDate accepts YYYY-MM-DD or RFC3339.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q: %w", s, err)
	}
	return t, nil
}

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}

// ReadCSV loads a whole series from r. Any read or parse failure is
// reported as ErrDataUnavailable; a file with no bars in range yields
// ErrEmptySeries.
func ReadCSV(r io.Reader, instrument string, from, to time.Time) (*BarSeries, error) {
	feed := NewCSVBarsFeed(r, from, to)

	var bars []Bar
	for {
		b, ok, err := feed.Next()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDataUnavailable, instrument, err)
		}
		if !ok {
			break
		}
		bars = append(bars, b)
	}

	s, err := NewBarSeries(instrument, bars)
	if err != nil {
		if errors.Is(err, ErrEmptySeries) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	return s, nil
}

// LoadCSV opens path and reads it with ReadCSV.
func LoadCSV(path, instrument string, from, to time.Time) (*BarSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer f.Close()

	return ReadCSV(f, instrument, from, to)
}
