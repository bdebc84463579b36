package journal

import (
	"bytes"
	"fmt"
	"os"
	"text/template"
	"time"

	"github.com/rustyeddy/papertrader/market"
	"github.com/shopspring/decimal"
)

var sessionOrgFuncs = template.FuncMap{
	"day": func(t time.Time) string { return t.Format(market.DateLayout) },
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
	"fixed2": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"inc":    func(i int) int { return i + 1 },
}

var sessionOrg = template.Must(template.New("session").Funcs(sessionOrgFuncs).Parse(SessionOrgTemplate))

type sessionOrgData struct {
	SessionRecord
	Decisions []FillRecord
	Curve     []EquitySnapshot
}

// FormatSessionOrg renders a session summary followed by its decisions
// and equity curve as an Org-mode document.
func FormatSessionOrg(s SessionRecord, fills []FillRecord, equity []EquitySnapshot) (string, error) {
	var buf bytes.Buffer
	if err := sessionOrg.Execute(&buf, sessionOrgData{SessionRecord: s, Decisions: fills, Curve: equity}); err != nil {
		return "", fmt.Errorf("render session %s: %w", s.SessionID, err)
	}
	return buf.String(), nil
}

// WriteSessionOrg renders the session with FormatSessionOrg into path.
func WriteSessionOrg(path string, s SessionRecord, fills []FillRecord, equity []EquitySnapshot) error {
	out, err := FormatSessionOrg(s, fills, equity)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(out), 0644)
}

const SessionOrgTemplate = `* SESSION: {{.Instrument}} {{day .Start}} .. {{day .End}}
:PROPERTIES:
:SESSION_ID:   {{.SessionID}}
:INSTRUMENT:   {{.Instrument}}
:CURRENCY:     {{.Currency}}
:START_DATE:   {{day .Start}}
:END_DATE:     {{day .End}}
:DAYS:         {{.Days}}
:START_OFFSET: {{.StartOffset}}
:START_CASH:   {{fixed2 .InitialCapital}}
:FINAL_VALUE:  {{fixed2 .FinalValuation}}
:PROFIT:       {{fixed2 .Profit}}
:ROI_PCT:      {{fixed2 .ROIPercent}}
:FILLS:        {{.Fills}}
:CREATED:      [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Final Value:  *{{fixed2 .FinalValuation}}*
- Profit:       *{{fixed2 .Profit}}*
- Return:       *{{fixed2 .ROIPercent}}%*
- Cash:         {{fixed2 .Cash}}
- Shares:       {{.Shares}}
{{- if .Decisions }}

** Decisions
| Day | Date | Action | Qty | Price | Cash | Shares |
|-----+------+--------+-----+-------+------+--------|
{{- range .Decisions }}
| {{inc .Day}} | {{day .Date}} | {{.Action}} | {{.Quantity}} | {{fixed2 .Price}} | {{fixed2 .Cash}} | {{.Shares}} |
{{- end }}
{{- end }}
{{- if .Curve }}

** Equity Curve
| Day | Date | Close | Value |
|-----+------+-------+-------|
{{- range .Curve }}
| {{inc .Day}} | {{day .Date}} | {{fixed2 .Price}} | {{fixed2 .Valuation}} |
{{- end }}
{{- end }}
`
