package journal

// Decimal amounts are stored as TEXT so they round-trip exactly.
const Schema = `
CREATE TABLE IF NOT EXISTS fills (
	fill_id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	instrument TEXT NOT NULL,
	day INTEGER NOT NULL,
	date DATETIME NOT NULL,
	action TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	price TEXT NOT NULL,
	cash TEXT NOT NULL,
	shares INTEGER NOT NULL,
	description TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS equity (
	session_id TEXT NOT NULL,
	day INTEGER NOT NULL,
	date DATETIME NOT NULL,
	cash TEXT NOT NULL,
	shares INTEGER NOT NULL,
	price TEXT NOT NULL,
	valuation TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
	session_id TEXT PRIMARY KEY,
	instrument TEXT NOT NULL,
	currency TEXT NOT NULL,
	created DATETIME NOT NULL,
	start_date DATETIME NOT NULL,
	end_date DATETIME NOT NULL,
	days INTEGER NOT NULL,
	start_offset INTEGER NOT NULL,
	initial_capital TEXT NOT NULL,
	final_valuation TEXT NOT NULL,
	profit TEXT NOT NULL,
	roi_percent TEXT NOT NULL,
	cash TEXT NOT NULL,
	shares INTEGER NOT NULL,
	fills INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fills_session ON fills(session_id, day);
CREATE INDEX IF NOT EXISTS idx_equity_session ON equity(session_id, day);
`
