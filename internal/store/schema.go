package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS forecasts (
    fingerprint          TEXT PRIMARY KEY,
    response             TEXT NOT NULL,
    method_used          TEXT NOT NULL,
    horizon_days         INTEGER NOT NULL,
    computed_at          INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_forecasts_computed ON forecasts(computed_at);
`
