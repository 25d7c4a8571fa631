package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS subjects (
    name        TEXT PRIMARY KEY,
    confidence  INTEGER,
    exam_date   TEXT
);

CREATE TABLE IF NOT EXISTS sessions (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    subject        TEXT NOT NULL,
    timestamp      TEXT NOT NULL,
    task_type      TEXT,
    duration_mins  INTEGER NOT NULL,
    effectiveness  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_subject ON sessions(subject);
CREATE INDEX IF NOT EXISTS idx_sessions_timestamp ON sessions(timestamp);
`
