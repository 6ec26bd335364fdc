package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist. Cascading deletes depend on
// PRAGMA foreign_keys being enabled on every connection (see New).
const schema = `
CREATE TABLE IF NOT EXISTS rooms (
    id TEXT PRIMARY KEY,
    code TEXT UNIQUE NOT NULL,
    name TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS members (
    id TEXT PRIMARY KEY,
    room_id TEXT NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    room_id TEXT NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
    category TEXT NOT NULL,
    description TEXT,
    amount REAL NOT NULL CHECK (amount > 0),
    paid_by TEXT NOT NULL REFERENCES members(id) ON DELETE CASCADE,
    split_type TEXT NOT NULL DEFAULT 'equal',
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_members_room ON members(room_id);
CREATE INDEX IF NOT EXISTS idx_expenses_room ON expenses(room_id);
CREATE INDEX IF NOT EXISTS idx_rooms_code ON rooms(code);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
