package sqlite

// Schema DDL. Statements are idempotent so Attach can run them against an
// existing database.
const (
	createKV = `CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	pragmaJournal = `PRAGMA journal_mode = WAL;`
)

// schemaDDL lists the statements Attach runs in order.
var schemaDDL = []string{
	pragmaJournal,
	createKV,
}
