package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS habits (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	name             TEXT NOT NULL,
	category         TEXT NOT NULL DEFAULT '',
	icon             TEXT NOT NULL DEFAULT '',
	color            TEXT NOT NULL DEFAULT '',
	goal             INTEGER NOT NULL CHECK(goal > 0),
	unit             TEXT NOT NULL DEFAULT '',
	frequency        TEXT NOT NULL DEFAULT 'daily',
	tracking_days    TEXT NOT NULL DEFAULT '[]',
	reminders        TEXT NOT NULL DEFAULT '[]',
	reminder_message TEXT NOT NULL DEFAULT '',
	progress         INTEGER NOT NULL DEFAULT 0,
	is_completed     INTEGER NOT NULL DEFAULT 0 CHECK(is_completed IN (0, 1)),
	created_at       DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS habit_completions (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	habit_id        INTEGER NOT NULL,
	completion_date INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_completions_date ON habit_completions(completion_date);
CREATE INDEX IF NOT EXISTS idx_completions_habit ON habit_completions(habit_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
