package cache

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

CREATE TABLE IF NOT EXISTS notifications (
	id                TEXT PRIMARY KEY,
	notification_type TEXT NOT NULL DEFAULT '',
	title             TEXT NOT NULL DEFAULT '',
	message           TEXT NOT NULL DEFAULT '',
	priority          TEXT NOT NULL DEFAULT 'general',
	created_at        TEXT NOT NULL DEFAULT '',
	is_read           INTEGER NOT NULL DEFAULT 0,
	sender_username   TEXT NOT NULL DEFAULT '',
	sender_avatar_url TEXT NOT NULL DEFAULT '',
	position          INTEGER NOT NULL
);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
