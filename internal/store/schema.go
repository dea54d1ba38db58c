package store

// Schema DDL. Row IDs are assigned by SQLite and never surface to the user;
// user-facing identity is always the path or tag string. The IF NOT EXISTS
// guards make migration idempotent, and applying all statements inside one
// transaction ensures a crash mid-creation never leaves a half-built schema.
const (
	createFiles = `CREATE TABLE IF NOT EXISTS files (
    file_id INTEGER PRIMARY KEY,
    relative_path TEXT NOT NULL UNIQUE
);`

	createTags = `CREATE TABLE IF NOT EXISTS tags (
    tag_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);`

	createFileTags = `CREATE TABLE IF NOT EXISTS file_tags (
    file_id INTEGER NOT NULL,
    tag_id INTEGER NOT NULL,
    PRIMARY KEY (file_id, tag_id),
    FOREIGN KEY (file_id) REFERENCES files(file_id),
    FOREIGN KEY (tag_id) REFERENCES tags(tag_id)
);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createFiles,
	createTags,
	createFileTags,
}
