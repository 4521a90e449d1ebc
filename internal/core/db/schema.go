package db

func (db *DB) initSchema() error {
	schema := `
	-- One row per load/merge run
	CREATE TABLE IF NOT EXISTS scans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		dataset_id TEXT NOT NULL,
		action TEXT NOT NULL,
		base_dir TEXT NOT NULL,
		total_files INTEGER NOT NULL DEFAULT 0,
		processed_files INTEGER NOT NULL DEFAULT 0,
		failed_files INTEGER NOT NULL DEFAULT 0,
		event_count INTEGER NOT NULL DEFAULT 0,
		unique_tags INTEGER NOT NULL DEFAULT 0,
		min_date DATETIME,
		max_date DATETIME,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_scans_dataset_id ON scans(dataset_id);
	CREATE INDEX IF NOT EXISTS idx_scans_created_at ON scans(created_at);
	`

	_, err := db.conn.Exec(schema)
	return err
}
