package store

const schema = `
CREATE TABLE IF NOT EXISTS packages (
    name TEXT NOT NULL,
    source TEXT NOT NULL,
    version TEXT,
    install_date TIMESTAMP,
    size_bytes INTEGER NOT NULL DEFAULT 0,
    binary_path TEXT,
    is_dependency BOOLEAN NOT NULL DEFAULT 0,
    last_used TIMESTAMP,
    usage_count INTEGER NOT NULL DEFAULT 0,
    last_seen TIMESTAMP NOT NULL,
    PRIMARY KEY (name, source)
);

CREATE TABLE IF NOT EXISTS scans (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    scan_type TEXT NOT NULL,
    package_count INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_packages_source ON packages(source);
CREATE INDEX IF NOT EXISTS idx_packages_last_used ON packages(last_used);
CREATE INDEX IF NOT EXISTS idx_scans_created ON scans(created_at);
`
