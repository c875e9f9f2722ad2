package reader

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements DatasetStore using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL
// mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS datasets (
	path           TEXT PRIMARY KEY,
	return_periods TEXT NOT NULL,
	lon0           REAL NOT NULL,
	lat0           REAL NOT NULL,
	dlon           REAL NOT NULL,
	dlat           REAL NOT NULL,
	width          INTEGER NOT NULL,
	height         INTEGER NOT NULL,
	vals           BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS ingest_log (
	id         TEXT PRIMARY KEY,
	path       TEXT NOT NULL,
	source     TEXT,
	cells      INTEGER NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_ingest_log_path ON ingest_log(path);
`

// Migrate creates the dataset tables if they do not exist.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) GetDataset(ctx context.Context, path string) (*Dataset, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT path, return_periods, lon0, lat0, dlon, dlat, width, height, vals
		 FROM datasets WHERE path = ?`, path)

	var ds Dataset
	var rpJSON string
	var blob []byte
	err := row.Scan(&ds.Path, &rpJSON, &ds.Lon0, &ds.Lat0, &ds.DLon, &ds.DLat, &ds.Width, &ds.Height, &blob)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, eris.Errorf("reader: dataset %q not found", path)
		}
		return nil, eris.Wrapf(err, "sqlite: get dataset %s", path)
	}
	if err := json.Unmarshal([]byte(rpJSON), &ds.ReturnPeriods); err != nil {
		return nil, eris.Wrapf(err, "sqlite: decode return periods for %s", path)
	}
	if ds.Values, err = decodeValues(blob); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (s *SQLiteStore) PutDataset(ctx context.Context, ds *Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}
	rpJSON, err := json.Marshal(ds.ReturnPeriods)
	if err != nil {
		return eris.Wrap(err, "sqlite: encode return periods")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO datasets (path, return_periods, lon0, lat0, dlon, dlat, width, height, vals)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			return_periods = excluded.return_periods,
			lon0 = excluded.lon0, lat0 = excluded.lat0,
			dlon = excluded.dlon, dlat = excluded.dlat,
			width = excluded.width, height = excluded.height,
			vals = excluded.vals`,
		ds.Path, string(rpJSON), ds.Lon0, ds.Lat0, ds.DLon, ds.DLat, ds.Width, ds.Height, encodeValues(ds.Values))
	return eris.Wrapf(err, "sqlite: put dataset %s", ds.Path)
}

func (s *SQLiteStore) ListDatasets(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path FROM datasets ORDER BY path`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list datasets")
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan dataset path")
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

func (s *SQLiteStore) LogIngest(ctx context.Context, run IngestRun) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ingest_log (id, path, source, cells, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Path, run.Source, run.Cells, run.CreatedAt)
	return eris.Wrap(err, "sqlite: log ingest")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
