package reader

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// Pool is the subset of pgxpool.Pool the store needs; pgxmock satisfies
// it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements DatasetStore using pgx.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresFromPool wraps an existing pool; used by tests.
func NewPostgresFromPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS datasets (
	path           TEXT PRIMARY KEY,
	return_periods JSONB NOT NULL,
	lon0           DOUBLE PRECISION NOT NULL,
	lat0           DOUBLE PRECISION NOT NULL,
	dlon           DOUBLE PRECISION NOT NULL,
	dlat           DOUBLE PRECISION NOT NULL,
	width          INTEGER NOT NULL,
	height         INTEGER NOT NULL,
	vals           BYTEA NOT NULL
);

CREATE TABLE IF NOT EXISTS ingest_log (
	id         UUID PRIMARY KEY,
	path       TEXT NOT NULL,
	source     TEXT,
	cells      INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_ingest_log_path ON ingest_log(path);
`

// Migrate creates the dataset tables if they do not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) GetDataset(ctx context.Context, path string) (*Dataset, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT path, return_periods, lon0, lat0, dlon, dlat, width, height, vals
		 FROM datasets WHERE path = $1`, path)

	var ds Dataset
	var rpJSON []byte
	var blob []byte
	err := row.Scan(&ds.Path, &rpJSON, &ds.Lon0, &ds.Lat0, &ds.DLon, &ds.DLat, &ds.Width, &ds.Height, &blob)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, eris.Errorf("reader: dataset %q not found", path)
		}
		return nil, eris.Wrapf(err, "postgres: get dataset %s", path)
	}
	if err := json.Unmarshal(rpJSON, &ds.ReturnPeriods); err != nil {
		return nil, eris.Wrapf(err, "postgres: decode return periods for %s", path)
	}
	if ds.Values, err = decodeValues(blob); err != nil {
		return nil, err
	}
	return &ds, nil
}

func (s *PostgresStore) PutDataset(ctx context.Context, ds *Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}
	rpJSON, err := json.Marshal(ds.ReturnPeriods)
	if err != nil {
		return eris.Wrap(err, "postgres: encode return periods")
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO datasets (path, return_periods, lon0, lat0, dlon, dlat, width, height, vals)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (path) DO UPDATE SET
			return_periods = EXCLUDED.return_periods,
			lon0 = EXCLUDED.lon0, lat0 = EXCLUDED.lat0,
			dlon = EXCLUDED.dlon, dlat = EXCLUDED.dlat,
			width = EXCLUDED.width, height = EXCLUDED.height,
			vals = EXCLUDED.vals`,
		ds.Path, rpJSON, ds.Lon0, ds.Lat0, ds.DLon, ds.DLat, ds.Width, ds.Height, encodeValues(ds.Values))
	return eris.Wrapf(err, "postgres: put dataset %s", ds.Path)
}

func (s *PostgresStore) ListDatasets(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT path FROM datasets ORDER BY path`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list datasets")
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, eris.Wrap(err, "postgres: scan dataset path")
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

func (s *PostgresStore) LogIngest(ctx context.Context, run IngestRun) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO ingest_log (id, path, source, cells, created_at) VALUES ($1, $2, $3, $4, $5)`,
		run.ID, run.Path, run.Source, run.Cells, run.CreatedAt)
	return eris.Wrap(err, "postgres: log ingest")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}
