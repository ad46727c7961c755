package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"siprev/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS sales (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  date TEXT NOT NULL,
  product TEXT NOT NULL,
  quantity REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sales_date ON sales(date);
CREATE INDEX IF NOT EXISTS idx_sales_product ON sales(product);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  startedAt TEXT NOT NULL,
  finishedAt TEXT NOT NULL,
  filesSeen INTEGER NOT NULL,
  filesParsed INTEGER NOT NULL,
  filesSkipped INTEGER NOT NULL,
  rowsKept INTEGER NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := d.conn.Exec(schema)
	return err
}

const dateLayout = "2006-01-02"

// ReplaceSales swaps the stored series for the given one in a single
// transaction. Ingestion recomputes, never mutates: this is the only write
// path for sales rows.
func (d *DB) ReplaceSales(records []internal.SalesRecord) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM sales`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO sales (date, product, quantity) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.Date.Format(dateLayout), r.Product, r.Quantity); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadSales returns the stored series sorted ascending by date. Satisfies
// plan.SeriesSource.
func (d *DB) LoadSales() ([]internal.SalesRecord, error) {
	rows, err := d.conn.Query(`SELECT date, product, quantity FROM sales ORDER BY date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []internal.SalesRecord{}
	for rows.Next() {
		var dateStr, product string
		var qty float64
		if err := rows.Scan(&dateStr, &product, &qty); err != nil {
			return nil, err
		}
		date, err := time.ParseInLocation(dateLayout, dateStr, time.UTC)
		if err != nil {
			return nil, err
		}
		out = append(out, internal.SalesRecord{Date: date, Product: product, Quantity: qty})
	}
	return out, rows.Err()
}

func (d *DB) InsertRun(stats internal.RunStats) error {
	_, err := d.conn.Exec(
		`INSERT INTO runs (startedAt, finishedAt, filesSeen, filesParsed, filesSkipped, rowsKept) VALUES (?, ?, ?, ?, ?, ?)`,
		stats.StartedAt.Format(time.RFC3339), stats.FinishedAt.Format(time.RFC3339),
		stats.FilesSeen, stats.FilesParsed, stats.FilesSkipped, stats.RowsKept,
	)
	return err
}

// LastRun reports the most recent ingestion batch, if any.
func (d *DB) LastRun() (internal.RunStats, bool, error) {
	row := d.conn.QueryRow(
		`SELECT startedAt, finishedAt, filesSeen, filesParsed, filesSkipped, rowsKept FROM runs ORDER BY id DESC LIMIT 1`)

	var startedAt, finishedAt string
	var stats internal.RunStats
	err := row.Scan(&startedAt, &finishedAt, &stats.FilesSeen, &stats.FilesParsed, &stats.FilesSkipped, &stats.RowsKept)
	if err == sql.ErrNoRows {
		return internal.RunStats{}, false, nil
	}
	if err != nil {
		return internal.RunStats{}, false, err
	}
	if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
		stats.StartedAt = t
	}
	if t, err := time.Parse(time.RFC3339, finishedAt); err == nil {
		stats.FinishedAt = t
	}
	return stats, true, nil
}
