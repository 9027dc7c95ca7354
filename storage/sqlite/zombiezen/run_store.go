package zombiezen

import (
	"context"
	"fmt"
	"time"

	"github.com/revelaction/truecase/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// timeLayout has a fixed width so that created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func (h *Store) WriteRun(run storage.Run) error {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	truncated := 0
	if run.Truncated {
		truncated = 1
	}

	err = sqlitex.Execute(conn, `INSERT INTO runs (id, input, pipeline, annotators, total, matches, error_rate, truncated, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, &sqlitex.ExecOptions{
		Args: []interface{}{
			run.Id, run.Input, run.Pipeline, run.Annotators, run.Total, run.Matches,
			run.ErrorRate, truncated, run.CreatedAt.UTC().Format(timeLayout),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	return nil
}

func (h *Store) Runs(limit int) ([]storage.Run, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	// a negative limit means no limit in sqlite
	if limit <= 0 {
		limit = -1
	}

	runs := []storage.Run{}
	err = sqlitex.Execute(conn, `SELECT id, input, annotators, total, matches, error_rate, truncated, created_at, pipeline
		FROM runs ORDER BY created_at DESC LIMIT ?`, &sqlitex.ExecOptions{
		Args: []interface{}{limit},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			created, err := time.Parse(timeLayout, stmt.ColumnText(7))
			if err != nil {
				return err
			}

			runs = append(runs, storage.Run{
				Id:         stmt.ColumnText(0),
				Input:      stmt.ColumnText(1),
				Annotators: stmt.ColumnText(2),
				Total:      stmt.ColumnInt(3),
				Matches:    stmt.ColumnInt(4),
				ErrorRate:  stmt.ColumnFloat(5),
				Truncated:  stmt.ColumnInt(6) != 0,
				CreatedAt:  created,
				Pipeline:   stmt.ColumnText(8),
			})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return runs, nil
}
