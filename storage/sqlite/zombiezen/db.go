package zombiezen

import (
	"context"
	"embed"
	"fmt"
	"runtime"

	"zombiezen.com/go/sqlite/sqlitex"
)

//go:embed sql/schema.sql
var sqlFiles embed.FS

// NewPool creates a new Zombiezen SQLite connection pool with reasonable defaults
// (e.g., WAL mode enabled) and makes sure the schema exists.
func NewPool(dbPath string) (*sqlitex.Pool, error) {
	poolSize := runtime.NumCPU()
	initString := fmt.Sprintf("file:%s", dbPath)

	// zombiezen/sqlitex.NewPool with default options uses flags:
	// sqlite.OpenReadWrite | sqlite.OpenCreate | sqlite.OpenWAL | sqlite.OpenURI
	pool, err := sqlitex.NewPool(initString, sqlitex.PoolOptions{
		PoolSize: poolSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create default zombiezen pool at %s: %w", dbPath, err)
	}

	if err := CreateSchema(pool); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// CreateSchema executes the embedded schema script.
func CreateSchema(pool *sqlitex.Pool) error {
	script, err := sqlFiles.ReadFile("sql/schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read embedded schema: %w", err)
	}

	conn, err := pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer pool.Put(conn)

	if err := sqlitex.ExecuteScript(conn, string(script), nil); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}
