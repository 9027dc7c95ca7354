package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sent "github.com/revelaction/truecase/sentence"
	"github.com/revelaction/truecase/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type Store struct {
	pool *sqlitex.Pool
}

var _ storage.Repository = (*Store)(nil)

func NewStore(pool *sqlitex.Pool) *Store {
	return &Store{pool: pool}
}

func (h *Store) List() ([]sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	docs := []sent.Doc{}
	err = sqlitex.Execute(conn, "SELECT id, key, title, annotators, pipeline FROM docs ORDER BY id", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			docs = append(docs, sent.Doc{
				Id:         stmt.ColumnInt(0),
				Key:        stmt.ColumnText(1),
				Title:      stmt.ColumnText(2),
				Annotators: splitAnnotators(stmt.ColumnText(3)),
				Pipeline:   stmt.ColumnText(4),
			})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (h *Store) Read(key string) (sent.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return sent.Doc{}, err
	}
	defer h.pool.Put(conn)

	doc := sent.Doc{Key: key}
	found := false

	err = sqlitex.Execute(conn, "SELECT id, title, text, annotators, pipeline FROM docs WHERE key = ?", &sqlitex.ExecOptions{
		Args: []interface{}{key},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			doc.Id = stmt.ColumnInt(0)
			doc.Title = stmt.ColumnText(1)
			doc.Text = stmt.ColumnText(2)
			doc.Annotators = splitAnnotators(stmt.ColumnText(3))
			doc.Pipeline = stmt.ColumnText(4)
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}
	if !found {
		return sent.Doc{}, fmt.Errorf("doc %s: %w", key, storage.ErrNotFound)
	}

	doc.Sentences = []sent.Sentence{}
	err = sqlitex.Execute(conn, "SELECT position, data FROM sentences WHERE doc_id = ? ORDER BY position", &sqlitex.ExecOptions{
		Args: []interface{}{doc.Id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			s := sent.Sentence{Id: stmt.ColumnInt(0)}
			if err := json.Unmarshal([]byte(stmt.ColumnText(1)), &s.Tokens); err != nil {
				return err
			}
			doc.Sentences = append(doc.Sentences, s)
			return nil
		},
	})
	if err != nil {
		return sent.Doc{}, err
	}

	return doc, nil
}

// Write stores the doc, replacing a previous doc with the same key.
func (h *Store) Write(doc sent.Doc) (err error) {
	if doc.Key == "" {
		return fmt.Errorf("doc has no key")
	}

	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	err = sqlitex.Execute(conn, "DELETE FROM sentences WHERE doc_id IN (SELECT id FROM docs WHERE key = ?)", &sqlitex.ExecOptions{
		Args: []interface{}{doc.Key},
	})
	if err != nil {
		return fmt.Errorf("failed to delete sentences: %w", err)
	}

	err = sqlitex.Execute(conn, "DELETE FROM docs WHERE key = ?", &sqlitex.ExecOptions{
		Args: []interface{}{doc.Key},
	})
	if err != nil {
		return fmt.Errorf("failed to delete doc: %w", err)
	}

	err = sqlitex.Execute(conn, "INSERT INTO docs (key, pipeline, title, text, annotators) VALUES (?, ?, ?, ?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{doc.Key, doc.Pipeline, doc.Title, doc.Text, strings.Join(doc.Annotators, ",")},
	})
	if err != nil {
		return fmt.Errorf("failed to insert doc: %w", err)
	}
	docID := conn.LastInsertRowID()

	for i, sentence := range doc.Sentences {
		data, marshalErr := json.Marshal(sentence.Tokens)
		if marshalErr != nil {
			return marshalErr
		}

		err = sqlitex.Execute(conn, "INSERT INTO sentences (doc_id, position, data) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{docID, i, string(data)},
		})
		if err != nil {
			return fmt.Errorf("failed to insert sentence: %w", err)
		}
	}

	return nil
}

func splitAnnotators(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
