package export

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mdYoungDOer/pdf-processor/model"
)

// WriteSQLite stores a dataset as a single TEXT-columned table in a
// SQLite database at path, replacing any table of the same name.
// Absent cells are stored as NULL. An empty dataset creates no table.
func WriteSQLite(path, table string, ds model.Dataset) error {
	if table == "" {
		table = "extracted"
	}
	if ds.IsEmpty() {
		return nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	cols := make([]string, len(ds.Columns))
	marks := make([]string, len(ds.Columns))
	for i, c := range ds.Columns {
		cols[i] = quoteIdent(c) + " TEXT"
		marks[i] = "?"
	}

	if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(table))); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table), strings.Join(cols, ", "))
	if _, err := db.Exec(create); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	insert := fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoteIdent(table), strings.Join(marks, ", "))
	stmt, err := tx.Prepare(insert)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(ds.Columns))
	for _, rec := range ds.Records {
		for i := range args {
			args[i] = nil
			if c := rec.At(i); c.Valid {
				args[i] = c.Text
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// quoteIdent quotes a SQLite identifier, doubling embedded quotes.
// Blank names still need a usable identifier, so they become "column".
func quoteIdent(name string) string {
	if strings.TrimSpace(name) == "" {
		name = "column"
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
