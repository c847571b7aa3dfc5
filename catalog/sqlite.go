package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/flarexio/librarian"
)

// SQLite reads the library system's books table. The table is owned by the
// management backend; this side only ever selects from it.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (c *SQLite) Close() error {
	return c.db.Close()
}

func (c *SQLite) ListAllBooks(ctx context.Context) ([]librarian.BookRecord, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, title, author, genre, description, status
		FROM books
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	var books []librarian.BookRecord
	for rows.Next() {
		var book librarian.BookRecord
		if err := rows.Scan(&book.ID, &book.Title, &book.Author,
			&book.Genre, &book.Description, &book.Status); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}

		books = append(books, book)
	}

	return books, rows.Err()
}

func (c *SQLite) GetBookByID(ctx context.Context, id int) (*librarian.BookRecord, error) {
	var book librarian.BookRecord

	err := c.db.QueryRowContext(ctx, `
		SELECT id, title, author, genre, description, status
		FROM books
		WHERE id = ?`, id).
		Scan(&book.ID, &book.Title, &book.Author,
			&book.Genre, &book.Description, &book.Status)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, librarian.ErrBookNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("query book %d: %w", id, err)
	}

	return &book, nil
}
