package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/planboard/internal/db"
	"github.com/alexanderramin/planboard/internal/domain"
)

type SQLiteDocumentRepo struct {
	db db.DBTX
}

func NewSQLiteDocumentRepo(conn db.DBTX) *SQLiteDocumentRepo {
	return &SQLiteDocumentRepo{db: conn}
}

func (r *SQLiteDocumentRepo) Create(ctx context.Context, d *domain.Document) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, name, type, size_bytes, upload_date, category) VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, string(d.Type), d.SizeBytes, formatDate(d.UploadDate), d.Category,
	)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

// List returns the library in upload order.
func (r *SQLiteDocumentRepo) List(ctx context.Context) ([]*domain.Document, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, type, size_bytes, upload_date, category FROM documents ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []*domain.Document
	for rows.Next() {
		var d domain.Document
		var typ, uploaded string
		if err := rows.Scan(&d.ID, &d.Name, &typ, &d.SizeBytes, &uploaded, &d.Category); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		d.Type = domain.DocumentType(typ)
		if d.UploadDate, err = parseDate(uploaded); err != nil {
			return nil, err
		}
		docs = append(docs, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}
