package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/planboard/internal/db"
	"github.com/alexanderramin/planboard/internal/domain"
)

type SQLiteKPIRepo struct {
	db db.DBTX
}

func NewSQLiteKPIRepo(conn db.DBTX) *SQLiteKPIRepo {
	return &SQLiteKPIRepo{db: conn}
}

func (r *SQLiteKPIRepo) Create(ctx context.Context, k *domain.KPI) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO kpis (id, project_id, name, target, current, unit, description, lower_is_better, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		k.ID, k.ProjectID, k.Name, k.Target, k.Current, k.Unit, k.Description, boolToInt(k.LowerIsBetter), k.Position,
	)
	if err != nil {
		return fmt.Errorf("inserting kpi: %w", err)
	}
	return nil
}

func (r *SQLiteKPIRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.KPI, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, name, target, current, unit, description, lower_is_better, position
		FROM kpis WHERE project_id = ? ORDER BY position, rowid`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing kpis: %w", err)
	}
	defer rows.Close()

	var kpis []*domain.KPI
	for rows.Next() {
		var k domain.KPI
		var lower int
		if err := rows.Scan(&k.ID, &k.ProjectID, &k.Name, &k.Target, &k.Current, &k.Unit, &k.Description, &lower, &k.Position); err != nil {
			return nil, fmt.Errorf("scanning kpi: %w", err)
		}
		k.LowerIsBetter = lower != 0
		kpis = append(kpis, &k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating kpis: %w", err)
	}
	return kpis, nil
}
