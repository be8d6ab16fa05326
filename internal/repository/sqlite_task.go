package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/planboard/internal/db"
	"github.com/alexanderramin/planboard/internal/domain"
)

// SQLiteTaskRepo stores tasks and their image attachments. Create writes two
// tables, so callers wanting atomicity build the repo on a transaction.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskColumns = `id, project_id, phase_id, name, description, priority, assignee, status, start_date, end_date, created_at`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ProjectID, t.PhaseID, t.Name, t.Description,
		string(t.Priority), t.Assignee, string(t.Status),
		formatDate(t.StartDate), formatDate(t.EndDate), formatTimestamp(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	for i, path := range t.Images {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO task_images (task_id, position, path) VALUES (?, ?, ?)`, t.ID, i, path); err != nil {
			return fmt.Errorf("inserting task image: %w", err)
		}
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		return nil, notFound(err, "task", id)
	}
	images, err := r.images(ctx, `SELECT task_id, path FROM task_images WHERE task_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	t.Images = images[id]
	return t, nil
}

// ListByProject returns a project's tasks in creation order with images.
func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY rowid`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	// Release the connection before the image query; an in-memory
	// database has only one.
	rows.Close()

	images, err := r.images(ctx, `SELECT ti.task_id, ti.path FROM task_images ti
		JOIN tasks t ON t.id = ti.task_id
		WHERE t.project_id = ? ORDER BY ti.task_id, ti.position`, projectID)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		t.Images = images[t.ID]
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("updating task status: %w", err)
	}
	return requireAffected(res, "task", id)
}

func (r *SQLiteTaskRepo) CountByStatus(ctx context.Context, status domain.Status) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE status = ?`, string(status)).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting tasks: %w", err)
	}
	return n, nil
}

func (r *SQLiteTaskRepo) images(ctx context.Context, query string, arg any) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("listing task images: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var taskID, path string
		if err := rows.Scan(&taskID, &path); err != nil {
			return nil, fmt.Errorf("scanning task image: %w", err)
		}
		out[taskID] = append(out[taskID], path)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task images: %w", err)
	}
	return out, nil
}

func scanTask(s scanner) (*domain.Task, error) {
	var t domain.Task
	var priority, status, start, end, createdAt string
	if err := s.Scan(&t.ID, &t.ProjectID, &t.PhaseID, &t.Name, &t.Description,
		&priority, &t.Assignee, &status, &start, &end, &createdAt); err != nil {
		return nil, err
	}
	t.Priority = domain.Priority(priority)
	t.Status = domain.Status(status)

	var err error
	if t.StartDate, err = parseDate(start); err != nil {
		return nil, err
	}
	if t.EndDate, err = parseDate(end); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	return &t, nil
}
