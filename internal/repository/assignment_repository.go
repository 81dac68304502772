package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sgtutorhub/assignment_bot/internal/model"
	"github.com/sgtutorhub/assignment_bot/internal/repository/base"
)

const assignmentColumns = `
	id, title, level, subject, location, rate, frequency, start_date,
	description, requirements, status, channel_message_id, applications,
	created_at`

type AssignmentRepository struct {
	*base.Repository
}

func NewAssignmentRepository(pool *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{Repository: base.NewRepository(pool)}
}

func scanAssignment(row pgx.Row) (*model.Assignment, error) {
	var a model.Assignment
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Level,
		&a.Subject,
		&a.Location,
		&a.Rate,
		&a.Frequency,
		&a.StartDate,
		&a.Description,
		&a.Requirements,
		&a.Status,
		&a.ChannelMessageID,
		&a.Applications,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if a.Applications == nil {
		a.Applications = []model.Application{}
	}
	return &a, nil
}

// Create inserts a new assignment.
func (r *AssignmentRepository) Create(ctx context.Context, a *model.Assignment) error {
	query := `
		INSERT INTO assignments (id, title, level, subject, location, rate,
			frequency, start_date, description, requirements, status,
			channel_message_id, applications)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at
	`

	err := r.QueryRow(ctx, query,
		a.ID,
		a.Title,
		a.Level,
		a.Subject,
		a.Location,
		a.Rate,
		a.Frequency,
		a.StartDate,
		a.Description,
		a.Requirements,
		a.Status,
		a.ChannelMessageID,
		a.Applications,
	).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// GetByID returns one assignment, or (nil, nil) when absent.
func (r *AssignmentRepository) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id = $1`

	a, err := scanAssignment(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assignment by id: %w", err)
	}
	return a, nil
}

// Update persists the assignment's mutable fields, applications included.
// Read-modify-write without optimistic locking; last writer wins.
func (r *AssignmentRepository) Update(ctx context.Context, a *model.Assignment) error {
	query := `
		UPDATE assignments
		SET title = $1, level = $2, subject = $3, location = $4, rate = $5,
		    frequency = $6, start_date = $7, description = $8,
		    requirements = $9, status = $10, channel_message_id = $11,
		    applications = $12
		WHERE id = $13
	`

	affected, err := r.ExecAffected(ctx, query,
		a.Title,
		a.Level,
		a.Subject,
		a.Location,
		a.Rate,
		a.Frequency,
		a.StartDate,
		a.Description,
		a.Requirements,
		a.Status,
		a.ChannelMessageID,
		a.Applications,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("update assignment: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("assignment not found")
	}
	return nil
}

// Delete removes an assignment.
func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("assignment not found")
	}
	return nil
}

// ListOpenFiltered pages open assignments, newest first, with best-effort
// equality matching on the optional level/location filters (empty = any).
func (r *AssignmentRepository) ListOpenFiltered(ctx context.Context, level, location string, offset, limit int) ([]*model.Assignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments
		WHERE status = 'Open'
		  AND ($1 = '' OR level ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR location ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC
		OFFSET $3 LIMIT $4
	`
	return r.list(ctx, query, level, location, offset, limit)
}

// CountOpenFiltered counts open assignments under the same filters.
func (r *AssignmentRepository) CountOpenFiltered(ctx context.Context, level, location string) (int, error) {
	var count int
	err := r.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM assignments
		WHERE status = 'Open'
		  AND ($1 = '' OR level ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR location ILIKE '%' || $2 || '%')
	`, level, location).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count open assignments: %w", err)
	}
	return count, nil
}

// ListByStatus pages assignments of one status, newest first.
func (r *AssignmentRepository) ListByStatus(ctx context.Context, status string, offset, limit int) ([]*model.Assignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments
		WHERE status = $1
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`
	return r.list(ctx, query, status, offset, limit)
}

// CountByStatus counts assignments of one status.
func (r *AssignmentRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.QueryRow(ctx,
		`SELECT COUNT(*) FROM assignments WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count assignments by status: %w", err)
	}
	return count, nil
}

// CountsByStatus returns assignment counts grouped by status.
func (r *AssignmentRepository) CountsByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.Query(ctx,
		`SELECT status, COUNT(*) FROM assignments GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("counts by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}
	return counts, nil
}

// ListByApplicant pages assignments containing an application from the
// tutor, newest first. Uses jsonb containment on the applications document.
func (r *AssignmentRepository) ListByApplicant(ctx context.Context, tutorID int64, offset, limit int) ([]*model.Assignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM assignments
		WHERE applications @> jsonb_build_array(jsonb_build_object('tutor_id', $1::bigint))
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3
	`
	return r.list(ctx, query, tutorID, offset, limit)
}

// CountByApplicant counts assignments the tutor has applied to.
func (r *AssignmentRepository) CountByApplicant(ctx context.Context, tutorID int64) (int, error) {
	var count int
	err := r.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM assignments
		WHERE applications @> jsonb_build_array(jsonb_build_object('tutor_id', $1::bigint))
	`, tutorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count assignments by applicant: %w", err)
	}
	return count, nil
}

func (r *AssignmentRepository) list(ctx context.Context, query string, args ...interface{}) ([]*model.Assignment, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*model.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assignments: %w", err)
	}
	return assignments, nil
}
