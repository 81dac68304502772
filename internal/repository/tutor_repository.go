package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sgtutorhub/assignment_bot/internal/model"
	"github.com/sgtutorhub/assignment_bot/internal/repository/base"
)

const tutorColumns = `
	id, contact_number, chat_id, name, age, gender, race, nationality,
	education, years_experience, teaching_levels, locations, time_slots,
	hourly_rates, introduction, track_record, selling_points, created_at`

type TutorRepository struct {
	*base.Repository
}

func NewTutorRepository(pool *pgxpool.Pool) *TutorRepository {
	return &TutorRepository{Repository: base.NewRepository(pool)}
}

func scanTutor(row pgx.Row) (*model.Tutor, error) {
	var t model.Tutor
	err := row.Scan(
		&t.ID,
		&t.ContactNumber,
		&t.ChatID,
		&t.Name,
		&t.Age,
		&t.Gender,
		&t.Race,
		&t.Nationality,
		&t.Education,
		&t.YearsExperience,
		&t.TeachingLevels,
		&t.Locations,
		&t.TimeSlots,
		&t.HourlyRates,
		&t.Introduction,
		&t.TrackRecord,
		&t.SellingPoints,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByID returns one tutor, or (nil, nil) when absent.
func (r *TutorRepository) GetByID(ctx context.Context, id int64) (*model.Tutor, error) {
	query := `SELECT ` + tutorColumns + ` FROM tutors WHERE id = $1`

	t, err := scanTutor(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tutor by id: %w", err)
	}
	return t, nil
}

// FindByContactCandidates matches the candidate digit strings as unanchored
// case-insensitive regexes against the digits-only projection of the stored
// contact number, so stored formatting noise (spaces, dashes, parens) does
// not break matching. Returns the first match, or (nil, nil).
func (r *TutorRepository) FindByContactCandidates(ctx context.Context, candidates []string) (*model.Tutor, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + tutorColumns + `
		FROM tutors
		WHERE regexp_replace(contact_number, '\D', '', 'g') ~* ANY($1)
		LIMIT 1
	`

	t, err := scanTutor(r.QueryRow(ctx, query, candidates))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find tutor by contact: %w", err)
	}
	return t, nil
}

// Update persists every mutable profile field.
func (r *TutorRepository) Update(ctx context.Context, t *model.Tutor) error {
	query := `
		UPDATE tutors
		SET contact_number = $1, chat_id = $2, name = $3, age = $4, gender = $5,
		    race = $6, nationality = $7, education = $8, years_experience = $9,
		    teaching_levels = $10, locations = $11, time_slots = $12,
		    hourly_rates = $13, introduction = $14, track_record = $15,
		    selling_points = $16
		WHERE id = $17
	`

	affected, err := r.ExecAffected(ctx, query,
		t.ContactNumber,
		t.ChatID,
		t.Name,
		t.Age,
		t.Gender,
		t.Race,
		t.Nationality,
		t.Education,
		t.YearsExperience,
		t.TeachingLevels,
		t.Locations,
		t.TimeSlots,
		t.HourlyRates,
		t.Introduction,
		t.TrackRecord,
		t.SellingPoints,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("update tutor: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("tutor not found")
	}
	return nil
}

// UpdateChatID attaches a chat identity to a tutor record.
func (r *TutorRepository) UpdateChatID(ctx context.Context, tutorID, chatID int64) error {
	affected, err := r.ExecAffected(ctx,
		`UPDATE tutors SET chat_id = $1 WHERE id = $2`, chatID, tutorID)
	if err != nil {
		return fmt.Errorf("update tutor chat id: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("tutor not found")
	}
	return nil
}

// ListWithChatID returns every tutor reachable over the bot, for broadcasts.
func (r *TutorRepository) ListWithChatID(ctx context.Context) ([]*model.Tutor, error) {
	query := `SELECT ` + tutorColumns + ` FROM tutors WHERE chat_id <> 0 ORDER BY id`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tutors with chat id: %w", err)
	}
	defer rows.Close()

	var tutors []*model.Tutor
	for rows.Next() {
		t, err := scanTutor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tutor: %w", err)
		}
		tutors = append(tutors, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tutors: %w", err)
	}
	return tutors, nil
}
