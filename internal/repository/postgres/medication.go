package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/stefanpalsson415/family-care-api/internal/model"
	"github.com/stefanpalsson415/family-care-api/internal/repository"
)

type medicationRepository struct {
	db *sqlx.DB
}

func NewMedicationRepository(db *sqlx.DB) repository.MedicationRepository {
	return &medicationRepository{db: db}
}

type medicationRow struct {
	ID             uuid.UUID `db:"id"`
	FamilyMemberID uuid.UUID `db:"family_member_id"`
	IsActive       bool      `db:"is_active"`
	Data           []byte    `db:"data"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r medicationRow) toModel() (*model.Medication, error) {
	var med model.Medication
	if err := json.Unmarshal(r.Data, &med); err != nil {
		return nil, fmt.Errorf("failed to decode medication %s: %w", r.ID, err)
	}
	med.ID = r.ID
	med.FamilyMemberID = r.FamilyMemberID
	med.IsActive = r.IsActive
	med.CreatedAt = r.CreatedAt.UTC()
	med.UpdatedAt = r.UpdatedAt.UTC()
	return &med, nil
}

func (r *medicationRepository) CreateMedication(ctx context.Context, med *model.Medication) error {
	data, err := json.Marshal(med)
	if err != nil {
		return fmt.Errorf("failed to encode medication: %w", err)
	}

	query := `
		INSERT INTO medications (id, family_member_id, is_active, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, query, med.ID, med.FamilyMemberID, med.IsActive, data)
	if err := row.Scan(&med.CreatedAt, &med.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create medication: %w", err)
	}
	return nil
}

func (r *medicationRepository) GetMedication(ctx context.Context, id uuid.UUID) (*model.Medication, error) {
	query := `
		SELECT id, family_member_id, is_active, data, created_at, updated_at
		FROM medications
		WHERE id = $1
	`
	var row medicationRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get medication: %w", err)
	}
	return row.toModel()
}

func (r *medicationRepository) CreateSchedule(ctx context.Context, schedule *model.MedicationSchedule) error {
	times, err := json.Marshal(schedule.Times)
	if err != nil {
		return fmt.Errorf("failed to encode schedule times: %w", err)
	}
	days, err := json.Marshal(schedule.DaysOfWeek)
	if err != nil {
		return fmt.Errorf("failed to encode schedule days: %w", err)
	}

	query := `
		INSERT INTO medication_schedules (
			id, medication_id, family_member_id, frequency,
			times, days_of_week, day_of_month, with_food, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		RETURNING created_at
	`
	row := r.db.QueryRowContext(ctx, query,
		schedule.ID,
		schedule.MedicationID,
		schedule.FamilyMemberID,
		schedule.Frequency,
		times,
		days,
		schedule.DayOfMonth,
		schedule.WithFood,
	)
	if err := row.Scan(&schedule.CreatedAt); err != nil {
		return fmt.Errorf("failed to create medication schedule: %w", err)
	}
	return nil
}

func (r *medicationRepository) ListSchedulesByMember(ctx context.Context, memberID uuid.UUID) ([]*model.MedicationSchedule, error) {
	query := `
		SELECT id, medication_id, family_member_id, frequency,
		       times, days_of_week, day_of_month, with_food, created_at
		FROM medication_schedules
		WHERE family_member_id = $1
	`
	rows, err := r.db.QueryxContext(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medication schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*model.MedicationSchedule
	for rows.Next() {
		var (
			s     model.MedicationSchedule
			times []byte
			days  []byte
		)
		if err := rows.Scan(&s.ID, &s.MedicationID, &s.FamilyMemberID, &s.Frequency,
			&times, &days, &s.DayOfMonth, &s.WithFood, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan medication schedule: %w", err)
		}
		if err := json.Unmarshal(times, &s.Times); err != nil {
			return nil, fmt.Errorf("failed to decode schedule times: %w", err)
		}
		if err := json.Unmarshal(days, &s.DaysOfWeek); err != nil {
			return nil, fmt.Errorf("failed to decode schedule days: %w", err)
		}
		schedules = append(schedules, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate medication schedules: %w", err)
	}
	return schedules, nil
}
