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

type familyMemberRepository struct {
	db *sqlx.DB
}

func NewFamilyMemberRepository(db *sqlx.DB) repository.FamilyMemberRepository {
	return &familyMemberRepository{db: db}
}

type familyMemberRow struct {
	ID             uuid.UUID  `db:"id"`
	FamilyID       uuid.UUID  `db:"family_id"`
	Name           string     `db:"name"`
	Relationship   string     `db:"relationship"`
	DateOfBirth    *time.Time `db:"date_of_birth"`
	MedicalHistory []byte     `db:"medical_history"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

func (r familyMemberRow) toModel() (*model.FamilyMember, error) {
	member := &model.FamilyMember{
		ID:           r.ID,
		FamilyID:     r.FamilyID,
		Name:         r.Name,
		Relationship: r.Relationship,
		DateOfBirth:  r.DateOfBirth,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
	if len(r.MedicalHistory) > 0 {
		if err := json.Unmarshal(r.MedicalHistory, &member.MedicalHistory); err != nil {
			return nil, fmt.Errorf("failed to decode medical history for member %s: %w", r.ID, err)
		}
	}
	return member, nil
}

func (r *familyMemberRepository) Get(ctx context.Context, id uuid.UUID) (*model.FamilyMember, error) {
	query := `
		SELECT id, family_id, name, relationship, date_of_birth,
		       medical_history, created_at, updated_at
		FROM family_members
		WHERE id = $1
	`
	var row familyMemberRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get family member: %w", err)
	}
	return row.toModel()
}

func (r *familyMemberRepository) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*model.FamilyMember, error) {
	query := `
		SELECT id, family_id, name, relationship, date_of_birth,
		       medical_history, created_at, updated_at
		FROM family_members
		WHERE family_id = $1
		ORDER BY name ASC
	`
	var rows []familyMemberRow
	if err := r.db.SelectContext(ctx, &rows, query, familyID); err != nil {
		return nil, fmt.Errorf("failed to list family members: %w", err)
	}

	members := make([]*model.FamilyMember, 0, len(rows))
	for _, row := range rows {
		member, err := row.toModel()
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, nil
}

func (r *familyMemberRepository) AppendMedicalHistory(ctx context.Context, familyID, memberID uuid.UUID, summary model.AppointmentSummary) error {
	payload, err := json.Marshal([]model.AppointmentSummary{summary})
	if err != nil {
		return fmt.Errorf("failed to encode appointment summary: %w", err)
	}

	query := `
		UPDATE family_members
		SET medical_history = medical_history || $3::jsonb, updated_at = now()
		WHERE id = $1 AND family_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, memberID, familyID, payload)
	if err != nil {
		return fmt.Errorf("failed to append medical history: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
