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

// medicalEventRepository stores each event as a JSONB document with the
// queryable fields mirrored into indexed columns. Timestamps are
// server-assigned; all instants are normalized to UTC at this boundary.
type medicalEventRepository struct {
	db *sqlx.DB
}

func NewMedicalEventRepository(db *sqlx.DB) repository.MedicalEventRepository {
	return &medicalEventRepository{db: db}
}

type medicalEventRow struct {
	ID                  uuid.UUID `db:"id"`
	FamilyID            uuid.UUID `db:"family_id"`
	Status              string    `db:"status"`
	AppointmentDate     time.Time `db:"appointment_date"`
	FollowupRecommended bool      `db:"followup_recommended"`
	Data                []byte    `db:"data"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

func (r medicalEventRow) toModel() (*model.MedicalEvent, error) {
	var event model.MedicalEvent
	if err := json.Unmarshal(r.Data, &event); err != nil {
		return nil, fmt.Errorf("failed to decode event %s: %w", r.ID, err)
	}
	// Columns are canonical for the mirrored fields.
	event.ID = r.ID
	event.FamilyID = r.FamilyID
	event.Status = model.MedicalEventStatus(r.Status)
	event.AppointmentDate = r.AppointmentDate.UTC()
	event.FollowupRecommended = r.FollowupRecommended
	event.CreatedAt = r.CreatedAt.UTC()
	event.UpdatedAt = r.UpdatedAt.UTC()
	return &event, nil
}

func encodeEvent(event *model.MedicalEvent) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event %s: %w", event.ID, err)
	}
	return data, nil
}

func (r *medicalEventRepository) Create(ctx context.Context, event *model.MedicalEvent) error {
	event.AppointmentDate = event.AppointmentDate.UTC()
	data, err := encodeEvent(event)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO medical_events (
			id, family_id, status, appointment_date,
			followup_recommended, data, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, query,
		event.ID,
		event.FamilyID,
		event.Status,
		event.AppointmentDate,
		event.FollowupRecommended,
		data,
	)
	if err := row.Scan(&event.CreatedAt, &event.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create medical event: %w", err)
	}
	return nil
}

func (r *medicalEventRepository) Get(ctx context.Context, id uuid.UUID) (*model.MedicalEvent, error) {
	query := `
		SELECT id, family_id, status, appointment_date,
		       followup_recommended, data, created_at, updated_at
		FROM medical_events
		WHERE id = $1
	`
	var row medicalEventRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get medical event: %w", err)
	}
	return row.toModel()
}

func (r *medicalEventRepository) Update(ctx context.Context, event *model.MedicalEvent) error {
	event.AppointmentDate = event.AppointmentDate.UTC()
	data, err := encodeEvent(event)
	if err != nil {
		return err
	}

	query := `
		UPDATE medical_events
		SET status = $2, appointment_date = $3, followup_recommended = $4,
		    data = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	row := r.db.QueryRowContext(ctx, query,
		event.ID,
		event.Status,
		event.AppointmentDate,
		event.FollowupRecommended,
		data,
	)
	if err := row.Scan(&event.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to update medical event: %w", err)
	}
	return nil
}

func (r *medicalEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM medical_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete medical event: %w", err)
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

func (r *medicalEventRepository) List(ctx context.Context, familyID uuid.UUID, filters *model.MedicalEventFilters) ([]*model.MedicalEvent, error) {
	query := `
		SELECT id, family_id, status, appointment_date,
		       followup_recommended, data, created_at, updated_at
		FROM medical_events
		WHERE family_id = $1
	`
	args := []interface{}{familyID}

	if filters != nil {
		if filters.PatientID != uuid.Nil {
			args = append(args, filters.PatientID.String())
			query += fmt.Sprintf(" AND data->>'patient_id' = $%d", len(args))
		}
		if filters.Status != "" {
			args = append(args, filters.Status)
			query += fmt.Sprintf(" AND status = $%d", len(args))
		}
		if filters.AppointmentType != "" {
			args = append(args, filters.AppointmentType)
			query += fmt.Sprintf(" AND data->>'appointment_type' = $%d", len(args))
		}
	}

	// Newest first unless the caller asks for ascending order.
	if filters != nil && filters.SortOrder == "asc" {
		query += " ORDER BY appointment_date ASC"
	} else {
		query += " ORDER BY appointment_date DESC"
	}

	return r.queryEvents(ctx, query, args...)
}

func (r *medicalEventRepository) ListScheduledBetween(ctx context.Context, start, end time.Time) ([]*model.MedicalEvent, error) {
	query := `
		SELECT id, family_id, status, appointment_date,
		       followup_recommended, data, created_at, updated_at
		FROM medical_events
		WHERE status = $1 AND appointment_date >= $2 AND appointment_date <= $3
		ORDER BY appointment_date ASC
	`
	return r.queryEvents(ctx, query, model.MedicalEventStatusScheduled, start.UTC(), end.UTC())
}

func (r *medicalEventRepository) ListCompletedWithFollowup(ctx context.Context) ([]*model.MedicalEvent, error) {
	query := `
		SELECT id, family_id, status, appointment_date,
		       followup_recommended, data, created_at, updated_at
		FROM medical_events
		WHERE status = $1 AND followup_recommended = TRUE
		ORDER BY appointment_date DESC
	`
	return r.queryEvents(ctx, query, model.MedicalEventStatusCompleted)
}

func (r *medicalEventRepository) AppendDocument(ctx context.Context, eventID uuid.UUID, doc model.RequiredDocument) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	query := `
		UPDATE medical_events
		SET data = jsonb_set(
			data,
			'{required_documents}',
			COALESCE(data->'required_documents', '[]'::jsonb) || $2::jsonb
		), updated_at = now()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, eventID, payload)
	if err != nil {
		return fmt.Errorf("failed to append document: %w", err)
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

func (r *medicalEventRepository) AppendMedication(ctx context.Context, eventID, medicationID uuid.UUID) error {
	payload, err := json.Marshal([]uuid.UUID{medicationID})
	if err != nil {
		return fmt.Errorf("failed to encode medication id: %w", err)
	}

	query := `
		UPDATE medical_events
		SET data = jsonb_set(
			data,
			'{medications}',
			COALESCE(data->'medications', '[]'::jsonb) || $2::jsonb
		), updated_at = now()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, eventID, payload)
	if err != nil {
		return fmt.Errorf("failed to append medication: %w", err)
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

func (r *medicalEventRepository) ListFamilyIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, `SELECT DISTINCT family_id FROM medical_events`); err != nil {
		return nil, fmt.Errorf("failed to list family ids: %w", err)
	}
	return ids, nil
}

func (r *medicalEventRepository) queryEvents(ctx context.Context, query string, args ...interface{}) ([]*model.MedicalEvent, error) {
	var rows []medicalEventRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list medical events: %w", err)
	}

	events := make([]*model.MedicalEvent, 0, len(rows))
	for _, row := range rows {
		event, err := row.toModel()
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}
