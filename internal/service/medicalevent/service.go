package medicalevent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/stefanpalsson415/family-care-api/internal/model"
	"github.com/stefanpalsson415/family-care-api/internal/repository"
	"github.com/stefanpalsson415/family-care-api/internal/service/calendar"
	"github.com/stefanpalsson415/family-care-api/internal/service/childtracking"
	"github.com/stefanpalsson415/family-care-api/internal/service/medication"
	apperrors "github.com/stefanpalsson415/family-care-api/pkg/errors"
)

const (
	defaultTitle           = "Medical Appointment"
	defaultAppointmentType = "checkup"
	defaultPriority        = "medium"
	appointmentDuration    = time.Hour

	memberCacheTTL = 5 * time.Minute
)

// Service coordinates the lifecycle of medical events: creation with
// defaulted sub-structures, checklists, completion with follow-up
// spawning, medication attachment and batch reminder generation.
//
// Calendar sync and child-history tracking are best effort: their
// failures surface as warnings on the result, never as operation
// failures. Document-store failures on the event record itself are
// fatal.
type Service struct {
	events   repository.MedicalEventRepository
	members  repository.FamilyMemberRepository
	calendar calendar.Service
	meds     medication.Manager
	children childtracking.Tracker
	logger   zerolog.Logger

	memberCache *cache.Cache
	now         func() time.Time
}

func NewService(
	events repository.MedicalEventRepository,
	members repository.FamilyMemberRepository,
	cal calendar.Service,
	meds medication.Manager,
	children childtracking.Tracker,
	logger zerolog.Logger,
) *Service {
	return &Service{
		events:      events,
		members:     members,
		calendar:    cal,
		meds:        meds,
		children:    children,
		logger:      logger.With().Str("component", "medical_event_registry").Logger(),
		memberCache: cache.New(memberCacheTTL, 2*memberCacheTTL),
		now:         time.Now,
	}
}

// CreateEventResult carries the created event plus warnings from
// best-effort collaborator calls.
type CreateEventResult struct {
	EventID  uuid.UUID           `json:"event_id"`
	Event    *model.MedicalEvent `json:"event"`
	Warnings []string            `json:"warnings,omitempty"`
}

// UpdateResult reports a mutation that may have accumulated best-effort
// warnings.
type UpdateResult struct {
	Warnings []string `json:"warnings,omitempty"`
}

// CompleteEventResult reports a completion, any follow-up event spawned
// and any medications attached along the way.
type CompleteEventResult struct {
	FollowupEventID *uuid.UUID  `json:"followup_event_id,omitempty"`
	MedicationIDs   []uuid.UUID `json:"medication_ids,omitempty"`
	Warnings        []string    `json:"warnings,omitempty"`
}

// AddMedicationResult reports a medication attach.
type AddMedicationResult struct {
	MedicationID uuid.UUID `json:"medication_id"`
	Warnings     []string  `json:"warnings,omitempty"`
}

// CreateEvent materializes a fully-defaulted medical event record,
// persists it, and opportunistically creates the calendar block and the
// child-history entry. A missing appointment date defaults to now,
// matching the upstream product behavior even though it yields an
// appointment in the past.
func (s *Service) CreateEvent(ctx context.Context, familyID, userID uuid.UUID, req *model.CreateMedicalEventRequest) (*CreateEventResult, error) {
	if req == nil {
		req = &model.CreateMedicalEventRequest{}
	}

	now := s.now().UTC()
	appointmentDate := now
	if req.AppointmentDate != nil {
		appointmentDate = req.AppointmentDate.UTC()
	}

	event := &model.MedicalEvent{
		ID:        uuid.New(),
		FamilyID:  familyID,
		CreatedBy: userID,

		Title:           req.Title,
		AppointmentType: req.AppointmentType,
		AppointmentDate: appointmentDate,
		Location:        req.Location,
		ProviderName:    req.ProviderName,
		SpecialistType:  req.SpecialistType,
		Notes:           req.Notes,

		PatientID:           req.PatientID,
		PatientName:         req.PatientName,
		PatientRelationship: req.PatientRelationship,

		Status: model.MedicalEventStatusScheduled,

		InsuranceRequired: req.InsuranceRequired,

		RequiredDocuments: req.RequiredDocuments,
		DocumentStatus:    model.ChecklistNotStarted,

		PreparationInstructions: req.PreparationInstructions,
		PreparationStatus:       model.ChecklistNotStarted,

		Medications: []uuid.UUID{},

		PreviousAppointmentID: req.PreviousAppointmentID,

		Tags:             req.Tags,
		Priority:         req.Priority,
		ReminderSettings: model.DefaultReminderSettings(),
	}
	if event.Title == "" {
		event.Title = defaultTitle
	}
	if event.AppointmentType == "" {
		event.AppointmentType = defaultAppointmentType
	}
	if event.Priority == "" {
		event.Priority = defaultPriority
	}
	if event.RequiredDocuments == nil {
		event.RequiredDocuments = []model.RequiredDocument{}
	}
	if req.InsuranceInfo != nil {
		event.InsuranceInfo = *req.InsuranceInfo
	}
	if req.ReminderSettings != nil {
		event.ReminderSettings = *req.ReminderSettings
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to create medical event: %w", err))
	}

	result := &CreateEventResult{EventID: event.ID, Event: event}

	if req.AddToCalendar == nil || *req.AddToCalendar {
		calendarID, err := s.calendar.CreateEvent(ctx, s.buildCalendarEvent(event))
		if err != nil {
			s.logger.Warn().Err(err).Str("event_id", event.ID.String()).Msg("calendar event creation failed")
			result.Warnings = append(result.Warnings, fmt.Sprintf("calendar event not created: %v", err))
		} else {
			event.CalendarEventID = &calendarID
			if err := s.events.Update(ctx, event); err != nil {
				s.logger.Warn().Err(err).Str("event_id", event.ID.String()).Msg("failed to store calendar link")
				result.Warnings = append(result.Warnings, fmt.Sprintf("calendar link not stored: %v", err))
			}
		}
	}

	if event.PatientRelationship == "child" && event.PatientID != uuid.Nil {
		summary := model.AppointmentSummary{
			AppointmentID:   event.ID,
			AppointmentType: event.AppointmentType,
			Date:            event.AppointmentDate,
			Provider:        event.ProviderName,
			Notes:           event.Notes,
			Status:          string(event.Status),
		}
		if err := s.children.AddMedicalAppointment(ctx, familyID, event.PatientID, summary, false); err != nil {
			s.logger.Warn().Err(err).Str("event_id", event.ID.String()).Msg("child history append failed")
			result.Warnings = append(result.Warnings, fmt.Sprintf("child history not updated: %v", err))
		}
	}

	steps := req.PreparationSteps
	if len(steps) == 0 {
		steps = defaultPreparationSteps(event.AppointmentType)
	}
	event.PreparationSteps = normalizeSteps(steps)
	event.PreparationStatus = stepListStatus(event.PreparationSteps)
	if err := s.events.Update(ctx, event); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to install preparation steps: %w", err))
	}

	return result, nil
}

func (s *Service) GetEvent(ctx context.Context, eventID uuid.UUID) (*model.MedicalEvent, error) {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, s.wrapStoreErr(err)
	}
	return event, nil
}

// ListEvents returns a family's events, newest appointment first unless
// the filters request ascending order.
func (s *Service) ListEvents(ctx context.Context, familyID uuid.UUID, filters *model.MedicalEventFilters) ([]*model.MedicalEvent, error) {
	events, err := s.events.List(ctx, familyID, filters)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list medical events: %w", err))
	}
	return events, nil
}

// UpdatePreparationSteps replaces the full checklist, generating ids
// for steps that lack one, and recomputes the aggregate status.
func (s *Service) UpdatePreparationSteps(ctx context.Context, eventID uuid.UUID, steps []model.PreparationStep) error {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return s.wrapStoreErr(err)
	}

	event.PreparationSteps = normalizeSteps(steps)
	event.PreparationStatus = stepListStatus(event.PreparationSteps)

	if err := s.events.Update(ctx, event); err != nil {
		return s.wrapStoreErr(err)
	}
	return nil
}

// UpdatePreparationStepStatus flips a single step's status. A step id
// that is not in the current list is a NotFound failure, never a
// silent no-op.
func (s *Service) UpdatePreparationStepStatus(ctx context.Context, eventID, stepID uuid.UUID, status model.StepStatus) error {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return s.wrapStoreErr(err)
	}

	found := false
	for i := range event.PreparationSteps {
		if event.PreparationSteps[i].ID == stepID {
			event.PreparationSteps[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return apperrors.NotFound("preparation step", fmt.Errorf("step %s not in event %s", stepID, eventID))
	}

	event.PreparationStatus = stepListStatus(event.PreparationSteps)

	if err := s.events.Update(ctx, event); err != nil {
		return s.wrapStoreErr(err)
	}
	return nil
}

// AddRequiredDocument appends one document to the event's checklist.
// Documents are identified by id, not content: two documents with the
// same name but different ids stay distinct.
func (s *Service) AddRequiredDocument(ctx context.Context, eventID uuid.UUID, doc model.RequiredDocument) (uuid.UUID, error) {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if doc.Status == "" {
		doc.Status = model.DocumentStatusNeeded
	}
	doc.AddedAt = s.now().UTC()

	if err := s.events.AppendDocument(ctx, eventID, doc); err != nil {
		return uuid.Nil, s.wrapStoreErr(err)
	}

	if err := s.UpdateDocumentStatus(ctx, eventID, nil); err != nil {
		return uuid.Nil, err
	}
	return doc.ID, nil
}

// UpdateDocumentStatus marks the given document ready and recomputes
// the aggregate document status. With a nil documentID only the
// aggregate is recomputed, which is useful after a bulk change.
func (s *Service) UpdateDocumentStatus(ctx context.Context, eventID uuid.UUID, documentID *uuid.UUID) error {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return s.wrapStoreErr(err)
	}

	if documentID != nil {
		found := false
		for i := range event.RequiredDocuments {
			if event.RequiredDocuments[i].ID == *documentID {
				event.RequiredDocuments[i].Status = model.DocumentStatusReady
				found = true
				break
			}
		}
		if !found {
			return apperrors.NotFound("required document", fmt.Errorf("document %s not in event %s", documentID, eventID))
		}
	}

	event.DocumentStatus = documentListStatus(event.RequiredDocuments)

	if err := s.events.Update(ctx, event); err != nil {
		return s.wrapStoreErr(err)
	}
	return nil
}

// AddInsuranceInfo stores insurance details and flags the event as
// requiring insurance.
func (s *Service) AddInsuranceInfo(ctx context.Context, eventID uuid.UUID, info model.InsuranceInfo) error {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return s.wrapStoreErr(err)
	}

	event.InsuranceInfo = info
	event.InsuranceRequired = true

	if err := s.events.Update(ctx, event); err != nil {
		return s.wrapStoreErr(err)
	}
	return nil
}

// UpdateEvent applies a partial update. Appointment or descriptive
// changes are synced to the linked calendar event best-effort; status
// transitions trigger their side effects (completion stamping,
// calendar deletion on cancel, reschedule flagging).
func (s *Service) UpdateEvent(ctx context.Context, eventID uuid.UUID, req *model.UpdateMedicalEventRequest) (*UpdateResult, error) {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, s.wrapStoreErr(err)
	}
	if req == nil {
		req = &model.UpdateMedicalEventRequest{}
	}

	result := &UpdateResult{}
	previousStatus := event.Status

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.AppointmentType != nil {
		event.AppointmentType = *req.AppointmentType
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.ProviderName != nil {
		event.ProviderName = *req.ProviderName
	}
	if req.SpecialistType != nil {
		event.SpecialistType = *req.SpecialistType
	}
	if req.Notes != nil {
		event.Notes = *req.Notes
	}
	if req.Priority != nil {
		event.Priority = *req.Priority
	}
	if req.Tags != nil {
		event.Tags = req.Tags
	}
	if req.PreparationInstructions != nil {
		event.PreparationInstructions = *req.PreparationInstructions
	}
	if req.ReminderSettings != nil {
		event.ReminderSettings = *req.ReminderSettings
	}

	if req.AppointmentDate != nil {
		event.AppointmentDate = req.AppointmentDate.UTC()
		if event.CalendarEventID != nil {
			start := event.AppointmentDate
			end := start.Add(appointmentDuration)
			description := calendarDescription(event)
			patch := &calendar.EventPatch{
				Title:       &event.Title,
				Start:       &start,
				End:         &end,
				Location:    &event.Location,
				Description: &description,
			}
			if err := s.calendar.UpdateEvent(ctx, *event.CalendarEventID, patch); err != nil {
				s.logger.Warn().Err(err).Str("event_id", eventID.String()).Msg("calendar sync failed")
				result.Warnings = append(result.Warnings, fmt.Sprintf("calendar not updated: %v", err))
			}
		}
	} else if req.Title != nil || req.Location != nil || req.AppointmentType != nil ||
		req.ProviderName != nil || req.Notes != nil {
		if event.CalendarEventID != nil {
			description := calendarDescription(event)
			patch := &calendar.EventPatch{
				Title:       &event.Title,
				Location:    &event.Location,
				Description: &description,
			}
			if err := s.calendar.UpdateEvent(ctx, *event.CalendarEventID, patch); err != nil {
				s.logger.Warn().Err(err).Str("event_id", eventID.String()).Msg("calendar sync failed")
				result.Warnings = append(result.Warnings, fmt.Sprintf("calendar not updated: %v", err))
			}
		}
	}

	if req.Status != nil && *req.Status != previousStatus {
		event.Status = *req.Status

		switch *req.Status {
		case model.MedicalEventStatusCompleted:
			if previousStatus != model.MedicalEventStatusCompleted && event.CompletedDate == nil {
				completed := s.now().UTC()
				event.CompletedDate = &completed
			}
		case model.MedicalEventStatusCancelled:
			// The stale calendar id is intentionally left in place
			// after deletion, mirroring the upstream behavior.
			if event.CalendarEventID != nil {
				if err := s.calendar.DeleteEvent(ctx, *event.CalendarEventID); err != nil {
					s.logger.Warn().Err(err).Str("event_id", eventID.String()).Msg("calendar delete failed")
					result.Warnings = append(result.Warnings, fmt.Sprintf("calendar event not deleted: %v", err))
				}
			}
		case model.MedicalEventStatusRescheduled:
			event.NeedsRescheduling = true
		}
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, s.wrapStoreErr(err)
	}
	return result, nil
}

// DeleteEvent removes the event after deleting its calendar block. A
// calendar failure is reported as a warning and does not block the
// record deletion.
func (s *Service) DeleteEvent(ctx context.Context, eventID uuid.UUID) (*UpdateResult, error) {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, s.wrapStoreErr(err)
	}

	result := &UpdateResult{}
	if event.CalendarEventID != nil {
		if err := s.calendar.DeleteEvent(ctx, *event.CalendarEventID); err != nil {
			s.logger.Warn().Err(err).Str("event_id", eventID.String()).Msg("calendar delete failed")
			result.Warnings = append(result.Warnings, fmt.Sprintf("calendar event not deleted: %v", err))
		}
	}

	if err := s.events.Delete(ctx, eventID); err != nil {
		return nil, s.wrapStoreErr(err)
	}
	return result, nil
}

// CompleteEvent marks the event completed, records follow-up details,
// attaches any prescribed medications, and, when the follow-up is
// already scheduled with a date, spawns the follow-up appointment and
// links the two events both ways. A missing event aborts before any
// write; each medication attach is independent of the others; a failed
// follow-up link is a warning, never a rollback of the new event.
func (s *Service) CompleteEvent(ctx context.Context, eventID uuid.UUID, req *model.CompleteMedicalEventRequest) (*CompleteEventResult, error) {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, s.wrapStoreErr(err)
	}
	if req == nil {
		req = &model.CompleteMedicalEventRequest{}
	}

	result := &CompleteEventResult{}

	if event.Status != model.MedicalEventStatusCompleted || event.CompletedDate == nil {
		completed := s.now().UTC()
		event.CompletedDate = &completed
	}
	event.Status = model.MedicalEventStatusCompleted
	event.CompletionNotes = req.Notes
	event.FollowupRecommended = req.FollowupRecommended

	if req.FollowupRecommended {
		details := &model.FollowupDetails{
			Type:                 req.FollowupType,
			RecommendedTimeframe: req.FollowupTimeframe,
			ScheduledDate:        req.FollowupDate,
			Notes:                req.FollowupNotes,
			Status:               model.FollowupStatusNeeded,
		}
		if details.Type == "" {
			details.Type = "general"
		}
		if details.RecommendedTimeframe == "" {
			details.RecommendedTimeframe = "1 month"
		}
		if req.FollowupScheduled && req.FollowupDate != nil {
			details.Status = model.FollowupStatusScheduled
		}
		event.FollowupDetails = details
	} else {
		event.FollowupDetails = nil
	}

	for i := range req.Medications {
		attach, err := s.AddMedication(ctx, eventID, &req.Medications[i])
		if err != nil {
			s.logger.Warn().Err(err).
				Str("event_id", eventID.String()).
				Str("medication", req.Medications[i].Name).
				Msg("medication attach failed")
			result.Warnings = append(result.Warnings, fmt.Sprintf("medication %q not attached: %v", req.Medications[i].Name, err))
			continue
		}
		result.MedicationIDs = append(result.MedicationIDs, attach.MedicationID)
		result.Warnings = append(result.Warnings, attach.Warnings...)
		event.Medications = append(event.Medications, attach.MedicationID)
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, s.wrapStoreErr(err)
	}

	if req.FollowupRecommended && req.FollowupScheduled && req.FollowupDate != nil {
		followupID, warnings := s.spawnFollowup(ctx, event, req)
		result.Warnings = append(result.Warnings, warnings...)
		result.FollowupEventID = followupID
	}

	return result, nil
}

// spawnFollowup creates the follow-up appointment for a just-completed
// event and links it back. Create-then-link: the new event is kept even
// when the back-link write fails.
func (s *Service) spawnFollowup(ctx context.Context, original *model.MedicalEvent, req *model.CompleteMedicalEventRequest) (*uuid.UUID, []string) {
	followupType := req.FollowupType
	if followupType == "" {
		followupType = "follow-up"
	}
	notes := req.FollowupNotes
	if notes == "" {
		notes = fmt.Sprintf("Follow-up to appointment on %s", original.AppointmentDate.Format("Jan 2, 2006"))
	}

	previousID := original.ID
	createReq := &model.CreateMedicalEventRequest{
		Title:                 fmt.Sprintf("Follow-up: %s", original.Title),
		AppointmentType:       followupType,
		AppointmentDate:       req.FollowupDate,
		Location:              original.Location,
		ProviderName:          original.ProviderName,
		SpecialistType:        original.SpecialistType,
		Notes:                 notes,
		PatientID:             original.PatientID,
		PatientName:           original.PatientName,
		PatientRelationship:   original.PatientRelationship,
		InsuranceRequired:     original.InsuranceRequired,
		InsuranceInfo:         &original.InsuranceInfo,
		PreviousAppointmentID: &previousID,
	}

	created, err := s.CreateEvent(ctx, original.FamilyID, original.CreatedBy, createReq)
	if err != nil {
		s.logger.Error().Err(err).
			Str("event_id", original.ID.String()).
			Msg("follow-up event creation failed")
		return nil, []string{fmt.Sprintf("follow-up event not created: %v", err)}
	}

	warnings := created.Warnings
	if original.FollowupDetails != nil {
		original.FollowupDetails.ScheduledEventID = &created.EventID
		if err := s.events.Update(ctx, original); err != nil {
			s.logger.Warn().Err(err).
				Str("event_id", original.ID.String()).
				Str("followup_event_id", created.EventID.String()).
				Msg("follow-up back-link failed")
			warnings = append(warnings, fmt.Sprintf("follow-up link not stored: %v", err))
		}
	}
	return &created.EventID, warnings
}

// AddMedication creates a medication record for the event's patient,
// derives a dosing schedule from the free-text frequency (falling back
// to one daily morning dose) and attaches the medication id to the
// event.
func (s *Service) AddMedication(ctx context.Context, eventID uuid.UUID, input *model.MedicationInput) (*AddMedicationResult, error) {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, s.wrapStoreErr(err)
	}
	if input == nil {
		input = &model.MedicationInput{}
	}

	now := s.now().UTC()
	med := &model.Medication{
		FamilyMemberID:       event.PatientID,
		Name:                 input.Name,
		Dosage:               input.Dosage,
		Instructions:         input.Instructions,
		PrescribedBy:         input.PrescribedBy,
		StartDate:            now,
		EndDate:              input.EndDate,
		IsActive:             input.Active == nil || *input.Active,
		SideEffectsToWatch:   input.SideEffects,
		RelatedMedicalEvents: []uuid.UUID{eventID},
	}
	if med.PrescribedBy == "" {
		med.PrescribedBy = event.ProviderName
	}
	if input.StartDate != nil {
		med.StartDate = input.StartDate.UTC()
	}
	if input.Refills > 0 {
		med.RefillInfo = fmt.Sprintf("%d refills remaining", input.Refills)
	}

	medicationID, err := s.meds.CreateMedication(ctx, med)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to create medication: %w", err))
	}

	result := &AddMedicationResult{MedicationID: medicationID}

	spec := parseFrequency(input.Frequency)
	schedule := &model.MedicationSchedule{
		MedicationID:   medicationID,
		FamilyMemberID: event.PatientID,
		Frequency:      spec.Frequency,
		Times:          spec.Times,
		DaysOfWeek:     spec.DaysOfWeek,
		DayOfMonth:     spec.DayOfMonth,
		WithFood:       spec.WithFood || input.WithFood,
	}
	if err := s.meds.CreateSchedule(ctx, schedule); err != nil {
		s.logger.Warn().Err(err).
			Str("medication_id", medicationID.String()).
			Msg("medication schedule creation failed")
		result.Warnings = append(result.Warnings, fmt.Sprintf("medication schedule not created: %v", err))
	}

	if err := s.events.AppendMedication(ctx, eventID, medicationID); err != nil {
		return nil, s.wrapStoreErr(err)
	}

	return result, nil
}

func (s *Service) buildCalendarEvent(event *model.MedicalEvent) *calendar.Event {
	metadata := map[string]string{
		"medical_event_id": event.ID.String(),
		"patient_name":     event.PatientName,
	}
	if event.PatientID != uuid.Nil {
		metadata["patient_id"] = event.PatientID.String()
	}
	return &calendar.Event{
		Title:       event.Title,
		Start:       event.AppointmentDate,
		End:         event.AppointmentDate.Add(appointmentDuration),
		Location:    event.Location,
		Description: calendarDescription(event),
		FamilyID:    event.FamilyID,
		CreatedBy:   event.CreatedBy,
		Category:    "medical",
		Metadata:    metadata,
	}
}

func calendarDescription(event *model.MedicalEvent) string {
	return fmt.Sprintf("Type: %s\nDoctor: %s\nNotes: %s",
		event.AppointmentType, event.ProviderName, event.Notes)
}

func normalizeSteps(steps []model.PreparationStep) []model.PreparationStep {
	normalized := make([]model.PreparationStep, len(steps))
	for i, step := range steps {
		if step.ID == uuid.Nil {
			step.ID = uuid.New()
		}
		if step.Status == "" {
			step.Status = model.StepStatusPending
		}
		normalized[i] = step
	}
	return normalized
}

func (s *Service) wrapStoreErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound("medical event", err)
	}
	return apperrors.Internal(err)
}
