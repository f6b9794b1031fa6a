package medicalevent

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefanpalsson415/family-care-api/internal/model"
	"github.com/stefanpalsson415/family-care-api/internal/repository"
	"github.com/stefanpalsson415/family-care-api/internal/service/calendar"
	apperrors "github.com/stefanpalsson415/family-care-api/pkg/errors"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fakeEventRepo struct {
	mu     sync.Mutex
	events map[uuid.UUID]*model.MedicalEvent

	createErr error
	updateErr error
	listErr   error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[uuid.UUID]*model.MedicalEvent)}
}

func (r *fakeEventRepo) Create(_ context.Context, event *model.MedicalEvent) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	event.CreatedAt = testNow
	event.UpdatedAt = testNow
	clone := *event
	r.events[event.ID] = &clone
	return nil
}

func (r *fakeEventRepo) Get(_ context.Context, id uuid.UUID) (*model.MedicalEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *event
	return &clone, nil
}

func (r *fakeEventRepo) Update(_ context.Context, event *model.MedicalEvent) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[event.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *event
	r.events[event.ID] = &clone
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *fakeEventRepo) List(_ context.Context, familyID uuid.UUID, _ *model.MedicalEventFilters) ([]*model.MedicalEvent, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.MedicalEvent
	for _, event := range r.events {
		if event.FamilyID == familyID {
			clone := *event
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListScheduledBetween(_ context.Context, start, end time.Time) ([]*model.MedicalEvent, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.MedicalEvent
	for _, event := range r.events {
		if event.Status != model.MedicalEventStatusScheduled {
			continue
		}
		if event.AppointmentDate.Before(start) || event.AppointmentDate.After(end) {
			continue
		}
		clone := *event
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeEventRepo) ListCompletedWithFollowup(_ context.Context) ([]*model.MedicalEvent, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.MedicalEvent
	for _, event := range r.events {
		if event.Status == model.MedicalEventStatusCompleted && event.FollowupRecommended {
			clone := *event
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) AppendDocument(_ context.Context, eventID uuid.UUID, doc model.RequiredDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[eventID]
	if !ok {
		return repository.ErrNotFound
	}
	event.RequiredDocuments = append(event.RequiredDocuments, doc)
	return nil
}

func (r *fakeEventRepo) AppendMedication(_ context.Context, eventID, medicationID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[eventID]
	if !ok {
		return repository.ErrNotFound
	}
	event.Medications = append(event.Medications, medicationID)
	return nil
}

func (r *fakeEventRepo) ListFamilyIDs(_ context.Context) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[uuid.UUID]bool)
	var out []uuid.UUID
	for _, event := range r.events {
		if !seen[event.FamilyID] {
			seen[event.FamilyID] = true
			out = append(out, event.FamilyID)
		}
	}
	return out, nil
}

type fakeMemberRepo struct {
	mu      sync.Mutex
	members map[uuid.UUID][]*model.FamilyMember
	history []model.AppointmentSummary

	appendErr error
	listErr   error
	listCalls int
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[uuid.UUID][]*model.FamilyMember)}
}

func (r *fakeMemberRepo) Get(_ context.Context, id uuid.UUID) (*model.FamilyMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, members := range r.members {
		for _, member := range members {
			if member.ID == id {
				return member, nil
			}
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeMemberRepo) ListByFamily(_ context.Context, familyID uuid.UUID) ([]*model.FamilyMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.members[familyID], nil
}

func (r *fakeMemberRepo) AppendMedicalHistory(_ context.Context, _, _ uuid.UUID, summary model.AppointmentSummary) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, summary)
	return nil
}

type fakeCalendar struct {
	mu      sync.Mutex
	created []*calendar.Event
	updated map[string]*calendar.EventPatch
	deleted []string

	createErr error
	updateErr error
	deleteErr error
}

func newFakeCalendar() *fakeCalendar {
	return &fakeCalendar{updated: make(map[string]*calendar.EventPatch)}
}

func (c *fakeCalendar) CreateEvent(_ context.Context, event *calendar.Event) (string, error) {
	if c.createErr != nil {
		return "", c.createErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.created = append(c.created, event)
	return fmt.Sprintf("cal-%d", len(c.created)), nil
}

func (c *fakeCalendar) UpdateEvent(_ context.Context, eventID string, patch *calendar.EventPatch) error {
	if c.updateErr != nil {
		return c.updateErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updated[eventID] = patch
	return nil
}

func (c *fakeCalendar) DeleteEvent(_ context.Context, eventID string) error {
	if c.deleteErr != nil {
		return c.deleteErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, eventID)
	return nil
}

type fakeMedManager struct {
	mu          sync.Mutex
	medications []*model.Medication
	schedules   []*model.MedicationSchedule
	upcoming    map[uuid.UUID][]*model.MedicationReminder

	createErr   error
	scheduleErr error
	upcomingErr map[uuid.UUID]error
}

func newFakeMedManager() *fakeMedManager {
	return &fakeMedManager{
		upcoming:    make(map[uuid.UUID][]*model.MedicationReminder),
		upcomingErr: make(map[uuid.UUID]error),
	}
}

func (m *fakeMedManager) CreateMedication(_ context.Context, med *model.Medication) (uuid.UUID, error) {
	if m.createErr != nil {
		return uuid.Nil, m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	med.ID = uuid.New()
	m.medications = append(m.medications, med)
	return med.ID, nil
}

func (m *fakeMedManager) CreateSchedule(_ context.Context, schedule *model.MedicationSchedule) error {
	if m.scheduleErr != nil {
		return m.scheduleErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules = append(m.schedules, schedule)
	return nil
}

func (m *fakeMedManager) UpcomingReminders(_ context.Context, memberID uuid.UUID, _ int) ([]*model.MedicationReminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.upcomingErr[memberID]; err != nil {
		return nil, err
	}
	return m.upcoming[memberID], nil
}

type fakeTracker struct {
	mu        sync.Mutex
	summaries []model.AppointmentSummary
	err       error
}

func (t *fakeTracker) AddMedicalAppointment(_ context.Context, _, _ uuid.UUID, summary model.AppointmentSummary, _ bool) error {
	if t.err != nil {
		return t.err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.summaries = append(t.summaries, summary)
	return nil
}

type testEnv struct {
	svc      *Service
	events   *fakeEventRepo
	members  *fakeMemberRepo
	calendar *fakeCalendar
	meds     *fakeMedManager
	tracker  *fakeTracker
}

func newTestEnv() *testEnv {
	env := &testEnv{
		events:   newFakeEventRepo(),
		members:  newFakeMemberRepo(),
		calendar: newFakeCalendar(),
		meds:     newFakeMedManager(),
		tracker:  &fakeTracker{},
	}
	env.svc = NewService(env.events, env.members, env.calendar, env.meds, env.tracker, zerolog.Nop())
	env.svc.now = func() time.Time { return testNow }
	return env
}

func (env *testEnv) mustCreate(t *testing.T, req *model.CreateMedicalEventRequest) *model.MedicalEvent {
	t.Helper()
	result, err := env.svc.CreateEvent(context.Background(), uuid.New(), uuid.New(), req)
	require.NoError(t, err)
	event, err := env.svc.GetEvent(context.Background(), result.EventID)
	require.NoError(t, err)
	return event
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func timePtr(v time.Time) *time.Time { return &v }

func TestCreateEventDefaults(t *testing.T) {
	env := newTestEnv()

	result, err := env.svc.CreateEvent(context.Background(), uuid.New(), uuid.New(), nil)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, result.EventID)

	event, err := env.svc.GetEvent(context.Background(), result.EventID)
	require.NoError(t, err)

	assert.Equal(t, "Medical Appointment", event.Title)
	assert.Equal(t, "checkup", event.AppointmentType)
	assert.Equal(t, model.MedicalEventStatusScheduled, event.Status)
	assert.Equal(t, "medium", event.Priority)
	assert.Equal(t, testNow, event.AppointmentDate)
	assert.Equal(t, model.ChecklistNotStarted, event.DocumentStatus)
	assert.Equal(t, model.ChecklistNotStarted, event.PreparationStatus)
	assert.Equal(t, model.DefaultReminderSettings(), event.ReminderSettings)
	assert.NotNil(t, event.RequiredDocuments)
	assert.NotNil(t, event.Medications)

	require.NotEmpty(t, event.PreparationSteps)
	for _, step := range event.PreparationSteps {
		assert.NotEqual(t, uuid.Nil, step.ID)
		assert.Equal(t, model.StepStatusPending, step.Status)
	}
}

func TestCreateEventCalendarLink(t *testing.T) {
	env := newTestEnv()

	event := env.mustCreate(t, &model.CreateMedicalEventRequest{
		Title:           "Dentist",
		AppointmentDate: timePtr(testNow.AddDate(0, 0, 7)),
	})

	require.NotNil(t, event.CalendarEventID)
	assert.Equal(t, "cal-1", *event.CalendarEventID)
	require.Len(t, env.calendar.created, 1)
	assert.Equal(t, "Dentist", env.calendar.created[0].Title)
	assert.Equal(t, event.AppointmentDate, env.calendar.created[0].Start)
	assert.Equal(t, event.AppointmentDate.Add(time.Hour), env.calendar.created[0].End)
	assert.Equal(t, "medical", env.calendar.created[0].Category)
}

func TestCreateEventCalendarOptOut(t *testing.T) {
	env := newTestEnv()

	event := env.mustCreate(t, &model.CreateMedicalEventRequest{AddToCalendar: boolPtr(false)})

	assert.Nil(t, event.CalendarEventID)
	assert.Empty(t, env.calendar.created)
}

func TestCreateEventCalendarFailureIsWarning(t *testing.T) {
	env := newTestEnv()
	env.calendar.createErr = errors.New("calendar down")

	result, err := env.svc.CreateEvent(context.Background(), uuid.New(), uuid.New(), nil)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "calendar")

	event, err := env.svc.GetEvent(context.Background(), result.EventID)
	require.NoError(t, err)
	assert.Nil(t, event.CalendarEventID)
}

func TestCreateEventChildHistory(t *testing.T) {
	env := newTestEnv()
	childID := uuid.New()

	event := env.mustCreate(t, &model.CreateMedicalEventRequest{
		PatientID:           childID,
		PatientName:         "Sam",
		PatientRelationship: "child",
	})

	require.Len(t, env.tracker.summaries, 1)
	assert.Equal(t, event.ID, env.tracker.summaries[0].AppointmentID)
	assert.Equal(t, "scheduled", env.tracker.summaries[0].Status)
}

func TestCreateEventChildHistoryFailureIsWarning(t *testing.T) {
	env := newTestEnv()
	env.tracker.err = errors.New("tracking unavailable")

	result, err := env.svc.CreateEvent(context.Background(), uuid.New(), uuid.New(), &model.CreateMedicalEventRequest{
		PatientID:           uuid.New(),
		PatientRelationship: "child",
	})
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "child history")
}

func TestCreateEventAdultSkipsChildHistory(t *testing.T) {
	env := newTestEnv()

	env.mustCreate(t, &model.CreateMedicalEventRequest{
		PatientID:           uuid.New(),
		PatientRelationship: "spouse",
	})

	assert.Empty(t, env.tracker.summaries)
}

func TestCreateEventExplicitStepsSkipDefaults(t *testing.T) {
	env := newTestEnv()

	event := env.mustCreate(t, &model.CreateMedicalEventRequest{
		PreparationSteps: []model.PreparationStep{
			{Title: "Bring referral letter", Priority: model.StepPriorityHigh},
		},
	})

	require.Len(t, event.PreparationSteps, 1)
	assert.Equal(t, "Bring referral letter", event.PreparationSteps[0].Title)
	assert.NotEqual(t, uuid.Nil, event.PreparationSteps[0].ID)
}

func TestGetEventNotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.GetEvent(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdatePreparationStepStatus(t *testing.T) {
	env := newTestEnv()
	event := env.mustCreate(t, nil)

	ctx := context.Background()
	for i, step := range event.PreparationSteps {
		err := env.svc.UpdatePreparationStepStatus(ctx, event.ID, step.ID, model.StepStatusCompleted)
		require.NoError(t, err)

		updated, err := env.svc.GetEvent(ctx, event.ID)
		require.NoError(t, err)
		if i == len(event.PreparationSteps)-1 {
			assert.Equal(t, model.ChecklistComplete, updated.PreparationStatus)
		} else {
			assert.Equal(t, model.ChecklistInProgress, updated.PreparationStatus)
		}
	}
}

func TestUpdatePreparationStepStatusUnknownStep(t *testing.T) {
	env := newTestEnv()
	event := env.mustCreate(t, nil)

	err := env.svc.UpdatePreparationStepStatus(context.Background(), event.ID, uuid.New(), model.StepStatusCompleted)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdatePreparationStepsReplacesList(t *testing.T) {
	env := newTestEnv()
	event := env.mustCreate(t, nil)

	err := env.svc.UpdatePreparationSteps(context.Background(), event.ID, []model.PreparationStep{
		{Title: "Fast overnight", Status: model.StepStatusCompleted},
		{Title: "Bring samples"},
	})
	require.NoError(t, err)

	updated, err := env.svc.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	require.Len(t, updated.PreparationSteps, 2)
	assert.Equal(t, model.ChecklistInProgress, updated.PreparationStatus)
	assert.Equal(t, model.StepStatusPending, updated.PreparationSteps[1].Status)
}

func TestDocumentLifecycle(t *testing.T) {
	env := newTestEnv()
	event := env.mustCreate(t, nil)
	ctx := context.Background()

	firstID, err := env.svc.AddRequiredDocument(ctx, event.ID, model.RequiredDocument{Name: "Referral"})
	require.NoError(t, err)
	secondID, err := env.svc.AddRequiredDocument(ctx, event.ID, model.RequiredDocument{Name: "Referral"})
	require.NoError(t, err)
	assert.NotEqual(t, firstID, secondID)

	updated, err := env.svc.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, updated.RequiredDocuments, 2)
	assert.Equal(t, model.ChecklistNotStarted, updated.DocumentStatus)

	require.NoError(t, env.svc.UpdateDocumentStatus(ctx, event.ID, &firstID))
	updated, err = env.svc.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ChecklistInProgress, updated.DocumentStatus)

	require.NoError(t, env.svc.UpdateDocumentStatus(ctx, event.ID, &secondID))
	updated, err = env.svc.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ChecklistComplete, updated.DocumentStatus)
}

func TestUpdateDocumentStatusUnknownDocument(t *testing.T) {
	env := newTestEnv()
	event := env.mustCreate(t, nil)

	unknown := uuid.New()
	err := env.svc.UpdateDocumentStatus(context.Background(), event.ID, &unknown)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAddInsuranceInfo(t *testing.T) {
	env := newTestEnv()
	event := env.mustCreate(t, nil)

	err := env.svc.AddInsuranceInfo(context.Background(), event.ID, model.InsuranceInfo{
		Provider:     "Acme Health",
		PolicyNumber: "P-123",
	})
	require.NoError(t, err)

	updated, err := env.svc.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.True(t, updated.InsuranceRequired)
	assert.Equal(t, "Acme Health", updated.InsuranceInfo.Provider)
}

func TestUpdateEventRescheduleSyncsCalendar(t *testing.T) {
	env := newTestEnv()
	event := env.mustCreate(t, &model.CreateMedicalEventRequest{Title: "Checkup"})
	newDate := testNow.AddDate(0, 0, 14)

	result, err := env.svc.UpdateEvent(context.Background(), event.ID, &model.UpdateMedicalEventRequest{
		AppointmentDate: &newDate,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	patch, ok := env.calendar.updated[*event.CalendarEventID]
	require.True(t, ok)
	require.NotNil(t, patch.Start)
	assert.Equal(t, newDate, *patch.Start)
	require.NotNil(t, patch.End)
	assert.Equal(t, newDate.Add(time.Hour), *patch.End)

	updated, err := env.svc.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, newDate, updated.AppointmentDate)
}

func TestUpdateEventDescriptiveChangeSyncsCalendar(t *testing.T) {
	env := newTestEnv()
	event := env.mustCreate(t, nil)

	_, err := env.svc.UpdateEvent(context.Background(), event.ID, &model.UpdateMedicalEventRequest{
		ProviderName: strPtr("Dr. Okafor"),
	})
	require.NoError(t, err)

	patch, ok := env.calendar.updated[*event.CalendarEventID]
	require.True(t, ok)
	assert.Nil(t, patch.Start)
	require.NotNil(t, patch.Description)
	assert.Contains(t, *patch.Description, "Dr. Okafor")
}

func TestUpdateEventCalendarFailureIsWarning(t *testing.T) {
	env := newTestEnv()
	event := env.mustCreate(t, nil)
	env.calendar.updateErr = errors.New("calendar down")
	newDate := testNow.AddDate(0, 0, 5)

	result, err := env.svc.UpdateEvent(context.Background(), event.ID, &model.UpdateMedicalEventRequest{
		AppointmentDate: &newDate,
	})
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)

	updated, err := env.svc.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, newDate, updated.AppointmentDate)
}

func TestUpdateEventCompletedStampsDateOnce(t *testing.T) {
	env := newTestEnv()
	event := env.mustCreate(t, nil)
	ctx := context.Background()

	completed := model.MedicalEventStatusCompleted
	_, err := env.svc.UpdateEvent(ctx, event.ID, &model.UpdateMedicalEventRequest{Status: &completed})
	require.NoError(t, err)

	updated, err := env.svc.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedDate)
	first := *updated.CompletedDate

	scheduled := model.MedicalEventStatusScheduled
	_, err = env.svc.UpdateEvent(ctx, event.ID, &model.UpdateMedicalEventRequest{Status: &scheduled})
	require.NoError(t, err)
	_, err = env.svc.UpdateEvent(ctx, event.ID, &model.UpdateMedicalEventRequest{Status: &completed})
	require.NoError(t, err)

	updated, err = env.svc.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedDate)
	assert.Equal(t, first, *updated.CompletedDate)
}

func TestUpdateEventCancelledDeletesCalendarKeepsID(t *testing.T) {
	env := newTestEnv()
	event := env.mustCreate(t, nil)

	cancelled := model.MedicalEventStatusCancelled
	_, err := env.svc.UpdateEvent(context.Background(), event.ID, &model.UpdateMedicalEventRequest{Status: &cancelled})
	require.NoError(t, err)

	require.Len(t, env.calendar.deleted, 1)
	assert.Equal(t, *event.CalendarEventID, env.calendar.deleted[0])

	updated, err := env.svc.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MedicalEventStatusCancelled, updated.Status)
	assert.NotNil(t, updated.CalendarEventID)
}

func TestUpdateEventRescheduledSetsFlag(t *testing.T) {
	env := newTestEnv()
	event := env.mustCreate(t, nil)

	rescheduled := model.MedicalEventStatusRescheduled
	_, err := env.svc.UpdateEvent(context.Background(), event.ID, &model.UpdateMedicalEventRequest{Status: &rescheduled})
	require.NoError(t, err)

	updated, err := env.svc.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.True(t, updated.NeedsRescheduling)
}

func TestDeleteEvent(t *testing.T) {
	env := newTestEnv()
	event := env.mustCreate(t, nil)

	result, err := env.svc.DeleteEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
	assert.Len(t, env.calendar.deleted, 1)

	_, err = env.svc.GetEvent(context.Background(), event.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteEventCalendarFailureStillDeletes(t *testing.T) {
	env := newTestEnv()
	event := env.mustCreate(t, nil)
	env.calendar.deleteErr = errors.New("calendar down")

	result, err := env.svc.DeleteEvent(context.Background(), event.ID)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)

	_, err = env.svc.GetEvent(context.Background(), event.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCompleteEventBasic(t *testing.T) {
	env := newTestEnv()
	event := env.mustCreate(t, nil)

	result, err := env.svc.CompleteEvent(context.Background(), event.ID, &model.CompleteMedicalEventRequest{
		Notes: "All clear",
	})
	require.NoError(t, err)
	assert.Nil(t, result.FollowupEventID)

	updated, err := env.svc.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MedicalEventStatusCompleted, updated.Status)
	assert.Equal(t, "All clear", updated.CompletionNotes)
	require.NotNil(t, updated.CompletedDate)
	assert.Equal(t, testNow, *updated.CompletedDate)
	assert.False(t, updated.FollowupRecommended)
	assert.Nil(t, updated.FollowupDetails)
}

func TestCompleteEventNotFoundAbortsBeforeWrite(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.CompleteEvent(context.Background(), uuid.New(), &model.CompleteMedicalEventRequest{})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Empty(t, env.meds.medications)
}

func TestCompleteEventFollowupNeeded(t *testing.T) {
	env := newTestEnv()
	event := env.mustCreate(t, nil)

	result, err := env.svc.CompleteEvent(context.Background(), event.ID, &model.CompleteMedicalEventRequest{
		FollowupRecommended: true,
		FollowupType:        "blood work",
		FollowupTimeframe:   "2 weeks",
	})
	require.NoError(t, err)
	assert.Nil(t, result.FollowupEventID)

	updated, err := env.svc.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.FollowupDetails)
	assert.Equal(t, model.FollowupStatusNeeded, updated.FollowupDetails.Status)
	assert.Equal(t, "blood work", updated.FollowupDetails.Type)
	assert.Nil(t, updated.FollowupDetails.ScheduledEventID)
}

func TestCompleteEventSpawnsFollowup(t *testing.T) {
	env := newTestEnv()
	followupDate := testNow.AddDate(0, 1, 0)
	event := env.mustCreate(t, &model.CreateMedicalEventRequest{
		Title:        "Annual Checkup",
		Location:     "Clinic A",
		ProviderName: "Dr. Voss",
		PatientName:  "Sam",
	})

	result, err := env.svc.CompleteEvent(context.Background(), event.ID, &model.CompleteMedicalEventRequest{
		FollowupRecommended: true,
		FollowupScheduled:   true,
		FollowupDate:        &followupDate,
	})
	require.NoError(t, err)
	require.NotNil(t, result.FollowupEventID)

	ctx := context.Background()
	followup, err := env.svc.GetEvent(ctx, *result.FollowupEventID)
	require.NoError(t, err)
	assert.Equal(t, "Follow-up: Annual Checkup", followup.Title)
	assert.Equal(t, followupDate, followup.AppointmentDate)
	assert.Equal(t, "Clinic A", followup.Location)
	assert.Equal(t, "Dr. Voss", followup.ProviderName)
	assert.Equal(t, model.MedicalEventStatusScheduled, followup.Status)
	require.NotNil(t, followup.PreviousAppointmentID)
	assert.Equal(t, event.ID, *followup.PreviousAppointmentID)
	assert.NotNil(t, followup.CalendarEventID)

	original, err := env.svc.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	require.NotNil(t, original.FollowupDetails)
	assert.Equal(t, model.FollowupStatusScheduled, original.FollowupDetails.Status)
	require.NotNil(t, original.FollowupDetails.ScheduledEventID)
	assert.Equal(t, *result.FollowupEventID, *original.FollowupDetails.ScheduledEventID)
}

func TestCompleteEventFollowupCreateFailureIsWarning(t *testing.T) {
	env := newTestEnv()
	followupDate := testNow.AddDate(0, 1, 0)
	event := env.mustCreate(t, nil)
	env.events.createErr = errors.New("store down")

	result, err := env.svc.CompleteEvent(context.Background(), event.ID, &model.CompleteMedicalEventRequest{
		FollowupRecommended: true,
		FollowupScheduled:   true,
		FollowupDate:        &followupDate,
	})
	require.NoError(t, err)
	assert.Nil(t, result.FollowupEventID)
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "follow-up")

	updated, err := env.svc.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MedicalEventStatusCompleted, updated.Status)
}

func TestCompleteEventAttachesMedications(t *testing.T) {
	env := newTestEnv()
	event := env.mustCreate(t, &model.CreateMedicalEventRequest{PatientID: uuid.New()})

	result, err := env.svc.CompleteEvent(context.Background(), event.ID, &model.CompleteMedicalEventRequest{
		Medications: []model.MedicationInput{
			{Name: "Amoxicillin", Dosage: "500mg", Frequency: "twice a day"},
			{Name: "Ibuprofen", Dosage: "200mg", Frequency: "with meals"},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.MedicationIDs, 2)

	updated, err := env.svc.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, result.MedicationIDs, updated.Medications)
	require.Len(t, env.meds.schedules, 2)
	assert.Equal(t, []string{"09:00", "21:00"}, env.meds.schedules[0].Times)
	assert.True(t, env.meds.schedules[1].WithFood)
}

func TestCompleteEventMedicationFailureIsolated(t *testing.T) {
	env := newTestEnv()
	event := env.mustCreate(t, nil)
	env.meds.createErr = errors.New("pharmacy down")

	result, err := env.svc.CompleteEvent(context.Background(), event.ID, &model.CompleteMedicalEventRequest{
		Medications: []model.MedicationInput{{Name: "Amoxicillin"}},
	})
	require.NoError(t, err)
	assert.Empty(t, result.MedicationIDs)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Amoxicillin")

	updated, err := env.svc.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MedicalEventStatusCompleted, updated.Status)
	assert.Empty(t, updated.Medications)
}

func TestAddMedicationFallbackSchedule(t *testing.T) {
	env := newTestEnv()
	event := env.mustCreate(t, &model.CreateMedicalEventRequest{ProviderName: "Dr. Voss"})

	result, err := env.svc.AddMedication(context.Background(), event.ID, &model.MedicationInput{
		Name: "Vitamin D",
	})
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	require.Len(t, env.meds.schedules, 1)
	assert.Equal(t, model.ScheduleDaily, env.meds.schedules[0].Frequency)
	assert.Equal(t, []string{"09:00"}, env.meds.schedules[0].Times)

	require.Len(t, env.meds.medications, 1)
	assert.Equal(t, "Dr. Voss", env.meds.medications[0].PrescribedBy)
	assert.True(t, env.meds.medications[0].IsActive)

	updated, err := env.svc.GetEvent(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Contains(t, updated.Medications, result.MedicationID)
}

func TestAddMedicationScheduleFailureIsWarning(t *testing.T) {
	env := newTestEnv()
	event := env.mustCreate(t, nil)
	env.meds.scheduleErr = errors.New("scheduler down")

	result, err := env.svc.AddMedication(context.Background(), event.ID, &model.MedicationInput{Name: "Vitamin D"})
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "schedule")
}
