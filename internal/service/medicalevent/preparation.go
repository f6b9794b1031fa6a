package medicalevent

import (
	"strings"

	"github.com/google/uuid"

	"github.com/stefanpalsson415/family-care-api/internal/model"
)

// checklistStatus is the three-way aggregation rule shared by
// preparation steps and required documents: not_started when nothing is
// done, complete when everything is (vacuously for an empty list),
// in_progress otherwise.
func checklistStatus(done, total int) model.ChecklistStatus {
	switch {
	case total == 0:
		return model.ChecklistComplete
	case done == 0:
		return model.ChecklistNotStarted
	case done == total:
		return model.ChecklistComplete
	default:
		return model.ChecklistInProgress
	}
}

func stepListStatus(steps []model.PreparationStep) model.ChecklistStatus {
	done := 0
	for _, step := range steps {
		if step.Status == model.StepStatusCompleted {
			done++
		}
	}
	return checklistStatus(done, len(steps))
}

func documentListStatus(docs []model.RequiredDocument) model.ChecklistStatus {
	ready := 0
	for _, doc := range docs {
		if doc.Status == model.DocumentStatusReady {
			ready++
		}
	}
	return checklistStatus(ready, len(docs))
}

// defaultPreparationSteps builds the default checklist for an
// appointment type. This is a lookup table, not a rule engine; new
// appointment types get a new branch.
func defaultPreparationSteps(appointmentType string) []model.PreparationStep {
	steps := []model.PreparationStep{
		{
			ID:            uuid.New(),
			Title:         "Confirm appointment date and time",
			Description:   "Call the provider's office to confirm your scheduled appointment",
			Status:        model.StepStatusPending,
			DueBeforeDays: 2,
			Priority:      model.StepPriorityMedium,
		},
		{
			ID:            uuid.New(),
			Title:         "Locate insurance card",
			Description:   "Find your insurance card and keep it ready for the appointment",
			Status:        model.StepStatusPending,
			DueBeforeDays: 1,
			Priority:      model.StepPriorityHigh,
		},
	}

	kind := strings.ToLower(appointmentType)
	switch {
	case strings.Contains(kind, "annual checkup"), strings.Contains(kind, "physical"):
		steps = append(steps,
			model.PreparationStep{
				ID:            uuid.New(),
				Title:         "Fast for 8-12 hours before appointment",
				Description:   "Do not eat or drink anything except water for 8-12 hours before your appointment for accurate blood work",
				Status:        model.StepStatusPending,
				DueBeforeDays: 1,
				Priority:      model.StepPriorityCritical,
			},
			model.PreparationStep{
				ID:            uuid.New(),
				Title:         "Prepare questions for doctor",
				Description:   "Write down any health concerns or questions you want to discuss with your doctor",
				Status:        model.StepStatusPending,
				DueBeforeDays: 1,
				Priority:      model.StepPriorityMedium,
			},
		)
	case strings.Contains(kind, "dental"), strings.Contains(kind, "dentist"):
		steps = append(steps, model.PreparationStep{
			ID:            uuid.New(),
			Title:         "Brush and floss before appointment",
			Description:   "Brush and floss your teeth before your dental appointment",
			Status:        model.StepStatusPending,
			DueBeforeDays: 0,
			Priority:      model.StepPriorityMedium,
		})
	case strings.Contains(kind, "specialist consultation"):
		steps = append(steps,
			model.PreparationStep{
				ID:            uuid.New(),
				Title:         "Gather previous test results",
				Description:   "Collect any relevant previous test results, imaging reports, or medical records",
				Status:        model.StepStatusPending,
				DueBeforeDays: 2,
				Priority:      model.StepPriorityHigh,
			},
			model.PreparationStep{
				ID:            uuid.New(),
				Title:         "List current medications",
				Description:   "Make a list of all current medications including dosage and frequency",
				Status:        model.StepStatusPending,
				DueBeforeDays: 1,
				Priority:      model.StepPriorityHigh,
			},
		)
	case strings.Contains(kind, "vaccination"), strings.Contains(kind, "immunization"):
		steps = append(steps,
			model.PreparationStep{
				ID:            uuid.New(),
				Title:         "Wear short sleeves or easily removable layers",
				Description:   "Dress in clothing that allows easy access to the injection site",
				Status:        model.StepStatusPending,
				DueBeforeDays: 0,
				Priority:      model.StepPriorityMedium,
			},
			model.PreparationStep{
				ID:            uuid.New(),
				Title:         "Record of previous vaccinations",
				Description:   "Bring record of previous vaccinations if available",
				Status:        model.StepStatusPending,
				DueBeforeDays: 1,
				Priority:      model.StepPriorityMedium,
			},
		)
	}

	return steps
}
