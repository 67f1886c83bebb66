package drafts

import (
	"encounter-service/internal/app/models"
	"encounter-service/internal/pkg/constvars"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newReadyContext() models.EncounterContext {
	return models.EncounterContext{
		PatientID:      "patient-1",
		PractitionerID: "practitioner-1",
		Class:          "AMB",
		PeriodStart:    time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	}
}

func fillDraft(d *Draft) {
	d.AddDiagnosis(models.CodedValue{Code: "J45", Display: "Asthma"})
	d.UpdateCertainty("J45", constvars.CertaintyConfirmed)
	d.AddAllergy(models.CodedValue{Code: "7980", Display: "Penicillin"}, constvars.AllergyTypeMedication)
	d.UpdateAllergySeverity("7980", constvars.AllergySeverityMild)
	d.UpdateAllergyReactions("7980", []models.CodedValue{{Code: "271807003", Display: "Rash"}})
}

func TestStore(t *testing.T) {
	store := NewStore()

	draft := store.Open(newReadyContext(), []string{"J45"})
	assert.NotEmpty(t, draft.ID)

	found, ok := store.Get(draft.ID)
	assert.True(t, ok)
	assert.Same(t, draft, found)

	_, ok = store.Get("nope")
	assert.False(t, ok)

	store.Delete(draft.ID)
	_, ok = store.Get(draft.ID)
	assert.False(t, ok)
}

func TestAddDiagnosisFlagsExistingConditions(t *testing.T) {
	store := NewStore()
	draft := store.Open(newReadyContext(), []string{"J45"})

	added, duplicatesExisting := draft.AddDiagnosis(models.CodedValue{Code: "J45", Display: "Asthma"})
	assert.True(t, added)
	assert.True(t, duplicatesExisting)

	added, duplicatesExisting = draft.AddDiagnosis(models.CodedValue{Code: "E11", Display: "Type 2 diabetes"})
	assert.True(t, added)
	assert.False(t, duplicatesExisting)
}

func TestServiceRequestSelections(t *testing.T) {
	store := NewStore()
	draft := store.Open(newReadyContext(), nil)

	assert.True(t, draft.AddServiceRequest(models.ServiceRequestEntry{ConceptID: "cbc", Display: "Complete blood count"}))
	assert.False(t, draft.AddServiceRequest(models.ServiceRequestEntry{ConceptID: "cbc", Display: "Complete blood count"}))
	assert.False(t, draft.AddServiceRequest(models.ServiceRequestEntry{ConceptID: " ", Display: "x"}))

	draft.RemoveServiceRequest("cbc")
	assert.Empty(t, draft.Snapshot().ServiceRequests)
}

func TestBeginSubmission(t *testing.T) {
	t.Run("returns the snapshot with errors when validation fails", func(t *testing.T) {
		store := NewStore()
		draft := store.Open(newReadyContext(), nil)
		draft.AddDiagnosis(models.CodedValue{Code: "J45", Display: "Asthma"})

		snapshot, err := draft.BeginSubmission()
		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.NotNil(t, snapshot)
		assert.Contains(t, snapshot.Diagnoses[0].Errors, constvars.FieldCertainty)

		// The draft is not left in-flight: a corrected retry must go through.
		draft.UpdateCertainty("J45", constvars.CertaintyConfirmed)
		_, err = draft.BeginSubmission()
		assert.NoError(t, err)
	})

	t.Run("validates both ledgers even when the first fails", func(t *testing.T) {
		store := NewStore()
		draft := store.Open(newReadyContext(), nil)
		draft.AddDiagnosis(models.CodedValue{Code: "J45", Display: "Asthma"})
		draft.AddAllergy(models.CodedValue{Code: "7980", Display: "Penicillin"}, constvars.AllergyTypeMedication)

		snapshot, err := draft.BeginSubmission()
		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.NotEmpty(t, snapshot.Diagnoses[0].Errors)
		assert.NotEmpty(t, snapshot.Allergies[0].Errors)
	})

	t.Run("an empty draft passes validation", func(t *testing.T) {
		store := NewStore()
		draft := store.Open(newReadyContext(), nil)

		snapshot, err := draft.BeginSubmission()
		assert.NoError(t, err)
		assert.Empty(t, snapshot.Diagnoses)
		assert.Empty(t, snapshot.Allergies)
	})

	t.Run("refuses a second submission while one is in flight", func(t *testing.T) {
		store := NewStore()
		draft := store.Open(newReadyContext(), nil)
		fillDraft(draft)

		_, err := draft.BeginSubmission()
		assert.NoError(t, err)

		_, err = draft.BeginSubmission()
		assert.ErrorIs(t, err, ErrSubmissionInFlight)
	})

	t.Run("refuses resubmission after success", func(t *testing.T) {
		store := NewStore()
		draft := store.Open(newReadyContext(), nil)
		fillDraft(draft)

		_, err := draft.BeginSubmission()
		assert.NoError(t, err)
		draft.FinishSubmission(true)

		_, err = draft.BeginSubmission()
		assert.ErrorIs(t, err, ErrAlreadySubmitted)
	})
}

func TestFinishSubmission(t *testing.T) {
	t.Run("success resets every ledger", func(t *testing.T) {
		store := NewStore()
		draft := store.Open(newReadyContext(), nil)
		fillDraft(draft)
		draft.AddServiceRequest(models.ServiceRequestEntry{ConceptID: "cbc", Display: "Complete blood count"})

		_, err := draft.BeginSubmission()
		assert.NoError(t, err)
		draft.FinishSubmission(true)

		snapshot := draft.Snapshot()
		assert.Empty(t, snapshot.Diagnoses)
		assert.Empty(t, snapshot.Conditions)
		assert.Empty(t, snapshot.Allergies)
		assert.Empty(t, snapshot.ServiceRequests)
		assert.True(t, snapshot.Submitted)
	})

	t.Run("failure preserves every entry and allows a retry", func(t *testing.T) {
		store := NewStore()
		draft := store.Open(newReadyContext(), nil)
		fillDraft(draft)

		_, err := draft.BeginSubmission()
		assert.NoError(t, err)
		draft.FinishSubmission(false)

		snapshot := draft.Snapshot()
		assert.Len(t, snapshot.Diagnoses, 1)
		assert.Len(t, snapshot.Allergies, 1)
		assert.False(t, snapshot.Submitted)

		_, err = draft.BeginSubmission()
		assert.NoError(t, err)
	})
}

func TestSnapshotIsFrozen(t *testing.T) {
	store := NewStore()
	draft := store.Open(newReadyContext(), nil)
	fillDraft(draft)

	snapshot, err := draft.BeginSubmission()
	assert.NoError(t, err)
	draft.FinishSubmission(true)

	// The frozen snapshot outlives the reset.
	assert.Len(t, snapshot.Diagnoses, 1)
	assert.Len(t, snapshot.Allergies, 1)
}
