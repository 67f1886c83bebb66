package drafts

import (
	"encounter-service/internal/app/models"
	"encounter-service/internal/app/services/core/allergies"
	"encounter-service/internal/app/services/core/diagnoses"
	"errors"
	"strings"
	"sync"
)

var (
	ErrAlreadySubmitted   = errors.New("encounter draft has already been submitted")
	ErrSubmissionInFlight = errors.New("another submission is in flight for this draft")
	ErrValidationFailed   = errors.New("one or more entries failed validation")
)

// Draft is the per-encounter aggregate: the encounter context, both entry
// ledgers and the service-request selections. All access goes through its
// methods; the mutex makes each operation atomic against concurrent requests
// for the same encounter.
type Draft struct {
	ID      string
	Context models.EncounterContext

	mu              sync.Mutex
	diagnoses       *diagnoses.Ledger
	allergies       *allergies.Ledger
	serviceRequests []models.ServiceRequestEntry
	submitting      bool
	submitted       bool
}

func newDraft(id string, encounterContext models.EncounterContext, existingConditionIDs []string) *Draft {
	return &Draft{
		ID:              id,
		Context:         encounterContext,
		diagnoses:       diagnoses.NewLedger(existingConditionIDs),
		allergies:       allergies.NewLedger(),
		serviceRequests: []models.ServiceRequestEntry{},
	}
}

func (d *Draft) AddDiagnosis(concept models.CodedValue) (added bool, duplicatesExisting bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.diagnoses.AddDiagnosis(concept), d.diagnoses.IsExistingCondition(concept.Code)
}

func (d *Draft) RemoveDiagnosis(conceptID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.diagnoses.RemoveDiagnosis(conceptID)
}

func (d *Draft) UpdateCertainty(conceptID, certainty string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.diagnoses.UpdateCertainty(conceptID, certainty)
}

func (d *Draft) MarkAsCondition(conceptID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.diagnoses.MarkAsCondition(conceptID)
}

func (d *Draft) RemoveCondition(conceptID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.diagnoses.RemoveCondition(conceptID)
}

func (d *Draft) UpdateConditionDuration(conceptID string, value *int, unit *string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.diagnoses.UpdateConditionDuration(conceptID, value, unit)
}

func (d *Draft) AddAllergy(concept models.CodedValue, allergyType string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.allergies.AddAllergy(concept, allergyType)
}

func (d *Draft) RemoveAllergy(conceptID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.allergies.RemoveAllergy(conceptID)
}

func (d *Draft) UpdateAllergySeverity(conceptID, severity string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.allergies.UpdateSeverity(conceptID, severity)
}

func (d *Draft) UpdateAllergyReactions(conceptID string, reactions []models.CodedValue) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.allergies.UpdateReactions(conceptID, reactions)
}

func (d *Draft) UpdateAllergyNote(conceptID, note string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.allergies.UpdateNote(conceptID, note)
}

func (d *Draft) AddServiceRequest(entry models.ServiceRequestEntry) bool {
	if strings.TrimSpace(entry.ConceptID) == "" || strings.TrimSpace(entry.Display) == "" {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, existing := range d.serviceRequests {
		if existing.ConceptID == entry.ConceptID {
			return false
		}
	}
	d.serviceRequests = append([]models.ServiceRequestEntry{entry}, d.serviceRequests...)
	return true
}

func (d *Draft) RemoveServiceRequest(conceptID string) {
	if strings.TrimSpace(conceptID) == "" {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, entry := range d.serviceRequests {
		if entry.ConceptID == conceptID {
			d.serviceRequests = append(d.serviceRequests[:i], d.serviceRequests[i+1:]...)
			return
		}
	}
}

// Snapshot copies the current draft state, including any validation errors
// already recorded on the entries.
func (d *Draft) Snapshot() *models.EncounterSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

// BeginSubmission runs the whole pre-network part of the submit lifecycle in
// one critical section: refuse resubmission and concurrent submission, then
// validate both ledgers. Both validations always run so the caller gets the
// complete error picture. On success the draft is flagged in-flight and a
// frozen snapshot is returned for bundle assembly; the ledgers stay intact
// either way. A ErrValidationFailed result still carries the snapshot so the
// per-entry errors can be rendered.
func (d *Draft) BeginSubmission() (*models.EncounterSnapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.submitted {
		return nil, ErrAlreadySubmitted
	}
	if d.submitting {
		return nil, ErrSubmissionInFlight
	}

	diagnosesValid := d.diagnoses.Validate()
	allergiesValid := d.allergies.ValidateAllAllergies()
	if !diagnosesValid || !allergiesValid {
		return d.snapshotLocked(), ErrValidationFailed
	}

	d.submitting = true
	return d.snapshotLocked(), nil
}

// FinishSubmission closes the submit lifecycle. Only a successful submission
// resets the ledgers and the service-request selections; a failed one leaves
// every entry in place so the clinician can retry without re-entering data.
func (d *Draft) FinishSubmission(success bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.submitting = false
	if !success {
		return
	}
	d.diagnoses.Reset()
	d.allergies.Reset()
	d.serviceRequests = []models.ServiceRequestEntry{}
	d.submitted = true
}

func (d *Draft) snapshotLocked() *models.EncounterSnapshot {
	diagnosisEntries, conditionEntries := d.diagnoses.Snapshot()
	serviceRequests := make([]models.ServiceRequestEntry, len(d.serviceRequests))
	copy(serviceRequests, d.serviceRequests)
	return &models.EncounterSnapshot{
		EncounterID:     d.ID,
		Context:         d.Context,
		Diagnoses:       diagnosisEntries,
		Conditions:      conditionEntries,
		Allergies:       d.allergies.Snapshot(),
		ServiceRequests: serviceRequests,
		Submitted:       d.submitted,
	}
}
