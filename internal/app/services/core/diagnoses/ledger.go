package diagnoses

import (
	"encounter-service/internal/app/models"
	"encounter-service/internal/pkg/constvars"
	"encounter-service/internal/pkg/utils"
	"errors"
	"strings"
)

var (
	ErrBlankConceptID       = errors.New("concept id is blank")
	ErrEntryNotFound        = errors.New("no entry with the given concept id")
	ErrInvalidDurationValue = errors.New("duration value must be a strictly positive integer")
	ErrInvalidDurationUnit  = errors.New("duration unit must be one of days, months or years")
)

// Ledger owns the diagnosis and condition lists of one encounter draft.
// The same concept id may legitimately exist in both lists at once: a
// diagnosis re-added after being promoted yields two distinct clinical
// statements, and both are submitted. Callers must not mutate entries
// directly; every change goes through a ledger operation.
type Ledger struct {
	diagnoses  []models.DiagnosisEntry
	conditions []models.ConditionEntry

	// Concept ids of the patient's already-recorded conditions, supplied at
	// draft-open time. Used only to flag duplicates to the client; AddDiagnosis
	// itself deduplicates against the diagnosis list alone.
	existingConditionIDs map[string]struct{}
}

func NewLedger(existingConditionIDs []string) *Ledger {
	existing := make(map[string]struct{}, len(existingConditionIDs))
	for _, id := range existingConditionIDs {
		if strings.TrimSpace(id) != "" {
			existing[id] = struct{}{}
		}
	}
	return &Ledger{
		diagnoses:            []models.DiagnosisEntry{},
		conditions:           []models.ConditionEntry{},
		existingConditionIDs: existing,
	}
}

// AddDiagnosis prepends a new diagnosis entry. It refuses concepts without an
// id or display and concepts already present in the diagnosis list.
func (l *Ledger) AddDiagnosis(concept models.CodedValue) bool {
	if strings.TrimSpace(concept.Code) == "" || strings.TrimSpace(concept.Display) == "" {
		return false
	}
	if l.hasDiagnosis(concept.Code) {
		return false
	}
	entry := models.DiagnosisEntry{
		ConceptID: concept.Code,
		Display:   concept.Display,
		Errors:    map[string]string{},
	}
	l.diagnoses = append([]models.DiagnosisEntry{entry}, l.diagnoses...)
	return true
}

// RemoveDiagnosis removes the matching entry. Removing an id that is not
// present is a silent no-op.
func (l *Ledger) RemoveDiagnosis(conceptID string) {
	if strings.TrimSpace(conceptID) == "" {
		return
	}
	for i, entry := range l.diagnoses {
		if entry.ConceptID == conceptID {
			l.diagnoses = append(l.diagnoses[:i], l.diagnoses[i+1:]...)
			return
		}
	}
}

// UpdateCertainty sets the certainty; an empty value clears it. If the entry
// has already been validated and a certainty is supplied, only that entry's
// certainty error is cleared, other error keys stay untouched.
func (l *Ledger) UpdateCertainty(conceptID, certainty string) error {
	if strings.TrimSpace(conceptID) == "" {
		return ErrBlankConceptID
	}
	for i := range l.diagnoses {
		if l.diagnoses[i].ConceptID != conceptID {
			continue
		}
		l.diagnoses[i].Certainty = certainty
		if l.diagnoses[i].HasBeenValidated && certainty != "" {
			delete(l.diagnoses[i].Errors, constvars.FieldCertainty)
		}
		return nil
	}
	return ErrEntryNotFound
}

// MarkAsCondition promotes a diagnosis into a condition: the diagnosis entry
// is removed and a fresh condition entry with empty duration fields is
// prepended, in one step. It fails when the diagnosis does not exist or a
// condition with the same id already does; on failure nothing changes.
func (l *Ledger) MarkAsCondition(conceptID string) bool {
	if strings.TrimSpace(conceptID) == "" {
		return false
	}
	if l.hasCondition(conceptID) {
		return false
	}
	for i, entry := range l.diagnoses {
		if entry.ConceptID != conceptID {
			continue
		}
		l.diagnoses = append(l.diagnoses[:i], l.diagnoses[i+1:]...)
		condition := models.ConditionEntry{
			ConceptID: entry.ConceptID,
			Display:   entry.Display,
			Errors:    map[string]string{},
		}
		l.conditions = append([]models.ConditionEntry{condition}, l.conditions...)
		return true
	}
	return false
}

// RemoveCondition mirrors RemoveDiagnosis on the condition list.
func (l *Ledger) RemoveCondition(conceptID string) {
	if strings.TrimSpace(conceptID) == "" {
		return
	}
	for i, entry := range l.conditions {
		if entry.ConceptID == conceptID {
			l.conditions = append(l.conditions[:i], l.conditions[i+1:]...)
			return
		}
	}
}

// UpdateConditionDuration sets both duration fields; nil explicitly clears a
// field. An invalid value or unit rejects the whole call and the previous
// fields survive unchanged. On a valid call, each supplied (non-nil) field
// clears its own sticky error once the entry has been validated; supplying
// both as nil clears neither, so the client keeps flagging the missing fields.
func (l *Ledger) UpdateConditionDuration(conceptID string, value *int, unit *string) error {
	if strings.TrimSpace(conceptID) == "" {
		return ErrBlankConceptID
	}
	if value != nil && *value <= 0 {
		return ErrInvalidDurationValue
	}
	if unit != nil && !utils.IsValidDurationUnit(*unit) {
		return ErrInvalidDurationUnit
	}
	for i := range l.conditions {
		if l.conditions[i].ConceptID != conceptID {
			continue
		}
		if value != nil {
			v := *value
			l.conditions[i].DurationValue = &v
		} else {
			l.conditions[i].DurationValue = nil
		}
		if unit != nil {
			l.conditions[i].DurationUnit = *unit
		} else {
			l.conditions[i].DurationUnit = ""
		}
		if l.conditions[i].HasBeenValidated {
			if value != nil {
				delete(l.conditions[i].Errors, constvars.FieldDurationValue)
			}
			if unit != nil {
				delete(l.conditions[i].Errors, constvars.FieldDurationUnit)
			}
		}
		return nil
	}
	return ErrEntryNotFound
}

// Validate runs the entry rules over every diagnosis and every condition.
// It never short-circuits: every entry present at call time ends with
// HasBeenValidated true and a refreshed errors map, so the client can show
// the complete error picture at once. Returns true iff no entry failed.
// An empty ledger validates to true.
func (l *Ledger) Validate() bool {
	valid := true
	for i := range l.diagnoses {
		l.diagnoses[i].Errors = utils.ValidateDiagnosisEntry(l.diagnoses[i])
		l.diagnoses[i].HasBeenValidated = true
		if len(l.diagnoses[i].Errors) > 0 {
			valid = false
		}
	}
	for i := range l.conditions {
		l.conditions[i].Errors = utils.ValidateConditionEntry(l.conditions[i])
		l.conditions[i].HasBeenValidated = true
		if len(l.conditions[i].Errors) > 0 {
			valid = false
		}
	}
	return valid
}

// Reset clears both lists unconditionally.
func (l *Ledger) Reset() {
	l.diagnoses = []models.DiagnosisEntry{}
	l.conditions = []models.ConditionEntry{}
}

// Snapshot returns deep copies of both lists for read-only inspection.
func (l *Ledger) Snapshot() ([]models.DiagnosisEntry, []models.ConditionEntry) {
	diagnoses := make([]models.DiagnosisEntry, len(l.diagnoses))
	for i, entry := range l.diagnoses {
		entry.Errors = models.CopyErrors(entry.Errors)
		diagnoses[i] = entry
	}
	conditions := make([]models.ConditionEntry, len(l.conditions))
	for i, entry := range l.conditions {
		entry.Errors = models.CopyErrors(entry.Errors)
		if entry.DurationValue != nil {
			v := *entry.DurationValue
			entry.DurationValue = &v
		}
		conditions[i] = entry
	}
	return diagnoses, conditions
}

// IsExistingCondition reports whether the concept duplicates one of the
// patient's pre-existing conditions supplied at draft-open time.
func (l *Ledger) IsExistingCondition(conceptID string) bool {
	_, ok := l.existingConditionIDs[conceptID]
	return ok
}

func (l *Ledger) hasDiagnosis(conceptID string) bool {
	for _, entry := range l.diagnoses {
		if entry.ConceptID == conceptID {
			return true
		}
	}
	return false
}

func (l *Ledger) hasCondition(conceptID string) bool {
	for _, entry := range l.conditions {
		if entry.ConceptID == conceptID {
			return true
		}
	}
	return false
}
