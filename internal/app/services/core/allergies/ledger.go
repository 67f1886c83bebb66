package allergies

import (
	"encounter-service/internal/app/models"
	"encounter-service/internal/pkg/constvars"
	"encounter-service/internal/pkg/utils"
	"errors"
	"strings"
)

var (
	ErrBlankConceptID = errors.New("concept id is blank")
	ErrEntryNotFound  = errors.New("no entry with the given concept id")
)

// Ledger owns the allergy list of one encounter draft. Structurally parallel
// to the diagnosis ledger but validated independently.
type Ledger struct {
	allergies []models.AllergyEntry
}

func NewLedger() *Ledger {
	return &Ledger{allergies: []models.AllergyEntry{}}
}

// AddAllergy prepends a new entry with no severity, no reactions and an empty
// note. It refuses concepts without an id or display and concepts already
// present in the list.
func (l *Ledger) AddAllergy(concept models.CodedValue, allergyType string) bool {
	if strings.TrimSpace(concept.Code) == "" || strings.TrimSpace(concept.Display) == "" {
		return false
	}
	if l.hasAllergy(concept.Code) {
		return false
	}
	entry := models.AllergyEntry{
		ConceptID: concept.Code,
		Display:   concept.Display,
		Type:      allergyType,
		Reactions: []models.CodedValue{},
		Errors:    map[string]string{},
	}
	l.allergies = append([]models.AllergyEntry{entry}, l.allergies...)
	return true
}

func (l *Ledger) RemoveAllergy(conceptID string) {
	if strings.TrimSpace(conceptID) == "" {
		return
	}
	for i, entry := range l.allergies {
		if entry.ConceptID == conceptID {
			l.allergies = append(l.allergies[:i], l.allergies[i+1:]...)
			return
		}
	}
}

// UpdateSeverity sets the severity; an empty value clears it. Once the entry
// has been validated, supplying a severity clears only the severity error.
func (l *Ledger) UpdateSeverity(conceptID, severity string) error {
	if strings.TrimSpace(conceptID) == "" {
		return ErrBlankConceptID
	}
	for i := range l.allergies {
		if l.allergies[i].ConceptID != conceptID {
			continue
		}
		l.allergies[i].Severity = severity
		if l.allergies[i].HasBeenValidated && severity != "" {
			delete(l.allergies[i].Errors, constvars.FieldSeverity)
		}
		return nil
	}
	return ErrEntryNotFound
}

// UpdateReactions replaces the reaction list. Once the entry has been
// validated, a non-empty list clears only the reactions error.
func (l *Ledger) UpdateReactions(conceptID string, reactions []models.CodedValue) error {
	if strings.TrimSpace(conceptID) == "" {
		return ErrBlankConceptID
	}
	for i := range l.allergies {
		if l.allergies[i].ConceptID != conceptID {
			continue
		}
		copied := make([]models.CodedValue, len(reactions))
		copy(copied, reactions)
		l.allergies[i].Reactions = copied
		if l.allergies[i].HasBeenValidated && len(copied) > 0 {
			delete(l.allergies[i].Errors, constvars.FieldReactions)
		}
		return nil
	}
	return ErrEntryNotFound
}

func (l *Ledger) UpdateNote(conceptID, note string) error {
	if strings.TrimSpace(conceptID) == "" {
		return ErrBlankConceptID
	}
	for i := range l.allergies {
		if l.allergies[i].ConceptID == conceptID {
			l.allergies[i].Note = note
			return nil
		}
	}
	return ErrEntryNotFound
}

// ValidateAllAllergies visits every entry unconditionally, marks each as
// validated with a refreshed errors map, and returns true iff none failed.
func (l *Ledger) ValidateAllAllergies() bool {
	valid := true
	for i := range l.allergies {
		l.allergies[i].Errors = utils.ValidateAllergyEntry(l.allergies[i])
		l.allergies[i].HasBeenValidated = true
		if len(l.allergies[i].Errors) > 0 {
			valid = false
		}
	}
	return valid
}

// Reset clears the list unconditionally.
func (l *Ledger) Reset() {
	l.allergies = []models.AllergyEntry{}
}

// Snapshot returns a deep copy of the list for read-only inspection.
func (l *Ledger) Snapshot() []models.AllergyEntry {
	allergies := make([]models.AllergyEntry, len(l.allergies))
	for i, entry := range l.allergies {
		entry.Errors = models.CopyErrors(entry.Errors)
		reactions := make([]models.CodedValue, len(entry.Reactions))
		copy(reactions, entry.Reactions)
		entry.Reactions = reactions
		allergies[i] = entry
	}
	return allergies
}

func (l *Ledger) hasAllergy(conceptID string) bool {
	for _, entry := range l.allergies {
		if entry.ConceptID == conceptID {
			return true
		}
	}
	return false
}
