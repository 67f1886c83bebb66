package diagnoses

import (
	"encounter-service/internal/app/models"
	"encounter-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
)

func codedValue(code, display string) models.CodedValue {
	return models.CodedValue{Code: code, Display: display}
}

func TestAddDiagnosis(t *testing.T) {
	t.Run("adds a new concept at the head of the list", func(t *testing.T) {
		ledger := NewLedger(nil)

		assert.True(t, ledger.AddDiagnosis(codedValue("J45", "Asthma")))
		assert.True(t, ledger.AddDiagnosis(codedValue("E11", "Type 2 diabetes")))

		diagnoses, _ := ledger.Snapshot()
		assert.Len(t, diagnoses, 2)
		assert.Equal(t, "E11", diagnoses[0].ConceptID)
		assert.Equal(t, "J45", diagnoses[1].ConceptID)
	})

	t.Run("refuses a concept already in the list", func(t *testing.T) {
		ledger := NewLedger(nil)

		assert.True(t, ledger.AddDiagnosis(codedValue("J45", "Asthma")))
		assert.False(t, ledger.AddDiagnosis(codedValue("J45", "Asthma")))

		diagnoses, _ := ledger.Snapshot()
		assert.Len(t, diagnoses, 1)
	})

	t.Run("refuses a blank concept id or display", func(t *testing.T) {
		ledger := NewLedger(nil)

		assert.False(t, ledger.AddDiagnosis(codedValue("", "Asthma")))
		assert.False(t, ledger.AddDiagnosis(codedValue("J45", "")))
		assert.False(t, ledger.AddDiagnosis(codedValue("   ", "Asthma")))

		diagnoses, _ := ledger.Snapshot()
		assert.Empty(t, diagnoses)
	})

	t.Run("allows re-adding a concept after promotion", func(t *testing.T) {
		ledger := NewLedger(nil)

		assert.True(t, ledger.AddDiagnosis(codedValue("J45", "Asthma")))
		assert.True(t, ledger.MarkAsCondition("J45"))
		assert.True(t, ledger.AddDiagnosis(codedValue("J45", "Asthma")))

		diagnoses, conditions := ledger.Snapshot()
		assert.Len(t, diagnoses, 1)
		assert.Len(t, conditions, 1)
	})
}

func TestRemoveDiagnosis(t *testing.T) {
	ledger := NewLedger(nil)
	ledger.AddDiagnosis(codedValue("J45", "Asthma"))

	t.Run("unknown id is a silent no-op", func(t *testing.T) {
		ledger.RemoveDiagnosis("nope")
		diagnoses, _ := ledger.Snapshot()
		assert.Len(t, diagnoses, 1)
	})

	t.Run("removes the matching entry", func(t *testing.T) {
		ledger.RemoveDiagnosis("J45")
		diagnoses, _ := ledger.Snapshot()
		assert.Empty(t, diagnoses)
	})
}

func TestUpdateCertainty(t *testing.T) {
	t.Run("sets and clears the certainty", func(t *testing.T) {
		ledger := NewLedger(nil)
		ledger.AddDiagnosis(codedValue("J45", "Asthma"))

		assert.NoError(t, ledger.UpdateCertainty("J45", constvars.CertaintyConfirmed))
		diagnoses, _ := ledger.Snapshot()
		assert.Equal(t, constvars.CertaintyConfirmed, diagnoses[0].Certainty)

		assert.NoError(t, ledger.UpdateCertainty("J45", ""))
		diagnoses, _ = ledger.Snapshot()
		assert.Empty(t, diagnoses[0].Certainty)
	})

	t.Run("unknown id returns ErrEntryNotFound", func(t *testing.T) {
		ledger := NewLedger(nil)
		assert.ErrorIs(t, ledger.UpdateCertainty("nope", constvars.CertaintyConfirmed), ErrEntryNotFound)
	})

	t.Run("clears only the certainty error after validation", func(t *testing.T) {
		ledger := NewLedger(nil)
		ledger.AddDiagnosis(codedValue("J45", "Asthma"))
		assert.False(t, ledger.Validate())

		diagnoses, _ := ledger.Snapshot()
		assert.Equal(t, constvars.ErrCodeCertaintyRequired, diagnoses[0].Errors[constvars.FieldCertainty])

		assert.NoError(t, ledger.UpdateCertainty("J45", constvars.CertaintyPresumed))
		diagnoses, _ = ledger.Snapshot()
		assert.NotContains(t, diagnoses[0].Errors, constvars.FieldCertainty)
	})

	t.Run("clearing the certainty after validation keeps the error", func(t *testing.T) {
		ledger := NewLedger(nil)
		ledger.AddDiagnosis(codedValue("J45", "Asthma"))
		ledger.Validate()

		assert.NoError(t, ledger.UpdateCertainty("J45", ""))
		diagnoses, _ := ledger.Snapshot()
		assert.Contains(t, diagnoses[0].Errors, constvars.FieldCertainty)
	})
}

func TestMarkAsCondition(t *testing.T) {
	t.Run("moves the entry rather than copying it", func(t *testing.T) {
		ledger := NewLedger(nil)
		ledger.AddDiagnosis(codedValue("J45", "Asthma"))

		assert.True(t, ledger.MarkAsCondition("J45"))

		diagnoses, conditions := ledger.Snapshot()
		assert.Empty(t, diagnoses)
		assert.Len(t, conditions, 1)
		assert.Equal(t, "J45", conditions[0].ConceptID)
		assert.Nil(t, conditions[0].DurationValue)
		assert.Empty(t, conditions[0].DurationUnit)
	})

	t.Run("fails for an unknown diagnosis", func(t *testing.T) {
		ledger := NewLedger(nil)
		assert.False(t, ledger.MarkAsCondition("nope"))
	})

	t.Run("fails when a condition with the same id already exists", func(t *testing.T) {
		ledger := NewLedger(nil)
		ledger.AddDiagnosis(codedValue("J45", "Asthma"))
		ledger.MarkAsCondition("J45")
		ledger.AddDiagnosis(codedValue("J45", "Asthma"))

		assert.False(t, ledger.MarkAsCondition("J45"))

		diagnoses, conditions := ledger.Snapshot()
		assert.Len(t, diagnoses, 1)
		assert.Len(t, conditions, 1)
	})

	t.Run("fails for a blank id", func(t *testing.T) {
		ledger := NewLedger(nil)
		assert.False(t, ledger.MarkAsCondition("  "))
	})
}

func TestUpdateConditionDuration(t *testing.T) {
	newLedgerWithCondition := func(t *testing.T) *Ledger {
		t.Helper()
		ledger := NewLedger(nil)
		ledger.AddDiagnosis(codedValue("J45", "Asthma"))
		ledger.MarkAsCondition("J45")
		return ledger
	}
	intPtr := func(v int) *int { return &v }
	strPtr := func(v string) *string { return &v }

	t.Run("sets both fields", func(t *testing.T) {
		ledger := newLedgerWithCondition(t)

		assert.NoError(t, ledger.UpdateConditionDuration("J45", intPtr(3), strPtr(constvars.DurationUnitMonths)))

		_, conditions := ledger.Snapshot()
		assert.Equal(t, 3, *conditions[0].DurationValue)
		assert.Equal(t, constvars.DurationUnitMonths, conditions[0].DurationUnit)
	})

	t.Run("nil clears a field", func(t *testing.T) {
		ledger := newLedgerWithCondition(t)
		assert.NoError(t, ledger.UpdateConditionDuration("J45", intPtr(3), strPtr(constvars.DurationUnitMonths)))

		assert.NoError(t, ledger.UpdateConditionDuration("J45", nil, strPtr(constvars.DurationUnitMonths)))

		_, conditions := ledger.Snapshot()
		assert.Nil(t, conditions[0].DurationValue)
		assert.Equal(t, constvars.DurationUnitMonths, conditions[0].DurationUnit)
	})

	t.Run("an invalid value rejects the whole call", func(t *testing.T) {
		ledger := newLedgerWithCondition(t)
		assert.NoError(t, ledger.UpdateConditionDuration("J45", intPtr(3), strPtr(constvars.DurationUnitMonths)))

		err := ledger.UpdateConditionDuration("J45", intPtr(0), strPtr(constvars.DurationUnitYears))
		assert.ErrorIs(t, err, ErrInvalidDurationValue)

		_, conditions := ledger.Snapshot()
		assert.Equal(t, 3, *conditions[0].DurationValue)
		assert.Equal(t, constvars.DurationUnitMonths, conditions[0].DurationUnit)
	})

	t.Run("an invalid unit rejects the whole call", func(t *testing.T) {
		ledger := newLedgerWithCondition(t)

		err := ledger.UpdateConditionDuration("J45", intPtr(3), strPtr("weeks"))
		assert.ErrorIs(t, err, ErrInvalidDurationUnit)

		_, conditions := ledger.Snapshot()
		assert.Nil(t, conditions[0].DurationValue)
	})

	t.Run("clears only the errors of the supplied fields after validation", func(t *testing.T) {
		ledger := newLedgerWithCondition(t)
		assert.False(t, ledger.Validate())

		_, conditions := ledger.Snapshot()
		assert.Contains(t, conditions[0].Errors, constvars.FieldDurationValue)
		assert.Contains(t, conditions[0].Errors, constvars.FieldDurationUnit)

		assert.NoError(t, ledger.UpdateConditionDuration("J45", intPtr(5), nil))

		_, conditions = ledger.Snapshot()
		assert.NotContains(t, conditions[0].Errors, constvars.FieldDurationValue)
		assert.Contains(t, conditions[0].Errors, constvars.FieldDurationUnit)
	})

	t.Run("unknown id returns ErrEntryNotFound", func(t *testing.T) {
		ledger := NewLedger(nil)
		assert.ErrorIs(t, ledger.UpdateConditionDuration("nope", intPtr(3), nil), ErrEntryNotFound)
	})
}

func TestValidate(t *testing.T) {
	t.Run("an empty ledger is valid", func(t *testing.T) {
		ledger := NewLedger(nil)
		assert.True(t, ledger.Validate())
	})

	t.Run("visits every entry without short-circuiting", func(t *testing.T) {
		ledger := NewLedger(nil)
		ledger.AddDiagnosis(codedValue("J45", "Asthma"))
		ledger.AddDiagnosis(codedValue("E11", "Type 2 diabetes"))
		ledger.MarkAsCondition("E11")

		assert.False(t, ledger.Validate())

		diagnoses, conditions := ledger.Snapshot()
		assert.True(t, diagnoses[0].HasBeenValidated)
		assert.True(t, conditions[0].HasBeenValidated)
		assert.NotEmpty(t, diagnoses[0].Errors)
		assert.NotEmpty(t, conditions[0].Errors)
	})

	t.Run("a fully filled ledger validates to true", func(t *testing.T) {
		ledger := NewLedger(nil)
		ledger.AddDiagnosis(codedValue("J45", "Asthma"))
		ledger.UpdateCertainty("J45", constvars.CertaintyConfirmed)
		ledger.AddDiagnosis(codedValue("E11", "Type 2 diabetes"))
		ledger.MarkAsCondition("E11")
		value := 2
		unit := constvars.DurationUnitYears
		ledger.UpdateConditionDuration("E11", &value, &unit)

		assert.True(t, ledger.Validate())
	})

	t.Run("a revalidation pass replaces stale errors", func(t *testing.T) {
		ledger := NewLedger(nil)
		ledger.AddDiagnosis(codedValue("J45", "Asthma"))
		assert.False(t, ledger.Validate())

		ledger.UpdateCertainty("J45", constvars.CertaintyConfirmed)
		assert.True(t, ledger.Validate())

		diagnoses, _ := ledger.Snapshot()
		assert.Empty(t, diagnoses[0].Errors)
	})
}

func TestReset(t *testing.T) {
	ledger := NewLedger(nil)
	ledger.AddDiagnosis(codedValue("J45", "Asthma"))
	ledger.AddDiagnosis(codedValue("E11", "Type 2 diabetes"))
	ledger.MarkAsCondition("E11")

	ledger.Reset()

	diagnoses, conditions := ledger.Snapshot()
	assert.Empty(t, diagnoses)
	assert.Empty(t, conditions)
}

func TestIsExistingCondition(t *testing.T) {
	ledger := NewLedger([]string{"J45", " ", ""})

	assert.True(t, ledger.IsExistingCondition("J45"))
	assert.False(t, ledger.IsExistingCondition("E11"))
	assert.False(t, ledger.IsExistingCondition(" "))

	t.Run("does not block adding the duplicate", func(t *testing.T) {
		assert.True(t, ledger.AddDiagnosis(codedValue("J45", "Asthma")))
	})
}

func TestSnapshotIsolation(t *testing.T) {
	ledger := NewLedger(nil)
	ledger.AddDiagnosis(codedValue("J45", "Asthma"))
	ledger.Validate()

	diagnoses, _ := ledger.Snapshot()
	diagnoses[0].Errors["extra"] = "mutated"
	diagnoses[0].Certainty = "mutated"

	fresh, _ := ledger.Snapshot()
	assert.NotContains(t, fresh[0].Errors, "extra")
	assert.Empty(t, fresh[0].Certainty)
}
