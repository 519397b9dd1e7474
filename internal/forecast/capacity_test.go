package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapacityLedger_OperationalOnly(t *testing.T) {
	l := NewCapacityLedger([]PreschoolFacility{
		{Subzone: "S1", Name: "Sunshine", Capacity: 100, Status: StatusOperational},
		{Subzone: "S1", Name: "Rainbow", Capacity: 80, Status: StatusOperational},
		{Subzone: "S1", Name: "Future", Capacity: 200, Status: StatusPlanned},
		{Subzone: "S1", Name: "Gone", Capacity: 60, Status: StatusClosed},
	}, nil)

	assert.Equal(t, 180, l.CapacityAt("S1", 2025))
	assert.Equal(t, 2, l.Centres("S1"))
}

func TestCapacityLedger_UnknownSubzoneIsZero(t *testing.T) {
	l := NewCapacityLedger(nil, nil)
	assert.Equal(t, 0, l.CapacityAt("NOWHERE", 2025))
}

func TestCapacityLedger_Schedule(t *testing.T) {
	l := NewCapacityLedger([]PreschoolFacility{
		{Subzone: "S1", Capacity: 100, Status: StatusOperational},
	}, []CapacityChange{
		{Subzone: "S1", Year: 2026, Delta: 50},
		{Subzone: "S1", Year: 2028, Delta: -30},
	})

	assert.Equal(t, 100, l.CapacityAt("S1", 2025))
	assert.Equal(t, 150, l.CapacityAt("S1", 2026))
	assert.Equal(t, 150, l.CapacityAt("S1", 2027))
	assert.Equal(t, 120, l.CapacityAt("S1", 2028))
}

func TestCapacityLedger_Subzones(t *testing.T) {
	l := NewCapacityLedger([]PreschoolFacility{
		{Subzone: "B", Capacity: 10, Status: StatusOperational},
		{Subzone: "A", Capacity: 10, Status: StatusOperational},
	}, []CapacityChange{{Subzone: "C", Year: 2026, Delta: 40}})

	assert.Equal(t, []string{"A", "B", "C"}, l.Subzones())
}
