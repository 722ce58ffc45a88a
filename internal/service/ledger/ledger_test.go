package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/clinic-admin/internal/model"
)

func appt(id, pkg int, date string, status model.AppointmentStatus) model.Appointment {
	return model.Appointment{ID: id, PackageID: pkg, Date: date, Time: "10:00", Status: status}
}

func TestSummarize(t *testing.T) {
	pkg := model.Package{ID: 1, ClientID: 3, TotalSessions: 10, TotalPrice: 1000}
	appts := []model.Appointment{
		appt(1, 1, "2024-03-01", model.AppointmentStatusCompleted),
		appt(2, 1, "2024-03-08", model.AppointmentStatusCompleted),
		appt(3, 1, "2024-03-15", model.AppointmentStatusCompleted),
		appt(4, 1, "2024-03-22", model.AppointmentStatusScheduled),
		appt(5, 1, "2024-03-29", model.AppointmentStatusCancelled),
		appt(6, 0, "2024-03-29", model.AppointmentStatusCompleted),
		appt(7, 2, "2024-03-29", model.AppointmentStatusCompleted),
	}

	s := Summarize(pkg, appts)
	assert.Equal(t, 5, s.Linked)
	assert.Equal(t, 3, s.Completed)
	assert.Equal(t, 7, s.Remaining)
	assert.Equal(t, 5, s.OpenSlots)
	assert.False(t, s.Overbooked)
	assert.Equal(t, model.PackageStatusActive, s.Status)
	assert.Equal(t, LevelPositive, s.Level)
	assert.InDelta(t, 100.0, s.PerSessionPrice, 1e-9)
}

func TestSummarizeInvariants(t *testing.T) {
	pkg := model.Package{ID: 9, TotalSessions: 4, TotalPrice: 400}
	statuses := []model.AppointmentStatus{
		model.AppointmentStatusCompleted,
		model.AppointmentStatusConfirmed,
		model.AppointmentStatusCancelled,
		model.AppointmentStatusScheduled,
	}

	var appts []model.Appointment
	for n := 0; n < 8; n++ {
		s := Summarize(pkg, appts)
		assert.Equal(t, pkg.TotalSessions, s.Completed+s.Remaining)
		assert.GreaterOrEqual(t, s.OpenSlots, 0)
		assert.LessOrEqual(t, s.Completed, s.Linked)
		assert.Equal(t, s.Remaining > 0, s.Status == model.PackageStatusActive)

		appts = append(appts, appt(n+1, 9, "2024-01-01", statuses[n%len(statuses)]))
	}
}

func TestSummarizeOverbooked(t *testing.T) {
	pkg := model.Package{ID: 1, TotalSessions: 2, TotalPrice: 200}
	appts := []model.Appointment{
		appt(1, 1, "2024-03-01", model.AppointmentStatusCompleted),
		appt(2, 1, "2024-03-02", model.AppointmentStatusCompleted),
		appt(3, 1, "2024-03-03", model.AppointmentStatusCompleted),
	}

	s := Summarize(pkg, appts)
	assert.Equal(t, 0, s.OpenSlots)
	assert.True(t, s.Overbooked)
	assert.Equal(t, -1, s.Remaining)
	assert.Equal(t, model.PackageStatusCompleted, s.Status)
	assert.Equal(t, LevelCritical, s.Level)
}

func TestStandalonePackageIDLinksNothing(t *testing.T) {
	appts := []model.Appointment{appt(1, 0, "2024-03-01", model.AppointmentStatusCompleted)}

	s := Summarize(model.Package{ID: 0, TotalSessions: 3}, appts)
	assert.Equal(t, 0, s.Linked)
	assert.Empty(t, LinkedAppointments(0, appts))
}

func TestLinkedAppointmentsSortedByDate(t *testing.T) {
	appts := []model.Appointment{
		appt(1, 1, "2024-03-15", model.AppointmentStatusScheduled),
		appt(2, 1, "2024-03-01", model.AppointmentStatusCompleted),
		{ID: 3, PackageID: 1, Date: "2024-03-01", Time: "08:00"},
		appt(4, 2, "2024-02-01", model.AppointmentStatusScheduled),
	}

	linked := LinkedAppointments(1, appts)
	ids := make([]int, len(linked))
	for i, a := range linked {
		ids[i] = a.ID
	}
	assert.Equal(t, []int{3, 2, 1}, ids)
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, LevelCritical, LevelFor(0))
	assert.Equal(t, LevelCritical, LevelFor(-2))
	assert.Equal(t, LevelWarning, LevelFor(1))
	assert.Equal(t, LevelWarning, LevelFor(2))
	assert.Equal(t, LevelPositive, LevelFor(3))
}

func TestOpenSlots(t *testing.T) {
	s := Summary{TotalSessions: 5, Linked: 3, OpenSlots: 2}
	assert.Equal(t, []OpenSlot{{Number: 4, Total: 5}, {Number: 5, Total: 5}}, OpenSlots(s))
	assert.Empty(t, OpenSlots(Summary{TotalSessions: 2, Linked: 3}))
}

func TestPerSessionPriceGuardsZeroSessions(t *testing.T) {
	assert.Equal(t, 0.0, PerSessionPrice(model.Package{TotalPrice: 100}))
}
