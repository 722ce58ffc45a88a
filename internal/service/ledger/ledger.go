// Package ledger derives the consumption state of session packages from the
// appointments linked to them. Nothing here is stored; every figure is
// recomputed from the current appointment list.
package ledger

import (
	"sort"

	"github.com/jwalitptl/clinic-admin/internal/model"
)

// Level grades how close a package is to running out.
type Level string

const (
	LevelPositive Level = "positive"
	LevelWarning  Level = "warning"
	LevelCritical Level = "critical"
)

type Summary struct {
	PackageID       int                 `json:"package_id"`
	ClientID        int                 `json:"client_id"`
	Name            string              `json:"name"`
	TotalSessions   int                 `json:"total_sessions"`
	TotalPrice      float64             `json:"total_price"`
	PerSessionPrice float64             `json:"per_session_price"`
	Linked          int                 `json:"linked"`
	Completed       int                 `json:"completed"`
	Remaining       int                 `json:"remaining"`
	OpenSlots       int                 `json:"open_slots"`
	Overbooked      bool                `json:"overbooked"`
	Status          model.PackageStatus `json:"status"`
	Level           Level               `json:"level"`
}

// OpenSlot is an unscheduled session of a package, e.g. "session 4 of 10".
type OpenSlot struct {
	Number int `json:"number"`
	Total  int `json:"total"`
}

// PerSessionPrice is the amortized value of one session of pkg.
func PerSessionPrice(pkg model.Package) float64 {
	if pkg.TotalSessions <= 0 {
		return 0
	}
	return pkg.TotalPrice / float64(pkg.TotalSessions)
}

// LinkedAppointments returns the appointments of packageID ordered by date,
// then time. Package id 0 marks standalone sessions and links nothing.
func LinkedAppointments(packageID int, appointments []model.Appointment) []model.Appointment {
	linked := []model.Appointment{}
	if packageID == 0 {
		return linked
	}
	for _, a := range appointments {
		if a.PackageID == packageID {
			linked = append(linked, a)
		}
	}
	sort.SliceStable(linked, func(i, j int) bool {
		if linked[i].Date != linked[j].Date {
			return linked[i].Date < linked[j].Date
		}
		return linked[i].Time < linked[j].Time
	})
	return linked
}

// Summarize computes the ledger of one package. Only completed sessions
// consume the package; open slots count every linked appointment whatever
// its status, and never go below zero even when over-booked.
func Summarize(pkg model.Package, appointments []model.Appointment) Summary {
	linked, completed := 0, 0
	if pkg.ID != 0 {
		for _, a := range appointments {
			if a.PackageID != pkg.ID {
				continue
			}
			linked++
			if a.Status == model.AppointmentStatusCompleted {
				completed++
			}
		}
	}

	remaining := pkg.TotalSessions - completed
	rawOpen := pkg.TotalSessions - linked

	s := Summary{
		PackageID:       pkg.ID,
		ClientID:        pkg.ClientID,
		Name:            pkg.Name,
		TotalSessions:   pkg.TotalSessions,
		TotalPrice:      pkg.TotalPrice,
		PerSessionPrice: PerSessionPrice(pkg),
		Linked:          linked,
		Completed:       completed,
		Remaining:       remaining,
		OpenSlots:       max(0, rawOpen),
		Overbooked:      rawOpen < 0,
		Status:          model.PackageStatusCompleted,
		Level:           LevelFor(remaining),
	}
	if remaining > 0 {
		s.Status = model.PackageStatusActive
	}
	return s
}

// LevelFor grades remaining sessions: none left is critical, two or fewer
// is a warning.
func LevelFor(remaining int) Level {
	switch {
	case remaining <= 0:
		return LevelCritical
	case remaining <= 2:
		return LevelWarning
	default:
		return LevelPositive
	}
}

// OpenSlots lists the sessions of s still waiting for an appointment.
func OpenSlots(s Summary) []OpenSlot {
	slots := make([]OpenSlot, 0, s.OpenSlots)
	for i := 0; i < s.OpenSlots; i++ {
		slots = append(slots, OpenSlot{Number: s.Linked + i + 1, Total: s.TotalSessions})
	}
	return slots
}
