package finance

import (
	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/service/ledger"
)

type Indicator string

const (
	IndicatorPositive Indicator = "positive"
	IndicatorDanger   Indicator = "danger"
)

// Balance is the cash view of one calendar month.
type Balance struct {
	Month             string    `json:"month"`
	Revenue           float64   `json:"revenue"`
	PackageRevenue    float64   `json:"package_revenue"`
	StandaloneRevenue float64   `json:"standalone_revenue"`
	Expenses          float64   `json:"expenses"`
	Balance           float64   `json:"balance"`
	CompletedSessions int       `json:"completed_sessions"`
	Indicator         Indicator `json:"indicator"`
}

// Ledger is the input of Compute.
type Ledger struct {
	Appointments []model.Appointment
	Treatments   []model.TreatmentType
	Packages     []model.Package
	Expenses     []model.Expense
}

// InMonth reports whether a YYYY-MM-DD date falls in a YYYY-MM month. The
// comparison is on the text prefix.
func InMonth(date, month string) bool {
	return len(date) >= 7 && date[:7] == month
}

// Compute aggregates revenue and expenses for month. A completed session
// linked to a package earns the package's per-session price; a standalone
// one earns its treatment price. References that no longer resolve earn 0.
func Compute(month string, in Ledger) Balance {
	prices := make(map[string]float64, len(in.Treatments))
	for _, t := range in.Treatments {
		prices[t.ID] = t.Price
	}
	perSession := make(map[int]float64, len(in.Packages))
	for _, p := range in.Packages {
		perSession[p.ID] = ledger.PerSessionPrice(p)
	}

	b := Balance{Month: month}
	for _, a := range in.Appointments {
		if a.Status != model.AppointmentStatusCompleted || !InMonth(a.Date, month) {
			continue
		}
		b.CompletedSessions++
		if a.PackageID != 0 {
			b.PackageRevenue += perSession[a.PackageID]
		} else {
			b.StandaloneRevenue += prices[a.TreatmentID]
		}
	}
	b.Revenue = b.PackageRevenue + b.StandaloneRevenue

	for _, e := range in.Expenses {
		if InMonth(e.Date, month) {
			b.Expenses += e.Amount
		}
	}

	b.Balance = b.Revenue - b.Expenses
	b.Indicator = IndicatorPositive
	if b.Balance < 0 {
		b.Indicator = IndicatorDanger
	}
	return b
}
