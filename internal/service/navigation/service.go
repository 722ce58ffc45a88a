// Package navigation decides which modules a user sees and which of them
// are still blocked because prerequisite records are missing.
package navigation

import (
	"context"
	"fmt"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
)

type Module string

const (
	ModuleDashboard  Module = "dashboard"
	ModuleTherapists Module = "therapists"
	ModuleClients    Module = "clients"
	ModulePackages   Module = "packages"
	ModuleAgenda     Module = "agenda"
	ModuleFinance    Module = "finance"
	ModuleConfig     Module = "config"
)

var menu = []Module{
	ModuleDashboard,
	ModuleTherapists,
	ModuleClients,
	ModulePackages,
	ModuleAgenda,
	ModuleFinance,
	ModuleConfig,
}

var adminOnly = map[Module]bool{
	ModuleTherapists: true,
	ModuleFinance:    true,
	ModuleConfig:     true,
}

// Readiness records which collections hold at least one record.
type Readiness struct {
	HasTherapists bool `json:"has_therapists"`
	HasClients    bool `json:"has_clients"`
	HasTreatments bool `json:"has_treatments"`
	HasRooms      bool `json:"has_rooms"`
}

type Entry struct {
	Module      Module `json:"module"`
	Blocked     bool   `json:"blocked"`
	BlockReason string `json:"block_reason,omitempty"`
}

type Menu struct {
	Readiness Readiness `json:"readiness"`
	Modules   []Entry   `json:"modules"`
}

type Service struct {
	store repository.DocumentStore
}

func NewService(store repository.DocumentStore) *Service {
	return &Service{store: store}
}

func (s *Service) Menu(ctx context.Context, session model.Session) (*Menu, error) {
	var r Readiness
	err := s.store.View(ctx, func(doc *model.Document) error {
		r = Readiness{
			HasTherapists: len(doc.Therapists) > 0,
			HasClients:    len(doc.Clients) > 0,
			HasTreatments: len(doc.Treatments) > 0,
			HasRooms:      len(doc.Rooms) > 0,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check module readiness: %w", err)
	}
	return Build(session, r), nil
}

// Visible reports whether the module is shown to the session's user.
func Visible(session model.Session, m Module) bool {
	return session.IsAdmin || !adminOnly[m]
}

// Build is the menu for session given the current readiness.
func Build(session model.Session, r Readiness) *Menu {
	out := &Menu{Readiness: r, Modules: []Entry{}}
	for _, m := range menu {
		if !Visible(session, m) {
			continue
		}
		e := Entry{Module: m, BlockReason: blockReason(session, m, r)}
		e.Blocked = e.BlockReason != ""
		out.Modules = append(out.Modules, e)
	}
	return out
}

func blockReason(session model.Session, m Module, r Readiness) string {
	switch m {
	case ModuleClients:
		if session.IsAdmin && !r.HasTherapists {
			return "Register at least one therapist first."
		}
	case ModulePackages:
		if !r.HasClients || !r.HasTreatments {
			return "Register treatments and clients first."
		}
	case ModuleAgenda:
		missing := ""
		switch {
		case !r.HasTherapists:
			missing = "therapists"
		case !r.HasRooms:
			missing = "rooms"
		case !r.HasClients:
			missing = "at least one client"
		}
		if missing != "" {
			return "To unlock the agenda, first register " + missing + "."
		}
	}
	return ""
}
