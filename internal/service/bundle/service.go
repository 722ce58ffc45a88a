// Package bundle manages prepaid session packages and renders their ledger.
package bundle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-admin/internal/model"
	"github.com/jwalitptl/clinic-admin/internal/repository"
	"github.com/jwalitptl/clinic-admin/internal/service/ledger"
	"github.com/jwalitptl/clinic-admin/internal/service/resolve"
	"github.com/jwalitptl/clinic-admin/internal/timezone"
	"github.com/jwalitptl/clinic-admin/pkg/errors"
)

const reportTitle = "Package report"

type Listing struct {
	Package    model.Package  `json:"package"`
	ClientName string         `json:"client_name"`
	Summary    ledger.Summary `json:"summary"`
}

// Session is the n-th linked appointment of a package, in date order.
type Session struct {
	Number int `json:"number"`
	model.AppointmentView
}

type Detail struct {
	Package    model.Package     `json:"package"`
	ClientName string            `json:"client_name"`
	Summary    ledger.Summary    `json:"summary"`
	Sessions   []Session         `json:"sessions"`
	OpenSlots  []ledger.OpenSlot `json:"open_slots"`
}

// Report is the printable package ledger, branded with the company header.
type Report struct {
	Title       string              `json:"title"`
	GeneratedAt time.Time           `json:"generated_at"`
	Company     model.CompanyConfig `json:"company"`
	Packages    []Detail            `json:"packages"`
}

type Service struct {
	repo  repository.PackageRepository
	store repository.DocumentStore
	clock *timezone.Clock
}

func NewService(repo repository.PackageRepository, store repository.DocumentStore, clock *timezone.Clock) *Service {
	return &Service{repo: repo, store: store, clock: clock}
}

// List returns every package with its ledger summary; clientID > 0 keeps
// only that client's packages.
func (s *Service) List(ctx context.Context, clientID int) ([]Listing, error) {
	out := []Listing{}
	err := s.store.View(ctx, func(doc *model.Document) error {
		r := resolve.New(doc)
		for _, p := range doc.Packages {
			if clientID > 0 && p.ClientID != clientID {
				continue
			}
			out = append(out, Listing{
				Package:    p,
				ClientName: r.ClientName(p.ClientID, resolve.LabelNotFound),
				Summary:    ledger.Summarize(p, doc.Appointments),
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return out, nil
}

func (s *Service) Detail(ctx context.Context, id int) (*Detail, error) {
	var d *Detail
	err := s.store.View(ctx, func(doc *model.Document) error {
		r := resolve.New(doc)
		p, ok := r.Package(id)
		if !ok {
			return errors.NotFound("package", nil)
		}
		detail := detailOf(p, doc, r)
		d = &detail
		return nil
	})
	if err != nil {
		if _, ok := errors.As(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load package: %w", err)
	}
	return d, nil
}

// Report builds the printable ledger of all packages, or of one client's
// packages when clientID > 0.
func (s *Service) Report(ctx context.Context, clientID int) (*Report, error) {
	report := &Report{Title: reportTitle, GeneratedAt: s.clock.Now(), Packages: []Detail{}}
	err := s.store.View(ctx, func(doc *model.Document) error {
		r := resolve.New(doc)
		report.Company = branding(doc.Company)
		if clientID > 0 {
			report.Title = fmt.Sprintf("%s - %s", reportTitle, r.ClientName(clientID, resolve.LabelNotFound))
		}
		for _, p := range doc.Packages {
			if clientID > 0 && p.ClientID != clientID {
				continue
			}
			report.Packages = append(report.Packages, detailOf(p, doc, r))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build package report: %w", err)
	}
	return report, nil
}

func branding(cfg *model.CompanyConfig) model.CompanyConfig {
	var out model.CompanyConfig
	if cfg != nil {
		out = *cfg
	}
	if out.Name == "" {
		out.Name = model.DefaultCompanyName
	}
	if out.HeaderColor == "" {
		out.HeaderColor = model.DefaultHeaderColor
	}
	return out
}

func detailOf(p model.Package, doc *model.Document, r *resolve.Resolver) Detail {
	summary := ledger.Summarize(p, doc.Appointments)
	linked := ledger.LinkedAppointments(p.ID, doc.Appointments)

	sessions := make([]Session, len(linked))
	for i, a := range linked {
		sessions[i] = Session{Number: i + 1, AppointmentView: r.Appointment(a, resolve.LabelNotFound)}
	}
	return Detail{
		Package:    p,
		ClientName: r.ClientName(p.ClientID, resolve.LabelNotFound),
		Summary:    summary,
		Sessions:   sessions,
		OpenSlots:  ledger.OpenSlots(summary),
	}
}

// Save creates a package bought today, or replaces the terms of an existing
// one. Saving an edit also moves the purchase date to today.
func (s *Service) Save(ctx context.Context, ectx model.EditContext, req model.PackageRequest) (*model.Package, error) {
	if !ectx.Targets(model.EntityPackage) {
		return nil, errors.BadRequest("edit context does not target a package", nil)
	}
	if req.ClientID <= 0 {
		return nil, errors.BadRequest("client is required", nil)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.BadRequest("name is required", nil)
	}
	if req.TotalSessions < 1 {
		return nil, errors.BadRequest("total sessions must be at least 1", nil)
	}
	if req.TotalPrice <= 0 {
		return nil, errors.BadRequest("total price must be greater than zero", nil)
	}

	p := &model.Package{
		ClientID:      req.ClientID,
		Name:          name,
		TotalSessions: req.TotalSessions,
		TotalPrice:    req.TotalPrice,
		PurchasedOn:   s.clock.Today(),
	}

	if !ectx.IsEditing() {
		if err := s.repo.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to create package: %w", err)
		}
		return p, nil
	}

	id, ok := ectx.IntID()
	if !ok {
		return nil, errors.BadRequest("invalid package id", nil)
	}
	p.ID = id
	found, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to update package: %w", err)
	}
	if !found {
		log.Debug().Int("package_id", id).Msg("package to update not found")
		return nil, nil
	}
	return p, nil
}

// Delete removes the package. Linked appointments keep their package id.
func (s *Service) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}
	return nil
}
