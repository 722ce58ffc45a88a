// Package resolve turns the foreign keys of appointments and packages into
// display names. A reference whose target was deleted resolves to a
// placeholder label, never to an error.
package resolve

import "github.com/jwalitptl/clinic-admin/internal/model"

const (
	LabelRemoved     = "Removed"
	LabelNotFound    = "Not found"
	LabelUnavailable = "N/A"
)

type Resolver struct {
	clients    map[int]model.Client
	therapists map[int]model.Therapist
	treatments map[string]model.TreatmentType
	rooms      map[string]model.Room
	packages   map[int]model.Package
}

func New(doc *model.Document) *Resolver {
	r := &Resolver{
		clients:    make(map[int]model.Client, len(doc.Clients)),
		therapists: make(map[int]model.Therapist, len(doc.Therapists)),
		treatments: make(map[string]model.TreatmentType, len(doc.Treatments)),
		rooms:      make(map[string]model.Room, len(doc.Rooms)),
		packages:   make(map[int]model.Package, len(doc.Packages)),
	}
	for _, c := range doc.Clients {
		r.clients[c.ID] = c
	}
	for _, t := range doc.Therapists {
		r.therapists[t.ID] = t
	}
	for _, t := range doc.Treatments {
		r.treatments[t.ID] = t
	}
	for _, rm := range doc.Rooms {
		r.rooms[rm.ID] = rm
	}
	for _, p := range doc.Packages {
		r.packages[p.ID] = p
	}
	return r
}

func (r *Resolver) Client(id int) (model.Client, bool) {
	c, ok := r.clients[id]
	return c, ok
}

func (r *Resolver) Therapist(id int) (model.Therapist, bool) {
	t, ok := r.therapists[id]
	return t, ok
}

func (r *Resolver) Treatment(id string) (model.TreatmentType, bool) {
	t, ok := r.treatments[id]
	return t, ok
}

func (r *Resolver) Room(id string) (model.Room, bool) {
	rm, ok := r.rooms[id]
	return rm, ok
}

func (r *Resolver) Package(id int) (model.Package, bool) {
	p, ok := r.packages[id]
	return p, ok
}

func (r *Resolver) ClientName(id int, placeholder string) string {
	if c, ok := r.clients[id]; ok {
		return c.Name
	}
	return placeholder
}

func (r *Resolver) TherapistName(id int, placeholder string) string {
	if t, ok := r.therapists[id]; ok {
		return t.Name
	}
	return placeholder
}

func (r *Resolver) TreatmentName(id string, placeholder string) string {
	if t, ok := r.treatments[id]; ok {
		return t.Name
	}
	return placeholder
}

func (r *Resolver) RoomName(id string, placeholder string) string {
	if rm, ok := r.rooms[id]; ok {
		return rm.Name
	}
	return placeholder
}

// Appointment resolves every reference of a, using placeholder for misses.
func (r *Resolver) Appointment(a model.Appointment, placeholder string) model.AppointmentView {
	return model.AppointmentView{
		Appointment:   a,
		ClientName:    r.ClientName(a.ClientID, placeholder),
		TherapistName: r.TherapistName(a.TherapistID, placeholder),
		TreatmentName: r.TreatmentName(a.TreatmentID, placeholder),
		RoomName:      r.RoomName(a.RoomID, placeholder),
	}
}
