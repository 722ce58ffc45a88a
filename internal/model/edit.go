package model

import "strconv"

type EntityType string

const (
	EntityTherapist   EntityType = "therapist"
	EntityClient      EntityType = "client"
	EntityAppointment EntityType = "appointment"
	EntityTreatment   EntityType = "treatment"
	EntityRoom        EntityType = "room"
	EntityExpense     EntityType = "expense"
	EntityPackage     EntityType = "package"
)

// EditContext tells a save operation whether it creates a new record or
// replaces the fields of an existing one.
type EditContext struct {
	Entity   EntityType
	TargetID string
}

func Create(entity EntityType) EditContext {
	return EditContext{Entity: entity}
}

func Edit(entity EntityType, id string) EditContext {
	return EditContext{Entity: entity, TargetID: id}
}

func EditInt(entity EntityType, id int) EditContext {
	return Edit(entity, strconv.Itoa(id))
}

func (e EditContext) IsEditing() bool {
	return e.TargetID != ""
}

// IntID returns the target as an integer id; ok is false for creates and
// non-numeric targets.
func (e EditContext) IntID() (int, bool) {
	if !e.IsEditing() {
		return 0, false
	}
	id, err := strconv.Atoi(e.TargetID)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Targets reports whether the context belongs to entity.
func (e EditContext) Targets(entity EntityType) bool {
	return e.Entity == entity
}
