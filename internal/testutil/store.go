// Package testutil builds in-memory clinic stores for service and handler
// tests.
package testutil

import (
	"testing"
	"time"

	"github.com/jwalitptl/clinic-admin/internal/repository/document"
	"github.com/jwalitptl/clinic-admin/internal/repository/memory"
	"github.com/jwalitptl/clinic-admin/internal/seed"
	"github.com/jwalitptl/clinic-admin/internal/timezone"
)

// EmptyDocument is a clinic with only the admin user.
const EmptyDocument = `{"adminUser":{"username":"admin","password":"admin123"}}`

// NewStore returns a document store seeded with doc on first load.
func NewStore(t *testing.T, doc string) (*document.Store, *memory.Store) {
	t.Helper()
	kv := memory.NewStore()
	loader := seed.NewLoader([]seed.Source{seed.StaticSource{Label: "test", Data: []byte(doc)}}, 0, nil)
	return document.NewStore(kv, loader, nil), kv
}

// Clock is pinned to 2024-03-15 14:00 clinic-local time.
func Clock() *timezone.Clock {
	loc := timezone.Location(timezone.DefaultTimezone)
	return timezone.FixedClock(time.Date(2024, 3, 15, 14, 0, 0, 0, loc))
}
