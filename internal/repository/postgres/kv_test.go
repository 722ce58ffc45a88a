package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKVStoreRejectsUnsafeTableNames(t *testing.T) {
	_, err := NewKVStore(nil, "clinic_kv; DROP TABLE x")
	assert.Error(t, err)

	s, err := NewKVStore(nil, "clinic_kv")
	assert.NoError(t, err)
	assert.Equal(t, "clinic_kv", s.table)
}
