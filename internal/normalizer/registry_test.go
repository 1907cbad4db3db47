package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_AssignOrGet(t *testing.T) {
	r := NewRegistry[string]()

	id, created := r.AssignOrGet("Acme")
	assert.Equal(t, int64(1), id)
	assert.True(t, created)

	id, created = r.AssignOrGet("Globex")
	assert.Equal(t, int64(2), id)
	assert.True(t, created)

	id, created = r.AssignOrGet("Acme")
	assert.Equal(t, int64(1), id)
	assert.False(t, created)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []Entry[string]{{Key: "Acme", ID: 1}, {Key: "Globex", ID: 2}}, r.Entries())
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry[string]()
	r.AssignOrGet("Acme")

	id, ok := r.Lookup("Acme")
	assert.True(t, ok)
	assert.Equal(t, int64(1), id)

	_, ok = r.Lookup("Initech")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len(), "lookup must not register")
}

func TestRegistry_CompositeKeys(t *testing.T) {
	r := NewRegistry[cityKey]()

	paris, _ := r.AssignOrGet(cityKey{name: "Paris", countryID: 1})
	parisTX, _ := r.AssignOrGet(cityKey{name: "Paris", countryID: 2})
	again, created := r.AssignOrGet(cityKey{name: "Paris", countryID: 1})

	assert.NotEqual(t, paris, parisTX)
	assert.Equal(t, paris, again)
	assert.False(t, created)
}

func TestRegistry_DenseFirstSeenOrder(t *testing.T) {
	r := NewRegistry[string]()
	input := []string{"c", "a", "c", "b", "a", "d"}

	for _, k := range input {
		r.AssignOrGet(k)
	}

	entries := r.Entries()
	assert.Equal(t, []string{"c", "a", "b", "d"}, []string{entries[0].Key, entries[1].Key, entries[2].Key, entries[3].Key})

	for i, e := range entries {
		assert.Equal(t, int64(i+1), e.ID)
	}

	// Entries is a copy
	entries[0].ID = 99
	assert.Equal(t, int64(1), r.Entries()[0].ID)
}
