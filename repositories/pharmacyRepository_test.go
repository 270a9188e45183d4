package repositories

import (
	"testing"

	"PharmaDesk/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPharmacyRoundTrip(t *testing.T) {
	p := &models.Pharmacy{
		ID:      1,
		Name:    "Central Pharmacy",
		Address: "48 Harbor Rd; Unit 2: side entrance | ring bell",
		Phone:   "555-0110",
		Email:   "central@example.com",
	}
	line := formatPharmacy(p)
	parsed, err := parsePharmacy(line)
	require.NoError(t, err)

	assert.Equal(t, p, parsed)
	assert.Equal(t, line, formatPharmacy(parsed))
}

func TestPharmacyInboxNotPersisted(t *testing.T) {
	p := &models.Pharmacy{ID: 2, Name: "North Pharmacy", Inbox: []int{7, 9}}

	parsed, err := parsePharmacy(formatPharmacy(p))
	require.NoError(t, err)
	assert.Empty(t, parsed.Inbox)
}

func TestPharmacyLoadSkipsMalformedLines(t *testing.T) {
	store := newTestStore(t)
	repo := NewPharmacyRepository(store, zerolog.Nop())

	lines := []string{
		formatPharmacy(&models.Pharmacy{ID: 1, Name: "Central Pharmacy"}),
		"too|few",
	}
	require.NoError(t, store.WriteLines("pharmacies", lines))

	loaded, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "Central Pharmacy", loaded[0].Name)
}

func TestPharmacySaveThenLoad(t *testing.T) {
	repo := NewPharmacyRepository(newTestStore(t), zerolog.Nop())

	in := []*models.Pharmacy{
		{ID: 1, Name: "Central Pharmacy", Address: "48 Harbor Rd", Phone: "555-0110", Email: "central@example.com"},
	}
	require.NoError(t, repo.SaveAll(in))

	out, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, in[0], out[0])
}
