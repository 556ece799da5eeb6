package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlight-dev/ledgerlight/internal/colmap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "import_profiles.json"))
}

func TestRoundTrip(t *testing.T) {
	s := newTestStore(t)
	err := s.Save(Profiles{
		"Test Bank": {"Date": "date", "Narrative": "description", "Amount": "amount"},
	})
	require.NoError(t, err)

	profiles := s.Load()
	require.Contains(t, profiles, "Test Bank")
	assert.Equal(t, "description", profiles["Test Bank"]["Narrative"])
}

func TestLoad_Missing(t *testing.T) {
	s := newTestStore(t)
	assert.Empty(t, s.Load())
}

func TestLoad_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import_profiles.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewStore(path)
	assert.Empty(t, s.Load())
}

func TestMatch_Exact(t *testing.T) {
	profiles := Profiles{
		"Test Bank": {"Date": "date", "Narrative": "description", "Amount": "amount"},
	}

	name, mapping := Match([]string{"Date", "Narrative", "Amount"}, profiles, MatchThreshold)

	assert.Equal(t, "Test Bank", name)
	assert.Equal(t, map[colmap.Role]string{
		colmap.RoleDate:        "date",
		colmap.RoleDescription: "narrative",
		colmap.RoleAmount:      "amount",
	}, mapping)
}

func TestMatch_BelowThresholdReturnsNothing(t *testing.T) {
	// The stored profile is the unique best candidate but scores below
	// threshold, so it must not be returned.
	profiles := Profiles{
		"Other Bank": {"Posting Date": "date", "Memo": "description", "Paid Out": "amount"},
	}

	name, mapping := Match([]string{"Date", "Narrative", "Amount"}, profiles, MatchThreshold)

	assert.Empty(t, name)
	assert.Nil(t, mapping)
}

func TestMatch_EmptyProfiles(t *testing.T) {
	name, mapping := Match([]string{"Date", "Description", "Amount"}, Profiles{}, MatchThreshold)

	assert.Empty(t, name)
	assert.Nil(t, mapping)
}

func TestAdd(t *testing.T) {
	s := newTestStore(t)
	err := s.Add("My Bank", []string{"Date", "Desc", "Value"}, map[colmap.Role]string{
		colmap.RoleDate:        "date",
		colmap.RoleDescription: "desc",
		colmap.RoleAmount:      "value",
	})
	require.NoError(t, err)

	profiles := s.Load()
	require.Contains(t, profiles, "My Bank")
	// Original header casing is preserved in the stored document.
	assert.Equal(t, "description", profiles["My Bank"]["Desc"])

	name, mapping := Match([]string{"Date", "Desc", "Value"}, profiles, MatchThreshold)
	assert.Equal(t, "My Bank", name)
	assert.Equal(t, "desc", mapping[colmap.RoleDescription])
}

func TestAdd_OverwritesSameName(t *testing.T) {
	s := newTestStore(t)

	err := s.Add("My Bank", []string{"Date", "Desc", "Value"}, map[colmap.Role]string{
		colmap.RoleDate:        "date",
		colmap.RoleDescription: "desc",
		colmap.RoleAmount:      "value",
	})
	require.NoError(t, err)

	err = s.Add("My Bank", []string{"Posted", "Memo", "Amount"}, map[colmap.Role]string{
		colmap.RoleDate:        "posted",
		colmap.RoleDescription: "memo",
		colmap.RoleAmount:      "amount",
	})
	require.NoError(t, err)

	profiles := s.Load()
	require.Len(t, profiles, 1)
	stored := profiles["My Bank"]
	assert.Equal(t, "description", stored["Memo"])
	assert.NotContains(t, stored, "Desc")
}

func TestAdd_KeepsOtherProfiles(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Add("Bank A", []string{"Date", "Desc", "Value"}, map[colmap.Role]string{
		colmap.RoleDate: "date", colmap.RoleDescription: "desc", colmap.RoleAmount: "value",
	}))
	require.NoError(t, s.Add("Bank B", []string{"Posted", "Memo", "Amount"}, map[colmap.Role]string{
		colmap.RoleDate: "posted", colmap.RoleDescription: "memo", colmap.RoleAmount: "amount",
	}))

	profiles := s.Load()
	assert.Len(t, profiles, 2)
}
