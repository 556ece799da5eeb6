// Package profile persists reusable column mappings keyed by institution so
// repeat imports skip column inference entirely.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledgerlight-dev/ledgerlight/internal/colmap"
	"github.com/ledgerlight-dev/ledgerlight/internal/textmatch"
)

// Profiles maps a profile name to its stored {raw header: role} assignment.
// Raw headers keep the original casing from the institution's export.
type Profiles map[string]map[string]string

// MatchThreshold is stricter than per-column matching: a wrong whole-profile
// match would silently mis-map every column.
const MatchThreshold = 0.85

// Store reads and writes the profile document at a fixed path.
type Store struct {
	path string
}

// NewStore creates a Store backed by the given JSON file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns all saved profiles. A missing or malformed store means "no
// profiles known", never an error: import degrades to per-file inference.
func (s *Store) Load() Profiles {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Profiles{}
	}
	var profiles Profiles
	if err := json.Unmarshal(data, &profiles); err != nil {
		return Profiles{}
	}
	if profiles == nil {
		return Profiles{}
	}
	return profiles
}

// Save overwrites the entire store. Callers wanting a merge must
// read-modify-write.
func (s *Store) Save(profiles Profiles) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating profile dir: %w", err)
	}
	data, err := json.MarshalIndent(profiles, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling profiles: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing profiles: %w", err)
	}
	return nil
}

// Add stores a {raw header: role} profile under name, overwriting any
// existing profile of that name. The mapping arrives keyed by role with
// lowercased header names; the original casing is re-derived from headers.
func (s *Store) Add(name string, headers []string, mapping map[colmap.Role]string) error {
	profiles := s.Load()

	stored := make(map[string]string, len(mapping))
	for role, lowerHeader := range mapping {
		for _, h := range headers {
			if strings.ToLower(h) == lowerHeader {
				stored[h] = string(role)
				break
			}
		}
	}
	profiles[name] = stored

	return s.Save(profiles)
}

// Match finds the stored profile whose header set best resembles the new
// file's headers. Similarity is computed over the sorted, lowercased,
// space-joined header names. Returns ("", nil) unless the best score
// reaches threshold; on success the mapping is inverted to
// {role: lowercased raw header} for direct use by the importer.
func Match(headers []string, profiles Profiles, threshold float64) (string, map[colmap.Role]string) {
	headerStr := joinSorted(headers)

	bestScore := 0.0
	bestName := ""
	var bestStored map[string]string
	for name, stored := range profiles {
		keys := make([]string, 0, len(stored))
		for h := range stored {
			keys = append(keys, h)
		}
		score := textmatch.Ratio(headerStr, joinSorted(keys))
		if score > bestScore {
			bestScore = score
			bestName = name
			bestStored = stored
		}
	}

	if bestScore < threshold || bestStored == nil {
		return "", nil
	}

	mapping := make(map[colmap.Role]string, len(bestStored))
	for rawHeader, role := range bestStored {
		mapping[colmap.Role(role)] = strings.ToLower(rawHeader)
	}
	return bestName, mapping
}

func joinSorted(headers []string) string {
	lower := make([]string, len(headers))
	for i, h := range headers {
		lower[i] = strings.ToLower(h)
	}
	sort.Strings(lower)
	return strings.Join(lower, " ")
}
