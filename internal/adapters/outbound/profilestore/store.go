package profilestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/maturekit/maturekit/internal/domain"
)

// Store is a file-based implementation of domain.ProfileStore. Profiles live
// under <base>/.maturekit/profiles/<companyID>/<userID>.json.
type Store struct {
	base string
}

// New creates a profile store rooted at base.
func New(base string) *Store {
	return &Store{base: base}
}

// Save writes the profile atomically: marshal to a temp file in the target
// directory, then rename over the previous version. Readers never observe a
// partially written profile.
func (s *Store) Save(profile *domain.MaturityProfile) error {
	dir := filepath.Join(s.base, ".maturekit", "profiles", profile.CompanyID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, profile.UserID+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), s.path(profile.UserID, profile.CompanyID))
}

// Load reads a stored profile. Returns (nil, nil) if none exists.
func (s *Store) Load(userID, companyID string) (*domain.MaturityProfile, error) {
	data, err := os.ReadFile(s.path(userID, companyID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no profile is not an error
		}
		return nil, err
	}

	var profile domain.MaturityProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parsing stored profile: %w", err)
	}
	return &profile, nil
}

func (s *Store) path(userID, companyID string) string {
	return filepath.Join(s.base, ".maturekit", "profiles", companyID, userID+".json")
}
