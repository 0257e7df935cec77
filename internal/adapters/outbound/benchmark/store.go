package benchmark

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/maturekit/maturekit/internal/domain"
)

// Store implements domain.BenchmarkStore. Peer distributions come from a
// YAML file; score history is derived from the improvement history of the
// stored profile, so it stays consistent with what the engine persisted.
type Store struct {
	distPath string
	profiles domain.ProfileStore
}

// distributionFile mirrors the benchmark YAML layout:
//
//	peer_groups:
//	  general:
//	    sales: [1.5, 2.0, 3.5]
type distributionFile struct {
	PeerGroups map[string]map[string][]float64 `yaml:"peer_groups"`
}

// New creates a benchmark store reading distributions from distPath and
// history through the given profile store.
func New(distPath string, profiles domain.ProfileStore) *Store {
	return &Store{distPath: distPath, profiles: profiles}
}

// Distribution returns the peer-group scores for a domain. A missing file or
// unknown peer group yields an empty distribution, not an error.
func (s *Store) Distribution(domainID, peerGroup string) ([]float64, error) {
	if s.distPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(s.distPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var f distributionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing benchmark file %s: %w", s.distPath, err)
	}

	return f.PeerGroups[peerGroup][domainID], nil
}

// History converts the profile's improvement events for the domain into
// score snapshots, oldest first.
func (s *Store) History(domainID, userID, companyID string) ([]domain.ScoreSnapshot, error) {
	profile, err := s.profiles.Load(userID, companyID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	var history []domain.ScoreSnapshot
	for _, ev := range profile.ImprovementHistory {
		if ev.DomainID != domainID {
			continue
		}
		history = append(history, domain.ScoreSnapshot{
			DomainID:  domainID,
			Score:     ev.NewScore,
			Timestamp: ev.Timestamp,
		})
	}
	return history, nil
}
