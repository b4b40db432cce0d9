package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/commitlabs/commitment-api/internal/chain"
	"github.com/commitlabs/commitment-api/internal/domain"
)

// MockData is the flat-file dataset that stands in for chain reads while
// the contract integration is stubbed.
type MockData struct {
	Commitments  []chain.Commitment  `json:"commitments"`
	Attestations []chain.Attestation `json:"attestations"`
	Listings     []domain.Listing    `json:"listings"`
}

// MockFileStore reads and writes the JSON mock dataset on disk.
type MockFileStore struct {
	path string
}

// NewMockFileStore creates a MockFileStore for the given path.
func NewMockFileStore(path string) *MockFileStore {
	return &MockFileStore{path: path}
}

// Load reads the dataset. A missing file yields an empty dataset rather
// than an error, matching first-run behavior.
func (s *MockFileStore) Load() (*MockData, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &MockData{}, nil
		}
		return nil, err
	}

	var data MockData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Save writes the dataset, pretty-printed for hand inspection.
func (s *MockFileStore) Save(data *MockData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}
