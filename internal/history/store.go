// Package history persists recent analysis results to a bounded JSON file.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/boataniq/boataniq/internal/analysis"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MaxEntries bounds the history file. Older entries past the cap are dropped
// on every append.
const MaxEntries = 50

// Entry is one stored analysis record. Entries are kept most-recent-first.
type Entry struct {
	ID         string           `json:"id"`
	Timestamp  time.Time        `json:"timestamp"`
	BoatType   string           `json:"boat_type"`
	Brand      string           `json:"brand"`
	Model      string           `json:"model"`
	Confidence float64          `json:"confidence"`
	ImageName  string           `json:"image_name"`
	Summary    string           `json:"summary"`
	Analysis   *analysis.Result `json:"analysis"`
}

// Store keeps analysis history in a JSON file. Persistence failures never
// fail the analysis that produced the entry; they are logged and reflected
// in Degraded.
type Store struct {
	path string

	mu       sync.Mutex
	entries  []Entry
	degraded bool
}

// NewStore loads existing history from path, or starts empty when the file
// is missing or unreadable. An unreadable file marks the store degraded but
// does not fail construction.
func NewStore(path string) *Store {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s
	}
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to read history file, starting empty")
		s.degraded = true
		return s
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to parse history file, starting empty")
		s.degraded = true
		s.entries = nil
	}
	if len(s.entries) > MaxEntries {
		s.entries = s.entries[:MaxEntries]
	}

	return s
}

// Append records a result at the front of the history and persists the file.
// It returns the new entry's id. The entry is always retained in memory even
// when persistence fails.
func (s *Store) Append(r *analysis.Result, imageName, summary string) string {
	entry := Entry{
		ID:         uuid.NewString(),
		Timestamp:  time.Now().UTC(),
		BoatType:   r.BoatType,
		Brand:      r.Brand,
		Model:      r.Model,
		Confidence: r.Confidence,
		ImageName:  imageName,
		Summary:    summary,
		Analysis:   r,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]Entry{entry}, s.entries...)
	if len(s.entries) > MaxEntries {
		s.entries = s.entries[:MaxEntries]
	}
	s.persist()

	return entry.ID
}

// List returns all entries, most recent first.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, len(s.entries))
	copy(entries, s.entries)
	return entries
}

// Get returns the entry with the given id, or an error if none exists.
func (s *Store) Get(id string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id {
			entry := s.entries[i]
			return &entry, nil
		}
	}
	return nil, fmt.Errorf("history entry %s not found", id)
}

// Delete removes the entry with the given id. Deleting an absent id is a
// no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.persist()
			return
		}
	}
}

// Degraded reports current persistence health: true after a failed load or
// persist, cleared again by the next successful write. In-memory history
// keeps working either way.
func (s *Store) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// persist writes the history file. Callers must hold s.mu.
func (s *Store) persist() {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		log.Warn().Err(err).Msg("Failed to marshal history")
		s.degraded = true
		return
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("Failed to write history file")
		s.degraded = true
		return
	}
	s.degraded = false
}
