// Package snapshot reads habit and space snapshots stored as YAML.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/habitxp/habits-mcp/internal/domain/habit"
	"github.com/habitxp/habits-mcp/internal/domain/space"
)

// ErrInvalidSnapshot indicates a snapshot that decodes but is inconsistent.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Snapshot is a point-in-time copy of a user's spaces and habits.
type Snapshot struct {
	Spaces []space.Space `yaml:"spaces"`
	Habits []habit.Habit `yaml:"habits"`
}

// Load decodes a snapshot from r.
func Load(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile decodes the snapshot stored at path.
func LoadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// SpaceIndex returns the snapshot's spaces keyed by ID.
func (s *Snapshot) SpaceIndex() map[string]space.Space {
	return space.Index(s.Spaces)
}

func (s *Snapshot) validate() error {
	seen := make(map[string]bool, len(s.Spaces))
	for _, sp := range s.Spaces {
		if sp.ID == "" {
			return fmt.Errorf("%w: space without id", ErrInvalidSnapshot)
		}
		if seen[sp.ID] {
			return fmt.Errorf("%w: duplicate space %q", ErrInvalidSnapshot, sp.ID)
		}
		seen[sp.ID] = true
	}
	ids := make(map[string]bool, len(s.Habits))
	for _, h := range s.Habits {
		if h.ID == "" {
			return fmt.Errorf("%w: habit without id", ErrInvalidSnapshot)
		}
		if ids[h.ID] {
			return fmt.Errorf("%w: duplicate habit %q", ErrInvalidSnapshot, h.ID)
		}
		ids[h.ID] = true
		// Durations stay fail-soft; the projector renders what it cannot parse.
		if h.Frequency != "" && !h.Frequency.Valid() {
			return fmt.Errorf("%w: habit %q has unknown frequency %q", ErrInvalidSnapshot, h.ID, h.Frequency)
		}
	}
	return nil
}
