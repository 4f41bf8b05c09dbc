package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-kum/conserve/internal/dynamo"
)

const (
	StateFile    = "state.json"
	stateVersion = 1
)

// Store keeps the application's persisted record under one directory.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

func (s *Store) StatePath() string {
	return filepath.Join(s.baseDir, StateFile)
}

type stateRecord struct {
	Version int     `json:"version"`
	M0      float64 `json:"m0"`
	V0      float64 `json:"v0"`
	M1      float64 `json:"m1"`
	V1      float64 `json:"v1"`
}

func (s *Store) SaveState(st dynamo.State) error {
	if err := s.Init(); err != nil {
		return err
	}
	rec := stateRecord{Version: stateVersion, M0: st.M0, V0: st.V0, M1: st.M1, V1: st.V1}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp := s.StatePath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.StatePath())
}

// LoadState reads the persisted state. Fields that are missing or cannot be
// decoded default to 0 and are listed in the returned slice. A missing file
// is not an error: every field is reported as defaulted.
func (s *Store) LoadState() (dynamo.State, []string, error) {
	data, err := os.ReadFile(s.StatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return dynamo.State{}, allFields(), nil
		}
		return dynamo.State{}, nil, err
	}
	st, defaulted := DecodeState(data)
	return st, defaulted, nil
}

// DecodeState decodes a state record field by field.
func DecodeState(data []byte) (dynamo.State, []string) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return dynamo.State{}, allFields()
	}

	var st dynamo.State
	var defaulted []string
	for _, f := range dynamo.Fields {
		raw, ok := fields[f.Name()]
		if !ok {
			defaulted = append(defaulted, f.Name())
			continue
		}
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			defaulted = append(defaulted, f.Name())
			continue
		}
		_ = st.Set(f, v)
	}
	return st, defaulted
}

func (s *Store) ClearState() error {
	err := os.Remove(s.StatePath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func allFields() []string {
	names := make([]string, len(dynamo.Fields))
	for i, f := range dynamo.Fields {
		names[i] = f.Name()
	}
	return names
}
