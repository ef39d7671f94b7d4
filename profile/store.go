package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/exp/slices"
	"leguru.net/keybindd/logger"
	"leguru.net/keybindd/utils"
)

// FileName returns the per-device binding document path.
func FileName(configDir string, serial string) string {
	return filepath.Join(configDir, "keybinding_"+serial+".json")
}

// Store is the persisted collection of profiles for one device. Every mutating
// method rewrites the whole document before returning.
type Store struct {
	mu       sync.Mutex
	path     string
	profiles map[ID]*Profile
}

// NewStore returns an in-memory store seeded with the default profile. It is
// not backed by a file until path is non-empty.
func NewStore(path string) *Store {
	return &Store{path: path, profiles: map[ID]*Profile{0: NewDefaultProfile(0)}}
}

// Open loads the document at path. A missing file yields the seed default. A
// document that does not match the model is moved to a backup directory next to
// it and replaced by the seed default.
func Open(path string) (*Store, error) {
	s := NewStore(path)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.WithField("file", path).Info("No binding file, using default profile")
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read binding file: %w", err)
	}

	profiles, err := decode(data)
	if err != nil {
		backup, berr := utils.BackupFile(path, filepath.Join(filepath.Dir(path), "backup"))
		logger.WithFields(logger.Fields{"file": path, "backup": backup, "err": err}).Error("Binding file is malformed, starting from default profile")
		if berr != nil {
			return nil, fmt.Errorf("backup malformed binding file: %w", berr)
		}
		return s, nil
	}

	s.profiles = profiles
	logger.WithFields(logger.Fields{"file": path, "profiles": len(profiles)}).Info("Binding file loaded")
	return s, nil
}

func decode(data []byte) (map[ID]*Profile, error) {
	var doc map[string]*Profile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc) == 0 {
		return nil, errors.New("document has no profiles")
	}
	profiles := make(map[ID]*Profile, len(doc))
	for key, p := range doc {
		id, err := ParseID(key)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("profile %s is null", key)
		}
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("profile %s: %w", key, err)
		}
		p.ID = id
		profiles[id] = p
	}
	return profiles, nil
}

func (s *Store) Path() string {
	return s.path
}

// save writes the document through a temporary file and a rename. Callers hold s.mu.
func (s *Store) save() error {
	if s.path == "" {
		return nil
	}
	doc := make(map[string]*Profile, len(s.profiles))
	for id, p := range s.profiles {
		doc[id.String()] = p
	}
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal profiles: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write binding file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace binding file: %w", err)
	}
	logger.WithField("file", s.path).Debug("Binding file written")
	return nil
}

// Save persists the current content.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// mutate runs fn under the lock and persists when it succeeds.
func (s *Store) mutate(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(); err != nil {
		return err
	}
	return s.save()
}

func (s *Store) view(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func (s *Store) ids() []ID {
	ids := make([]ID, 0, len(s.profiles))
	for id := range s.profiles {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s *Store) profile(id ID) (*Profile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrProfileNotFound, id)
	}
	return p, nil
}

func (s *Store) mapOf(id ID, name string) (*Map, error) {
	p, err := s.profile(id)
	if err != nil {
		return nil, err
	}
	return p.Map(name)
}

// IDs returns profile ids in insertion order.
func (s *Store) IDs() []ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids()
}

// Names returns profile names in insertion order.
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := []string{}
	for _, id := range s.ids() {
		names = append(names, s.profiles[id].Name)
	}
	return names
}

// ProfileInfo describes a profile without its maps.
type ProfileInfo struct {
	ID         ID     `json:"id"`
	Name       string `json:"name"`
	DefaultMap string `json:"default_map"`
}

func (s *Store) Info(id ID) (ProfileInfo, error) {
	var info ProfileInfo
	err := s.view(func() error {
		p, err := s.profile(id)
		if err != nil {
			return err
		}
		info = ProfileInfo{ID: p.ID, Name: p.Name, DefaultMap: p.DefaultMap}
		return nil
	})
	return info, err
}

// FindByName returns the first profile, in insertion order, with the given name.
func (s *Store) FindByName(name string) (ID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.ids() {
		if s.profiles[id].Name == name {
			return id, true
		}
	}
	return 0, false
}

// AddProfile appends a profile holding one empty default map and returns its id.
func (s *Store) AddProfile(name string, defaultMap string) (ID, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: profile", ErrEmptyName)
	}
	if defaultMap == "" {
		defaultMap = DefaultMapName
	}
	var id ID
	err := s.mutate(func() error {
		ids := s.ids()
		if len(ids) > 0 {
			id = ids[len(ids)-1] + 1
		}
		s.profiles[id] = &Profile{ID: id, Name: name, DefaultMap: defaultMap, Maps: map[string]*Map{defaultMap: NewMap()}}
		return nil
	})
	return id, err
}

// RemoveProfile deletes a profile. Other ids are left untouched.
func (s *Store) RemoveProfile(id ID) error {
	return s.mutate(func() error {
		if _, err := s.profile(id); err != nil {
			return err
		}
		if len(s.profiles) == 1 {
			return ErrLastProfile
		}
		delete(s.profiles, id)
		return nil
	})
}

func (s *Store) MapNames(id ID) ([]string, error) {
	var names []string
	err := s.view(func() error {
		p, err := s.profile(id)
		if err != nil {
			return err
		}
		names = p.MapNames()
		return nil
	})
	return names, err
}

// Map returns a deep copy of the named map.
func (s *Store) Map(id ID, name string) (Map, error) {
	var out Map
	err := s.view(func() error {
		m, err := s.mapOf(id, name)
		if err != nil {
			return err
		}
		out = m.Clone()
		return nil
	})
	return out, err
}

// AddMap creates an empty map. Adding an existing name fails with ErrMapExists.
func (s *Store) AddMap(id ID, name string) error {
	if name == "" {
		return fmt.Errorf("%w: map", ErrEmptyName)
	}
	return s.mutate(func() error {
		p, err := s.profile(id)
		if err != nil {
			return err
		}
		if _, ok := p.Maps[name]; ok {
			return fmt.Errorf("%w: %q", ErrMapExists, name)
		}
		p.Maps[name] = NewMap()
		return nil
	})
}

// Actions returns a copy of the actions bound to key. The second result tells
// whether the key has an entry at all, which an empty sequence does.
func (s *Store) Actions(id ID, mapName string, key string) ([]Action, bool, error) {
	var (
		out   []Action
		bound bool
	)
	err := s.view(func() error {
		m, err := s.mapOf(id, mapName)
		if err != nil {
			return err
		}
		actions, ok := m.Binding[key]
		bound = ok
		out = append([]Action{}, actions...)
		return nil
	})
	return out, bound, err
}

// AddAction appends an action to key and returns its position.
func (s *Store) AddAction(id ID, mapName string, key string, action Action) (int, error) {
	if err := action.Validate(); err != nil {
		return 0, err
	}
	var pos int
	err := s.mutate(func() error {
		m, err := s.mapOf(id, mapName)
		if err != nil {
			return err
		}
		m.Binding[key] = append(m.Binding[key], action)
		pos = len(m.Binding[key]) - 1
		return nil
	})
	return pos, err
}

// UpdateAction replaces the action at position actionID.
func (s *Store) UpdateAction(id ID, mapName string, key string, actionID int, action Action) error {
	if err := action.Validate(); err != nil {
		return err
	}
	return s.mutate(func() error {
		m, err := s.mapOf(id, mapName)
		if err != nil {
			return err
		}
		actions, ok := m.Binding[key]
		if !ok || actionID < 0 || actionID >= len(actions) {
			return fmt.Errorf("%w: key %s position %d", ErrActionNotFound, key, actionID)
		}
		actions[actionID] = action
		return nil
	})
}

// RemoveAction deletes the action at position actionID; later actions shift down.
func (s *Store) RemoveAction(id ID, mapName string, key string, actionID int) error {
	return s.mutate(func() error {
		m, err := s.mapOf(id, mapName)
		if err != nil {
			return err
		}
		actions, ok := m.Binding[key]
		if !ok || actionID < 0 || actionID >= len(actions) {
			return fmt.Errorf("%w: key %s position %d", ErrActionNotFound, key, actionID)
		}
		m.Binding[key] = slices.Delete(actions, actionID, actionID+1)
		return nil
	})
}

// ClearActions empties the sequence for key. The key entry is kept.
func (s *Store) ClearActions(id ID, mapName string, key string) error {
	return s.mutate(func() error {
		m, err := s.mapOf(id, mapName)
		if err != nil {
			return err
		}
		m.Binding[key] = []Action{}
		return nil
	})
}

func (s *Store) ProfileLEDs(id ID, mapName string) (red, green, blue bool, err error) {
	err = s.view(func() error {
		m, err := s.mapOf(id, mapName)
		if err != nil {
			return err
		}
		red, green, blue = m.LEDs()
		return nil
	})
	return
}

func (s *Store) SetProfileLEDs(id ID, mapName string, red, green, blue bool) error {
	return s.mutate(func() error {
		m, err := s.mapOf(id, mapName)
		if err != nil {
			return err
		}
		m.SetLEDs(red, green, blue)
		return nil
	})
}

func (s *Store) Matrix(id ID, mapName string) (Matrix, error) {
	var out Matrix
	err := s.view(func() error {
		m, err := s.mapOf(id, mapName)
		if err != nil {
			return err
		}
		out = m.Matrix.clone()
		return nil
	})
	return out, err
}

// SetMatrix stores the colour matrix and turns the matrix on for the map.
func (s *Store) SetMatrix(id ID, mapName string, matrix Matrix) error {
	if err := matrix.Validate(); err != nil {
		return err
	}
	return s.mutate(func() error {
		m, err := s.mapOf(id, mapName)
		if err != nil {
			return err
		}
		m.Matrix = matrix.clone()
		m.IsUsingMatrix = true
		return nil
	})
}

// Profiles returns deep copies of every profile in insertion order.
func (s *Store) Profiles() []Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Profile, 0, len(s.profiles))
	for _, id := range s.ids() {
		p := s.profiles[id]
		cp := Profile{ID: p.ID, Name: p.Name, DefaultMap: p.DefaultMap, Maps: make(map[string]*Map, len(p.Maps))}
		for name, m := range p.Maps {
			c := m.Clone()
			cp.Maps[name] = &c
		}
		out = append(out, cp)
	}
	return out
}
