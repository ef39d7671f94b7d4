package profile

import (
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/exp/slices"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrMapNotFound     = errors.New("map not found")
	ErrActionNotFound  = errors.New("action not found")
	ErrInvalidAction   = errors.New("invalid action")
	ErrMapExists       = errors.New("map already exists")
	ErrLastProfile     = errors.New("cannot remove the last profile")
	ErrProfileInUse    = errors.New("profile is active")
	ErrEmptyName       = errors.New("name is empty")
	ErrInvalidMatrix   = errors.New("invalid matrix")
)

const (
	DefaultProfileName = "Default"
	DefaultMapName     = "Default"
)

type ActionType string

const (
	ActionExecute ActionType = "execute"
	ActionKey     ActionType = "key"
	ActionMap     ActionType = "map"
	ActionProfile ActionType = "profile"
	ActionRelease ActionType = "release"
	ActionShift   ActionType = "shift"
	ActionSleep   ActionType = "sleep"
)

var actionTypes = []ActionType{ActionExecute, ActionKey, ActionMap, ActionProfile, ActionRelease, ActionShift, ActionSleep}

func ParseActionType(s string) (ActionType, error) {
	t := ActionType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown type %q", ErrInvalidAction, s)
	}
	return t, nil
}

func (t ActionType) Valid() bool {
	return slices.Contains(actionTypes, t)
}

type Action struct {
	Type  ActionType `json:"type"`
	Value string     `json:"value"`
}

// Validate checks that the value can be used by the action type. Key codes must
// parse as integers and sleeps must be whole seconds.
func (a Action) Validate() error {
	if !a.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidAction, a.Type)
	}
	switch a.Type {
	case ActionKey, ActionRelease:
		if _, err := strconv.Atoi(a.Value); err != nil {
			return fmt.Errorf("%w: %s value %q is not a key code", ErrInvalidAction, a.Type, a.Value)
		}
	case ActionSleep:
		n, err := strconv.Atoi(a.Value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: sleep value %q is not a number of seconds", ErrInvalidAction, a.Value)
		}
	case ActionMap, ActionShift, ActionProfile:
		if a.Value == "" {
			return fmt.Errorf("%w: %s needs a target name", ErrInvalidAction, a.Type)
		}
	}
	return nil
}

// RGB is one key colour.
type RGB [3]uint8

// Matrix holds per-key colours indexed by row then column, both as decimal strings.
type Matrix map[string]map[string]RGB

// Validate checks that every row and column key is a non-negative integer.
func (m Matrix) Validate() error {
	for row, cols := range m {
		if !isIndex(row) {
			return fmt.Errorf("%w: row %q is not an index", ErrInvalidMatrix, row)
		}
		for col := range cols {
			if !isIndex(col) {
				return fmt.Errorf("%w: column %q of row %s is not an index", ErrInvalidMatrix, col, row)
			}
		}
	}
	return nil
}

// CheckBounds reports the first cell outside a rows x cols grid.
func (m Matrix) CheckBounds(rows int, cols int) error {
	for row, columns := range m {
		r, _ := strconv.Atoi(row)
		for col := range columns {
			c, _ := strconv.Atoi(col)
			if r >= rows || c >= cols {
				return fmt.Errorf("%w: key %s,%s outside %dx%d matrix", ErrInvalidMatrix, row, col, rows, cols)
			}
		}
	}
	return nil
}

func isIndex(s string) bool {
	v, err := strconv.Atoi(s)
	return err == nil && v >= 0
}

func (m Matrix) clone() Matrix {
	if m == nil {
		return nil
	}
	out := make(Matrix, len(m))
	for row, cols := range m {
		c := make(map[string]RGB, len(cols))
		for col, rgb := range cols {
			c[col] = rgb
		}
		out[row] = c
	}
	return out
}

type Map struct {
	IsUsingMatrix bool                `json:"is_using_matrix"`
	Binding       map[string][]Action `json:"binding"`
	Matrix        Matrix              `json:"matrix,omitempty"`
	RedLED        *bool               `json:"red_led,omitempty"`
	GreenLED      *bool               `json:"green_led,omitempty"`
	BlueLED       *bool               `json:"blue_led,omitempty"`
}

func NewMap() *Map {
	return &Map{Binding: map[string][]Action{}}
}

// Clone returns a deep copy so callers outside the store can read it without locking.
func (m *Map) Clone() Map {
	out := Map{
		IsUsingMatrix: m.IsUsingMatrix,
		Binding:       make(map[string][]Action, len(m.Binding)),
		Matrix:        m.Matrix.clone(),
		RedLED:        cloneBool(m.RedLED),
		GreenLED:      cloneBool(m.GreenLED),
		BlueLED:       cloneBool(m.BlueLED),
	}
	for key, actions := range m.Binding {
		out.Binding[key] = append([]Action{}, actions...)
	}
	return out
}

// LEDs reports the profile LED triple, treating absent fields as off.
func (m *Map) LEDs() (red, green, blue bool) {
	return deref(m.RedLED), deref(m.GreenLED), deref(m.BlueLED)
}

func (m *Map) SetLEDs(red, green, blue bool) {
	m.RedLED, m.GreenLED, m.BlueLED = &red, &green, &blue
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

func deref(b *bool) bool {
	return b != nil && *b
}

type ID int

func (id ID) String() string {
	return strconv.Itoa(int(id))
}

func ParseID(s string) (ID, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid profile id %q", s)
	}
	return ID(v), nil
}

type Profile struct {
	ID         ID              `json:"-"`
	Name       string          `json:"name"`
	DefaultMap string          `json:"default_map"`
	Maps       map[string]*Map `json:"maps"`
}

func NewDefaultProfile(id ID) *Profile {
	return &Profile{
		ID:         id,
		Name:       DefaultProfileName,
		DefaultMap: DefaultMapName,
		Maps:       map[string]*Map{DefaultMapName: NewMap()},
	}
}

// MapNames returns the map names with the default map first, the rest sorted.
func (p *Profile) MapNames() []string {
	names := make([]string, 0, len(p.Maps))
	for name := range p.Maps {
		if name != p.DefaultMap {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	if _, ok := p.Maps[p.DefaultMap]; ok {
		names = append([]string{p.DefaultMap}, names...)
	}
	return names
}

func (p *Profile) Map(name string) (*Map, error) {
	m, ok := p.Maps[name]
	if !ok || m == nil {
		return nil, fmt.Errorf("%w: %q in profile %q", ErrMapNotFound, name, p.Name)
	}
	return m, nil
}

func (p *Profile) validate() error {
	if p.Name == "" {
		return errors.New("profile has no name")
	}
	if _, err := p.Map(p.DefaultMap); err != nil {
		return fmt.Errorf("default map: %w", err)
	}
	for name, m := range p.Maps {
		if m == nil {
			return fmt.Errorf("map %q is null", name)
		}
		if err := m.Matrix.Validate(); err != nil {
			return fmt.Errorf("map %q: %w", name, err)
		}
		if m.Binding == nil {
			m.Binding = map[string][]Action{}
		}
		for key, actions := range m.Binding {
			if _, err := strconv.Atoi(key); err != nil {
				return fmt.Errorf("map %q: key %q is not a key code", name, key)
			}
			for i, a := range actions {
				if !a.Type.Valid() {
					return fmt.Errorf("map %q key %s action %d: %w", name, key, i, ErrInvalidAction)
				}
			}
			if actions == nil {
				m.Binding[key] = []Action{}
			}
		}
	}
	return nil
}
