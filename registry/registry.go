// Package registry maps department identifiers to the game each one plays.
//
// A Registry is built once at startup and handed to whatever needs it;
// lookups never fail, an unrecognised id resolves to the first entry.
package registry

// Descriptor is the static presentation of a department's mini-game
type Descriptor struct {
	Kind     Kind   `json:"kind"`
	Accent   string `json:"accent"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Icon     string `json:"icon"`
	Quote    string `json:"quote"`
	// Scenario selects a content table for kinds that share a state
	// machine, e.g. the two sequence ordering departments.
	Scenario string `json:"scenario,omitempty"`
}

// WithKind returns a copy of d bound to another kind
func (d Descriptor) WithKind(k Kind) Descriptor {
	d.Kind = k
	return d
}

// Department is a tile in the selection grid
type Department struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Tagline string `json:"tagline"`
}

// Entry binds a department to its descriptor
type Entry struct {
	Department Department
	Descriptor Descriptor
}

type Registry interface {
	Resolve(departmentID string) Descriptor
	Departments() []Department
	Known(departmentID string) bool
}

type table struct {
	order []Department
	byID  map[string]Descriptor
	dflt  Descriptor
}

// New constructs a Registry from entries. The first entry is the fallback
// for unknown ids. Later entries with a duplicate id are ignored.
func New(entries ...Entry) Registry {
	t := &table{
		order: []Department{},
		byID:  map[string]Descriptor{},
	}

	for i, e := range entries {
		if i == 0 {
			t.dflt = e.Descriptor
		}
		if _, exists := t.byID[e.Department.ID]; exists {
			continue
		}
		t.byID[e.Department.ID] = e.Descriptor
		t.order = append(t.order, e.Department)
	}

	return t
}

func (t *table) Resolve(departmentID string) Descriptor {
	if d, ok := t.byID[departmentID]; ok {
		return d
	}
	return t.dflt
}

func (t *table) Known(departmentID string) bool {
	_, ok := t.byID[departmentID]
	return ok
}

func (t *table) Departments() []Department {
	out := make([]Department, len(t.order))
	copy(out, t.order)
	return out
}
