package form

// Group holds every field sharing one name together with the resolved value.
type Group struct {
	Name   string
	Fields []*Field
	// Value is the resolved value: []any for list groups, a single value
	// otherwise. Failed reads are stored as *ValueError.
	Value any
	// Set is false when no value was resolved, e.g. no radio is checked.
	Set bool
}

// Data is an ordered snapshot of field groups, keyed by name. Groups keep the
// order in which their first field was registered.
type Data struct {
	names  []string
	groups map[string]*Group
}

func newData() *Data {
	return &Data{groups: make(map[string]*Group)}
}

func (d *Data) add(f *Field) {
	g, ok := d.groups[f.name]
	if !ok {
		g = &Group{Name: f.name}
		d.groups[f.name] = g
		d.names = append(d.names, f.name)
	}
	g.Fields = append(g.Fields, f)
}

// Get returns the group registered under name, or nil.
func (d *Data) Get(name string) *Group {
	if d == nil {
		return nil
	}
	return d.groups[name]
}

// Value returns the resolved value of name and whether it is set.
func (d *Data) Value(name string) (any, bool) {
	g := d.Get(name)
	if g == nil || !g.Set {
		return nil, false
	}
	return g.Value, true
}

// Names returns the group names in order.
func (d *Data) Names() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Groups returns the groups in order.
func (d *Data) Groups() []*Group {
	if d == nil {
		return nil
	}
	out := make([]*Group, 0, len(d.names))
	for _, name := range d.names {
		out = append(out, d.groups[name])
	}
	return out
}

func (d *Data) Len() int {
	if d == nil {
		return 0
	}
	return len(d.names)
}

// Values returns the flat name to value map of every set group.
func (d *Data) Values() map[string]any {
	out := make(map[string]any, d.Len())
	for _, g := range d.Groups() {
		if g.Set {
			out[g.Name] = g.Value
		}
	}
	return out
}
