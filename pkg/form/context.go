package form

import (
	"context"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Listener is notified after every validation pass.
type Listener interface {
	FormDidValidate(res Result)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(res Result)

func (f ListenerFunc) FormDidValidate(res Result) { f(res) }

// ListenerID is the handle returned by AddListener.
type ListenerID uuid.UUID

// Result is the outcome of a validation pass.
type Result struct {
	// Valid is false when at least one validated field is invalid. Fields
	// without rules and skipped fields count as valid.
	Valid bool
	// State holds the field groups and their resolved values.
	State *Data
	// Data is State refined into nested maps and slices.
	Data map[string]any
}

type listenerEntry struct {
	id       ListenerID
	listener Listener
}

// Context owns the fields and listeners of one form.
type Context struct {
	name      string
	config    *Config
	fields    *registry
	listeners []listenerEntry
	log       *slog.Logger
	logCtx    context.Context
}

// Option configures a Context.
type Option func(*Context)

// WithConfig sets the rule config used for fields without their own rules.
func WithConfig(cfg *Config) Option {
	return func(c *Context) { c.config = cfg }
}

// WithName names the form in log records.
func WithName(name string) Option {
	return func(c *Context) { c.name = name }
}

// WithLogger sets the logger. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.log = l
		}
	}
}

// WithLogContext sets the context passed to log records, so handlers
// extracting request-scoped values see it. Nil is ignored.
func WithLogContext(ctx context.Context) Option {
	return func(c *Context) {
		if ctx != nil {
			c.logCtx = ctx
		}
	}
}

// New returns an empty Context.
func New(opts ...Option) *Context {
	c := &Context{
		fields: newRegistry(),
		log:    logger.Discard(),
		logCtx: context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the form name set with WithName.
func (c *Context) Name() string { return c.name }

// Config returns the rule config, possibly nil.
func (c *Context) Config() *Config { return c.config }

// Register adds a field for comp with a fresh state. Registering the same
// component twice creates two fields.
func (c *Context) Register(comp Component) FieldID {
	f := newField(comp)
	c.fields.add(f)
	return f.id
}

// Unregister removes the field registered under id. It reports whether a
// field was removed.
func (c *Context) Unregister(id FieldID) bool {
	return c.fields.remove(id)
}

// UnregisterComponent removes the first field bound to comp, if any.
func (c *Context) UnregisterComponent(comp Component) bool {
	f := c.FieldOf(comp)
	if f == nil {
		return false
	}
	return c.fields.remove(f.id)
}

// Len returns the number of registered fields.
func (c *Context) Len() int { return c.fields.len() }

// Fields returns the registered fields in registration order.
func (c *Context) Fields() []*Field { return c.fields.snapshot() }

// Field returns the field registered under id, or nil.
func (c *Context) Field(id FieldID) *Field { return c.fields.get(id) }

// FieldOf returns the first field bound to comp, or nil.
func (c *Context) FieldOf(comp Component) *Field {
	return c.fields.first(func(f *Field) bool { return f.component == comp })
}

// FieldByName returns the first field registered under name, or nil.
func (c *Context) FieldByName(name string) *Field {
	return c.fields.first(func(f *Field) bool { return f.name == name })
}

// FieldState returns the state of the field bound to comp.
func (c *Context) FieldState(comp Component) (State, bool) {
	if f := c.FieldOf(comp); f != nil {
		return f.state, true
	}
	return State{}, false
}

// FieldStateByName returns the state of the first field named name.
func (c *Context) FieldStateByName(name string) (State, bool) {
	if f := c.FieldByName(name); f != nil {
		return f.state, true
	}
	return State{}, false
}

// AddListener registers l and returns a handle for RemoveListener.
func (c *Context) AddListener(l Listener) ListenerID {
	id := ListenerID(uuid.New())
	c.listeners = append(c.listeners, listenerEntry{id: id, listener: l})
	return id
}

// RemoveListener unregisters the listener added under id.
func (c *Context) RemoveListener(id ListenerID) bool {
	i := slices.IndexFunc(c.listeners, func(e listenerEntry) bool { return e.id == id })
	if i < 0 {
		return false
	}
	c.listeners = slices.Delete(c.listeners, i, i+1)
	return true
}

// RulesFor returns the rules that apply to f: its own rules if it declares
// any, otherwise the config rules at its name with bracket indexes stripped.
func (c *Context) RulesFor(f *Field) Rule {
	if f == nil {
		return nil
	}
	if f.rules != nil {
		return f.rules
	}
	return c.config.Lookup(f.name)
}

// FieldsData groups the registered fields by name and resolves each group's
// value.
func (c *Context) FieldsData() *Data {
	return c.collect(c.fields.snapshot())
}

// Data returns the current form values as nested maps and slices.
func (c *Context) Data() map[string]any {
	return Refine(c.FieldsData())
}

func (c *Context) collect(fields []*Field) *Data {
	d := newData()
	for _, f := range fields {
		d.add(f)
	}
	for _, g := range d.Groups() {
		c.resolve(g)
	}
	return d
}

func (c *Context) resolve(g *Group) {
	first := g.Fields[0]
	switch {
	case first.isList():
		values := make([]any, 0, len(g.Fields))
		for _, f := range g.Fields {
			if f.checkState() != Unchecked {
				values = append(values, c.read(f))
			}
		}
		g.Value, g.Set = values, true
	case len(g.Fields) > 1:
		for _, f := range g.Fields {
			if f.checkState() == Checked {
				g.Value, g.Set = c.read(f), true
			}
		}
	default:
		if first.checkState() != Unchecked {
			g.Value, g.Set = c.read(first), true
		}
	}
}

func (c *Context) read(f *Field) any {
	v, verr := readValue(f.component)
	if verr != nil {
		c.log.WarnContext(c.logCtx, "field value retrieval failed",
			logger.Form(c.name),
			logger.Field(f.name),
			slog.String("kind", verr.Kind),
			logger.Error(verr.Cause),
		)
		return verr
	}
	return v
}

// ValidateField validates f against data. It returns Unknown when no rules
// apply or when f was never validated and force is false; the field state is
// left untouched in both cases. Otherwise every field sharing f's name is
// marked validated and receives the outcome.
func (c *Context) ValidateField(f *Field, data *Data, force bool) Validity {
	rule := c.RulesFor(f)
	if rule == nil {
		return Unknown
	}
	g := data.Get(f.name)
	if g == nil {
		return Unknown
	}
	if !g.Fields[0].state.Validated && !force {
		return Unknown
	}

	for _, ff := range g.Fields {
		ff.state.Validated = true
	}

	if err := rule.Validate(g.Value, NewValidationContext(data, f)); err != nil {
		msg := err.Error()
		for _, ff := range g.Fields {
			ff.state.Validity = Invalid
			ff.state.Error = msg
			ff.state.Cause = err
		}
		return Invalid
	}

	for _, ff := range g.Fields {
		ff.state.Validity = Valid
		ff.state.Error = ""
		ff.state.Cause = nil
	}
	return Valid
}

// Validate validates every registered field and notifies the listeners.
func (c *Context) Validate(force bool) Result {
	fields := c.fields.snapshot()
	return c.pass(c.collect(fields), fields, force)
}

// ValidateName validates the first field named name and notifies the
// listeners. Data is rebuilt for the whole form either way.
func (c *Context) ValidateName(name string, force bool) Result {
	fields := c.fields.snapshot()
	data := c.collect(fields)

	var targets []*Field
	if i := slices.IndexFunc(fields, func(f *Field) bool { return f.name == name }); i >= 0 {
		targets = fields[i : i+1]
	}
	return c.pass(data, targets, force)
}

// ValidateTarget validates the field named after comp.
func (c *Context) ValidateTarget(comp Component, force bool) Result {
	return c.ValidateName(comp.Name(), force)
}

func (c *Context) pass(data *Data, targets []*Field, force bool) Result {
	valid := true
	for _, f := range targets {
		if c.ValidateField(f, data, force) == Invalid {
			valid = false
		}
	}

	res := Result{
		Valid: valid,
		State: data,
		Data:  Refine(data),
	}

	c.log.DebugContext(c.logCtx, "form validated",
		logger.Form(c.name),
		slog.Int("fields", len(targets)),
		slog.Bool("force", force),
		slog.Bool("valid", valid),
	)

	for _, e := range slices.Clone(c.listeners) {
		e.listener.FormDidValidate(res)
	}
	return res
}
