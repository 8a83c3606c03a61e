package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/rules"
)

func usernameRule() rules.Definition {
	return rules.Definition{
		Check: func(value any, _ *form.ValidationContext) string {
			s, _ := value.(string)
			if len(s) < 5 {
				return "length"
			}
			return ""
		},
		Messages: map[string]string{
			"length": "Username should be at least 5 characters",
		},
	}
}

func TestBuiltinRegistry(t *testing.T) {
	t.Parallel()

	reg := rules.NewBuiltinRegistry()
	assert.Equal(t, []string{
		"checked", "email", "equals_field", "length", "max", "max_items", "max_length",
		"min", "min_items", "min_length", "one_of", "pattern", "required", "url", "uuid",
	}, reg.Names())

	tests := []struct {
		name   string
		params []any
		value  any
		code   string
	}{
		{"required", nil, "", "required"},
		{"min_length", []any{3}, "ab", "min_length"},
		{"min_length", []any{"3"}, "ab", "min_length"},
		{"max_length", []any{2.0}, "abc", "max_length"},
		{"length", []any{2}, "abc", "length"},
		{"min", []any{10}, 5, "min"},
		{"max", []any{"10"}, 50, "max"},
		{"min_items", []any{1}, []any{}, "min_items"},
		{"max_items", []any{1}, []any{"a", "b"}, "max_items"},
		{"pattern", []any{"^a+$"}, "b", "pattern"},
		{"one_of", []any{[]any{"a", "b"}}, "c", "one_of"},
		{"one_of", []any{"a", "b"}, "c", "one_of"},
		{"email", nil, "x", "email"},
		{"url", nil, "x", "url"},
		{"uuid", nil, "x", "uuid"},
		{"checked", nil, false, "checked"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			rule, err := reg.Build(tt.name, tt.params...)
			require.NoError(t, err)
			got := violation(t, rule, tt.value)
			require.NotNil(t, got)
			assert.Equal(t, tt.code, got.Code)
		})
	}
}

func TestRegistryBuildErrors(t *testing.T) {
	t.Parallel()

	reg := rules.NewBuiltinRegistry()

	_, err := reg.Build("nope")
	assert.ErrorIs(t, err, rules.ErrUnknownRule)

	for name, params := range map[string][]any{
		"required":     {1},
		"min_length":   {},
		"max_length":   {1.5},
		"min":          {"x"},
		"pattern":      {"("},
		"equals_field": {3},
		"one_of":       {},
	} {
		_, err := reg.Build(name, params...)
		assert.ErrorIs(t, err, rules.ErrInvalidParams, name)
	}
}

func TestRegistryRegister(t *testing.T) {
	t.Parallel()

	reg := rules.NewRegistry()
	assert.Empty(t, reg.Names())

	assert.ErrorIs(t, reg.Register("", func(...any) (form.Rule, error) { return nil, nil }), rules.ErrInvalidRule)
	assert.ErrorIs(t, reg.Register("x", nil), rules.ErrInvalidRule)
	assert.ErrorIs(t, reg.RegisterDefinition("x", nil), rules.ErrInvalidRule)

	require.NoError(t, reg.RegisterDefinition("username", usernameRule))
	assert.True(t, reg.Has("username"))

	rule, err := reg.Build("username")
	require.NoError(t, err)
	got := violation(t, rule, "abc")
	require.NotNil(t, got)
	assert.Equal(t, "username", got.Rule)
	assert.Equal(t, "Username should be at least 5 characters", got.Message)

	_, err = reg.Build("username", 1)
	assert.ErrorIs(t, err, rules.ErrInvalidParams)

	require.NoError(t, reg.RegisterDefinition("username", rules.Required))
	rule, err = reg.Build("username")
	require.NoError(t, err)
	assert.Nil(t, violation(t, rule, "abc"), "registering again replaces the rule")
}

func TestDefaultRegistry(t *testing.T) {
	rules.MustRegisterDefinition("test_default_username", usernameRule)
	assert.True(t, rules.Default.Has("test_default_username"))

	rule, err := rules.Build("test_default_username")
	require.NoError(t, err)
	assert.NotNil(t, violation(t, rule, "abc"))

	require.NoError(t, rules.Register("test_default_factory", func(...any) (form.Rule, error) {
		return rules.Required(), nil
	}))
	_, err = rules.Build("test_default_factory")
	assert.NoError(t, err)

	assert.Panics(t, func() { rules.MustRegisterDefinition("", usernameRule) })
}
