package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeNameOf(t *testing.T) {
	cases := []struct {
		value any
		want  string
	}{
		{nil, "null"},
		{true, "boolean"},
		{"x", "string"},
		{json.Number("1"), "number"},
		{float64(1.5), "number"},
		{[]any{}, "array"},
		{map[string]any{}, "object"},
		{struct{}{}, "unknown"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, TypeNameOf(tc.value), "value %#v", tc.value)
	}
}

func TestNumberAcceptsDecodedRepresentations(t *testing.T) {
	cases := []struct {
		name  string
		value any
		ok    bool
	}{
		{"json number", json.Number("3.5"), true},
		{"float64", float64(3.5), true},
		{"int", 3, true},
		{"int64", int64(3), true},
		{"bool", true, false},
		{"null", nil, false},
	}
	s := Number()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, issues := s.Parse(nil, tc.value)
			if tc.ok {
				require.Empty(t, issues)
			} else {
				require.Len(t, issues, 1)
				require.Equal(t, CodeInvalidType, issues[0].Code)
			}
		})
	}
}

func TestStringEnum(t *testing.T) {
	s := String().Enum("development", "production", "test")

	_, issues := s.Parse(nil, "production")
	require.Empty(t, issues)

	_, issues = s.Parse(nil, "staging")
	require.Len(t, issues, 1)
	require.Equal(t, CodeInvalidEnum, issues[0].Code)
	require.Equal(t, []string{"development", "production", "test"}, issues[0].Options)
}
