// Package schema provides declarative value validators shared by the HTTP
// API and the typed client. A Schema is a pure predicate over a decoded
// JSON value: Parse returns the coerced value or the full list of issues
// discovered, never stopping at the first failure.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Issue describes a single validation failure. Field names follow the wire
// format consumed by API clients; code-specific fields are omitted when
// empty.
type Issue struct {
	Path      []any    `json:"path"`
	Code      string   `json:"code"`
	Message   string   `json:"message"`
	Expected  string   `json:"expected,omitempty"`
	Received  string   `json:"received,omitempty"`
	Minimum   *float64 `json:"minimum,omitempty"`
	Maximum   *float64 `json:"maximum,omitempty"`
	Type      string   `json:"type,omitempty"`
	Inclusive *bool    `json:"inclusive,omitempty"`
	Exact     *bool    `json:"exact,omitempty"`
	Options   []string `json:"options,omitempty"`
}

// Issue codes.
const (
	CodeInvalidType   = "invalid_type"
	CodeInvalidString = "invalid_string"
	CodeInvalidEnum   = "invalid_enum_value"
	CodeInvalidValue  = "invalid_literal"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeCustom        = "custom"
)

// Schema validates and coerces a decoded JSON value.
type Schema interface {
	// TypeName reports the expected JSON type, used in issue messages.
	TypeName() string
	// Parse validates value at path. It returns the coerced value and all
	// issues found. The returned value is meaningful only when the issue
	// list is empty.
	Parse(path []any, value any) (any, []Issue)
}

// Decode decodes raw JSON preserving number precision (integers stay
// json.Number so 64-bit identifiers survive the round trip).
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// TypeNameOf reports the JSON type name of a decoded value.
func TypeNameOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number, float64, float32, int, int32, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}

func ptrFloat(f float64) *float64 { return &f }
func ptrBool(b bool) *bool        { return &b }

func typeIssue(path []any, expected string, received any) Issue {
	rcv := TypeNameOf(received)
	return Issue{
		Path:     pathCopy(path),
		Code:     CodeInvalidType,
		Expected: expected,
		Received: rcv,
		Message:  fmt.Sprintf("Expected %s, received %s", expected, rcv),
	}
}

func pathCopy(path []any) []any {
	out := make([]any, len(path))
	copy(out, path)
	return out
}

// --- Object ----------------------------------------------------------------

// Field is one named member of an object schema. Fields validate in
// declaration order so issue order is deterministic.
type Field struct {
	Name            string
	Schema          Schema
	Optional        bool
	RequiredMessage string
}

// ObjectSchema validates JSON objects field by field. Unknown keys are
// stripped from the parsed value, mirroring the behaviour clients rely on
// for response payloads.
type ObjectSchema struct {
	fields []Field
}

// Object declares an object schema with the given fields.
func Object(fields ...Field) *ObjectSchema {
	return &ObjectSchema{fields: fields}
}

func (s *ObjectSchema) TypeName() string { return "object" }

func (s *ObjectSchema) Parse(path []any, value any) (any, []Issue) {
	obj, ok := value.(map[string]any)
	if !ok {
		received := value
		issue := typeIssue(path, "object", received)
		if value == nil {
			issue.Received = "undefined"
			issue.Message = "Required"
		}
		return nil, []Issue{issue}
	}

	out := make(map[string]any, len(s.fields))
	var issues []Issue
	for _, f := range s.fields {
		raw, present := obj[f.Name]
		fieldPath := append(pathCopy(path), f.Name)
		if !present || raw == nil {
			if f.Optional {
				continue
			}
			msg := f.RequiredMessage
			if msg == "" {
				msg = "Required"
			}
			issues = append(issues, Issue{
				Path:     fieldPath,
				Code:     CodeInvalidType,
				Expected: f.Schema.TypeName(),
				Received: "undefined",
				Message:  msg,
			})
			continue
		}
		parsed, fieldIssues := f.Schema.Parse(fieldPath, raw)
		if len(fieldIssues) > 0 {
			issues = append(issues, fieldIssues...)
			continue
		}
		out[f.Name] = parsed
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return out, nil
}

// --- String ----------------------------------------------------------------

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// StringSchema validates strings with optional length, format and enum
// constraints.
type StringSchema struct {
	minLen *int
	maxLen *int
	email  bool
	enum   []string
}

// String declares a string schema.
func String() *StringSchema { return &StringSchema{} }

func (s *StringSchema) TypeName() string { return "string" }

// Min requires at least n characters.
func (s *StringSchema) Min(n int) *StringSchema {
	c := *s
	c.minLen = &n
	return &c
}

// Max allows at most n characters.
func (s *StringSchema) Max(n int) *StringSchema {
	c := *s
	c.maxLen = &n
	return &c
}

// Email requires a plausible email address.
func (s *StringSchema) Email() *StringSchema {
	c := *s
	c.email = true
	return &c
}

// Enum restricts the value to the given options.
func (s *StringSchema) Enum(options ...string) *StringSchema {
	c := *s
	c.enum = options
	return &c
}

func (s *StringSchema) Parse(path []any, value any) (any, []Issue) {
	str, ok := value.(string)
	if !ok {
		return nil, []Issue{typeIssue(path, "string", value)}
	}

	var issues []Issue
	if s.minLen != nil && len(str) < *s.minLen {
		issues = append(issues, Issue{
			Path:      pathCopy(path),
			Code:      CodeTooSmall,
			Minimum:   ptrFloat(float64(*s.minLen)),
			Type:      "string",
			Inclusive: ptrBool(true),
			Exact:     ptrBool(false),
			Message:   fmt.Sprintf("String must contain at least %d character(s)", *s.minLen),
		})
	}
	if s.maxLen != nil && len(str) > *s.maxLen {
		issues = append(issues, Issue{
			Path:      pathCopy(path),
			Code:      CodeTooBig,
			Maximum:   ptrFloat(float64(*s.maxLen)),
			Type:      "string",
			Inclusive: ptrBool(true),
			Exact:     ptrBool(false),
			Message:   fmt.Sprintf("String must contain at most %d character(s)", *s.maxLen),
		})
	}
	if s.email && !emailPattern.MatchString(str) {
		issues = append(issues, Issue{
			Path:    pathCopy(path),
			Code:    CodeInvalidString,
			Type:    "string",
			Message: "Invalid email",
		})
	}
	if len(s.enum) > 0 && !containsString(s.enum, str) {
		issues = append(issues, Issue{
			Path:    pathCopy(path),
			Code:    CodeInvalidEnum,
			Options: s.enum,
			Message: fmt.Sprintf("Invalid enum value. Expected %s, received '%s'", quoteOptions(s.enum), str),
		})
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return str, nil
}

func containsString(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

func quoteOptions(options []string) string {
	quoted := make([]string, len(options))
	for i, o := range options {
		quoted[i] = "'" + o + "'"
	}
	return strings.Join(quoted, " | ")
}

// --- Number ----------------------------------------------------------------

// NumberSchema validates JSON numbers. Values keep their decoded
// representation (json.Number for body payloads) so integer precision is
// preserved end to end.
type NumberSchema struct {
	integer bool
	min     *float64
	max     *float64
	coerce  bool
}

// Number declares a number schema.
func Number() *NumberSchema { return &NumberSchema{} }

func (s *NumberSchema) TypeName() string { return "number" }

// Int requires the value to be a whole number.
func (s *NumberSchema) Int() *NumberSchema {
	c := *s
	c.integer = true
	return &c
}

// Min requires value >= n.
func (s *NumberSchema) Min(n float64) *NumberSchema {
	c := *s
	c.min = &n
	return &c
}

// Max requires value <= n.
func (s *NumberSchema) Max(n float64) *NumberSchema {
	c := *s
	c.max = &n
	return &c
}

// Coerce accepts numeric strings, used for URL query parameters where
// every raw value arrives as a string.
func (s *NumberSchema) Coerce() *NumberSchema {
	c := *s
	c.coerce = true
	return &c
}

func (s *NumberSchema) Parse(path []any, value any) (any, []Issue) {
	num, ok := toNumber(value, s.coerce)
	if !ok {
		return nil, []Issue{typeIssue(path, "number", value)}
	}

	f, ferr := num.Float64()
	var issues []Issue
	if s.integer {
		if _, err := num.Int64(); err != nil {
			issues = append(issues, Issue{
				Path:     pathCopy(path),
				Code:     CodeInvalidType,
				Expected: "integer",
				Received: "float",
				Message:  "Expected integer, received float",
			})
		}
	}
	if ferr == nil {
		if s.min != nil && f < *s.min {
			issues = append(issues, Issue{
				Path:      pathCopy(path),
				Code:      CodeTooSmall,
				Minimum:   s.min,
				Type:      "number",
				Inclusive: ptrBool(true),
				Exact:     ptrBool(false),
				Message:   fmt.Sprintf("Number must be greater than or equal to %v", *s.min),
			})
		}
		if s.max != nil && f > *s.max {
			issues = append(issues, Issue{
				Path:      pathCopy(path),
				Code:      CodeTooBig,
				Maximum:   s.max,
				Type:      "number",
				Inclusive: ptrBool(true),
				Exact:     ptrBool(false),
				Message:   fmt.Sprintf("Number must be less than or equal to %v", *s.max),
			})
		}
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return num, nil
}

func toNumber(value any, coerce bool) (json.Number, bool) {
	switch v := value.(type) {
	case json.Number:
		return v, true
	case float64:
		return json.Number(formatFloat(v)), true
	case float32:
		return json.Number(formatFloat(float64(v))), true
	case int:
		return json.Number(fmt.Sprintf("%d", v)), true
	case int32:
		return json.Number(fmt.Sprintf("%d", v)), true
	case int64:
		return json.Number(fmt.Sprintf("%d", v)), true
	case string:
		if !coerce || v == "" {
			return "", false
		}
		n := json.Number(v)
		if _, err := n.Float64(); err != nil {
			return "", false
		}
		return n, true
	default:
		return "", false
	}
}

func formatFloat(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}

// --- Array -----------------------------------------------------------------

// ArraySchema validates arrays of a single element schema.
type ArraySchema struct {
	elem Schema
}

// Array declares an array schema.
func Array(elem Schema) *ArraySchema { return &ArraySchema{elem: elem} }

func (s *ArraySchema) TypeName() string { return "array" }

func (s *ArraySchema) Parse(path []any, value any) (any, []Issue) {
	arr, ok := value.([]any)
	if !ok {
		return nil, []Issue{typeIssue(path, "array", value)}
	}

	out := make([]any, 0, len(arr))
	var issues []Issue
	for i, item := range arr {
		itemPath := append(pathCopy(path), i)
		parsed, itemIssues := s.elem.Parse(itemPath, item)
		if len(itemIssues) > 0 {
			issues = append(issues, itemIssues...)
			continue
		}
		out = append(out, parsed)
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return out, nil
}

// --- Literal ---------------------------------------------------------------

// LiteralSchema requires an exact value, e.g. a fixed status code in an
// error payload.
type LiteralSchema struct {
	value any
}

// Literal declares a schema matching exactly value.
func Literal(value any) *LiteralSchema { return &LiteralSchema{value: value} }

func (s *LiteralSchema) TypeName() string { return TypeNameOf(s.value) }

func (s *LiteralSchema) Parse(path []any, value any) (any, []Issue) {
	if literalEqual(s.value, value) {
		return s.value, nil
	}
	return nil, []Issue{{
		Path:     pathCopy(path),
		Code:     CodeInvalidValue,
		Expected: fmt.Sprintf("%v", s.value),
		Received: fmt.Sprintf("%v", value),
		Message:  fmt.Sprintf("Invalid literal value, expected %v", s.value),
	}}
}

func literalEqual(want, got any) bool {
	if wantNum, ok := toNumber(want, false); ok {
		gotNum, ok := toNumber(got, false)
		if !ok {
			return false
		}
		wf, errW := wantNum.Float64()
		gf, errG := gotNum.Float64()
		return errW == nil && errG == nil && wf == gf
	}
	return want == got
}

// --- Any / Void ------------------------------------------------------------

// AnySchema accepts every value unchanged ("no contract").
type AnySchema struct{}

// Any declares a schema accepting anything.
func Any() *AnySchema { return &AnySchema{} }

func (s *AnySchema) TypeName() string { return "any" }

func (s *AnySchema) Parse(_ []any, value any) (any, []Issue) { return value, nil }

// VoidSchema accepts only an absent value, used for bodyless responses.
type VoidSchema struct{}

// Void declares a schema accepting no value.
func Void() *VoidSchema { return &VoidSchema{} }

func (s *VoidSchema) TypeName() string { return "void" }

func (s *VoidSchema) Parse(path []any, value any) (any, []Issue) {
	if value == nil {
		return nil, nil
	}
	return nil, []Issue{typeIssue(path, "void", value)}
}
