// Package validation evaluates per-provider order rule mappings.
//
// A rule mapping ties a field name to a pipe-separated expression such as
// "required|numeric|min:1|max:58". Supported rules:
//
//	required                field must be present and non-empty
//	nullable                field may be absent or null
//	required_if:other,v...  required when the other field equals one of v
//	string numeric integer boolean array
//	min:n max:n             value bounds for numeric fields, item count for
//	                        arrays, character count otherwise
//	in:a,b,...              value must be one of the listed values
//	digits_between:a,b      digits only, between a and b digits long
//	equals:v                value must equal v
//
// Absent, blank-string and empty-array values only fail the presence rules;
// every other rule is skipped for them. A null value is skipped the same way
// only when the field is nullable, otherwise its type rules still apply.
package validation

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Rules maps a field name to its rule expression.
type Rules map[string]string

// Clone returns an independent copy of the rule mapping.
func (r Rules) Clone() Rules {
	return maps.Clone(r)
}

// Fields returns the field names in lexical order.
func (r Rules) Fields() []string {
	return slices.Sorted(maps.Keys(r))
}

// Errors holds failure messages keyed by field name.
type Errors map[string][]string

// Error renders the messages as a JSON object with sorted keys.
func (e Errors) Error() string {
	b, err := json.Marshal(map[string][]string(e))
	if err != nil {
		return fmt.Sprintf("%v", map[string][]string(e))
	}
	return string(b)
}

// Fields returns the failing field names in lexical order.
func (e Errors) Fields() []string {
	return slices.Sorted(maps.Keys(e))
}

func (e Errors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Validator evaluates rule mappings. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator.
func New() *Validator {
	return &Validator{validate: validator.New()}
}

var defaultValidator = sync.OnceValue(New)

// Validate checks data against rules with a shared Validator.
func Validate(rules Rules, data map[string]any) error {
	return defaultValidator().Validate(rules, data)
}

// Validate checks data against rules. It returns nil when every field
// passes, Errors when at least one field fails, and a plain error when a
// rule expression cannot be understood.
func (v *Validator) Validate(rules Rules, data map[string]any) error {
	errs := Errors{}

	for _, field := range rules.Fields() {
		set, err := parse(rules[field])
		if err != nil {
			return fmt.Errorf("validation: field %q: %w", field, err)
		}

		value, present := data[field]
		if isEmpty(value, present) {
			if set.has("required") || set.requiredIf(data) {
				errs.add(field, "is required.")
				continue
			}
			// an explicit null still meets the type rules unless nullable
			if !present || value != nil || set.has("nullable") {
				continue
			}
		}

		for _, r := range set {
			if msg := v.check(r, set, value); msg != "" {
				errs.add(field, msg)
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type rule struct {
	name   string
	params []string
}

type ruleSet []rule

func (s ruleSet) has(name string) bool {
	return slices.ContainsFunc(s, func(r rule) bool { return r.name == name })
}

func (s ruleSet) requiredIf(data map[string]any) bool {
	for _, r := range s {
		if r.name != "required_if" {
			continue
		}
		other, ok := data[r.params[0]]
		if !ok || other == nil {
			continue
		}
		for _, want := range r.params[1:] {
			if looselyEqual(other, want) {
				return true
			}
		}
	}
	return false
}

func (s ruleSet) numericContext() bool {
	return s.has("numeric") || s.has("integer")
}

var arity = map[string]int{
	"required":       0,
	"nullable":       0,
	"string":         0,
	"numeric":        0,
	"integer":        0,
	"boolean":        0,
	"array":          0,
	"required_if":    -2,
	"in":             -1,
	"min":            1,
	"max":            1,
	"digits_between": 2,
	"equals":         1,
}

func parse(expr string) (ruleSet, error) {
	var set ruleSet
	for _, part := range strings.Split(expr, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, rawParams, _ := strings.Cut(part, ":")
		want, known := arity[name]
		if !known {
			return nil, fmt.Errorf("unknown rule %q", name)
		}

		var params []string
		if rawParams != "" {
			params = strings.Split(rawParams, ",")
		}

		switch {
		case want >= 0 && len(params) != want:
			return nil, fmt.Errorf("rule %q takes %d parameter(s), got %d", name, want, len(params))
		case want < 0 && len(params) < -want:
			return nil, fmt.Errorf("rule %q takes at least %d parameter(s), got %d", name, -want, len(params))
		}

		switch name {
		case "min", "max":
			if _, err := strconv.Atoi(params[0]); err != nil {
				return nil, fmt.Errorf("rule %q needs an integer bound: %w", name, err)
			}
		case "digits_between":
			for _, p := range params {
				if _, err := strconv.Atoi(p); err != nil {
					return nil, fmt.Errorf("rule %q needs integer bounds: %w", name, err)
				}
			}
		}

		set = append(set, rule{name: name, params: params})
	}
	return set, nil
}

// check returns the failure message for one rule, or "" when it passes.
func (v *Validator) check(r rule, set ruleSet, value any) string {
	switch r.name {
	case "required", "nullable", "required_if":
		return ""
	case "string":
		if _, ok := value.(string); !ok {
			return "must be a string."
		}
	case "numeric":
		if !v.isNumeric(value) {
			return "must be a number."
		}
	case "integer":
		if !isInteger(value) {
			return "must be an integer."
		}
	case "boolean":
		if !isBoolean(value) {
			return "must be true or false."
		}
	case "array":
		if !isArray(value) {
			return "must be an array."
		}
	case "min", "max":
		return v.checkSize(r, set, value)
	case "in":
		if !slices.Contains(r.params, stringify(value)) {
			return fmt.Sprintf("must be one of: %s.", strings.Join(r.params, ", "))
		}
	case "digits_between":
		tag := fmt.Sprintf("number,min=%s,max=%s", r.params[0], r.params[1])
		if v.validate.Var(stringify(value), tag) != nil {
			return fmt.Sprintf("must be between %s and %s digits.", r.params[0], r.params[1])
		}
	case "equals":
		if stringify(value) != r.params[0] {
			return fmt.Sprintf("must be equal to %s.", r.params[0])
		}
	}
	return ""
}

func (v *Validator) checkSize(r rule, set ruleSet, value any) string {
	if value == nil {
		return ""
	}
	bound := r.params[0]
	isMin := r.name == "min"

	switch {
	case set.numericContext():
		f, ok := toFloat(value)
		if !ok {
			// the type rule already reported it
			return ""
		}
		tag := "lte=" + bound
		if isMin {
			tag = "gte=" + bound
		}
		if v.validate.Var(f, tag) != nil {
			if isMin {
				return fmt.Sprintf("must be at least %s.", bound)
			}
			return fmt.Sprintf("must not be greater than %s.", bound)
		}
	case isArray(value):
		if v.validate.Var(value, r.name+"="+bound) != nil {
			if isMin {
				return fmt.Sprintf("must have at least %s items.", bound)
			}
			return fmt.Sprintf("must not have more than %s items.", bound)
		}
	default:
		if v.validate.Var(stringify(value), r.name+"="+bound) != nil {
			if isMin {
				return fmt.Sprintf("must be at least %s characters.", bound)
			}
			return fmt.Sprintf("must not exceed %s characters.", bound)
		}
	}
	return ""
}

func isEmpty(value any, present bool) bool {
	if !present || value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	}
	return false
}

func (v *Validator) isNumeric(value any) bool {
	switch t := value.(type) {
	case string:
		return v.validate.Var(t, "numeric") == nil
	case json.Number:
		_, err := t.Float64()
		return err == nil
	case bool:
		return false
	}
	_, ok := toFloat(value)
	return ok
}

func isInteger(value any) bool {
	switch t := value.(type) {
	case string:
		_, err := strconv.ParseInt(t, 10, 64)
		return err == nil
	case json.Number:
		_, err := t.Int64()
		return err == nil
	case float64:
		return !math.IsInf(t, 0) && t == math.Trunc(t)
	case float32:
		f := float64(t)
		return !math.IsInf(f, 0) && f == math.Trunc(f)
	case bool:
		return false
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isBoolean(value any) bool {
	switch t := value.(type) {
	case bool:
		return true
	case string:
		return t == "0" || t == "1"
	}
	f, ok := toFloat(value)
	return ok && (f == 0 || f == 1)
}

func isArray(value any) bool {
	switch reflect.ValueOf(value).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}

func toFloat(value any) (float64, bool) {
	switch t := value.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case bool:
		return 0, false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// stringify renders scalar values the way rule parameters are written:
// booleans become "1"/"0" and floats lose trailing zeros.
func stringify(value any) string {
	switch t := value.(type) {
	case string:
		return t
	case bool:
		if t {
			return "1"
		}
		return "0"
	case json.Number:
		return t.String()
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	}
	return fmt.Sprint(value)
}

// looselyEqual compares a field value with a required_if parameter.
// Booleans match "true"/"1" and "false"/"0".
func looselyEqual(value any, want string) bool {
	if b, ok := value.(bool); ok {
		if b {
			return want == "true" || want == "1"
		}
		return want == "false" || want == "0"
	}
	return stringify(value) == want
}
