// Package validatex is a small tag-driven struct validator. Fields opt
// in with a `validatex:"..."` tag listing comma-separated rules:
//
//	type Options struct {
//		HashMode   string `validatex:"oneof=none rand file filename"`
//		HashLength int    `validatex:"oneof=0 8 16 32 40"`
//	}
package validatex

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var ErrNotStruct = errors.New("value must be a struct")

// ValidationFunc validates a single value against a rule parameter.
type ValidationFunc func(value any, param string) bool

var builtinRules = map[string]ValidationFunc{
	"required": validateRequired,
	"oneof":    validateOneOf,
	"min":      validateMin,
	"max":      validateMax,
	"regex":    validateRegex,
}

// FieldError describes one failed rule on one field.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (e FieldError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("field %q failed rule %q (param %q)", e.Field, e.Rule, e.Param)
	}
	return fmt.Sprintf("field %q failed rule %q", e.Field, e.Rule)
}

// ValidationErrors aggregates every failed rule found in one pass.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every tagged field of a struct (or pointer to one)
// and returns a ValidationErrors listing all failures, or nil.
func Validate(obj any) error {
	val := reflect.ValueOf(obj)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return ErrNotStruct
	}

	var failures ValidationErrors
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("validatex")
		if tag == "" || tag == "-" {
			continue
		}

		value := val.Field(i).Interface()
		for _, rule := range parseTag(tag) {
			fn, ok := builtinRules[rule.Name]
			if !ok {
				failures = append(failures, FieldError{
					Field: field.Name, Rule: rule.Name, Param: rule.Param,
				})
				continue
			}
			// Rules other than required pass on zero values so
			// optional fields stay optional.
			if rule.Name != "required" && isZero(value) {
				continue
			}
			if !fn(value, rule.Param) {
				failures = append(failures, FieldError{
					Field: field.Name, Rule: rule.Name, Param: rule.Param,
				})
			}
		}
	}

	if len(failures) > 0 {
		return failures
	}
	return nil
}

type ruleInfo struct {
	Name  string
	Param string
}

func parseTag(tag string) []ruleInfo {
	parts := strings.Split(tag, ",")
	rules := make([]ruleInfo, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		nameParam := strings.SplitN(part, "=", 2)
		rule := ruleInfo{Name: nameParam[0]}
		if len(nameParam) > 1 {
			rule.Param = nameParam[1]
		}
		rules = append(rules, rule)
	}
	return rules
}

func validateRequired(value any, _ string) bool {
	return !isZero(value)
}

// validateOneOf checks membership in a space-separated set.
func validateOneOf(value any, param string) bool {
	candidate := fmt.Sprintf("%v", value)
	for _, allowed := range strings.Fields(param) {
		if candidate == allowed {
			return true
		}
	}
	return false
}

func validateMin(value any, param string) bool {
	min, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return false
	}
	n, ok := numericValue(value)
	if !ok {
		if s, isStr := value.(string); isStr {
			return float64(len(s)) >= min
		}
		return false
	}
	return n >= min
}

func validateMax(value any, param string) bool {
	max, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return false
	}
	n, ok := numericValue(value)
	if !ok {
		if s, isStr := value.(string); isStr {
			return float64(len(s)) <= max
		}
		return false
	}
	return n <= max
}

func validateRegex(value any, param string) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	re, err := regexp.Compile(param)
	if err != nil {
		return false
	}
	return re.MatchString(s)
}

func numericValue(value any) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func isZero(value any) bool {
	if value == nil {
		return true
	}
	val := reflect.ValueOf(value)
	if val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	switch val.Kind() {
	case reflect.String:
		return val.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return val.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return val.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return val.Float() == 0
	case reflect.Bool:
		return !val.Bool()
	case reflect.Slice, reflect.Map, reflect.Array:
		return val.Len() == 0
	default:
		return reflect.DeepEqual(val.Interface(), reflect.Zero(val.Type()).Interface())
	}
}
