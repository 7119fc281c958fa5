// Package validation evaluates declarative per-field rules against submitted
// form values and records a message for every field that fails.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

type Kind string

const (
	Required  Kind = "required"
	MinLength Kind = "minLength"
	MaxLength Kind = "maxLength"
	Pattern   Kind = "pattern"
	Numeric   Kind = "numeric"
)

// Rule is a single check. Param holds the length for MinLength/MaxLength and
// the compiled expression for Pattern. An empty Message falls back to the
// default text for the kind.
type Rule struct {
	Kind    Kind
	Param   any
	Message string
}

type FieldRules struct {
	Field string
	Rules []Rule
}

// RuleSet is evaluated field by field in declaration order.
type RuleSet []FieldRules

// For returns the rules declared for field, nil when it has none.
func (rs RuleSet) For(field string) []Rule {
	for _, fieldRules := range rs {
		if fieldRules.Field == field {
			return fieldRules.Rules
		}
	}
	return nil
}

func RequiredRule(message string) Rule {
	return Rule{Kind: Required, Message: message}
}

func MinLengthRule(length int, message string) Rule {
	return Rule{Kind: MinLength, Param: length, Message: message}
}

func MaxLengthRule(length int, message string) Rule {
	return Rule{Kind: MaxLength, Param: length, Message: message}
}

func PatternRule(expr *regexp.Regexp, message string) Rule {
	return Rule{Kind: Pattern, Param: expr, Message: message}
}

func NumericRule(message string) Rule {
	return Rule{Kind: Numeric, Message: message}
}

// Validate clears every error mark on the form, then evaluates each field's
// rules in order. The first failing rule of a field marks the field and stops
// evaluation for that field only. It reports whether every field passed.
func Validate(form *Form, rules RuleSet) bool {
	form.ClearErrors()

	valid := true
	for _, fieldRules := range rules {
		value := form.Get(fieldRules.Field)
		for _, rule := range fieldRules.Rules {
			if message, ok := check(value, rule); !ok {
				form.MarkError(fieldRules.Field, message)
				valid = false
				break
			}
		}
	}

	return valid
}

// ValidateField re-checks a single field, the way a field is checked when it
// loses focus: its own mark is cleared and rules only run for non-empty input.
func ValidateField(form *Form, field string, rules []Rule) bool {
	form.ClearError(field)

	value := form.Get(field)
	if value == "" {
		return true
	}

	for _, rule := range rules {
		if message, ok := check(value, rule); !ok {
			form.MarkError(field, message)
			return false
		}
	}

	return true
}

func check(value string, rule Rule) (string, bool) {
	switch rule.Kind {
	case Required:
		if value == "" {
			return messageOr(rule, "This field is required"), false
		}

	case MinLength:
		length := intParam(rule.Param)
		if value != "" && utf8.RuneCountInString(value) < length {
			return messageOr(rule, fmt.Sprintf("Minimum of %d characters", length)), false
		}

	case MaxLength:
		length := intParam(rule.Param)
		if value != "" && utf8.RuneCountInString(value) > length {
			return messageOr(rule, fmt.Sprintf("Maximum of %d characters", length)), false
		}

	case Pattern:
		expr, ok := rule.Param.(*regexp.Regexp)
		if value != "" && ok && !expr.MatchString(value) {
			return messageOr(rule, "Invalid format"), false
		}

	case Numeric:
		if value != "" && !isNonNegativeNumber(value) {
			return messageOr(rule, "Must be a valid number"), false
		}
	}

	return "", true
}

func messageOr(rule Rule, fallback string) string {
	if rule.Message != "" {
		return rule.Message
	}
	return fallback
}

func intParam(param any) int {
	switch v := param.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func isNonNegativeNumber(value string) bool {
	number, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return false
	}
	return !math.IsInf(number, 0) && number >= 0
}
