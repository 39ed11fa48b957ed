package service

import (
	"fmt"
	"unicode/utf8"
)

// FieldLimits is the per-kind validation rule table mapping a field name to
// its maximum length in characters. Fields without an entry are unbounded.
type FieldLimits map[string]int

// Check returns a ValidationError when value exceeds the configured limit
// of field.
func (l FieldLimits) Check(field, value string) error {
	max, ok := l[field]
	if !ok {
		return nil
	}
	if utf8.RuneCountInString(value) > max {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("length can not exceed %d", max),
		}
	}
	return nil
}

// CheckAll checks every entry of values against the table.
func (l FieldLimits) CheckAll(values map[string]string) error {
	for field, value := range values {
		if err := l.Check(field, value); err != nil {
			return err
		}
	}
	return nil
}

// generalLimits are the limits shared by every content kind. Kind bindings
// extend them with facet-specific entries.
func generalLimits(extra map[string]int) FieldLimits {
	limits := FieldLimits{
		"title":       200,
		"description": 1000,
		"coverImgUrl": 512,
	}
	for field, max := range extra {
		limits[field] = max
	}
	return limits
}
