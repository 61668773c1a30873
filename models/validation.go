package models

import (
	"sort"
	"strings"
)

// Validation messages shared by both entity types.
const (
	msgBlank = "can't be blank"
	msgTaken = "has already been taken"
)

// ValidationErrors maps a field name to the reasons the field blocked
// persistence. It is returned as the error value of Create and Update when
// validation fails, so callers can pick it out with errors.As.
type ValidationErrors map[string][]string

func (v ValidationErrors) Add(field, message string) {
	v[field] = append(v[field], message)
}

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var parts []string
	for _, field := range fields {
		for _, message := range v[field] {
			parts = append(parts, field+" "+message)
		}
	}
	return strings.Join(parts, ", ")
}
