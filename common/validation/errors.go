package validation

import (
	"fmt"
	"sort"
	"strings"
)

// FieldErrors maps a payload field to the messages describing why it was
// rejected. It is serialized as is in 400 responses.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e[field], ", ")))
	}
	return "invalid payload: " + strings.Join(parts, "; ")
}
