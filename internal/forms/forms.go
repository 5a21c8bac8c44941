// Package forms holds the pieces the submission flows share: field
// validation errors and the artificial processing delay.
package forms

import (
	"context"
	"net/mail"
	"sort"
	"strings"
	"time"
)

// ValidationErrors maps form field names to messages.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}

// Required records msg for field when value is blank.
func (v ValidationErrors) Required(field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		v[field] = msg
	}
}

// Email records an error for a blank or malformed address.
func (v ValidationErrors) Email(field, value string) {
	if strings.TrimSpace(value) == "" {
		v[field] = "Email is required"
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v[field] = "Enter a valid email address"
	}
}

// Err returns v as an error, or nil when no field failed.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Delay blocks for d or until ctx is done.
func Delay(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
