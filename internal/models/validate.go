package models

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError collects the human-readable problems found in a submitted
// record. It is raised at the form boundary, before the registry is touched.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) add(format string, args ...any) {
	e.Messages = append(e.Messages, fmt.Sprintf(format, args...))
}

func (e *ValidationError) orNil() error {
	if len(e.Messages) == 0 {
		return nil
	}
	return e
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9()\-\s]{6,20}$`)
	spaceRun     = regexp.MustCompile(`\s+`)
)

// CollapseWhitespace trims the string and squeezes inner whitespace runs to a
// single space.
func CollapseWhitespace(s string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// NormalizeEmail is the comparison form used for the uniqueness check:
// trimmed and lower-cased.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidateAsset checks a submitted asset against §3 and its type schema.
func ValidateAsset(a Asset) error {
	verr := &ValidationError{}
	if strings.TrimSpace(a.Name) == "" {
		verr.add("name is required")
	}
	schema, ok := SchemaByCode(a.TypeCode)
	if !ok {
		verr.add("unknown asset type %q", a.TypeCode)
		return verr.orNil()
	}
	for _, f := range schema.Required {
		v, present := a.Data[f.Key]
		if !present || v == nil {
			verr.add("%s is required", f.Label)
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			verr.add("%s is required", f.Label)
		}
	}
	return verr.orNil()
}

// ValidateDocument checks a submitted document. A document without a file
// payload is invalid and must not be persisted.
func ValidateDocument(d Document) error {
	verr := &ValidationError{}
	if strings.TrimSpace(d.Title) == "" {
		verr.add("title is required")
	}
	if strings.TrimSpace(d.FileRef) == "" {
		verr.add("a file is required")
	}
	return verr.orNil()
}

// ValidatePerson checks a submitted person. existing is the current person
// list, used for the email uniqueness check; the record itself is skipped by
// id so edits do not collide with themselves.
func ValidatePerson(p Person, existing []Person) error {
	verr := &ValidationError{}
	if len(CollapseWhitespace(p.Name)) < 2 {
		verr.add("name must be at least 2 characters")
	}
	if !ValidPersonRole(string(p.Role)) {
		verr.add("unknown role %q", p.Role)
	}
	if p.Email != "" {
		if !emailPattern.MatchString(strings.TrimSpace(p.Email)) {
			verr.add("email address %q is not valid", p.Email)
		} else {
			own := NormalizeEmail(p.Email)
			for _, other := range existing {
				if other.ID == p.ID || other.Email == "" {
					continue
				}
				if NormalizeEmail(other.Email) == own {
					verr.add("email address %q is already in use", p.Email)
					break
				}
			}
		}
	}
	if p.Phone != "" && !phonePattern.MatchString(strings.TrimSpace(p.Phone)) {
		verr.add("phone number %q is not valid", p.Phone)
	}
	return verr.orNil()
}
