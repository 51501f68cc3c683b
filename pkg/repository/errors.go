// Package repository holds the GORM-backed stores for users, listings,
// bookings and reviews. Every write passes through the invariant hooks
// registered by database.Open, and deletes follow database.CascadePlan.
package repository

import (
	"errors"
	"regexp"
	"strings"

	"alx_travel_app/pkg/apperror"

	"gorm.io/gorm"
)

type constraintKind int

const (
	noConstraint constraintKind = iota
	foreignKeyConstraint
	uniqueConstraint
	checkConstraint
)

// relationsOf names what a resource references, for foreign-key failures
// where the store does not report the constraint name.
var relationsOf = map[string]string{
	"listing": "host",
	"booking": "listing or user",
	"review":  "listing or user",
}

var constraintNamePattern = regexp.MustCompile(`constraint "([^"]+)"|constraint failed: ([A-Za-z0-9_]+)`)

// translate maps store errors onto the apperror taxonomy. Validation errors
// raised by the hooks pass through unchanged.
func translate(err error, resource, id string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperror.IsValidation(err); ok {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NewNotFound(resource, id)
	}
	if kind := classify(err); kind != noConstraint {
		return apperror.NewIntegrity(resource, integrityReason(kind, resource, constraintName(err)), err)
	}
	return err
}

func classify(err error) constraintKind {
	msg := err.Error()
	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated),
		strings.Contains(msg, "FOREIGN KEY constraint failed"),
		strings.Contains(msg, "violates foreign key constraint"):
		return foreignKeyConstraint
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "duplicate key value"):
		return uniqueConstraint
	// not every dialector translates check violations
	case errors.Is(err, gorm.ErrCheckConstraintViolated),
		strings.Contains(msg, "CHECK constraint failed"),
		strings.Contains(msg, "violates check constraint"):
		return checkConstraint
	}
	return noConstraint
}

func integrityReason(kind constraintKind, resource, name string) string {
	switch kind {
	case foreignKeyConstraint:
		// gorm names foreign keys fk_<table>_<relation>
		if strings.HasPrefix(name, "fk_") {
			return name[strings.LastIndex(name, "_")+1:] + " does not exist"
		}
		if rel, ok := relationsOf[resource]; ok {
			return rel + " does not exist"
		}
		return "referenced row does not exist"
	case uniqueConstraint:
		return resource + " already exists"
	default:
		if name != "" {
			return "check constraint " + name + " failed"
		}
		return "check constraint failed"
	}
}

func constraintName(err error) string {
	m := constraintNamePattern.FindStringSubmatch(err.Error())
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}

func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
