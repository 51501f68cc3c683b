package database

import (
	"fmt"

	"gorm.io/gorm"
)

// CascadeRule is one ON DELETE CASCADE edge: deleting a Parent row deletes
// the Child rows whose Column references it. The same edges are declared as
// foreign-key constraints on the entities; DeleteCascade applies them
// explicitly so that stores running without foreign-key enforcement behave
// the same.
type CascadeRule struct {
	Parent string
	Child  string
	Column string
}

// CascadePlan is the complete cascade policy of the schema.
var CascadePlan = []CascadeRule{
	{Parent: "users", Child: "listings", Column: "host_id"},
	{Parent: "users", Child: "bookings", Column: "user_id"},
	{Parent: "users", Child: "reviews", Column: "user_id"},
	{Parent: "listings", Child: "bookings", Column: "listing_id"},
	{Parent: "listings", Child: "reviews", Column: "listing_id"},
}

var primaryKeys = map[string]string{
	"users":    "id",
	"listings": "listing_id",
	"bookings": "booking_id",
	"reviews":  "review_id",
}

// DeleteCascade deletes the rows of table with the given keys and,
// depth first, everything that references them. Run it inside a transaction.
func DeleteCascade(tx *gorm.DB, table string, keys []interface{}) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	pk, ok := primaryKeys[table]
	if !ok {
		return 0, fmt.Errorf("cascade: unknown table %q", table)
	}

	for _, rule := range CascadePlan {
		if rule.Parent != table {
			continue
		}
		var childKeys []string
		err := tx.Table(rule.Child).
			Where(rule.Column+" IN ?", keys).
			Pluck(primaryKeys[rule.Child], &childKeys).Error
		if err != nil {
			return 0, fmt.Errorf("cascade: collect %s: %w", rule.Child, err)
		}
		if _, err := DeleteCascade(tx, rule.Child, toArgs(childKeys)); err != nil {
			return 0, err
		}
	}

	res := tx.Exec("DELETE FROM "+table+" WHERE "+pk+" IN ?", keys)
	if res.Error != nil {
		return 0, fmt.Errorf("cascade: delete %s: %w", table, res.Error)
	}
	return res.RowsAffected, nil
}

func toArgs(keys []string) []interface{} {
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	return args
}
