package database

import (
	"errors"
	"reflect"

	"gorm.io/gorm"
)

// Validator is implemented by entities whose invariants must hold for every
// committed row.
type Validator interface {
	Validate() error
}

// ErrPartialUpdate is returned when a validated entity is written from
// anything other than itself: a column map, or another struct passed to
// Updates. Those values cannot be checked against the full row.
var ErrPartialUpdate = errors.New("partial update of a validated entity; save the full entity instead")

// RegisterInvariantHooks makes every create and update issued through db run
// the entity's Validate first. A failing check aborts the statement and the
// surrounding transaction rolls back.
func RegisterInvariantHooks(db *gorm.DB) error {
	if err := db.Callback().Create().Before("gorm:create").Register("invariants:create", checkInvariants); err != nil {
		return err
	}
	return db.Callback().Update().Before("gorm:update").Register("invariants:update", checkInvariants)
}

func checkInvariants(db *gorm.DB) {
	if db.Error != nil || db.Statement.Schema == nil {
		return
	}

	// the hook sees the model, so the values written must be the model itself
	if _, isModel := db.Statement.Model.(Validator); isModel && !sameTarget(db.Statement.Model, db.Statement.Dest) {
		db.AddError(ErrPartialUpdate)
		return
	}

	rv := db.Statement.ReflectValue
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := validateValue(rv.Index(i)); err != nil {
				db.AddError(err)
				return
			}
		}
	case reflect.Struct:
		if err := validateValue(rv); err != nil {
			db.AddError(err)
		}
	}
}

func validateValue(v reflect.Value) error {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.CanAddr() {
		if val, ok := v.Addr().Interface().(Validator); ok {
			return val.Validate()
		}
	}
	if val, ok := v.Interface().(Validator); ok {
		return val.Validate()
	}
	return nil
}

func sameTarget(model, dest interface{}) bool {
	mv, dv := reflect.ValueOf(model), reflect.ValueOf(dest)
	if mv.Kind() != reflect.Ptr || dv.Kind() != reflect.Ptr {
		return false
	}
	return mv.Type() == dv.Type() && mv.Pointer() == dv.Pointer()
}
