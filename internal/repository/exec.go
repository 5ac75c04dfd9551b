package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"granja/pkg/apperror"
	"granja/pkg/patch"
)

// insert runs a single INSERT in its own transaction.
func insert(ctx context.Context, db *gorm.DB, op string, row interface{}) error {
	err := GetDB(ctx, db).Transaction(func(tx *gorm.DB) error {
		return tx.Create(row).Error
	})
	if err != nil {
		return storageError(op, err)
	}
	return nil
}

// applyPatch writes the allow-listed fields to the row with the given key in
// its own transaction. It returns false without error when nothing was
// supplied or no row has the key.
func applyPatch(ctx context.Context, db *gorm.DB, op string, table patch.Table, key uint, fields patch.Fields) (bool, error) {
	values, err := table.Assignments(fields)
	if errors.Is(err, patch.ErrNoFields) {
		return false, nil
	}
	if err != nil {
		return false, apperror.NewBadRequest(err.Error()).WithInternal(err)
	}

	var affected int64
	err = GetDB(ctx, db).Transaction(func(tx *gorm.DB) error {
		res := tx.Table(table.Name()).Where(table.Key()+" = ?", key).Updates(values)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return false, storageError(op, err)
	}
	return affected == 1, nil
}

// deleteByKey removes the single row whose key column equals key.
func deleteByKey(ctx context.Context, db *gorm.DB, op string, row interface{}, keyColumn string, key uint) (bool, error) {
	var affected int64
	err := GetDB(ctx, db).Transaction(func(tx *gorm.DB) error {
		res := tx.Where(keyColumn+" = ?", key).Delete(row)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return false, storageError(op, err)
	}
	return affected == 1, nil
}
