package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"granja/pkg/apperror"
	"granja/pkg/patch"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestApplyPatchCommits(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "produccion_huevos" SET "cantidad"=$1 WHERE id_produccion = $2`)).
		WithArgs(50, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	changed, err := repo.Update(context.Background(), 7, patch.Fields{"cantidad": 50})
	require.NoError(t, err)
	assert.True(t, changed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPatchWritesNullAndSortedColumns(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "usuarios" SET "nombre"=$1,"telefono"=$2 WHERE id_usuario = $3`)).
		WithArgs("Ana", nil, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	changed, err := repo.Update(context.Background(), 2, patch.Fields{"telefono": nil, "nombre": "Ana"})
	require.NoError(t, err)
	assert.True(t, changed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPatchRollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStockRepository(db)
	cause := errors.New("connection reset by peer")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "stock" SET "cantidad_disponible"=$1 WHERE id_producto = $2`)).
		WithArgs(3, 1).
		WillReturnError(cause)
	mock.ExpectRollback()

	changed, err := repo.Update(context.Background(), 1, patch.Fields{"cantidad_disponible": 3})
	assert.False(t, changed)
	assert.ErrorIs(t, err, apperror.ErrStorage)
	assert.ErrorIs(t, err, cause)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPatchNoFieldsSkipsStorage(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEggTypeRepository(db)

	changed, err := repo.Update(context.Background(), 1, patch.Fields{})
	require.NoError(t, err)
	assert.False(t, changed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "produccion_huevos" WHERE id_produccion = $1`)).
		WithArgs(4).
		WillReturnError(&pgconn.PgError{Code: "40P01", Message: "deadlock detected"})
	mock.ExpectRollback()

	deleted, err := repo.Delete(context.Background(), 4)
	assert.False(t, deleted)
	assert.ErrorIs(t, err, apperror.ErrStorage)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueConstraintError(t *testing.T) {
	assert.True(t, isUniqueConstraintError(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueConstraintError(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueConstraintError(errors.New("UNIQUE constraint failed: usuarios.email")))
	assert.True(t, isUniqueConstraintError(errors.New(`duplicate key value violates unique constraint "usuarios_email_key"`)))

	assert.False(t, isUniqueConstraintError(nil))
	assert.False(t, isUniqueConstraintError(&pgconn.PgError{Code: "23514"}))
	assert.False(t, isUniqueConstraintError(errors.New("CHECK constraint failed: chk_stock_cantidad")))
}
