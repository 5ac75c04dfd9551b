package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"granja/internal/database/testutil"
	"granja/internal/model"
	"granja/pkg/apperror"
	"granja/pkg/patch"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedBatches(t *testing.T, repo ProductionRepository, dates ...time.Time) []uint {
	t.Helper()
	ids := make([]uint, 0, len(dates))
	for i, d := range dates {
		b := &model.ProductionBatch{ShedID: 1, Quantity: 100 + i, Date: d, EggTypeID: 1}
		require.NoError(t, repo.Create(context.Background(), b))
		ids = append(ids, b.ID)
	}
	return ids
}

func TestProductionCreateAndGetByID(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	require.NoError(t, db.Create(&model.Shed{ID: 1, FarmID: 1, Name: "Galpón A"}).Error)
	require.NoError(t, db.Create(&model.EggType{ID: 2, Color: "rojo", Size: "AA"}).Error)
	repo := NewProductionRepository(db)
	ctx := context.Background()

	batch := &model.ProductionBatch{ShedID: 1, Quantity: 320, Date: day(2024, 3, 1), EggTypeID: 2}
	require.NoError(t, repo.Create(ctx, batch))
	require.NotZero(t, batch.ID)

	got, err := repo.GetByID(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, batch.ID, got.ID)
	assert.Equal(t, uint(1), got.ShedID)
	assert.Equal(t, 320, got.Quantity)
	assert.True(t, batch.Date.Equal(got.Date), "got %s", got.Date)
	assert.Equal(t, uint(2), got.EggTypeID)
	require.NotNil(t, got.ShedName)
	assert.Equal(t, "Galpón A", *got.ShedName)
	require.NotNil(t, got.EggSize)
	assert.Equal(t, "AA", *got.EggSize)
}

func TestProductionGetByIDMissing(t *testing.T) {
	repo := NewProductionRepository(testutil.MustOpenTestDB(t))

	got, err := repo.GetByID(context.Background(), 404)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestProductionViewWithoutReferences(t *testing.T) {
	repo := NewProductionRepository(testutil.MustOpenTestDB(t))
	ctx := context.Background()

	batch := &model.ProductionBatch{ShedID: 9, Quantity: 1, Date: day(2024, 1, 1), EggTypeID: 9}
	require.NoError(t, repo.Create(ctx, batch))

	got, err := repo.GetByID(ctx, batch.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ShedName)
	assert.Nil(t, got.EggSize)
}

func TestProductionUpdateOnlyTouchesSuppliedFields(t *testing.T) {
	repo := NewProductionRepository(testutil.MustOpenTestDB(t))
	ctx := context.Background()

	orig := &model.ProductionBatch{ID: 7, ShedID: 3, Quantity: 10, Date: day(2024, 5, 20), EggTypeID: 4}
	require.NoError(t, repo.Create(ctx, orig))

	changed, err := repo.Update(ctx, 7, patch.Fields{"cantidad": 50})
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := repo.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 50, got.Quantity)
	assert.Equal(t, uint(3), got.ShedID)
	assert.Equal(t, uint(4), got.EggTypeID)
	assert.True(t, orig.Date.Equal(got.Date))
}

func TestProductionUpdateWritesZeroValue(t *testing.T) {
	repo := NewProductionRepository(testutil.MustOpenTestDB(t))
	ctx := context.Background()
	ids := seedBatches(t, repo, day(2024, 5, 1))

	changed, err := repo.Update(ctx, ids[0], patch.Fields{"cantidad": 0})
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := repo.GetByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Zero(t, got.Quantity)
}

func TestProductionUpdateIsIdempotent(t *testing.T) {
	repo := NewProductionRepository(testutil.MustOpenTestDB(t))
	ctx := context.Background()
	ids := seedBatches(t, repo, day(2024, 5, 1))

	fields := patch.Fields{"cantidad": 75, "fecha": day(2024, 5, 2)}
	for i := 0; i < 2; i++ {
		_, err := repo.Update(ctx, ids[0], fields)
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, ids[0])
		require.NoError(t, err)
		assert.Equal(t, 75, got.Quantity)
		assert.True(t, day(2024, 5, 2).Equal(got.Date))
	}
}

func TestProductionUpdateMissingRowIsNoOp(t *testing.T) {
	repo := NewProductionRepository(testutil.MustOpenTestDB(t))

	changed, err := repo.Update(context.Background(), 9999, patch.Fields{"cantidad": 50})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestProductionUpdateEmptyIsNoOp(t *testing.T) {
	repo := NewProductionRepository(testutil.MustOpenTestDB(t))
	ids := seedBatches(t, repo, day(2024, 5, 1))

	changed, err := repo.Update(context.Background(), ids[0], patch.Fields{})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestProductionUpdateRejectsUnknownField(t *testing.T) {
	repo := NewProductionRepository(testutil.MustOpenTestDB(t))
	ids := seedBatches(t, repo, day(2024, 5, 1))

	changed, err := repo.Update(context.Background(), ids[0], patch.Fields{"id_produccion": 1})
	assert.False(t, changed)
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
	assert.ErrorIs(t, err, patch.ErrUnknownField)
}

func TestProductionUpdateViolatingCheckIsStorageFailure(t *testing.T) {
	repo := NewProductionRepository(testutil.MustOpenTestDB(t))
	ctx := context.Background()
	ids := seedBatches(t, repo, day(2024, 5, 1))

	changed, err := repo.Update(ctx, ids[0], patch.Fields{"cantidad": -1})
	assert.False(t, changed)
	assert.ErrorIs(t, err, apperror.ErrStorage)

	got, err := repo.GetByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, 100, got.Quantity)
}

func TestProductionListPaginatesByDate(t *testing.T) {
	repo := NewProductionRepository(testutil.MustOpenTestDB(t))
	ctx := context.Background()
	seedBatches(t, repo, day(2024, 3, 5), day(2024, 3, 1), day(2024, 3, 4), day(2024, 3, 2), day(2024, 3, 3))

	page, err := repo.List(ctx, ProductionFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.True(t, day(2024, 3, 2).Equal(page[0].Date))
	assert.True(t, day(2024, 3, 3).Equal(page[1].Date))

	all, err := repo.List(ctx, ProductionFilter{Limit: 100})
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].Date.Before(all[i-1].Date))
	}
}

func TestProductionListDateRange(t *testing.T) {
	repo := NewProductionRepository(testutil.MustOpenTestDB(t))
	ctx := context.Background()
	seedBatches(t, repo, day(2024, 3, 1), day(2024, 3, 2), day(2024, 3, 3), day(2024, 3, 4))

	from, to := day(2024, 3, 2), day(2024, 3, 3)
	got, err := repo.List(ctx, ProductionFilter{Limit: 10, From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, from.Equal(got[0].Date))
	assert.True(t, to.Equal(got[1].Date))
}

func TestProductionListIgnoresHalfOpenRange(t *testing.T) {
	repo := NewProductionRepository(testutil.MustOpenTestDB(t))
	ctx := context.Background()
	seedBatches(t, repo, day(2024, 3, 1), day(2024, 3, 2), day(2024, 3, 3))

	from := day(2024, 3, 3)
	got, err := repo.List(ctx, ProductionFilter{Limit: 10, From: &from})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	to := day(2024, 3, 1)
	got, err = repo.List(ctx, ProductionFilter{Limit: 10, To: &to})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestProductionDelete(t *testing.T) {
	repo := NewProductionRepository(testutil.MustOpenTestDB(t))
	ctx := context.Background()
	ids := seedBatches(t, repo, day(2024, 3, 1))

	deleted, err := repo.Delete(ctx, ids[0])
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.GetByID(ctx, ids[0])
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	deleted, err = repo.Delete(ctx, ids[0])
	require.NoError(t, err)
	assert.False(t, deleted)
}
