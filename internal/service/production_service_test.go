package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"granja/internal/database/testutil"
	"granja/internal/model"
	"granja/internal/repository"
	"granja/pkg/apperror"
	"granja/pkg/patch"
)

func newProductionService(t *testing.T) ProductionService {
	t.Helper()
	db := testutil.MustOpenTestDB(t)
	require.NoError(t, db.Create(&model.Shed{ID: 1, FarmID: 1, Name: "Galpón Norte"}).Error)
	require.NoError(t, db.Create(&model.EggType{ID: 1, Color: "rojo", Size: "A"}).Error)
	return NewProductionService(repository.NewProductionRepository(db))
}

func quantity(n int) *int { return &n }

func TestProductionCreateAndGet(t *testing.T) {
	svc := newProductionService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, CreateProductionRequest{ShedID: 1, Quantity: quantity(240), Date: "2024-05-20", EggTypeID: 1})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 240, got.Quantity)
	assert.Equal(t, "2024-05-20", got.Date)
	require.NotNil(t, got.ShedName)
	assert.Equal(t, "Galpón Norte", *got.ShedName)
	require.NotNil(t, got.EggSize)
	assert.Equal(t, "A", *got.EggSize)

	_, err = svc.Create(ctx, CreateProductionRequest{ShedID: 1, Quantity: quantity(1), Date: "20-05-2024", EggTypeID: 1})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)

	_, err = svc.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestProductionUpdateDate(t *testing.T) {
	svc := newProductionService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, CreateProductionRequest{ShedID: 1, Quantity: quantity(10), Date: "2024-05-20", EggTypeID: 1})
	require.NoError(t, err)

	date := "2024-06-01"
	require.NoError(t, svc.Update(ctx, id, UpdateProductionRequest{Date: &date}, patch.Fields{"fecha": nil}))

	got, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", got.Date)
	assert.Equal(t, 10, got.Quantity)

	err = svc.Update(ctx, id, UpdateProductionRequest{}, patch.Fields{"fecha": nil})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestProductionListRange(t *testing.T) {
	svc := newProductionService(t)
	ctx := context.Background()

	for _, d := range []string{"2024-01-01", "2024-01-15", "2024-02-01"} {
		_, err := svc.Create(ctx, CreateProductionRequest{ShedID: 1, Quantity: quantity(5), Date: d, EggTypeID: 1})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, ListProductionRequest{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	january, err := svc.List(ctx, ListProductionRequest{Limit: 10, From: "2024-01-01", To: "2024-01-31"})
	require.NoError(t, err)
	assert.Len(t, january, 2)

	_, err = svc.List(ctx, ListProductionRequest{Limit: 10, From: "2024-02-01", To: "2024-01-01"})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)

	_, err = svc.List(ctx, ListProductionRequest{Limit: 10, From: "ayer", To: "2024-01-01"})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestProductionDeleteMissing(t *testing.T) {
	svc := newProductionService(t)
	err := svc.Delete(context.Background(), 9999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
