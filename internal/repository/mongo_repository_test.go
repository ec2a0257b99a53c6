package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/walex4242/godheranca-storefront/internal/domain"
)

func setupTestDB(t *testing.T) *MongoRepository {
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	repo := NewMongoRepository(db)
	require.NoError(t, repo.CreateIndexes(ctx))

	return repo
}

func seedStore(t *testing.T, repo *MongoRepository, store domain.Store) {
	_, err := repo.collection.InsertOne(context.Background(), store)
	require.NoError(t, err)
}

func TestGetStore_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	store, err := repo.GetStore(context.Background(), "nonexistent")

	assert.ErrorIs(t, err, ErrStoreNotFound)
	assert.Nil(t, store)
}

func TestGetStore_ReturnsCatalog(t *testing.T) {
	repo := setupTestDB(t)
	seedStore(t, repo, domain.Store{
		ID:      "store-1",
		Name:    "Atacadão Central",
		Address: "Av. Brasil 100",
		Items: []domain.CatalogItem{
			{ID: "rice", Name: "Rice 5kg", Price: 19.99, Weight: 5, Unit: domain.UnitKilogram},
		},
	})

	store, err := repo.GetStore(context.Background(), "store-1")
	require.NoError(t, err)
	assert.Equal(t, "Atacadão Central", store.Name)
	require.Len(t, store.Items, 1)
	assert.Equal(t, "rice", store.Items[0].ID)
	assert.Nil(t, store.Coordinates)
}

func TestListStores_SortedByName(t *testing.T) {
	repo := setupTestDB(t)
	seedStore(t, repo, domain.Store{ID: "b", Name: "Bravo", Address: "b st"})
	seedStore(t, repo, domain.Store{ID: "a", Name: "Alpha", Address: "a st"})

	stores, err := repo.ListStores(context.Background())
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "Alpha", stores[0].Name)
	assert.Equal(t, "Bravo", stores[1].Name)
}

func TestSaveCoordinates_PersistsLazyResolution(t *testing.T) {
	repo := setupTestDB(t)
	seedStore(t, repo, domain.Store{ID: "store-1", Name: "Atacadão", Address: "Av. Brasil 100"})

	point := domain.GeoPoint{Latitude: -30.03, Longitude: -51.21}
	require.NoError(t, repo.SaveCoordinates(context.Background(), "store-1", point))

	store, err := repo.GetStore(context.Background(), "store-1")
	require.NoError(t, err)
	require.NotNil(t, store.Coordinates)
	assert.Equal(t, point, *store.Coordinates)
}

func TestSaveCoordinates_UnknownStore(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.SaveCoordinates(context.Background(), "ghost", domain.GeoPoint{})
	assert.ErrorIs(t, err, ErrStoreNotFound)
}
