package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type item struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	Order     int           `bson:"order"`
	Active    bool          `bson:"active"`
	Featured  bool          `bson:"featured"`
	Likes     int           `bson:"likes"`
	CreatedAt time.Time     `bson:"createdAt"`
}

func seed(t *testing.T, repo *MemoryRepository[item], items ...item) []item {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range items {
		items[i].ID = bson.NewObjectID()
		items[i].CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Insert(context.Background(), &items[i]))
	}
	return items
}

func TestMemoryFindFilterSortWindow(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository[item]()
	seed(t, repo,
		item{Name: "c", Order: 2, Active: true},
		item{Name: "a", Order: 0, Active: true},
		item{Name: "b", Order: 1, Active: false},
		item{Name: "d", Order: 0, Active: true},
	)

	all, err := repo.Find(ctx, Query{Sort: bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: -1}}})
	require.NoError(t, err)
	names := make([]string, 0, len(all))
	for _, it := range all {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"d", "a", "b", "c"}, names)

	active, err := repo.Find(ctx, Query{Filter: bson.M{"active": true}, Sort: bson.D{{Key: "order", Value: 1}}, Skip: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "d", active[0].Name)

	n, err := repo.Count(ctx, bson.M{"active": true})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestMemoryUpdateKeepsFalsyValues(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository[item]()
	items := seed(t, repo, item{Name: "a", Order: 5, Active: true})

	updated, err := repo.UpdateByID(ctx, items[0].ID, bson.M{"order": 0, "active": false, "name": ""})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Order)
	assert.False(t, updated.Active)
	assert.Equal(t, "", updated.Name)

	_, err = repo.UpdateByID(ctx, bson.NewObjectID(), bson.M{"order": 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryToggleWithImplied(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository[item]()
	items := seed(t, repo, item{Name: "a"})

	doc, err := repo.Toggle(ctx, items[0].ID, "featured", "active")
	require.NoError(t, err)
	assert.True(t, doc.Featured)
	assert.True(t, doc.Active)

	doc, err = repo.Toggle(ctx, items[0].ID, "featured", "active")
	require.NoError(t, err)
	assert.False(t, doc.Featured)
	assert.True(t, doc.Active, "un-featuring leaves the implied field alone")
}

func TestMemoryIncrement(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository[item]()
	items := seed(t, repo, item{Name: "a"})

	var doc *item
	var err error
	for i := 0; i < 3; i++ {
		doc, err = repo.Increment(ctx, items[0].ID, "likes", 1)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, doc.Likes)
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository[item]()
	items := seed(t, repo, item{Name: "a"})

	require.NoError(t, repo.DeleteByID(ctx, items[0].ID))
	assert.ErrorIs(t, repo.DeleteByID(ctx, items[0].ID), ErrNotFound)
	_, err := repo.FindByID(ctx, items[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryFindOneOrInsert(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository[item]()

	first, err := repo.FindOneOrInsert(ctx, bson.M{}, &item{Name: "defaults"})
	require.NoError(t, err)
	assert.False(t, first.ID.IsZero())

	second, err := repo.FindOneOrInsert(ctx, bson.M{}, &item{Name: "other"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "defaults", second.Name)

	n, _ := repo.Count(ctx, nil)
	assert.Equal(t, int64(1), n)
}

func TestMemoryUniqueFields(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository[item]("name")
	items := seed(t, repo, item{Name: "a"}, item{Name: "b"})

	err := repo.Insert(ctx, &item{ID: bson.NewObjectID(), Name: "a"})
	assert.True(t, errors.Is(err, ErrDuplicateKey))

	_, err = repo.UpdateByID(ctx, items[1].ID, bson.M{"name": "a"})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	_, err = repo.UpdateByID(ctx, items[1].ID, bson.M{"name": "b"})
	assert.NoError(t, err)
}
