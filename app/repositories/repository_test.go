package repositories

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/kalaghar/app/models"
	"github.com/shashiranjanraj/kalaghar/pkg/database"
)

// backends returns every store the contract runs against. MongoDB joins
// when MONGO_TEST_URI points at a reachable server.
func backends(t *testing.T) map[string]*Store {
	t.Helper()

	db, err := database.OpenSQL("sqlite", "file::memory:")
	require.NoError(t, err)
	sqlStore := NewSQLStore(db)
	require.NoError(t, sqlStore.Migrate(context.Background()))
	t.Cleanup(func() { _ = sqlStore.Close(context.Background()) })

	out := map[string]*Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlStore,
	}
	if s := mongoBackend(t); s != nil {
		out["mongo"] = s
	}
	return out
}

// mongoBackend opens a throwaway database per test and drops it afterwards.
func mongoBackend(t *testing.T) *Store {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		return nil
	}

	ctx := context.Background()
	client, err := database.ConnectMongo(ctx, uri)
	require.NoError(t, err)

	name := "kalaghar_test_" + strings.NewReplacer("/", "_", " ", "_").Replace(strings.ToLower(t.Name()))
	if len(name) > 60 {
		name = name[:60]
	}
	db := client.Database(name)
	require.NoError(t, db.Drop(ctx))

	s := NewMongoStore(client, db)
	require.NoError(t, s.Migrate(ctx))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = s.Close(context.Background())
	})
	return s
}

func eachBackend(t *testing.T, fn func(t *testing.T, s *Store)) {
	for name, s := range backends(t) {
		s := s
		t.Run(name, func(t *testing.T) { fn(t, s) })
	}
}

func TestUserCreateAssignsIDAndRejectsDuplicateLogin(t *testing.T) {
	eachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()

		u := models.NewUser("aanya", "a@kalaghar.in", models.RoleArtist, "hash")
		require.NoError(t, s.Users.Create(ctx, u))
		assert.NotEmpty(t, u.ID)
		assert.False(t, u.CreatedAt.IsZero())

		dup := models.NewUser("aanya", "other@kalaghar.in", models.RoleArtist, "hash")
		assert.ErrorIs(t, s.Users.Create(ctx, dup), ErrDuplicate)

		// same name under another role is a different account
		visitor := models.NewUser("aanya", "a@kalaghar.in", models.RoleVisitor, "hash")
		require.NoError(t, s.Users.Create(ctx, visitor))
	})
}

func TestUserFindByLogin(t *testing.T) {
	eachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		u := models.NewUser("rehan", "", models.RoleArtist, "hash")
		require.NoError(t, s.Users.Create(ctx, u))

		got, err := s.Users.FindByLogin(ctx, "rehan", models.RoleArtist)
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, models.DefaultNotifications(), got.Notifications)
		assert.Equal(t, models.DefaultPrivacy(), got.Privacy)

		_, err = s.Users.FindByLogin(ctx, "rehan", models.RoleAdmin)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserUpdateMergesPatch(t *testing.T) {
	eachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		u := models.NewUser("meera", "m@kalaghar.in", models.RoleArtist, "hash")
		u.Bio = "Watercolours"
		require.NoError(t, s.Users.Create(ctx, u))

		photo := "https://cdn.kalaghar.in/meera.jpg"
		visibility := models.VisibilityCollectors
		got, err := s.Users.UpdateByID(ctx, u.ID, models.UserPatch{
			Photo:   &photo,
			Privacy: &models.PrivacyPatch{ProfileVisibility: &visibility},
			Payout:  &models.Payout{Method: "upi", Details: models.PayoutDetails{UPIID: "meera@okhdfc"}},
		})
		require.NoError(t, err)

		assert.Equal(t, photo, got.Photo)
		assert.Equal(t, "Watercolours", got.Bio)
		assert.Equal(t, "m@kalaghar.in", got.Email)
		assert.Equal(t, models.Privacy{ProfileVisibility: "collectors", ShowSoldPrices: true}, got.Privacy)
		assert.Equal(t, models.PayoutUPI, got.PayoutMethod)
		require.NotNil(t, got.PayoutDetails)
		assert.Equal(t, "meera@okhdfc", got.PayoutDetails.UPIID)

		again, err := s.Users.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, got.Photo, again.Photo)
		assert.Equal(t, got.PayoutDetails, again.PayoutDetails)
	})
}

func TestUserUpdateUnknownAndDuplicate(t *testing.T) {
	eachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		name := "x"
		_, err := s.Users.UpdateByID(ctx, "does-not-exist", models.UserPatch{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)

		a := models.NewUser("a", "", models.RoleVisitor, "hash")
		b := models.NewUser("b", "", models.RoleVisitor, "hash")
		require.NoError(t, s.Users.Create(ctx, a))
		require.NoError(t, s.Users.Create(ctx, b))

		taken := "a"
		_, err = s.Users.UpdateByID(ctx, b.ID, models.UserPatch{Name: &taken})
		assert.ErrorIs(t, err, ErrDuplicate)
	})
}

func TestUserRoleUpdateIsIdempotent(t *testing.T) {
	eachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		u := models.NewUser("kabir", "", models.RoleVisitor, "hash")
		require.NoError(t, s.Users.Create(ctx, u))

		admin := models.RoleAdmin
		first, err := s.Users.UpdateByID(ctx, u.ID, models.UserPatch{Role: &admin})
		require.NoError(t, err)
		second, err := s.Users.UpdateByID(ctx, u.ID, models.UserPatch{Role: &admin})
		require.NoError(t, err)

		assert.Equal(t, models.RoleAdmin, first.Role)
		assert.Equal(t, first.Role, second.Role)
		assert.Equal(t, first.Name, second.Name)
	})
}

func TestDeleteIsIdempotent(t *testing.T) {
	eachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		u := models.NewUser("gone", "", models.RoleVisitor, "hash")
		require.NoError(t, s.Users.Create(ctx, u))

		require.NoError(t, s.Users.DeleteByID(ctx, u.ID))
		require.NoError(t, s.Users.DeleteByID(ctx, u.ID))
		require.NoError(t, s.Users.DeleteByID(ctx, "never-existed"))

		_, err := s.Users.FindByID(ctx, u.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUsersAllKeepsInsertionOrder(t *testing.T) {
	eachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		for _, n := range []string{"one", "two", "three"} {
			require.NoError(t, s.Users.Create(ctx, models.NewUser(n, "", models.RoleVisitor, "hash")))
		}
		all, err := s.Users.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"one", "two", "three"}, []string{all[0].Name, all[1].Name, all[2].Name})
	})
}

func TestArtworks(t *testing.T) {
	eachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		a := &models.Artwork{Title: "Heaven's Watchtower", Artist: "Aanya Singh", Price: 12500, Image: "/storage/h1.jpg"}
		require.NoError(t, s.Artworks.Create(ctx, a))
		require.NotEmpty(t, a.ID)

		got, err := s.Artworks.FindByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(12500), got.Price)

		all, err := s.Artworks.All(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)

		require.NoError(t, s.Artworks.DeleteByID(ctx, a.ID))
		_, err = s.Artworks.FindByID(ctx, a.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestOrdersListedNewestFirst(t *testing.T) {
	eachBackend(t, func(t *testing.T, s *Store) {
		ctx := context.Background()
		var ids []string
		for i, title := range []string{"t1", "t2", "t3"} {
			o := &models.Order{ArtworkID: "a", ArtworkTitle: title, BuyerName: "b", Amount: int64(100 * (i + 1))}
			require.NoError(t, s.Orders.Create(ctx, o))
			ids = append(ids, o.ID)
		}

		all, err := s.Orders.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{all[0].ID, all[1].ID, all[2].ID})
		assert.True(t, all[0].CreatedAt.After(all[1].CreatedAt))
		assert.True(t, all[1].CreatedAt.After(all[2].CreatedAt))
	})
}

func TestStampIsStrictlyIncreasing(t *testing.T) {
	prev := stamp()
	for i := 0; i < 100; i++ {
		next := stamp()
		require.True(t, next.After(prev))
		prev = next
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := models.NewUser("copy", "", models.RoleVisitor, "hash")
	require.NoError(t, s.Users.Create(ctx, u))

	got, err := s.Users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	got.Name = "mutated"

	again, _ := s.Users.FindByID(ctx, u.ID)
	assert.Equal(t, "copy", again.Name)
}

func TestObjectIDRejectsMalformed(t *testing.T) {
	_, ok := objectID("not-hex")
	assert.False(t, ok)
	_, ok = objectID("64b7f0c2a1b2c3d4e5f60718")
	assert.True(t, ok)
}

func TestUserSetBuildsDottedPaths(t *testing.T) {
	sms := true
	set := userSet(models.UserPatch{Notifications: &models.NotificationsPatch{SMS: &sms}}, stamp())

	keys := make([]string, 0, len(set))
	for _, e := range set {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"updatedAt", "notifications.sms"}, keys)
}
