package bootstrap

import (
	"context"
	"fmt"
	"testing"

	"gatormarket/internal/config"
	"gatormarket/internal/models"
	"gatormarket/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDevRootAdmin(t *testing.T) {
	db := testutil.NewTestDB(t)

	t.Run("skipped outside development", func(t *testing.T) {
		cfg := &config.Config{Env: "production", DevBootstrapRoot: true, DevRootPassword: "x"}
		require.NoError(t, ensureDevRootAdmin(cfg, db))
		var n int64
		require.NoError(t, db.Model(&models.User{}).Count(&n).Error)
		assert.Zero(t, n)
	})

	t.Run("requires password", func(t *testing.T) {
		cfg := &config.Config{Env: "development", DevBootstrapRoot: true}
		assert.Error(t, ensureDevRootAdmin(cfg, db))
	})

	t.Run("creates then promotes", func(t *testing.T) {
		cfg := &config.Config{
			Env:                "development",
			DevBootstrapRoot:   true,
			DevRootPassword:    "Sup3rSecret!",
			AllowedEmailDomain: "sfsu.edu",
		}
		require.NoError(t, ensureDevRootAdmin(cfg, db))

		var root models.User
		require.NoError(t, db.Where("username = ?", "gator_root").First(&root).Error)
		assert.True(t, root.IsAdmin())
		assert.True(t, root.IsVerified())
		assert.Equal(t, "root@sfsu.edu", root.Email)

		require.NoError(t, db.Model(&root).Update("role", models.RoleUser).Error)
		require.NoError(t, ensureDevRootAdmin(cfg, db))
		require.NoError(t, db.First(&root, root.ID).Error)
		assert.True(t, root.IsAdmin())
	})
}

func TestPrepareSeedsCategoriesAndMigratesBookmarks(t *testing.T) {
	db := testutil.NewTestDB(t)
	seller := testutil.CreateUser(t, db)
	product := testutil.CreateProduct(t, db, seller.ID)
	reader := testutil.CreateUser(t, db, func(u *models.User) {
		u.LegacyBookmarks = fmt.Sprintf("[%d]", product.ID)
	})

	require.NoError(t, Prepare(context.Background(), &config.Config{}, db, Options{SeedCategories: true}))

	var categories int64
	require.NoError(t, db.Model(&models.Category{}).Count(&categories).Error)
	assert.Positive(t, categories)

	var entries int64
	require.NoError(t, db.Model(&models.WishlistEntry{}).Where("user_id = ?", reader.ID).Count(&entries).Error)
	assert.EqualValues(t, 1, entries)
}
