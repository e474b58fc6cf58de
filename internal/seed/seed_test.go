package seed

import (
	"context"
	"testing"

	"gatormarket/internal/models"
	"gatormarket/internal/service"
	"gatormarket/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)

	names, err := CategoryNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Contains(t, names, "Books")

	require.NoError(t, Categories(db))
	require.NoError(t, Categories(db))

	var n int64
	require.NoError(t, db.Model(&models.Category{}).Count(&n).Error)
	assert.EqualValues(t, len(names), n)
}

func TestSeederRun(t *testing.T) {
	db := testutil.NewTestDB(t)
	dir := t.TempDir()
	s := NewSeeder(db, service.NewDiskImageStore(dir), 42)

	require.NoError(t, s.Run(context.Background(), Options{Users: 4, ProductsPerUser: 2}))

	var users, products, images int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&models.ProductImage{}).Count(&images).Error)
	assert.EqualValues(t, 4, users)
	assert.EqualValues(t, 8, products)
	assert.EqualValues(t, 8, images)

	var img models.ProductImage
	require.NoError(t, db.First(&img).Error)
	_, err := service.NewDiskImageStore(dir).Path(img.ImageURL[len(service.ImageURLPrefix):])
	assert.NoError(t, err)

	require.NoError(t, s.Run(context.Background(), Options{Users: 1, ProductsPerUser: 1, Clean: true}))
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.EqualValues(t, 1, users)
}
