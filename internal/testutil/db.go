// Package testutil provides shared test databases and fixtures for package tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gatormarket/internal/database"
	"gatormarket/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// FixturePassword is the plain-text password of every fixture user.
const FixturePassword = "Passw0rd!"

var (
	fixtureSeq  atomic.Uint64
	fixtureHash []byte
)

func init() {
	hash, err := bcrypt.GenerateFromPassword([]byte(FixturePassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	fixtureHash = hash
}

// NewTestDB opens a private in-memory SQLite database with the full schema.
// The pool is pinned to one connection so every query sees the same memory
// database; code under test must run all statements of a transaction on tx.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

// CreateUser inserts an active, verified user. Mutators run before insert.
func CreateUser(t testing.TB, db *gorm.DB, mutators ...func(*models.User)) *models.User {
	t.Helper()

	n := fixtureSeq.Add(1)
	username := fmt.Sprintf("user_%d", n)
	user := &models.User{
		Username:           username,
		Email:              username + "@sfsu.edu",
		Password:           string(fixtureHash),
		FirstName:          gofakeit.FirstName(),
		LastName:           gofakeit.LastName(),
		Role:               models.RoleUser,
		AccountStatus:      models.AccountActive,
		VerificationStatus: models.VerificationVerified,
	}
	for _, m := range mutators {
		m(user)
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateProduct inserts an approved, active listing with one image.
func CreateProduct(t testing.TB, db *gorm.DB, sellerID uint, mutators ...func(*models.Product)) *models.Product {
	t.Helper()

	n := fixtureSeq.Add(1)
	product := &models.Product{
		UserID:         sellerID,
		Name:           gofakeit.ProductName(),
		Description:    gofakeit.Sentence(8),
		Price:          float64(10 + n%90),
		Condition:      "good",
		ApprovalStatus: models.ApprovalApproved,
		Status:         models.ProductActive,
		Images: []models.ProductImage{
			{ImageURL: fmt.Sprintf("/api/products/images/fixture_%d.jpg", n), Position: 0},
		},
	}
	for _, m := range mutators {
		m(product)
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

// CreateCategory inserts a category with the given name.
func CreateCategory(t testing.TB, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}
