// Package seed loads reference data and generates demo content for
// development databases.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"math/rand"
	"time"

	"gatormarket/internal/middleware"
	"gatormarket/internal/models"
	"gatormarket/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DemoPassword is the password of every generated demo account.
const DemoPassword = "Gator2024!"

//go:embed categories.yml
var categoriesYAML []byte

type categoryFile struct {
	Categories []string `yaml:"categories"`
}

// CategoryNames returns the built-in category list.
func CategoryNames() ([]string, error) {
	var f categoryFile
	if err := yaml.Unmarshal(categoriesYAML, &f); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}
	return f.Categories, nil
}

// Categories inserts any built-in category that is missing.
func Categories(db *gorm.DB) error {
	names, err := CategoryNames()
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&models.Category{Name: name}).Error; err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}
	return nil
}

// Options controls demo data volume.
type Options struct {
	Users           int
	ProductsPerUser int
	Clean           bool
}

// Seeder writes demo users, listings, reviews and conversations.
type Seeder struct {
	db     *gorm.DB
	images service.ImageStore
	rng    *rand.Rand
	faker  *gofakeit.Faker
}

// NewSeeder returns a Seeder that stores generated listing images in images.
func NewSeeder(db *gorm.DB, images service.ImageStore, seed int64) *Seeder {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Seeder{
		db:     db,
		images: images,
		rng:    rand.New(rand.NewSource(seed)),
		faker:  gofakeit.New(seed),
	}
}

// Clear removes all marketplace content except categories.
func (s *Seeder) Clear() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&models.AdminAction{},
			&models.Message{},
			&models.ConversationParticipant{},
			&models.Conversation{},
			&models.WishlistEntry{},
			&models.ListingReport{},
			&models.UserReport{},
			&models.Review{},
			&models.ProductImage{},
			&models.Product{},
			&models.User{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Run seeds categories and then demo content.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	if opts.Clean {
		if err := s.Clear(); err != nil {
			return fmt.Errorf("clear data: %w", err)
		}
	}
	if err := Categories(s.db); err != nil {
		return err
	}

	var categories []models.Category
	if err := s.db.Find(&categories).Error; err != nil {
		return err
	}

	users, err := s.createUsers(opts.Users)
	if err != nil {
		return fmt.Errorf("create users: %w", err)
	}
	products, err := s.createProducts(ctx, users, categories, opts.ProductsPerUser)
	if err != nil {
		return fmt.Errorf("create products: %w", err)
	}
	if err := s.createActivity(users, products); err != nil {
		return fmt.Errorf("create activity: %w", err)
	}

	middleware.Logger.Info("demo data seeded",
		slog.Int("users", len(users)),
		slog.Int("products", len(products)),
	)
	return nil
}

func (s *Seeder) createUsers(n int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		first := s.faker.FirstName()
		username := fmt.Sprintf("gator_%d_%d", i+1, s.rng.Intn(1000))
		users = append(users, models.User{
			Username:           username,
			Email:              username + "@sfsu.edu",
			Password:           string(hash),
			FirstName:          first,
			LastName:           s.faker.LastName(),
			Role:               models.RoleUser,
			AccountStatus:      models.AccountActive,
			VerificationStatus: models.VerificationVerified,
		})
	}
	if len(users) == 0 {
		return users, nil
	}
	if err := s.db.CreateInBatches(&users, 100).Error; err != nil {
		return nil, err
	}
	return users, nil
}

var conditions = []string{"new", "like new", "good", "fair"}

func (s *Seeder) createProducts(ctx context.Context, users []models.User, categories []models.Category, perUser int) ([]models.Product, error) {
	var products []models.Product
	for _, u := range users {
		for i := 0; i < perUser; i++ {
			url, err := s.demoImage(ctx)
			if err != nil {
				return nil, err
			}
			p := models.Product{
				UserID:         u.ID,
				Name:           s.faker.ProductName(),
				Description:    s.faker.ProductDescription(),
				Price:          float64(s.rng.Intn(20000)) / 100,
				Condition:      conditions[s.rng.Intn(len(conditions))],
				ApprovalStatus: models.ApprovalApproved,
				Status:         models.ProductActive,
				Images:         []models.ProductImage{{ImageURL: url}},
			}
			if len(categories) > 0 {
				p.CategoryID = &categories[s.rng.Intn(len(categories))].ID
			}
			switch s.rng.Intn(10) {
			case 0:
				p.ApprovalStatus = models.ApprovalPending
			case 1:
				p.Status = models.ProductSold
			}
			products = append(products, p)
		}
	}
	if len(products) == 0 {
		return products, nil
	}
	if err := s.db.CreateInBatches(&products, 100).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// createActivity adds reviews, wishlist entries and one conversation per product.
func (s *Seeder) createActivity(users []models.User, products []models.Product) error {
	if len(users) < 2 {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range products {
			if p.ApprovalStatus != models.ApprovalApproved {
				continue
			}
			buyer := users[s.rng.Intn(len(users))]
			if buyer.ID == p.UserID {
				continue
			}

			if err := tx.Create(&models.Review{
				SellerID:   p.UserID,
				ReviewerID: buyer.ID,
				Rating:     1 + s.rng.Intn(models.MaxRating),
				Comment:    s.faker.Sentence(10),
			}).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.WishlistEntry{UserID: buyer.ID, ProductID: p.ID}).Error; err != nil {
				return err
			}

			now := time.Now().UTC()
			conv := models.Conversation{
				ProductID:     p.ID,
				Subject:       p.Name,
				Status:        models.ConversationActive,
				LastUpdatedAt: now,
				Participants: []models.ConversationParticipant{
					{UserID: buyer.ID, Role: models.ParticipantBuyer},
					{UserID: p.UserID, Role: models.ParticipantSeller},
				},
				Messages: []models.Message{
					{SenderID: buyer.ID, Body: "Hi! Is this still available?", SentAt: now},
				},
			}
			if err := tx.Create(&conv).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Seeder) demoImage(ctx context.Context) (string, error) {
	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	fill := color.RGBA{R: uint8(s.rng.Intn(256)), G: uint8(s.rng.Intn(256)), B: uint8(s.rng.Intn(256)), A: 255}
	for y := 0; y < 240; y++ {
		for x := 0; x < 320; x++ {
			img.Set(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return s.images.Save(ctx, s.faker.UUID()+"_demo.png", buf.Bytes())
}
