package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gatormarket/internal/auth"
	"gatormarket/internal/config"
	"gatormarket/internal/mailer"
	"gatormarket/internal/models"
	"gatormarket/internal/repository"
	"gatormarket/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recordingMailer captures outgoing mail and can be told to fail.
type recordingMailer struct {
	mu   sync.Mutex
	sent []mailer.Email
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg mailer.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type testEnv struct {
	db           *gorm.DB
	cfg          *config.Config
	mail         *recordingMailer
	tokens       *auth.TokenManager
	users        repository.UserRepository
	products     repository.ProductRepository
	reviews      repository.ReviewRepository
	verification *VerificationService
	auth         *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewTestDB(t)
	cfg := &config.Config{
		AllowedEmailDomain: "sfsu.edu",
		FrontendOrigin:     "http://localhost:5173",
		ImageUploadDir:     t.TempDir(),
	}
	env := &testEnv{
		db:       db,
		cfg:      cfg,
		mail:     &recordingMailer{},
		tokens:   auth.NewTokenManager("test-secret-test-secret-test-secret", "gatormarket", "gatormarket-web"),
		users:    repository.NewUserRepository(db),
		products: repository.NewProductRepository(db),
		reviews:  repository.NewReviewRepository(db),
	}
	env.verification = NewVerificationService(db, env.users, env.mail, cfg)
	env.auth = NewAuthService(env.users, env.reviews, env.tokens, env.verification, cfg)
	env.auth.bcryptCost = 4
	t.Cleanup(env.verification.Wait)
	return env
}

func assertAppCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code, "message: %s", appErr.Message)
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
