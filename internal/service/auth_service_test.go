package service

import (
	"context"
	"errors"
	"testing"

	"gatormarket/internal/auth"
	"gatormarket/internal/models"
	"gatormarket/internal/testutil"
	"gatormarket/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegistration() validation.Registration {
	return validation.Registration{
		Username:  "gator_fan",
		Email:     "Gator.Fan@SFSU.edu",
		Password:  testutil.FixturePassword,
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("creates unverified account and mails links", func(t *testing.T) {
		env := newTestEnv(t)
		ctx := context.Background()

		res, err := env.auth.Register(ctx, validRegistration())
		require.NoError(t, err)
		assert.Empty(t, res.Warning)
		assert.Equal(t, "gator.fan@sfsu.edu", res.User.Email)

		stored, err := env.users.GetByID(ctx, res.User.ID)
		require.NoError(t, err)
		assert.Equal(t, models.VerificationUnverified, stored.VerificationStatus)
		assert.Equal(t, models.AccountActive, stored.AccountStatus)
		require.NotNil(t, stored.VerificationToken)
		require.NotNil(t, stored.TokenCreatedAt)
		assert.NotEqual(t, testutil.FixturePassword, stored.Password)

		require.Equal(t, 1, env.mail.count())
		msg := env.mail.sent[0]
		assert.Equal(t, "gator.fan@sfsu.edu", msg.To)
		assert.Contains(t, msg.Text, "token="+*stored.VerificationToken)
	})

	t.Run("field errors", func(t *testing.T) {
		env := newTestEnv(t)
		in := validRegistration()
		in.Email = "someone@gmail.com"
		in.Password = "short"

		_, err := env.auth.Register(context.Background(), in)
		var fields FieldErrors
		require.True(t, errors.As(err, &fields))
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "password")
		assert.Zero(t, env.mail.count())
	})

	t.Run("duplicate username and email", func(t *testing.T) {
		env := newTestEnv(t)
		existing := testutil.CreateUser(t, env.db)

		in := validRegistration()
		in.Username = existing.Username
		_, err := env.auth.Register(context.Background(), in)
		assertAppCode(t, err, models.CodeConflict)

		in = validRegistration()
		in.Email = existing.Email
		_, err = env.auth.Register(context.Background(), in)
		assertAppCode(t, err, models.CodeConflict)
	})

	t.Run("mail failure degrades to warning", func(t *testing.T) {
		env := newTestEnv(t)
		env.mail.err = errors.New("smtp down")

		res, err := env.auth.Register(context.Background(), validRegistration())
		require.NoError(t, err)
		assert.Equal(t, mailWarning, res.Warning)
		assert.NotZero(t, res.User.ID)
	})
}

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	verified := testutil.CreateUser(t, env.db)
	unverified := testutil.CreateUser(t, env.db, func(u *models.User) {
		u.VerificationStatus = models.VerificationUnverified
	})
	banned := testutil.CreateUser(t, env.db, func(u *models.User) {
		u.AccountStatus = models.AccountBanned
	})

	tests := []struct {
		name     string
		username string
		password string
		code     string
	}{
		{"missing fields", "", "", models.CodeValidation},
		{"unknown user", "nobody_here", testutil.FixturePassword, models.CodeUnauthorized},
		{"wrong password", verified.Username, "Wrong0ne!", models.CodeUnauthorized},
		{"unverified", unverified.Username, testutil.FixturePassword, auth.CodeEmailNotVerified},
		{"inactive", banned.Username, testutil.FixturePassword, auth.CodeAccountInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Login(ctx, tt.username, tt.password)
			assertAppCode(t, err, tt.code)
		})
	}

	t.Run("success", func(t *testing.T) {
		res, err := env.auth.Login(ctx, verified.Username, testutil.FixturePassword)
		require.NoError(t, err)
		assert.True(t, res.ExpiresAt.After(res.User.DateJoined))

		claims, err := env.tokens.Validate(res.Token)
		require.NoError(t, err)
		id, err := claims.UserID()
		require.NoError(t, err)
		assert.Equal(t, verified.ID, id)

		stored, err := env.users.GetByID(ctx, verified.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored.LastLogin)
	})
}

func TestAuthService_TokenForVerifiedEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.TokenForVerifiedEmail(ctx, "ghost@sfsu.edu")
	assertAppCode(t, err, models.CodeNotFound)

	pending := testutil.CreateUser(t, env.db, func(u *models.User) {
		u.VerificationStatus = models.VerificationUnverified
	})
	_, err = env.auth.TokenForVerifiedEmail(ctx, pending.Email)
	assertAppCode(t, err, models.CodeForbidden)

	verified := testutil.CreateUser(t, env.db)
	res, err := env.auth.TokenForVerifiedEmail(ctx, verified.Email)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestAuthService_PublicProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seller := testutil.CreateUser(t, env.db)
	buyer := testutil.CreateUser(t, env.db)
	require.NoError(t, env.reviews.Create(ctx, &models.Review{SellerID: seller.ID, ReviewerID: buyer.ID, Rating: 4}))

	user, rating, err := env.auth.PublicProfile(ctx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, seller.Username, user.Username)
	require.NotNil(t, rating.Average)
	assert.InDelta(t, 4.0, *rating.Average, 0.001)
	assert.EqualValues(t, 1, rating.Count)

	gone := testutil.CreateUser(t, env.db, func(u *models.User) { u.AccountStatus = models.AccountDeleted })
	_, _, err = env.auth.PublicProfile(ctx, gone.ID)
	assertAppCode(t, err, models.CodeNotFound)
}
