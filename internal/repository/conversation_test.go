package repository

import (
	"context"
	"testing"
	"time"

	"gatormarket/internal/models"
	"gatormarket/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type convFixture struct {
	buyer, seller *models.User
	product       *models.Product
	conv          *models.Conversation
}

func newConvFixture(t *testing.T, db *gorm.DB) convFixture {
	t.Helper()
	buyer := testutil.CreateUser(t, db)
	seller := testutil.CreateUser(t, db)
	product := testutil.CreateProduct(t, db, seller.ID)

	conv := &models.Conversation{
		ProductID:     product.ID,
		Subject:       "Desk lamp",
		Status:        models.ConversationActive,
		LastUpdatedAt: time.Now().UTC(),
		Participants: []models.ConversationParticipant{
			{UserID: buyer.ID, Role: models.ParticipantBuyer},
			{UserID: seller.ID, Role: models.ParticipantSeller},
		},
	}
	require.NoError(t, NewConversationRepository(db).Create(context.Background(), conv))
	return convFixture{buyer: buyer, seller: seller, product: product, conv: conv}
}

func TestConversationRepository_FindActiveBetween(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()
	f := newConvFixture(t, db)

	found, err := repo.FindActiveBetween(ctx, f.product.ID, f.buyer.ID, f.seller.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, f.conv.ID, found.ID)

	found, err = repo.FindActiveBetween(ctx, f.product.ID, f.seller.ID, f.buyer.ID)
	require.NoError(t, err)
	require.NotNil(t, found, "participant order must not matter")

	stranger := testutil.CreateUser(t, db)
	found, err = repo.FindActiveBetween(ctx, f.product.ID, stranger.ID, f.seller.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	require.NoError(t, db.Model(&models.Conversation{}).Where("id = ?", f.conv.ID).
		Update("status", models.ConversationClosed).Error)
	found, err = repo.FindActiveBetween(ctx, f.product.ID, f.buyer.ID, f.seller.ID)
	require.NoError(t, err)
	assert.Nil(t, found, "closed conversations are not reused")
}

func TestConversationRepository_FindActiveBetweenRequiresExactPair(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewConversationRepository(db)
	f := newConvFixture(t, db)

	extra := testutil.CreateUser(t, db)
	require.NoError(t, db.Create(&models.ConversationParticipant{
		ConversationID: f.conv.ID, UserID: extra.ID, Role: models.ParticipantBuyer,
	}).Error)

	found, err := repo.FindActiveBetween(context.Background(), f.product.ID, f.buyer.ID, f.seller.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestConversationRepository_UnreadIsPerParticipant(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()
	f := newConvFixture(t, db)

	base := time.Now().UTC().Add(-time.Hour)
	send := func(sender uint, body string, at time.Time) {
		require.NoError(t, repo.AddMessage(ctx, &models.Message{
			ConversationID: f.conv.ID, SenderID: sender, Body: body, SentAt: at,
		}))
	}
	send(f.buyer.ID, "Is this still available?", base)
	send(f.seller.ID, "Yes", base.Add(time.Minute))
	send(f.seller.ID, "Want to meet at the library?", base.Add(2*time.Minute))

	buyerUnread, err := repo.UnreadCount(ctx, f.conv.ID, f.buyer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, buyerUnread)

	sellerUnread, err := repo.UnreadCount(ctx, f.conv.ID, f.seller.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, sellerUnread)

	require.NoError(t, repo.MarkRead(ctx, f.conv.ID, f.buyer.ID, base.Add(90*time.Second)))

	buyerUnread, err = repo.UnreadCount(ctx, f.conv.ID, f.buyer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, buyerUnread)

	sellerUnread, err = repo.UnreadCount(ctx, f.conv.ID, f.seller.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, sellerUnread, "reading as buyer must not touch the seller's marker")

	stats, err := repo.Stats(ctx, f.buyer.ID, []uint{f.conv.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats[f.conv.ID].MessageCount)
	assert.EqualValues(t, 1, stats[f.conv.ID].UnreadCount)

	total, err := repo.TotalUnread(ctx, f.seller.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	last, err := repo.LastMessages(ctx, []uint{f.conv.ID})
	require.NoError(t, err)
	assert.Equal(t, "Want to meet at the library?", last[f.conv.ID].Body)

	var conv models.Conversation
	require.NoError(t, db.First(&conv, f.conv.ID).Error)
	assert.WithinDuration(t, base.Add(2*time.Minute), conv.LastUpdatedAt, time.Second)
}

func TestConversationRepository_MarkReadIsScopedToOneConversation(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()
	f := newConvFixture(t, db)

	other := testutil.CreateUser(t, db)
	second := &models.Conversation{
		ProductID:     f.product.ID,
		Subject:       "Desk lamp, second buyer",
		Status:        models.ConversationActive,
		LastUpdatedAt: time.Now().UTC(),
		Participants: []models.ConversationParticipant{
			{UserID: other.ID, Role: models.ParticipantBuyer},
			{UserID: f.seller.ID, Role: models.ParticipantSeller},
		},
	}
	require.NoError(t, repo.Create(ctx, second))

	base := time.Now().UTC().Add(-time.Hour)
	for i, msg := range []*models.Message{
		{ConversationID: f.conv.ID, SenderID: f.buyer.ID, Body: "Is it dimmable?", SentAt: base},
		{ConversationID: second.ID, SenderID: other.ID, Body: "Would you take $10?", SentAt: base.Add(time.Minute)},
		{ConversationID: second.ID, SenderID: other.ID, Body: "Or $12?", SentAt: base.Add(2 * time.Minute)},
	} {
		require.NoError(t, repo.AddMessage(ctx, msg), i)
	}

	total, err := repo.TotalUnread(ctx, f.seller.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	require.NoError(t, repo.MarkRead(ctx, f.conv.ID, f.seller.ID, base.Add(time.Hour)))

	n, err := repo.UnreadCount(ctx, f.conv.ID, f.seller.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.UnreadCount(ctx, second.ID, f.seller.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	total, err = repo.TotalUnread(ctx, f.seller.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestConversationRepository_ListMessagesOrdered(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()
	f := newConvFixture(t, db)

	base := time.Now().UTC()
	require.NoError(t, repo.AddMessage(ctx, &models.Message{ConversationID: f.conv.ID, SenderID: f.seller.ID, Body: "second", SentAt: base.Add(time.Second)}))
	require.NoError(t, repo.AddMessage(ctx, &models.Message{ConversationID: f.conv.ID, SenderID: f.buyer.ID, Body: "first", SentAt: base}))

	msgs, err := repo.ListMessages(ctx, f.conv.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "first", msgs[0].Body)
	assert.Equal(t, "second", msgs[1].Body)
	require.NotNil(t, msgs[0].Sender)
	assert.Equal(t, f.buyer.Username, msgs[0].Sender.Username)
}

func TestConversationRepository_MarkReadRequiresMembership(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewConversationRepository(db)
	f := newConvFixture(t, db)
	stranger := testutil.CreateUser(t, db)

	err := repo.MarkRead(context.Background(), f.conv.ID, stranger.ID, time.Now().UTC())
	assert.Equal(t, models.CodeForbidden, models.ErrorCode(err))

	ok, err := repo.IsParticipant(context.Background(), f.conv.ID, stranger.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConversationRepository_ListForUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()
	f := newConvFixture(t, db)

	later := &models.Conversation{
		ProductID:     testutil.CreateProduct(t, db, f.seller.ID).ID,
		Subject:       "Bike",
		Status:        models.ConversationActive,
		LastUpdatedAt: time.Now().UTC().Add(time.Hour),
		Participants: []models.ConversationParticipant{
			{UserID: f.buyer.ID, Role: models.ParticipantBuyer},
			{UserID: f.seller.ID, Role: models.ParticipantSeller},
		},
	}
	require.NoError(t, repo.Create(ctx, later))

	convs, err := repo.ListForUser(ctx, f.buyer.ID)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, later.ID, convs[0].ID)
	assert.Len(t, convs[0].Participants, 2)
	require.NotNil(t, convs[0].Product)

	stranger := testutil.CreateUser(t, db)
	convs, err = repo.ListForUser(ctx, stranger.ID)
	require.NoError(t, err)
	assert.Empty(t, convs)
}
