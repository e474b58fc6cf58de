package server

import (
	"net/http"
	"testing"

	"gatormarket/internal/models"
	"gatormarket/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistSoldNotificationsAreConsumedOnce(t *testing.T) {
	ts := newTestServer(t)
	seller := testutil.CreateUser(t, ts.db)
	buyer := testutil.CreateUser(t, ts.db)
	product := testutil.CreateProduct(t, ts.db, seller.ID)
	buyerToken := ts.tokenFor(t, buyer)

	add := map[string]any{"product_id": product.ID}
	status, body := ts.do(t, http.MethodPost, "/api/wishlist/add", add, buyerToken)
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "Product added to wishlist", body["message"])

	status, body = ts.do(t, http.MethodPost, "/api/wishlist/add", add, buyerToken)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Product already in wishlist", body["message"])

	items := ts.list(t, "/api/wishlist/user", buyerToken)
	require.Len(t, items, 1)
	assert.Equal(t, float64(product.ID), items[0]["product_id"])

	assert.Empty(t, ts.list(t, "/api/wishlist/notifications", buyerToken))

	status, _ = ts.do(t, http.MethodPut, "/api/products/"+itoa(product.ID)+"/mark-sold", nil, ts.tokenFor(t, seller))
	require.Equal(t, http.StatusOK, status)

	notes := ts.list(t, "/api/wishlist/notifications", buyerToken)
	require.Len(t, notes, 1)
	assert.Equal(t, float64(product.ID), notes[0]["product_id"])
	assert.Equal(t, string(models.ProductSold), notes[0]["status"])

	assert.Empty(t, ts.list(t, "/api/wishlist/notifications", buyerToken))

	status, _ = ts.do(t, http.MethodPut, "/api/products/"+itoa(product.ID)+"/mark-sold", nil, ts.tokenFor(t, seller))
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, ts.list(t, "/api/wishlist/notifications", buyerToken))
}

func TestWishlistArchiveAndRemove(t *testing.T) {
	ts := newTestServer(t)
	seller := testutil.CreateUser(t, ts.db)
	buyer := testutil.CreateUser(t, ts.db)
	product := testutil.CreateProduct(t, ts.db, seller.ID)
	token := ts.tokenFor(t, buyer)
	productPath := itoa(product.ID)

	status, _ := ts.do(t, http.MethodPost, "/api/wishlist/add", map[string]any{"product_id": product.ID}, token)
	require.Equal(t, http.StatusCreated, status)

	status, _ = ts.do(t, http.MethodPut, "/api/wishlist/archive/"+productPath, nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, ts.list(t, "/api/wishlist/user", token))

	archived := ts.list(t, "/api/wishlist/archived", token)
	require.Len(t, archived, 1)
	assert.Equal(t, true, archived[0]["archived"])

	status, _ = ts.do(t, http.MethodDelete, "/api/wishlist/remove/"+productPath, nil, token)
	require.Equal(t, http.StatusOK, status)

	status, body := ts.do(t, http.MethodDelete, "/api/wishlist/remove/"+productPath, nil, token)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Item not found in wishlist", body["error"])

	status, _ = ts.do(t, http.MethodPut, "/api/wishlist/archive/"+productPath, nil, token)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestWishlistRejectsUnapprovedProducts(t *testing.T) {
	ts := newTestServer(t)
	seller := testutil.CreateUser(t, ts.db)
	pending := testutil.CreateProduct(t, ts.db, seller.ID, func(p *models.Product) {
		p.ApprovalStatus = models.ApprovalPending
	})
	token := ts.tokenFor(t, testutil.CreateUser(t, ts.db))

	status, body := ts.do(t, http.MethodPost, "/api/wishlist/add", map[string]any{"product_id": pending.ID}, token)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Product is not available", body["error"])

	status, _ = ts.do(t, http.MethodPost, "/api/wishlist/add", map[string]any{"product_id": 99999}, token)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBookmarksShareTheWishlist(t *testing.T) {
	ts := newTestServer(t)
	seller := testutil.CreateUser(t, ts.db)
	product := testutil.CreateProduct(t, ts.db, seller.ID)
	token := ts.tokenFor(t, testutil.CreateUser(t, ts.db))
	checkPath := "/api/auth/bookmarks/check/" + itoa(product.ID)

	status, body := ts.do(t, http.MethodPost, "/api/auth/bookmarks", map[string]any{}, token)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Missing product_id", body["error"])

	_, body = ts.do(t, http.MethodGet, checkPath, nil, token)
	assert.Equal(t, false, body["is_bookmarked"])

	status, body = ts.do(t, http.MethodPost, "/api/auth/bookmarks", map[string]any{"product_id": product.ID}, token)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Product bookmarked successfully", body["message"])

	_, body = ts.do(t, http.MethodGet, checkPath, nil, token)
	assert.Equal(t, true, body["is_bookmarked"])

	// The same entry is visible through both surfaces.
	assert.Len(t, ts.list(t, "/api/auth/bookmarks", token), 1)
	assert.Len(t, ts.list(t, "/api/wishlist/user", token), 1)

	status, _ = ts.do(t, http.MethodDelete, "/api/auth/bookmarks/"+itoa(product.ID), nil, token)
	require.Equal(t, http.StatusOK, status)
	status, _ = ts.do(t, http.MethodDelete, "/api/auth/bookmarks/"+itoa(product.ID), nil, token)
	assert.Equal(t, http.StatusOK, status)

	assert.Empty(t, ts.list(t, "/api/wishlist/user", token))
}
