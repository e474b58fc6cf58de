package server

import (
	"net/http"
	"testing"

	"gatormarket/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewsAndSellerRating(t *testing.T) {
	ts := newTestServer(t)
	seller := testutil.CreateUser(t, ts.db)
	first := testutil.CreateUser(t, ts.db)
	second := testutil.CreateUser(t, ts.db)

	status, body := ts.do(t, http.MethodPost, "/api/reviews",
		map[string]any{"seller_id": seller.ID, "rating": 5, "comment": "  Quick pickup  "}, ts.tokenFor(t, first))
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "Quick pickup", body["comment"])
	assert.Equal(t, float64(first.ID), body["reviewer_id"])

	status, _ = ts.do(t, http.MethodPost, "/api/reviews",
		map[string]any{"seller_id": seller.ID, "rating": 4}, ts.tokenFor(t, second))
	require.Equal(t, http.StatusCreated, status)

	for _, path := range []string{"/api/reviews/" + itoa(seller.ID), "/api/auth/reviews/" + itoa(seller.ID)} {
		status, body = ts.do(t, http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusOK, status, path)
		assert.Len(t, body["reviews"], 2, path)
		rating := body["rating"].(map[string]any)
		assert.Equal(t, 4.5, rating["average"], path)
		assert.Equal(t, float64(2), rating["count"], path)
	}

	status, body = ts.do(t, http.MethodGet, "/api/auth/users/"+itoa(seller.ID), nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 4.5, body["seller_rating"])
	assert.Equal(t, float64(2), body["review_count"])
}

func TestCreateReviewValidation(t *testing.T) {
	ts := newTestServer(t)
	seller := testutil.CreateUser(t, ts.db)
	token := ts.tokenFor(t, seller)
	other := testutil.CreateUser(t, ts.db)

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantErr    string
	}{
		{"missing seller", map[string]any{"rating": 3}, http.StatusBadRequest, "Missing field: seller_id"},
		{"rating too low", map[string]any{"seller_id": other.ID, "rating": 0}, http.StatusBadRequest, "Rating must be between 1 and 5"},
		{"rating too high", map[string]any{"seller_id": other.ID, "rating": 6}, http.StatusBadRequest, "Rating must be between 1 and 5"},
		{"self review", map[string]any{"seller_id": seller.ID, "rating": 5}, http.StatusBadRequest, "You cannot review yourself"},
		{"unknown seller", map[string]any{"seller_id": 99999, "rating": 5}, http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := ts.do(t, http.MethodPost, "/api/reviews", tt.body, token)
			assert.Equal(t, tt.wantStatus, status)
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, body["error"])
			}
		})
	}
}

func TestSellerWithoutReviewsHasNullAverage(t *testing.T) {
	ts := newTestServer(t)
	seller := testutil.CreateUser(t, ts.db)

	status, body := ts.do(t, http.MethodGet, "/api/reviews/"+itoa(seller.ID), nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["reviews"])
	rating := body["rating"].(map[string]any)
	assert.Nil(t, rating["average"])
	assert.Equal(t, float64(0), rating["count"])
}

func TestReports(t *testing.T) {
	ts := newTestServer(t)
	seller := testutil.CreateUser(t, ts.db)
	reporter := testutil.CreateUser(t, ts.db)
	product := testutil.CreateProduct(t, ts.db, seller.ID)
	token := ts.tokenFor(t, reporter)

	status, body := ts.do(t, http.MethodPost, "/api/reports/listings",
		map[string]any{"product_id": product.ID, "reason": "Counterfeit", "details": "Logo is off"}, token)
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "Report submitted successfully", body["message"])
	assert.NotZero(t, body["report_id"])

	status, body = ts.do(t, http.MethodPost, "/api/reports/users",
		map[string]any{"reported_user_id": seller.ID, "reason": "No-show"}, token)
	require.Equal(t, http.StatusCreated, status, body)

	status, body = ts.do(t, http.MethodPost, "/api/reports/users",
		map[string]any{"reported_user_id": reporter.ID, "reason": "Testing"}, token)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "You cannot report yourself", body["error"])

	status, body = ts.do(t, http.MethodPost, "/api/reports/listings",
		map[string]any{"product_id": product.ID, "reason": "   "}, token)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Missing required fields", body["error"])

	status, _ = ts.do(t, http.MethodPost, "/api/reports/listings",
		map[string]any{"product_id": product.ID, "reason": "Spam"}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}
