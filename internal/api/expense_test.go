package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Sivasuriya-skr/Butget-Tracker-Project/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetExpense(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "A", "a@x.com", "p1secret")

	created := env.createExpense(t, user.Token, 50, "food", "lunch", "2024-01-10")
	assert.NotZero(t, created.ID)
	assert.Equal(t, 50.0, created.Amount)
	assert.Equal(t, "food", created.Category)
	assert.Equal(t, "lunch", created.Description)
	assert.Equal(t, "2024-01-10", created.Date.String())

	// Listing returns exactly that record
	resp := env.doJSON(t, http.MethodGet, "/api/expenses", user.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []domain.Expense
	decodeBody(t, resp, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	// Fetching by id works too
	resp = env.doJSON(t, http.MethodGet, fmt.Sprintf("/api/expenses/%d", created.ID), user.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got domain.Expense
	decodeBody(t, resp, &got)
	assert.Equal(t, created.ID, got.ID)
}

func TestCreateExpenseValidation(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "A", "a@x.com", "p1secret")

	cases := []struct {
		name    string
		payload map[string]any
	}{
		{"zero amount", map[string]any{"amount": 0, "category": "food", "description": "lunch", "date": "2024-01-10"}},
		{"negative amount", map[string]any{"amount": -5, "category": "food", "description": "lunch", "date": "2024-01-10"}},
		{"missing category", map[string]any{"amount": 5, "description": "lunch", "date": "2024-01-10"}},
		{"missing description", map[string]any{"amount": 5, "category": "food", "date": "2024-01-10"}},
		{"missing date", map[string]any{"amount": 5, "category": "food", "description": "lunch"}},
		{"malformed date", map[string]any{"amount": 5, "category": "food", "description": "lunch", "date": "10/01/2024"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.doJSON(t, http.MethodPost, "/api/expenses", user.Token, tc.payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			resp.Body.Close()
		})
	}

	// Nothing was persisted
	resp := env.doJSON(t, http.MethodGet, "/api/expenses", user.Token, nil)
	var listed []domain.Expense
	decodeBody(t, resp, &listed)
	assert.Empty(t, listed)
}

func TestExpenseFilterPrecedence(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "A", "a@x.com", "p1secret")

	env.createExpense(t, user.Token, 10, "food", "groceries", "2024-01-05")
	env.createExpense(t, user.Token, 20, "travel", "train", "2024-01-10")
	env.createExpense(t, user.Token, 30, "food", "dinner", "2024-01-15")
	env.createExpense(t, user.Token, 40, "food", "brunch", "2024-02-01")

	list := func(query string) []domain.Expense {
		resp := env.doJSON(t, http.MethodGet, "/api/expenses"+query, user.Token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out []domain.Expense
		decodeBody(t, resp, &out)
		return out
	}

	// No filters: everything, newest first
	all := list("")
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].Date.After(all[i-1].Date), "expenses must be ordered by date descending")
	}

	// Date range only, inclusive on both ends
	ranged := list("?startDate=2024-01-05&endDate=2024-01-15")
	require.Len(t, ranged, 3)
	assert.Equal(t, "2024-01-15", ranged[0].Date.String())
	assert.Equal(t, "2024-01-05", ranged[2].Date.String())

	// Single-day range keeps the boundary record
	oneDay := list("?startDate=2024-01-05&endDate=2024-01-05")
	require.Len(t, oneDay, 1)
	assert.Equal(t, "groceries", oneDay[0].Description)

	// Category only
	food := list("?category=food")
	require.Len(t, food, 3)
	for _, e := range food {
		assert.Equal(t, "food", e.Category)
	}

	// Both filters: records must satisfy range AND category
	both := list("?startDate=2024-01-01&endDate=2024-01-31&category=food")
	require.Len(t, both, 2)
	assert.Equal(t, "2024-01-15", both[0].Date.String())
	assert.Equal(t, "2024-01-05", both[1].Date.String())

	// A lone bound is not a range; category still applies
	lone := list("?startDate=2024-01-10&category=food")
	assert.Len(t, lone, 3)
}

func TestExpenseListRejectsMalformedDates(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "A", "a@x.com", "p1secret")

	resp := env.doJSON(t, http.MethodGet, "/api/expenses?startDate=2024-13-99&endDate=2024-01-31", user.Token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodGet, "/api/expenses?startDate=2024-01-01&endDate=bogus", user.Token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestExpenseOwnershipIsolation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "A", "a@x.com", "p1secret")
	bob := env.register(t, "B", "b@x.com", "p2secret")

	created := env.createExpense(t, alice.Token, 50, "food", "lunch", "2024-01-10")
	path := fmt.Sprintf("/api/expenses/%d", created.ID)

	// Bob cannot read, update, or delete Alice's record; each reads as missing
	resp := env.doJSON(t, http.MethodGet, path, bob.Token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Expense not found", errorMessage(t, resp))

	resp = env.doJSON(t, http.MethodPut, path, bob.Token, map[string]any{
		"amount": 1, "category": "x", "description": "x", "date": "2024-01-01",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = env.doJSON(t, http.MethodDelete, path, bob.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Alice's record is untouched
	resp = env.doJSON(t, http.MethodGet, path, alice.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got domain.Expense
	decodeBody(t, resp, &got)
	assert.Equal(t, 50.0, got.Amount)

	// Bob's own listing stays empty
	resp = env.doJSON(t, http.MethodGet, "/api/expenses", bob.Token, nil)
	var listed []domain.Expense
	decodeBody(t, resp, &listed)
	assert.Empty(t, listed)
}

func TestUpdateExpense(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "A", "a@x.com", "p1secret")
	created := env.createExpense(t, user.Token, 50, "food", "lunch", "2024-01-10")

	resp := env.doJSON(t, http.MethodPut, fmt.Sprintf("/api/expenses/%d", created.ID), user.Token, map[string]any{
		"amount":      75.5,
		"category":    "restaurants",
		"description": "team dinner",
		"date":        "2024-01-12",
		"note":        "reimbursable",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated domain.Expense
	decodeBody(t, resp, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 75.5, updated.Amount)
	assert.Equal(t, "restaurants", updated.Category)
	assert.Equal(t, "team dinner", updated.Description)
	assert.Equal(t, "2024-01-12", updated.Date.String())
	assert.Equal(t, "reimbursable", updated.Note)

	// Update of a missing id is a 404
	resp = env.doJSON(t, http.MethodPut, "/api/expenses/99999", user.Token, map[string]any{
		"amount": 1, "category": "x", "description": "x", "date": "2024-01-01",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestDeleteExpense(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "A", "a@x.com", "p1secret")
	created := env.createExpense(t, user.Token, 50, "food", "lunch", "2024-01-10")
	path := fmt.Sprintf("/api/expenses/%d", created.ID)

	resp := env.doJSON(t, http.MethodDelete, path, user.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Expense deleted successfully", body["message"])

	// Gone for good
	resp = env.doJSON(t, http.MethodGet, path, user.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
