package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ledgerline/ledgerline/internal/common"
	"github.com/ledgerline/ledgerline/internal/model"
	"github.com/ledgerline/ledgerline/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sessions := session.NewStoreAt(filepath.Join(t.TempDir(), "session.json"))
	return New(srv.URL, sessions), sessions
}

func seedSession(t *testing.T, sessions *session.Store) {
	t.Helper()
	require.NoError(t, sessions.Save(&session.Session{
		Token: "tok-abc",
		User:  model.User{ID: "u1", Name: "Ada", Email: "a@b.com", Currency: "USD"},
	}))
}

func TestClient_Login(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "login must not carry a token")

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.com", body["email"])
		assert.Equal(t, "x", body["password"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-new",
			"user":  model.User{ID: "u1", Email: "a@b.com", Currency: "EUR"},
		})
	}))

	sess, err := client.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)
	assert.Equal(t, "tok-new", sess.Token)
	assert.Equal(t, "EUR", sess.User.Currency)
}

func TestClient_LoginFailureKeepsMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
	}))

	_, err := client.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestClient_BearerTokenAttached(t *testing.T) {
	var gotAuth string
	client, sessions := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]model.Transaction{})
	}))
	seedSession(t, sessions)

	_, err := client.ListExpenses(context.Background(), "2024-03", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", gotAuth)
}

func TestClient_NoSessionFailsBeforeDispatch(t *testing.T) {
	dispatched := false
	client, _ := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		dispatched = true
	}))

	_, err := client.ListExpenses(context.Background(), "2024-03", "u1")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
	assert.False(t, dispatched, "no request should leave the client without a session")
}

func TestClient_UnauthorizedClearsSessionAndNotifies(t *testing.T) {
	client, sessions := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	}))
	seedSession(t, sessions)

	notified := false
	client.SetUnauthenticatedHandler(func() { notified = true })

	_, err := client.ListExpenses(context.Background(), "2024-03", "u1")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
	assert.True(t, notified, "401 must signal the registered listener")

	sess, loadErr := sessions.Load()
	require.NoError(t, loadErr)
	assert.Nil(t, sess, "401 must clear the persisted session")
}

func TestClient_ListExpensesQuery(t *testing.T) {
	client, sessions := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-03", r.URL.Query().Get("month"))
		assert.Equal(t, "u1", r.URL.Query().Get("userId"))
		_ = json.NewEncoder(w).Encode([]model.Transaction{
			{ID: "t1", Description: "Coffee", Amount: 4.5, Category: "Food", Type: model.TypeExpense},
		})
	}))
	seedSession(t, sessions)

	txns, err := client.ListExpenses(context.Background(), "2024-03", "u1")
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "Coffee", txns[0].Description)
}

func TestClient_CreateExpense(t *testing.T) {
	client, sessions := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/expenses", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in model.TransactionInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"_id":         "srv-1",
			"description": in.Description,
			"amount":      in.Amount,
			"category":    in.Category,
			"type":        in.Type,
		})
	}))
	seedSession(t, sessions)

	created, err := client.CreateExpense(context.Background(), model.TransactionInput{
		Description: "Coffee", Amount: 4.5, Category: "Food", Date: "2024-03-01", Type: "expense",
	})
	require.NoError(t, err)
	assert.Equal(t, "srv-1", created.ID)
	assert.Equal(t, "Coffee", created.Description)
}

func TestClient_DeleteExpenseNotFound(t *testing.T) {
	client, sessions := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "expense not found"})
	}))
	seedSession(t, sessions)

	err := client.DeleteExpense(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Contains(t, err.Error(), "expense not found")
}

func TestClient_MonthlySummary(t *testing.T) {
	client, sessions := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/expenses/summary", r.URL.Path)
		_ = json.NewEncoder(w).Encode(model.MonthlySummary{
			TotalIncome:   1000,
			TotalExpenses: 400,
			Balance:       600,
			CategoryBreakdown: []model.CategoryTotal{
				{Category: "Food", Total: 250},
				{Category: "Transportation", Total: 150},
			},
		})
	}))
	seedSession(t, sessions)

	summary, err := client.MonthlySummary(context.Background(), "2024-03", "u1")
	require.NoError(t, err)
	assert.InDelta(t, 600.0, summary.Balance, 0.001)
	require.Len(t, summary.CategoryBreakdown, 2)
	assert.Equal(t, "Food", summary.CategoryBreakdown[0].Category)
}

func TestClient_ExportExpenses(t *testing.T) {
	const artifact = "date,description,amount\n2024-03-01,Coffee,4.50\n"
	client, sessions := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/expenses/export", r.URL.Path)
		assert.Equal(t, "2024-03", r.URL.Query().Get("month"))
		_, _ = w.Write([]byte(artifact))
	}))
	seedSession(t, sessions)

	body, size, err := client.ExportExpenses(context.Background(), "2024-03")
	require.NoError(t, err)
	defer func() { _ = body.Close() }()

	data := make([]byte, size)
	n, _ := body.Read(data)
	assert.Equal(t, artifact, string(data[:n]))
}

func TestClient_ServerErrorMapsToRemote(t *testing.T) {
	client, sessions := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	seedSession(t, sessions)

	_, err := client.MonthlySummary(context.Background(), "2024-03", "u1")
	assert.ErrorIs(t, err, common.ErrRemote)
	assert.Contains(t, err.Error(), "request failed", "missing message falls back to a generic one")
}

func TestClient_NetworkFailure(t *testing.T) {
	sessions := session.NewStoreAt(filepath.Join(t.TempDir(), "session.json"))
	seedSession(t, sessions)

	// Point at a closed server.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()
	client := New(srv.URL, sessions)

	_, err := client.ListExpenses(context.Background(), "2024-03", "u1")
	assert.ErrorIs(t, err, common.ErrNetwork)
}

func TestClient_FailedLoginDoesNotNotifyListener(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
	}))

	notified := false
	client.SetUnauthenticatedHandler(func() { notified = true })

	_, err := client.Login(context.Background(), "a@b.c", "wrong")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
	assert.False(t, notified, "there is no session to tear down on a failed login")
}
