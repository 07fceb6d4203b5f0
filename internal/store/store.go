// Package store holds the client's reactive state: the authenticated user,
// the transaction list for the selected month, the preferred currency and a
// loading flag. The server is the source of truth; everything here is a
// disposable per-session cache.
package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/ledgerline/ledgerline/internal/api"
	"github.com/ledgerline/ledgerline/internal/common"
	"github.com/ledgerline/ledgerline/internal/model"
	"github.com/ledgerline/ledgerline/internal/session"
)

// Store synchronizes client state with the remote API.
//
// Concurrency contract: the loading flag is true for the duration of every
// remote operation so consumers can serialize UI actions by observing it.
// The store itself does not queue or reject overlapping calls; if two
// mutations overlap, their completions race and the last write to the list
// wins. Nothing is retried automatically and no failure is swallowed.
type Store struct {
	api      *api.Client
	sessions *session.Store
	user     *model.User
	currency string
	expenses []model.Transaction
	mu       sync.Mutex
	loading  bool
}

// New creates a store on top of the API gateway and session persistence.
func New(client *api.Client, sessions *session.Store) *Store {
	return &Store{
		api:      client,
		sessions: sessions,
		currency: "USD",
	}
}

// LoadSession restores a persisted session into memory, if one exists.
func (s *Store) LoadSession() error {
	sess, err := s.sessions.Load()
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	if sess == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	user := sess.User
	s.user = &user
	s.currency = user.PreferredCurrency()

	return nil
}

// HandleUnauthenticated registers fn to run after any 401 has torn the
// session down. In-memory state is wiped before fn is invoked.
func (s *Store) HandleUnauthenticated(fn func()) {
	s.api.SetUnauthenticatedHandler(func() {
		s.mu.Lock()
		s.user = nil
		s.expenses = nil
		s.mu.Unlock()

		if fn != nil {
			fn()
		}
	})
}

// Login authenticates, persists the session, and fetches the current
// month's transactions. On failure nothing is persisted.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.beginOp()
	defer s.endOp()

	sess, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := s.adoptSession(sess); err != nil {
		return err
	}

	if err := s.fetch(ctx, model.CurrentMonth()); err != nil {
		return fmt.Errorf("logged in but failed to load expenses: %w", err)
	}

	return nil
}

// Register creates an account and persists the session. Unlike Login it
// does not fetch any transactions.
func (s *Store) Register(ctx context.Context, name, email, password string) error {
	s.beginOp()
	defer s.endOp()

	sess, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		return err
	}

	return s.adoptSession(sess)
}

// Logout clears the session and the in-memory list unconditionally.
func (s *Store) Logout() {
	if err := s.sessions.Clear(); err != nil {
		slog.Warn("failed to clear session on logout", "error", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.expenses = nil
}

// FetchExpenses replaces the in-memory list with the server's full result
// set for the month. It is a replace, never a merge.
func (s *Store) FetchExpenses(ctx context.Context, month string) error {
	s.beginOp()
	defer s.endOp()

	return s.fetch(ctx, month)
}

func (s *Store) fetch(ctx context.Context, month string) error {
	user, err := s.requireUser()
	if err != nil {
		return err
	}

	transactions, err := s.api.ListExpenses(ctx, month, user.ID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = transactions

	return nil
}

// AddExpense validates the payload, creates the record remotely, and
// appends the server-assigned result. The list is not refetched.
func (s *Store) AddExpense(ctx context.Context, in model.TransactionInput) (*model.Transaction, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	s.beginOp()
	defer s.endOp()

	created, err := s.api.CreateExpense(ctx, in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, *created)

	return created, nil
}

// UpdateExpense replaces the matching record with the server's updated
// copy. Existence is not pre-validated; the server decides.
func (s *Store) UpdateExpense(ctx context.Context, id string, in model.TransactionInput) (*model.Transaction, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	s.beginOp()
	defer s.endOp()

	updated, err := s.api.UpdateExpense(ctx, id, in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses[i] = *updated
			break
		}
	}

	return updated, nil
}

// DeleteExpense removes a record remotely, then prunes the local list.
// The list is never pruned optimistically: a failed delete leaves it
// untouched.
func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	s.beginOp()
	defer s.endOp()

	if err := s.api.DeleteExpense(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.expenses[:0]
	for _, txn := range s.expenses {
		if txn.ID != id {
			kept = append(kept, txn)
		}
	}
	s.expenses = kept

	return nil
}

// MonthlySummary fetches the aggregate for a month. Read-only: the
// in-memory transaction list is untouched.
func (s *Store) MonthlySummary(ctx context.Context, month string) (*model.MonthlySummary, error) {
	user, err := s.requireUser()
	if err != nil {
		return nil, err
	}

	s.beginOp()
	defer s.endOp()

	return s.api.MonthlySummary(ctx, month, user.ID)
}

// ExportExpenses streams the month's export artifact to the caller. Store
// state is not mutated. The caller closes the reader.
func (s *Store) ExportExpenses(ctx context.Context, month string) (io.ReadCloser, int64, error) {
	s.beginOp()
	defer s.endOp()

	return s.api.ExportExpenses(ctx, month)
}

// UpdateCurrency persists a new preferred currency remotely and locally.
// On failure both remain at their prior value.
func (s *Store) UpdateCurrency(ctx context.Context, code string) error {
	s.beginOp()
	defer s.endOp()

	sess, err := s.api.UpdateCurrency(ctx, code)
	if err != nil {
		return err
	}

	return s.adoptSession(sess)
}

// UpdateProfile persists a new display name remotely and locally. On
// failure the profile remains at its prior value.
func (s *Store) UpdateProfile(ctx context.Context, name string) error {
	s.beginOp()
	defer s.endOp()

	sess, err := s.api.UpdateProfile(ctx, name)
	if err != nil {
		return err
	}

	return s.adoptSession(sess)
}

// User returns the authenticated user, or nil when logged out.
func (s *Store) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// Currency returns the preferred display currency.
func (s *Store) Currency() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency
}

// Expenses returns a copy of the current transaction list.
func (s *Store) Expenses() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Transaction, len(s.expenses))
	copy(out, s.expenses)
	return out
}

// Loading reports whether a remote operation is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// adoptSession persists a fresh session and mirrors it into memory.
func (s *Store) adoptSession(sess *session.Session) error {
	if err := s.sessions.Save(sess); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	user := sess.User
	s.user = &user
	s.currency = user.PreferredCurrency()

	return nil
}

// requireUser resolves the acting user, falling back to persisted state the
// way a fresh process start would.
func (s *Store) requireUser() (*model.User, error) {
	if user := s.User(); user != nil {
		return user, nil
	}

	if err := s.LoadSession(); err != nil {
		return nil, err
	}
	if user := s.User(); user != nil {
		return user, nil
	}

	return nil, common.ErrUnauthenticated
}

func (s *Store) beginOp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
}

func (s *Store) endOp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}
