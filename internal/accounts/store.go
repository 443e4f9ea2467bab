package accounts

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/argon2"

	"github.com/dmitrijs2005/jobtrack/internal/common"
	"github.com/dmitrijs2005/jobtrack/internal/logging"
	"github.com/dmitrijs2005/jobtrack/internal/notify"
	"github.com/dmitrijs2005/jobtrack/internal/storage"
)

// Storage keys owned by this package. No other component writes them.
const (
	accountsKey = "accounts"
	sessionKey  = "currentUser"
)

// Observer is notified after every session transition. The argument is the
// new session profile, nil when the session was cleared.
type Observer func(*Profile)

// Store is the account registry plus the active-session pointer.
//
// Persistence failures never fail an operation: the store degrades to
// in-memory state and logs the error. This is a deliberate
// availability-over-durability choice for a local-first tool.
type Store struct {
	kv       storage.KeyValue
	clock    clockwork.Clock
	log      logging.Logger
	notifier notify.Notifier

	current   *Profile
	observers []Observer
}

// NewStore builds a Store and rehydrates the active session from storage.
// A missing or unparseable persisted session yields an unauthenticated
// store, never an error.
func NewStore(ctx context.Context, kv storage.KeyValue, clock clockwork.Clock, log logging.Logger, notifier notify.Notifier) *Store {
	s := &Store{
		kv:       kv,
		clock:    clock,
		log:      log.With("component", "accounts"),
		notifier: notifier,
	}
	s.current = s.loadSession(ctx)
	return s
}

// Subscribe registers an observer for session transitions. Observers are
// invoked synchronously, in registration order, after the new session has
// been persisted.
func (s *Store) Subscribe(fn Observer) {
	s.observers = append(s.observers, fn)
}

// Current returns the active session profile, or nil when unauthenticated.
func (s *Store) Current() *Profile {
	return s.current
}

// SignUp creates a new account, makes it the active session and returns its
// sanitized profile. Emails differing only in case or surrounding
// whitespace count as duplicates.
func (s *Store) SignUp(ctx context.Context, name, email, password string) (*Profile, error) {
	email = normalizeEmail(email)

	accts := s.loadAccounts(ctx)
	for _, a := range accts {
		if a.Email == email {
			return nil, common.ErrDuplicateAccount
		}
	}

	salt := common.GenerateRandByteArray(32)
	acct := &Account{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Email:     email,
		Salt:      salt,
		Verifier:  deriveVerifier([]byte(password), salt),
		CreatedAt: s.clock.Now().UTC(),
	}

	s.saveAccounts(ctx, append(accts, acct))
	s.setSession(ctx, acct.Profile())
	s.fireNotification(ctx, notify.KindSignUp, acct)

	return acct.Profile(), nil
}

// Login authenticates by normalized email and password. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Store) Login(ctx context.Context, email, password string) (*Profile, error) {
	email = normalizeEmail(email)

	var match *Account
	for _, a := range s.loadAccounts(ctx) {
		if a.Email == email {
			match = a
			break
		}
	}
	if match == nil {
		return nil, common.ErrInvalidCredentials
	}

	candidate := deriveVerifier([]byte(password), match.Salt)
	if subtle.ConstantTimeCompare(match.Verifier, candidate) != 1 {
		return nil, common.ErrInvalidCredentials
	}

	s.setSession(ctx, match.Profile())
	s.fireNotification(ctx, notify.KindLogin, match)

	return match.Profile(), nil
}

// Logout clears the active session in memory and in storage. Calling it
// while unauthenticated is a no-op.
func (s *Store) Logout(ctx context.Context) {
	if s.current == nil {
		return
	}
	s.setSession(ctx, nil)
}

// setSession updates the in-memory pointer, writes through to storage and
// fires the observers.
func (s *Store) setSession(ctx context.Context, p *Profile) {
	s.current = p

	if p == nil {
		if err := s.kv.Delete(ctx, sessionKey); err != nil {
			s.log.Error(ctx, "error clearing session", "error", err)
		}
	} else {
		data, err := json.Marshal(p)
		if err == nil {
			err = s.kv.Set(ctx, sessionKey, data)
		}
		if err != nil {
			s.log.Error(ctx, "error saving session", "error", err)
		}
	}

	for _, fn := range s.observers {
		fn(p)
	}
}

// fireNotification launches the best-effort admin notification. The result
// is logged and discarded; it can never affect the launching operation.
func (s *Store) fireNotification(ctx context.Context, kind notify.Kind, acct *Account) {
	ev := notify.Event{Kind: kind, Name: acct.Name, Email: acct.Email}
	go func(ctx context.Context) {
		res := s.notifier.Notify(ctx, ev)
		if res.Success {
			s.log.Debug(ctx, "notification sent", "kind", kind)
		} else {
			s.log.Warn(ctx, "failed to send notification", "kind", kind, "message", res.Message)
		}
	}(context.WithoutCancel(ctx))
}

func (s *Store) loadSession(ctx context.Context) *Profile {
	data, err := s.kv.Get(ctx, sessionKey)
	if err != nil {
		s.log.Error(ctx, "error loading session", "error", err)
		return nil
	}
	if data == nil {
		return nil
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		s.log.Warn(ctx, "discarding session", "error", fmt.Errorf("%w: %v", common.ErrStorageCorrupt, err))
		return nil
	}
	return &p
}

func (s *Store) loadAccounts(ctx context.Context) []*Account {
	data, err := s.kv.Get(ctx, accountsKey)
	if err != nil {
		s.log.Error(ctx, "error loading accounts", "error", err)
		return nil
	}
	if data == nil {
		return nil
	}

	var accts []*Account
	if err := json.Unmarshal(data, &accts); err != nil {
		s.log.Warn(ctx, "discarding account registry", "error", fmt.Errorf("%w: %v", common.ErrStorageCorrupt, err))
		return nil
	}
	return accts
}

func (s *Store) saveAccounts(ctx context.Context, accts []*Account) {
	data, err := json.Marshal(accts)
	if err == nil {
		err = s.kv.Set(ctx, accountsKey, data)
	}
	if err != nil {
		s.log.Error(ctx, "error saving accounts", "error", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// deriveVerifier derives the stored credential check value from a password
// and a per-account salt.
func deriveVerifier(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}
