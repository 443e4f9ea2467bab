package accounts

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/jobtrack/internal/common"
	"github.com/dmitrijs2005/jobtrack/internal/logging"
	"github.com/dmitrijs2005/jobtrack/internal/notify"
	"github.com/dmitrijs2005/jobtrack/internal/storage"
)

// chanNotifier records events on a channel so tests can wait for the
// fire-and-forget goroutine without sleeping.
type chanNotifier struct {
	events  chan notify.Event
	success bool
}

func newChanNotifier(success bool) *chanNotifier {
	return &chanNotifier{events: make(chan notify.Event, 16), success: success}
}

func (n *chanNotifier) Notify(ctx context.Context, ev notify.Event) notify.Result {
	n.events <- ev
	return notify.Result{Success: n.success, Message: "stub"}
}

func (n *chanNotifier) wait(t *testing.T) notify.Event {
	t.Helper()
	select {
	case ev := <-n.events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
		return notify.Event{}
	}
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestStore(t *testing.T) (*Store, *storage.Memory, *chanNotifier) {
	t.Helper()
	kv := storage.NewMemory()
	n := newChanNotifier(true)
	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s := NewStore(context.Background(), kv, clock, testLogger(), n)
	return s, kv, n
}

func TestSignUp_CreatesAccountAndSession(t *testing.T) {
	s, kv, n := newTestStore(t)
	ctx := context.Background()

	p, err := s.SignUp(ctx, "  Ana  ", "Ana@Example.com", "secret1")
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Ana", p.Name)
	assert.Equal(t, "ana@example.com", p.Email)
	assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), p.CreatedAt)
	assert.Equal(t, p, s.Current())

	ev := n.wait(t)
	assert.Equal(t, notify.KindSignUp, ev.Kind)
	assert.Equal(t, "ana@example.com", ev.Email)

	// Registry holds the credential material, the session pointer never does.
	reg, err := kv.Get(ctx, accountsKey)
	require.NoError(t, err)
	var accts []*Account
	require.NoError(t, json.Unmarshal(reg, &accts))
	require.Len(t, accts, 1)
	assert.NotEmpty(t, accts[0].Salt)
	assert.NotEmpty(t, accts[0].Verifier)

	sess, err := kv.Get(ctx, sessionKey)
	require.NoError(t, err)
	assert.NotContains(t, string(sess), "salt")
	assert.NotContains(t, string(sess), "verifier")
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	s, _, n := newTestStore(t)
	ctx := context.Background()

	_, err := s.SignUp(ctx, "Ana", "ana@example.com", "secret1")
	require.NoError(t, err)
	n.wait(t)

	tests := []struct {
		name  string
		email string
	}{
		{"exact", "ana@example.com"},
		{"different case", "ANA@Example.COM"},
		{"surrounding whitespace", "  ana@example.com "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.SignUp(ctx, "Impostor", tc.email, "other")
			assert.ErrorIs(t, err, common.ErrDuplicateAccount)
		})
	}
}

func TestLogin_Scenario(t *testing.T) {
	s, _, n := newTestStore(t)
	ctx := context.Background()

	created, err := s.SignUp(ctx, "Ana", "Ana@Example.com", "secret1")
	require.NoError(t, err)
	n.wait(t)

	s.Logout(ctx)

	p, err := s.Login(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, p.ID)
	ev := n.wait(t)
	assert.Equal(t, notify.KindLogin, ev.Kind)

	_, err = s.Login(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = s.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_NotifierFailureDoesNotFailLogin(t *testing.T) {
	kv := storage.NewMemory()
	n := newChanNotifier(false)
	clock := clockwork.NewFakeClock()
	s := NewStore(context.Background(), kv, clock, testLogger(), n)
	ctx := context.Background()

	_, err := s.SignUp(ctx, "Ana", "ana@example.com", "secret1")
	require.NoError(t, err)
	n.wait(t)

	p, err := s.Login(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)
	assert.NotNil(t, p)
	n.wait(t)
}

func TestLogout_Idempotent(t *testing.T) {
	s, kv, n := newTestStore(t)
	ctx := context.Background()

	_, err := s.SignUp(ctx, "Ana", "ana@example.com", "secret1")
	require.NoError(t, err)
	n.wait(t)

	s.Logout(ctx)
	require.Nil(t, s.Current())

	s.Logout(ctx)
	assert.Nil(t, s.Current())

	sess, err := kv.Get(ctx, sessionKey)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestLogout_DoesNotFireObserverWhenUnauthenticated(t *testing.T) {
	s, _, _ := newTestStore(t)

	var calls int
	s.Subscribe(func(*Profile) { calls++ })

	s.Logout(context.Background())
	assert.Zero(t, calls)
}

func TestSessionRehydration(t *testing.T) {
	s, kv, n := newTestStore(t)
	ctx := context.Background()

	p, err := s.SignUp(ctx, "Ana", "ana@example.com", "secret1")
	require.NoError(t, err)
	n.wait(t)

	// A fresh store over the same storage sees the persisted session.
	s2 := NewStore(ctx, kv, clockwork.NewFakeClock(), testLogger(), notify.Noop{})
	require.NotNil(t, s2.Current())
	assert.Equal(t, p.ID, s2.Current().ID)
}

func TestSessionRehydration_CorruptValueMeansNoSession(t *testing.T) {
	kv := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, sessionKey, []byte("{not json")))

	s := NewStore(ctx, kv, clockwork.NewFakeClock(), testLogger(), notify.Noop{})
	assert.Nil(t, s.Current())
}

func TestCorruptRegistry_TreatedAsEmpty(t *testing.T) {
	kv := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, accountsKey, []byte("garbage")))

	s := NewStore(ctx, kv, clockwork.NewFakeClock(), testLogger(), notify.Noop{})

	_, err := s.Login(ctx, "ana@example.com", "secret1")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = s.SignUp(ctx, "Ana", "ana@example.com", "secret1")
	assert.NoError(t, err)
}

func TestSubscribe_ObserversSeeEveryTransition(t *testing.T) {
	s, _, n := newTestStore(t)
	ctx := context.Background()

	var seen []*Profile
	s.Subscribe(func(p *Profile) { seen = append(seen, p) })

	ana, err := s.SignUp(ctx, "Ana", "ana@example.com", "secret1")
	require.NoError(t, err)
	n.wait(t)

	bob, err := s.SignUp(ctx, "Bob", "bob@example.com", "secret2")
	require.NoError(t, err)
	n.wait(t)

	// Switching identity fires exactly one event carrying the new identity,
	// not a silent mutation.
	_, err = s.Login(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)
	n.wait(t)

	s.Logout(ctx)

	require.Len(t, seen, 4)
	assert.Equal(t, ana.ID, seen[0].ID)
	assert.Equal(t, bob.ID, seen[1].ID)
	assert.Equal(t, ana.ID, seen[2].ID)
	assert.Nil(t, seen[3])
}

func TestStorageWriteFailure_DegradesToInMemorySession(t *testing.T) {
	kv := &failingSets{KeyValue: storage.NewMemory()}
	s := NewStore(context.Background(), kv, clockwork.NewFakeClock(), testLogger(), notify.Noop{})
	ctx := context.Background()

	p, err := s.SignUp(ctx, "Ana", "ana@example.com", "secret1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, p.ID, s.Current().ID)
}

type failingSets struct {
	storage.KeyValue
}

func (f *failingSets) Set(ctx context.Context, key string, value []byte) error {
	return assert.AnError
}
