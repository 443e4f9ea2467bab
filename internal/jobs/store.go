package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"unicode"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/dmitrijs2005/jobtrack/internal/accounts"
	"github.com/dmitrijs2005/jobtrack/internal/common"
	"github.com/dmitrijs2005/jobtrack/internal/logging"
	"github.com/dmitrijs2005/jobtrack/internal/storage"
)

// SessionSource is the slice of the account store the job store depends on:
// the active identity and its transition events.
type SessionSource interface {
	Current() *accounts.Profile
	Subscribe(accounts.Observer)
}

// Store holds the active account's job collection in memory and writes every
// mutation through to that account's storage namespace.
//
// The store reacts to session transitions: a new session reloads the
// collection from the new account's namespace, a cleared session empties the
// in-memory collection without touching any persisted namespace.
type Store struct {
	kv      storage.KeyValue
	session SessionSource
	clock   clockwork.Clock
	log     logging.Logger

	items []Job
}

// NewStore builds a Store bound to the given session source, loads the
// collection for the session active right now and subscribes to future
// transitions.
func NewStore(ctx context.Context, kv storage.KeyValue, session SessionSource, clock clockwork.Clock, log logging.Logger) *Store {
	s := &Store{
		kv:      kv,
		session: session,
		clock:   clock,
		log:     log.With("component", "jobs"),
	}
	s.reload(ctx, session.Current())
	session.Subscribe(func(p *accounts.Profile) {
		s.reload(context.WithoutCancel(ctx), p)
	})
	return s
}

// storageKey derives the namespace key holding an account's collection.
// It is a pure function of the owning account id; isolation between
// accounts rests on it.
func storageKey(accountID string) string {
	return "jobs_" + accountID
}

// ownerID returns the active account id, or ErrUnauthenticated.
// Every operation calls this before touching memory or storage.
func (s *Store) ownerID() (string, error) {
	p := s.session.Current()
	if p == nil {
		return "", common.ErrUnauthenticated
	}
	return p.ID, nil
}

// List returns the collection, most recently added first.
func (s *Store) List() ([]Job, error) {
	if _, err := s.ownerID(); err != nil {
		return nil, err
	}
	return append([]Job(nil), s.items...), nil
}

// ListByStatus returns only the jobs in the given status.
func (s *Store) ListByStatus(status Status) ([]Job, error) {
	if _, err := s.ownerID(); err != nil {
		return nil, err
	}
	var out []Job
	for _, j := range s.items {
		if j.Status == status {
			out = append(out, j)
		}
	}
	return out, nil
}

// Get returns a single job by id.
func (s *Store) Get(id string) (Job, error) {
	if _, err := s.ownerID(); err != nil {
		return Job{}, err
	}
	for _, j := range s.items {
		if j.ID == id {
			return j, nil
		}
	}
	return Job{}, common.ErrNotFound
}

// Add creates a job owned by the active account, prepends it to the
// collection and persists.
func (s *Store) Add(ctx context.Context, in Input) (Job, error) {
	owner, err := s.ownerID()
	if err != nil {
		return Job{}, err
	}

	in, err = in.sanitize()
	if err != nil {
		return Job{}, err
	}

	job := Job{
		ID:          uuid.NewString(),
		OwnerID:     owner,
		CompanyName: in.CompanyName,
		JobTitle:    in.JobTitle,
		Status:      in.Status,
		AppliedDate: in.AppliedDate,
		Notes:       in.Notes,
		CreatedAt:   s.clock.Now().UTC(),
	}

	s.items = append([]Job{job}, s.items...)
	s.persist(ctx, owner)
	return job, nil
}

// Update replaces the editable fields of the job with the given id,
// preserving its identity and ownership.
func (s *Store) Update(ctx context.Context, id string, in Input) (Job, error) {
	owner, err := s.ownerID()
	if err != nil {
		return Job{}, err
	}

	in, err = in.sanitize()
	if err != nil {
		return Job{}, err
	}

	for i, j := range s.items {
		if j.ID != id {
			continue
		}
		j.CompanyName = in.CompanyName
		j.JobTitle = in.JobTitle
		j.Status = in.Status
		j.AppliedDate = in.AppliedDate
		j.Notes = in.Notes
		j.UpdatedAt = s.clock.Now().UTC()

		s.items[i] = j
		s.persist(ctx, owner)
		return j, nil
	}
	return Job{}, common.ErrNotFound
}

// Delete removes the job with the given id and persists.
func (s *Store) Delete(ctx context.Context, id string) error {
	owner, err := s.ownerID()
	if err != nil {
		return err
	}

	for i, j := range s.items {
		if j.ID != id {
			continue
		}
		s.items = append(s.items[:i:i], s.items[i+1:]...)
		s.persist(ctx, owner)
		return nil
	}
	return common.ErrNotFound
}

// ImportAll replaces the whole collection with the given records, stamping
// every record's owner to the active account. A foreign ownerId in the
// payload can never survive an import.
func (s *Store) ImportAll(ctx context.Context, records []Job) error {
	owner, err := s.ownerID()
	if err != nil {
		return err
	}

	items := make([]Job, len(records))
	for i, j := range records {
		j.OwnerID = owner
		items[i] = j
	}

	s.items = items
	s.persist(ctx, owner)
	return nil
}

// ImportJSON parses an export artifact and imports it. Anything but a
// top-level JSON array is ErrInvalidFormat. Fields missing from the payload
// are left zero-valued, not defaulted.
func (s *Store) ImportJSON(ctx context.Context, data []byte) error {
	if _, err := s.ownerID(); err != nil {
		return err
	}

	trimmed := bytes.TrimLeftFunc(data, unicode.IsSpace)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return common.ErrInvalidFormat
	}

	var records []Job
	if err := json.Unmarshal(data, &records); err != nil {
		return common.ErrInvalidFormat
	}
	return s.ImportAll(ctx, records)
}

// ExportJSON serializes the collection in the canonical import format and
// returns it with a dated download filename.
func (s *Store) ExportJSON() ([]byte, string, error) {
	if _, err := s.ownerID(); err != nil {
		return nil, "", err
	}

	items := s.items
	if items == nil {
		items = []Job{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("failed to serialize jobs: %w", err)
	}

	filename := fmt.Sprintf("job-applications-%s.json", s.clock.Now().Format(appliedDateLayout))
	return data, filename, nil
}

// ClearAll empties the collection and persists the empty collection.
func (s *Store) ClearAll(ctx context.Context) error {
	owner, err := s.ownerID()
	if err != nil {
		return err
	}

	s.items = []Job{}
	s.persist(ctx, owner)
	return nil
}

// Stats counts jobs per status.
type Stats struct {
	Total        int
	Applied      int
	Interviewing int
	Offers       int
	Rejected     int
}

func (s *Store) Stats() (Stats, error) {
	if _, err := s.ownerID(); err != nil {
		return Stats{}, err
	}

	st := Stats{Total: len(s.items)}
	for _, j := range s.items {
		switch j.Status {
		case StatusApplied:
			st.Applied++
		case StatusInterviewing:
			st.Interviewing++
		case StatusOffer:
			st.Offers++
		case StatusRejected:
			st.Rejected++
		}
	}
	return st, nil
}

// persist writes the whole collection to the owner's namespace key.
// Storage failures are logged, not surfaced: in-memory state stays the
// source of truth for the rest of the session.
func (s *Store) persist(ctx context.Context, owner string) {
	data, err := json.Marshal(s.items)
	if err == nil {
		err = s.kv.Set(ctx, storageKey(owner), data)
	}
	if err != nil {
		s.log.Error(ctx, "error saving jobs", "error", err)
	}
}

// reload swaps the in-memory collection for the one belonging to the new
// session. A nil profile only clears memory; the previous account's
// persisted records stay untouched.
func (s *Store) reload(ctx context.Context, p *accounts.Profile) {
	if p == nil {
		s.items = nil
		return
	}

	data, err := s.kv.Get(ctx, storageKey(p.ID))
	if err != nil {
		s.log.Error(ctx, "error loading jobs", "error", err)
		s.items = []Job{}
		return
	}
	if data == nil {
		s.items = []Job{}
		return
	}

	var items []Job
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.Warn(ctx, "discarding job collection", "error", fmt.Errorf("%w: %v", common.ErrStorageCorrupt, err))
		s.items = []Job{}
		return
	}
	s.items = items
}
