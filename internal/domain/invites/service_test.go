package invites

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"trip-planner-go/internal/domain/access"
	"trip-planner-go/internal/domain/apperr"
	"trip-planner-go/internal/domain/trips"
)

var baseTime = time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

type fakeStore struct {
	mu      sync.Mutex
	trips   map[string]*trips.Trip
	members map[string]trips.Member
	invites map[string]*Invite
	users   map[string]bool

	emailLookups int
}

func newFakeStore() *fakeStore {
	store := &fakeStore{
		trips:   map[string]*trips.Trip{},
		members: map[string]trips.Member{},
		invites: map[string]*Invite{},
		users:   map[string]bool{"owner": true, "guest": true, "other": true},
	}
	store.trips["trip-1"] = &trips.Trip{ID: "trip-1", Title: "Alps", OwnerID: "owner"}
	store.members["trip-1|owner"] = trips.Member{TripID: "trip-1", UserID: "owner", Role: trips.RoleOwner}
	return store
}

func (s *fakeStore) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(s)
}

func (s *fakeStore) Create(ctx context.Context, invite *Invite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.invites {
		if existing.TripID == invite.TripID && existing.UserID == invite.UserID {
			return ErrInviteExists
		}
	}
	copied := *invite
	s.invites[invite.ID] = &copied
	return nil
}

func (s *fakeStore) Get(ctx context.Context, inviteID string) (*Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	invite, ok := s.invites[inviteID]
	if !ok {
		return nil, ErrInviteNotFound
	}
	copied := *invite
	return &copied, nil
}

func (s *fakeStore) Resolve(ctx context.Context, inviteID string, status Status, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	invite, ok := s.invites[inviteID]
	if !ok || invite.Status != StatusPending {
		return false, nil
	}
	if invite.ExpiresAt != nil && invite.ExpiresAt.Before(now) {
		return false, nil
	}
	invite.Status = status
	invite.RespondedAt = &now
	return true, nil
}

func (s *fakeStore) MarkExpired(ctx context.Context, inviteID string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	invite, ok := s.invites[inviteID]
	if !ok || !invite.IsExpired(now) {
		return false, nil
	}
	invite.Status = StatusExpired
	return true, nil
}

func (s *fakeStore) expireWhere(now time.Time, match func(*Invite) bool) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, invite := range s.invites {
		if match(invite) && invite.IsExpired(now) {
			invite.Status = StatusExpired
			count++
		}
	}
	return count
}

func (s *fakeStore) ExpireOverdueForUser(ctx context.Context, userID string, now time.Time) (int64, error) {
	return s.expireWhere(now, func(i *Invite) bool { return i.UserID == userID }), nil
}

func (s *fakeStore) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	return s.expireWhere(now, func(*Invite) bool { return true }), nil
}

func (s *fakeStore) DeletePending(ctx context.Context, inviteID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	invite, ok := s.invites[inviteID]
	if !ok || invite.Status != StatusPending {
		return false, nil
	}
	delete(s.invites, inviteID)
	return true, nil
}

func (s *fakeStore) list(match func(*Invite) bool) []Details {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]Details, 0)
	for _, invite := range s.invites {
		if match(invite) {
			result = append(result, Details{Invite: *invite, TripOwnerID: s.trips[invite.TripID].OwnerID})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

func (s *fakeStore) ListPendingForUser(ctx context.Context, userID string) ([]Details, error) {
	return s.list(func(i *Invite) bool { return i.UserID == userID && i.Status == StatusPending }), nil
}

func (s *fakeStore) ListSentBy(ctx context.Context, ownerID string) ([]Details, error) {
	return s.list(func(i *Invite) bool { return s.trips[i.TripID].OwnerID == ownerID }), nil
}

func (s *fakeStore) ListForTrip(ctx context.Context, tripID string) ([]Details, error) {
	return s.list(func(i *Invite) bool { return i.TripID == tripID }), nil
}

func (s *fakeStore) EnsureMember(ctx context.Context, member *trips.Member) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := member.TripID + "|" + member.UserID
	if existing, ok := s.members[key]; ok {
		*member = existing
		return false, nil
	}
	s.members[key] = *member
	return true, nil
}

func (s *fakeStore) GetTrip(ctx context.Context, tripID string) (*trips.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	trip, ok := s.trips[tripID]
	if !ok {
		return nil, trips.ErrTripNotFound
	}
	copied := *trip
	return &copied, nil
}

func (s *fakeStore) TripOwnerID(ctx context.Context, tripID string) (string, error) {
	trip, err := s.GetTrip(ctx, tripID)
	if err != nil {
		return "", err
	}
	return trip.OwnerID, nil
}

func (s *fakeStore) IsMember(ctx context.Context, tripID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.members[tripID+"|"+userID]
	return ok, nil
}

func (s *fakeStore) UserExists(ctx context.Context, userID string) (bool, error) {
	return s.users[userID], nil
}

func (s *fakeStore) UserIDByEmail(ctx context.Context, email string) (string, bool, error) {
	s.emailLookups++
	userID, ok := strings.CutSuffix(strings.ToLower(strings.TrimSpace(email)), "@example.com")
	if !ok || !s.users[userID] {
		return "", false, nil
	}
	return userID, true, nil
}

func (s *fakeStore) memberCount(tripID, userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, member := range s.members {
		if member.TripID == tripID && member.UserID == userID {
			count++
		}
	}
	return count
}

type countingObserver struct {
	mu     sync.Mutex
	counts map[Event]int64
}

func (o *countingObserver) Transition(event Event, count int64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.counts[event] += count
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestService(store *fakeStore, opts ...Option) (*Service, *clock) {
	clk := &clock{now: baseTime}
	authz := access.NewAuthorizer(store, nil, 0)
	opts = append([]Option{WithClock(clk.Now)}, opts...)
	return NewService(store, store, store, authz, opts...), clk
}

func seedInvite(store *fakeStore, id, userID string, status Status, expiresAt *time.Time) {
	store.invites[id] = &Invite{
		ID:        id,
		TripID:    "trip-1",
		UserID:    userID,
		InvitedBy: "owner",
		Status:    status,
		CreatedAt: baseTime.Add(-time.Hour),
		ExpiresAt: expiresAt,
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestIsExpired(t *testing.T) {
	past := baseTime.Add(-24 * time.Hour)
	future := baseTime.Add(24 * time.Hour)

	cases := []struct {
		name   string
		invite Invite
		want   bool
	}{
		{"pending without expiry", Invite{Status: StatusPending}, false},
		{"pending future expiry", Invite{Status: StatusPending, ExpiresAt: &future}, false},
		{"pending past expiry", Invite{Status: StatusPending, ExpiresAt: &past}, true},
		{"accepted past expiry", Invite{Status: StatusAccepted, ExpiresAt: &past}, false},
		{"declined past expiry", Invite{Status: StatusDeclined, ExpiresAt: &past}, false},
		{"expired past expiry", Invite{Status: StatusExpired, ExpiresAt: &past}, false},
	}
	for _, tc := range cases {
		if got := tc.invite.IsExpired(baseTime); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestCanTransition(t *testing.T) {
	all := []Status{StatusPending, StatusAccepted, StatusDeclined, StatusExpired}
	for _, from := range all {
		for _, to := range all {
			want := from == StatusPending && to != StatusPending
			if got := CanTransition(from, to); got != want {
				t.Fatalf("%s -> %s: expected %v, got %v", from, to, want, got)
			}
		}
	}
}

func TestCreateInvite(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store)

	invite, err := svc.Create(context.Background(), "owner", "trip-1", CreateInviteInput{UserID: "guest"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if invite.Status != StatusPending {
		t.Fatalf("expected pending, got %q", invite.Status)
	}
	if invite.InvitedBy != "owner" || invite.UserID != "guest" {
		t.Fatalf("unexpected invite %+v", invite)
	}
	if !invite.CreatedAt.Equal(baseTime) {
		t.Fatalf("expected created_at from clock, got %v", invite.CreatedAt)
	}
	if invite.RespondedAt != nil || invite.ExpiresAt != nil {
		t.Fatalf("expected responded_at and expires_at unset")
	}

	_, err = svc.Create(context.Background(), "owner", "trip-1", CreateInviteInput{UserID: "guest"})
	if !errors.Is(err, ErrInviteExists) {
		t.Fatalf("expected ErrInviteExists, got %v", err)
	}
	if len(store.invites) != 1 {
		t.Fatalf("expected one invite per pair, got %d", len(store.invites))
	}
}

func TestCreateInviteValidation(t *testing.T) {
	store := newFakeStore()
	store.members["trip-1|other"] = trips.Member{TripID: "trip-1", UserID: "other", Role: trips.RoleMember}
	svc, _ := newTestService(store)
	ctx := context.Background()

	cases := []struct {
		name  string
		trip  string
		input CreateInviteInput
		want  error
	}{
		{"missing trip", "missing", CreateInviteInput{UserID: "guest"}, trips.ErrTripNotFound},
		{"blank invitee", "trip-1", CreateInviteInput{UserID: "  "}, ErrInviteeRequired},
		{"unknown invitee", "trip-1", CreateInviteInput{UserID: "ghost"}, ErrInviteeNotFound},
		{"unknown email", "trip-1", CreateInviteInput{Email: "ghost@example.com"}, ErrInviteeNotFound},
		{"already member", "trip-1", CreateInviteInput{UserID: "other"}, ErrAlreadyMember},
		{"self invite", "trip-1", CreateInviteInput{UserID: "owner"}, ErrAlreadyMember},
		{"past expiry", "trip-1", CreateInviteInput{UserID: "guest", ExpiresAt: timePtr(baseTime.Add(-time.Minute))}, ErrExpiryInPast},
	}
	for _, tc := range cases {
		if _, err := svc.Create(ctx, "owner", tc.trip, tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
	if len(store.invites) != 0 {
		t.Fatalf("expected no invites persisted, got %d", len(store.invites))
	}
}

func TestCreateInviteDefaultTTL(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store, WithDefaultTTL(72*time.Hour))

	invite, err := svc.Create(context.Background(), "owner", "trip-1", CreateInviteInput{UserID: "guest"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if invite.ExpiresAt == nil || !invite.ExpiresAt.Equal(baseTime.Add(72*time.Hour)) {
		t.Fatalf("expected default expiry, got %v", invite.ExpiresAt)
	}
}

// Scenario E.
func TestCreateInviteByNonOwnerDenied(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store)

	_, err := svc.Create(context.Background(), "other", "trip-1", CreateInviteInput{UserID: "guest"})
	if !errors.Is(err, apperr.ErrPermission) {
		t.Fatalf("expected permission error, got %v", err)
	}
	if len(store.invites) != 0 {
		t.Fatalf("expected no invite row, got %d", len(store.invites))
	}
}

func TestCreateInviteByEmail(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store)

	invite, err := svc.Create(context.Background(), "owner", "trip-1", CreateInviteInput{Email: " Guest@example.com "})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if invite.UserID != "guest" {
		t.Fatalf("expected invitee resolved from email, got %q", invite.UserID)
	}
}

func TestCreateInviteNonOwnerCannotLearnInvitee(t *testing.T) {
	store := newFakeStore()
	svc, _ := newTestService(store)

	for _, email := range []string{"guest@example.com", "ghost@example.com"} {
		_, err := svc.Create(context.Background(), "other", "trip-1", CreateInviteInput{Email: email})
		if !errors.Is(err, access.ErrNotOwner) {
			t.Fatalf("%s: expected not owner, got %v", email, err)
		}
	}
	if store.emailLookups != 0 {
		t.Fatalf("expected no invitee lookups before the owner check, got %d", store.emailLookups)
	}
}

// Scenario A.
func TestAcceptWithoutExpiryCreatesMember(t *testing.T) {
	store := newFakeStore()
	svc, clk := newTestService(store)

	invite, err := svc.Create(context.Background(), "owner", "trip-1", CreateInviteInput{UserID: "guest"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	clk.Advance(10 * 365 * 24 * time.Hour)
	if invite.IsExpired(clk.Now()) {
		t.Fatalf("invite without expiry must never expire")
	}

	accepted, err := svc.Accept(context.Background(), "guest", invite.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if accepted.Status != StatusAccepted || accepted.RespondedAt == nil {
		t.Fatalf("expected accepted with responded_at, got %+v", accepted)
	}
	if store.invites[invite.ID].Status != StatusAccepted {
		t.Fatalf("expected accepted persisted")
	}
	if store.memberCount("trip-1", "guest") != 1 {
		t.Fatalf("expected exactly one member row")
	}
	if store.members["trip-1|guest"].Role != trips.RoleMember {
		t.Fatalf("expected member role, got %q", store.members["trip-1|guest"].Role)
	}
}

// Scenario B.
func TestAcceptExpiredPersistsExpiry(t *testing.T) {
	store := newFakeStore()
	seedInvite(store, "inv-1", "guest", StatusPending, timePtr(baseTime.Add(-24*time.Hour)))
	observer := &countingObserver{counts: map[Event]int64{}}
	svc, _ := newTestService(store, WithObserver(observer))

	_, err := svc.Accept(context.Background(), "guest", "inv-1")
	if !errors.Is(err, ErrInviteExpired) || !errors.Is(err, apperr.ErrExpired) {
		t.Fatalf("expected ErrInviteExpired, got %v", err)
	}
	if store.invites["inv-1"].Status != StatusExpired {
		t.Fatalf("expected expired persisted, got %q", store.invites["inv-1"].Status)
	}
	if store.memberCount("trip-1", "guest") != 0 {
		t.Fatalf("expected no membership")
	}
	if observer.counts[EventExpired] != 1 {
		t.Fatalf("expected one expiry event, got %d", observer.counts[EventExpired])
	}

	_, err = svc.Accept(context.Background(), "guest", "inv-1")
	if !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending on retry, got %v", err)
	}
}

func TestDeclineExpiredPersistsExpiry(t *testing.T) {
	store := newFakeStore()
	seedInvite(store, "inv-1", "guest", StatusPending, timePtr(baseTime.Add(-time.Second)))
	svc, _ := newTestService(store)

	_, err := svc.Decline(context.Background(), "guest", "inv-1")
	if !errors.Is(err, ErrInviteExpired) {
		t.Fatalf("expected ErrInviteExpired, got %v", err)
	}
	if store.invites["inv-1"].Status != StatusExpired {
		t.Fatalf("expected expired persisted")
	}
}

// Scenario C.
func TestAcceptedInviteNeverReportsExpired(t *testing.T) {
	store := newFakeStore()
	seedInvite(store, "inv-1", "guest", StatusAccepted, timePtr(baseTime.Add(-24*time.Hour)))
	svc, _ := newTestService(store)

	if store.invites["inv-1"].IsExpired(baseTime) {
		t.Fatalf("accepted invite must not be expired")
	}
	changed, err := svc.MarkExpired(context.Background(), "inv-1")
	if err != nil || changed {
		t.Fatalf("expected no change, got %v %v", changed, err)
	}
	if store.invites["inv-1"].Status != StatusAccepted {
		t.Fatalf("expected status untouched")
	}
}

func TestDecline(t *testing.T) {
	store := newFakeStore()
	seedInvite(store, "inv-1", "guest", StatusPending, nil)
	svc, _ := newTestService(store)

	declined, err := svc.Decline(context.Background(), "guest", "inv-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if declined.Status != StatusDeclined || declined.RespondedAt == nil {
		t.Fatalf("expected declined, got %+v", declined)
	}
	if store.memberCount("trip-1", "guest") != 0 {
		t.Fatalf("decline must not create membership")
	}
}

func TestRespondRequiresInvitee(t *testing.T) {
	store := newFakeStore()
	seedInvite(store, "inv-1", "guest", StatusPending, nil)
	svc, _ := newTestService(store)

	if _, err := svc.Accept(context.Background(), "owner", "inv-1"); !errors.Is(err, ErrNotInvitee) {
		t.Fatalf("expected ErrNotInvitee, got %v", err)
	}
	if _, err := svc.Decline(context.Background(), "other", "inv-1"); !errors.Is(err, ErrNotInvitee) {
		t.Fatalf("expected ErrNotInvitee, got %v", err)
	}
	if store.invites["inv-1"].Status != StatusPending {
		t.Fatalf("expected invite untouched")
	}
	if _, err := svc.Accept(context.Background(), "guest", "missing"); !errors.Is(err, ErrInviteNotFound) {
		t.Fatalf("expected ErrInviteNotFound, got %v", err)
	}
}

func TestTerminalStatesRejectTransitions(t *testing.T) {
	past := timePtr(baseTime.Add(-time.Hour))
	for _, status := range []Status{StatusAccepted, StatusDeclined, StatusExpired} {
		store := newFakeStore()
		seedInvite(store, "inv-1", "guest", status, past)
		svc, _ := newTestService(store)
		ctx := context.Background()

		if _, err := svc.Accept(ctx, "guest", "inv-1"); !errors.Is(err, apperr.ErrInvalidState) {
			t.Fatalf("%s accept: expected invalid state, got %v", status, err)
		}
		if _, err := svc.Decline(ctx, "guest", "inv-1"); !errors.Is(err, apperr.ErrInvalidState) {
			t.Fatalf("%s decline: expected invalid state, got %v", status, err)
		}
		if err := svc.Cancel(ctx, "owner", "inv-1"); !errors.Is(err, apperr.ErrInvalidState) {
			t.Fatalf("%s cancel: expected invalid state, got %v", status, err)
		}
		if store.invites["inv-1"].Status != status {
			t.Fatalf("%s: status changed to %q", status, store.invites["inv-1"].Status)
		}
	}
}

func TestMarkExpiredIsIdempotent(t *testing.T) {
	store := newFakeStore()
	seedInvite(store, "inv-1", "guest", StatusPending, timePtr(baseTime.Add(-time.Minute)))
	svc, _ := newTestService(store)

	first, err := svc.MarkExpired(context.Background(), "inv-1")
	if err != nil || !first {
		t.Fatalf("expected first call to expire, got %v %v", first, err)
	}
	second, err := svc.MarkExpired(context.Background(), "inv-1")
	if err != nil || second {
		t.Fatalf("expected second call to report false, got %v %v", second, err)
	}
	if store.invites["inv-1"].Status != StatusExpired {
		t.Fatalf("expected expired")
	}
}

func TestMarkExpiredLeavesFreshInvite(t *testing.T) {
	store := newFakeStore()
	seedInvite(store, "inv-1", "guest", StatusPending, timePtr(baseTime.Add(time.Hour)))
	svc, clk := newTestService(store)

	changed, _ := svc.MarkExpired(context.Background(), "inv-1")
	if changed {
		t.Fatalf("fresh invite must not expire")
	}

	clk.Advance(2 * time.Hour)
	changed, _ = svc.MarkExpired(context.Background(), "inv-1")
	if !changed {
		t.Fatalf("expected expiry once the deadline passed")
	}
}

func TestConcurrentMarkExpiredConverges(t *testing.T) {
	store := newFakeStore()
	seedInvite(store, "inv-1", "guest", StatusPending, timePtr(baseTime.Add(-time.Minute)))
	svc, _ := newTestService(store)

	const workers = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	changed := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := svc.MarkExpired(context.Background(), "inv-1")
			if err != nil {
				t.Errorf("unexpected error %v", err)
				return
			}
			if ok {
				mu.Lock()
				changed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if changed != 1 {
		t.Fatalf("expected exactly one caller to expire, got %d", changed)
	}
	if store.invites["inv-1"].Status != StatusExpired {
		t.Fatalf("expected expired")
	}
}

func TestConcurrentAcceptCreatesOneMember(t *testing.T) {
	store := newFakeStore()
	seedInvite(store, "inv-1", "guest", StatusPending, nil)
	svc, _ := newTestService(store)

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Accept(context.Background(), "guest", "inv-1")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrNotPending):
		default:
			t.Fatalf("unexpected error %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected one successful accept, got %d", succeeded)
	}
	if store.memberCount("trip-1", "guest") != 1 {
		t.Fatalf("expected exactly one member row")
	}
}

func TestAcceptWhenAlreadyMember(t *testing.T) {
	store := newFakeStore()
	seedInvite(store, "inv-1", "guest", StatusPending, nil)
	store.members["trip-1|guest"] = trips.Member{TripID: "trip-1", UserID: "guest", Role: trips.RoleMember}
	svc, _ := newTestService(store)

	if _, err := svc.Accept(context.Background(), "guest", "inv-1"); err != nil {
		t.Fatalf("expected accept to succeed, got %v", err)
	}
	if store.memberCount("trip-1", "guest") != 1 {
		t.Fatalf("expected no duplicate member")
	}
}

func TestAcceptLosesToConcurrentExpiry(t *testing.T) {
	store := newFakeStore()
	seedInvite(store, "inv-1", "guest", StatusPending, timePtr(baseTime.Add(time.Minute)))
	svc, _ := newTestService(store)
	svc.repo = &sweepingStore{fakeStore: store, at: baseTime.Add(2 * time.Minute)}

	_, err := svc.Accept(context.Background(), "guest", "inv-1")
	if !errors.Is(err, ErrInviteExpired) {
		t.Fatalf("expected ErrInviteExpired, got %v", err)
	}
	if store.invites["inv-1"].Status != StatusExpired {
		t.Fatalf("expected expired to win, got %q", store.invites["inv-1"].Status)
	}
	if store.memberCount("trip-1", "guest") != 0 {
		t.Fatalf("expected no membership")
	}
}

// sweepingStore lets a sweep running at a later instant expire the invite
// just before the accept update lands.
type sweepingStore struct {
	*fakeStore
	at time.Time
}

func (s *sweepingStore) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(s)
}

func (s *sweepingStore) Resolve(ctx context.Context, inviteID string, status Status, now time.Time) (bool, error) {
	if _, err := s.fakeStore.MarkExpired(ctx, inviteID, s.at); err != nil {
		return false, err
	}
	return s.fakeStore.Resolve(ctx, inviteID, status, now)
}

// Scenario D.
func TestCancel(t *testing.T) {
	store := newFakeStore()
	seedInvite(store, "inv-1", "guest", StatusPending, nil)
	svc, _ := newTestService(store)

	if err := svc.Cancel(context.Background(), "other", "inv-1"); !errors.Is(err, apperr.ErrPermission) {
		t.Fatalf("expected permission error, got %v", err)
	}
	if _, ok := store.invites["inv-1"]; !ok {
		t.Fatalf("expected invite untouched after denied cancel")
	}

	if err := svc.Cancel(context.Background(), "owner", "inv-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := store.invites["inv-1"]; ok {
		t.Fatalf("expected invite deleted")
	}

	if _, err := svc.Create(context.Background(), "owner", "trip-1", CreateInviteInput{UserID: "guest"}); err != nil {
		t.Fatalf("expected re-invite after cancel, got %v", err)
	}
}

func TestResolvedInviteBlocksReinvite(t *testing.T) {
	store := newFakeStore()
	seedInvite(store, "inv-1", "guest", StatusDeclined, nil)
	svc, _ := newTestService(store)

	_, err := svc.Create(context.Background(), "owner", "trip-1", CreateInviteInput{UserID: "guest"})
	if !errors.Is(err, ErrInviteExists) {
		t.Fatalf("expected ErrInviteExists, got %v", err)
	}
}

func TestListPendingExpiresLazily(t *testing.T) {
	store := newFakeStore()
	seedInvite(store, "inv-old", "guest", StatusPending, timePtr(baseTime.Add(-time.Hour)))
	store.trips["trip-2"] = &trips.Trip{ID: "trip-2", OwnerID: "owner"}
	store.invites["inv-new"] = &Invite{ID: "inv-new", TripID: "trip-2", UserID: "guest", InvitedBy: "owner", Status: StatusPending, CreatedAt: baseTime}
	svc, _ := newTestService(store)

	pending, err := svc.ListPending(context.Background(), "guest")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "inv-new" {
		t.Fatalf("expected only the fresh invite, got %+v", pending)
	}
	if store.invites["inv-old"].Status != StatusExpired {
		t.Fatalf("expected overdue invite expired")
	}
}

func TestListSentAndForTrip(t *testing.T) {
	store := newFakeStore()
	seedInvite(store, "inv-1", "guest", StatusPending, nil)
	seedInvite(store, "inv-2", "other", StatusDeclined, nil)
	svc, _ := newTestService(store)
	ctx := context.Background()

	sent, err := svc.ListSent(ctx, "owner")
	if err != nil || len(sent) != 2 {
		t.Fatalf("expected 2 sent invites, got %d %v", len(sent), err)
	}
	if sent, _ := svc.ListSent(ctx, "guest"); len(sent) != 0 {
		t.Fatalf("expected none for non-owner, got %d", len(sent))
	}

	if _, err := svc.ListForTrip(ctx, "guest", "trip-1"); !errors.Is(err, apperr.ErrPermission) {
		t.Fatalf("expected permission error, got %v", err)
	}
	forTrip, err := svc.ListForTrip(ctx, "owner", "trip-1")
	if err != nil || len(forTrip) != 2 {
		t.Fatalf("expected 2 trip invites, got %d %v", len(forTrip), err)
	}
}

func TestGetVisibility(t *testing.T) {
	store := newFakeStore()
	seedInvite(store, "inv-1", "guest", StatusPending, nil)
	svc, _ := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Get(ctx, "guest", "inv-1"); err != nil {
		t.Fatalf("invitee should see invite, got %v", err)
	}
	if _, err := svc.Get(ctx, "owner", "inv-1"); err != nil {
		t.Fatalf("owner should see invite, got %v", err)
	}
	if _, err := svc.Get(ctx, "other", "inv-1"); !errors.Is(err, apperr.ErrPermission) {
		t.Fatalf("expected permission error, got %v", err)
	}
}

func TestSweep(t *testing.T) {
	store := newFakeStore()
	seedInvite(store, "inv-1", "guest", StatusPending, timePtr(baseTime.Add(-time.Hour)))
	seedInvite(store, "inv-2", "other", StatusPending, timePtr(baseTime.Add(time.Hour)))
	observer := &countingObserver{counts: map[Event]int64{}}
	svc, _ := newTestService(store, WithObserver(observer))

	count, err := svc.Sweep(context.Background())
	if err != nil || count != 1 {
		t.Fatalf("expected one expired, got %d %v", count, err)
	}
	if store.invites["inv-2"].Status != StatusPending {
		t.Fatalf("expected fresh invite untouched")
	}
	count, _ = svc.Sweep(context.Background())
	if count != 0 {
		t.Fatalf("expected second sweep to be a no-op, got %d", count)
	}
	if observer.counts[EventExpired] != 1 {
		t.Fatalf("expected one expiry event, got %d", observer.counts[EventExpired])
	}
}
