package trips

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"trip-planner-go/internal/domain/access"
	"trip-planner-go/internal/domain/apperr"
)

type fakeTripRepo struct {
	trips   map[string]*Trip
	members map[string]*Member
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{
		trips:   make(map[string]*Trip),
		members: make(map[string]*Member),
	}
}

func memberKey(tripID, userID string) string {
	return tripID + "|" + userID
}

func (r *fakeTripRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeTripRepo) GetTrip(ctx context.Context, tripID string) (*Trip, error) {
	trip, ok := r.trips[tripID]
	if !ok {
		return nil, ErrTripNotFound
	}
	copied := *trip
	return &copied, nil
}

func (r *fakeTripRepo) ListTripsForUser(ctx context.Context, userID string, filter ListFilter) ([]Trip, int64, error) {
	result := make([]Trip, 0)
	for _, trip := range r.trips {
		if trip.OwnerID == userID {
			result = append(result, *trip)
			continue
		}
		if _, ok := r.members[memberKey(trip.ID, userID)]; ok {
			result = append(result, *trip)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, int64(len(result)), nil
}

func (r *fakeTripRepo) CreateTrip(ctx context.Context, trip *Trip) error {
	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = time.Now().UTC()
	}
	copied := *trip
	r.trips[trip.ID] = &copied
	return nil
}

func (r *fakeTripRepo) UpdateTrip(ctx context.Context, trip *Trip) error {
	if _, ok := r.trips[trip.ID]; !ok {
		return ErrTripNotFound
	}
	copied := *trip
	r.trips[trip.ID] = &copied
	return nil
}

func (r *fakeTripRepo) DeleteTrip(ctx context.Context, tripID string) (bool, error) {
	if _, ok := r.trips[tripID]; !ok {
		return false, nil
	}
	delete(r.trips, tripID)
	for key, member := range r.members {
		if member.TripID == tripID {
			delete(r.members, key)
		}
	}
	return true, nil
}

func (r *fakeTripRepo) GetMember(ctx context.Context, tripID, userID string) (*Member, error) {
	member, ok := r.members[memberKey(tripID, userID)]
	if !ok {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

func (r *fakeTripRepo) ListMembers(ctx context.Context, tripID string) ([]MemberProfile, error) {
	result := make([]MemberProfile, 0)
	for _, member := range r.members {
		if member.TripID == tripID {
			result = append(result, MemberProfile{UserID: member.UserID, Role: member.Role, JoinedAt: member.JoinedAt})
		}
	}
	return result, nil
}

func (r *fakeTripRepo) EnsureMember(ctx context.Context, member *Member) (bool, error) {
	key := memberKey(member.TripID, member.UserID)
	if existing, ok := r.members[key]; ok {
		*member = *existing
		return false, nil
	}
	if member.JoinedAt.IsZero() {
		member.JoinedAt = time.Now().UTC()
	}
	copied := *member
	r.members[key] = &copied
	return true, nil
}

func (r *fakeTripRepo) TripOwnerID(ctx context.Context, tripID string) (string, error) {
	trip, ok := r.trips[tripID]
	if !ok {
		return "", ErrTripNotFound
	}
	return trip.OwnerID, nil
}

func (r *fakeTripRepo) IsMember(ctx context.Context, tripID, userID string) (bool, error) {
	_, ok := r.members[memberKey(tripID, userID)]
	return ok, nil
}

func newTestService(repo *fakeTripRepo) *Service {
	return NewService(repo, access.NewAuthorizer(repo, nil, 0))
}

func date(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func seedTrip(repo *fakeTripRepo, id, ownerID string) {
	repo.trips[id] = &Trip{ID: id, Title: "Trip", Destination: "Example", StartDate: date("2026-07-01"), EndDate: date("2026-07-14"), OwnerID: ownerID}
	repo.members[memberKey(id, ownerID)] = &Member{TripID: id, UserID: ownerID, Role: RoleOwner}
}

func TestCreateTripCreatesOwnerMembership(t *testing.T) {
	repo := newFakeTripRepo()
	svc := newTestService(repo)

	trip, err := svc.CreateTrip(context.Background(), "owner", CreateTripInput{
		Title:       "  Alps  ",
		Destination: "Chamonix",
		StartDate:   date("2026-07-01"),
		EndDate:     date("2026-07-14"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if trip.Title != "Alps" {
		t.Fatalf("expected trimmed title, got %q", trip.Title)
	}
	if trip.OwnerID != "owner" {
		t.Fatalf("expected owner, got %q", trip.OwnerID)
	}
	member, ok := repo.members[memberKey(trip.ID, "owner")]
	if !ok {
		t.Fatalf("expected owner membership")
	}
	if member.Role != RoleOwner {
		t.Fatalf("expected owner role, got %q", member.Role)
	}
}

func TestCreateTripRejectsInvertedDates(t *testing.T) {
	repo := newFakeTripRepo()
	svc := newTestService(repo)

	_, err := svc.CreateTrip(context.Background(), "owner", CreateTripInput{
		Title:       "Trip",
		Destination: "Example",
		StartDate:   date("2026-07-14"),
		EndDate:     date("2026-07-01"),
	})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation kind, got %v", err)
	}
	if len(repo.trips) != 0 || len(repo.members) != 0 {
		t.Fatalf("expected nothing persisted")
	}
}

func TestCreateTripSameDayAllowed(t *testing.T) {
	svc := newTestService(newFakeTripRepo())
	_, err := svc.CreateTrip(context.Background(), "owner", CreateTripInput{
		Title: "Day trip", Destination: "Beach", StartDate: date("2026-07-01"), EndDate: date("2026-07-01"),
	})
	if err != nil {
		t.Fatalf("expected same-day trip to be valid, got %v", err)
	}
}

func TestCreateTripRequiresFields(t *testing.T) {
	svc := newTestService(newFakeTripRepo())
	cases := []struct {
		input CreateTripInput
		want  error
	}{
		{CreateTripInput{Destination: "X", StartDate: date("2026-07-01"), EndDate: date("2026-07-02")}, ErrTitleRequired},
		{CreateTripInput{Title: "X", StartDate: date("2026-07-01"), EndDate: date("2026-07-02")}, ErrDestinationRequired},
		{CreateTripInput{Title: "X", Destination: "Y"}, ErrDatesRequired},
	}
	for _, tc := range cases {
		if _, err := svc.CreateTrip(context.Background(), "owner", tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("expected %v, got %v", tc.want, err)
		}
	}
}

func TestUpdateTripOwnerOnly(t *testing.T) {
	repo := newFakeTripRepo()
	seedTrip(repo, "trip-1", "owner")
	repo.members[memberKey("trip-1", "member")] = &Member{TripID: "trip-1", UserID: "member", Role: RoleMember}
	svc := newTestService(repo)

	title := "Renamed"
	_, err := svc.UpdateTrip(context.Background(), "member", UpdateTripInput{ID: "trip-1", Title: &title})
	if !errors.Is(err, apperr.ErrPermission) {
		t.Fatalf("expected permission error, got %v", err)
	}

	updated, err := svc.UpdateTrip(context.Background(), "owner", UpdateTripInput{ID: "trip-1", Title: &title})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Title != "Renamed" || repo.trips["trip-1"].Title != "Renamed" {
		t.Fatalf("expected title updated")
	}
}

func TestUpdateTripRechecksDates(t *testing.T) {
	repo := newFakeTripRepo()
	seedTrip(repo, "trip-1", "owner")
	svc := newTestService(repo)

	end := date("2026-06-01")
	_, err := svc.UpdateTrip(context.Background(), "owner", UpdateTripInput{ID: "trip-1", EndDate: &end})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
	if !repo.trips["trip-1"].EndDate.Equal(date("2026-07-14")) {
		t.Fatalf("expected stored trip unchanged")
	}
}

func TestGetTripParticipantsOnly(t *testing.T) {
	repo := newFakeTripRepo()
	seedTrip(repo, "trip-1", "owner")
	repo.members[memberKey("trip-1", "member")] = &Member{TripID: "trip-1", UserID: "member", Role: RoleMember}
	svc := newTestService(repo)

	if _, err := svc.GetTrip(context.Background(), "member", "trip-1"); err != nil {
		t.Fatalf("expected member access, got %v", err)
	}
	if _, err := svc.GetTrip(context.Background(), "stranger", "trip-1"); !errors.Is(err, apperr.ErrPermission) {
		t.Fatalf("expected permission error, got %v", err)
	}
	if _, err := svc.GetTrip(context.Background(), "owner", "missing"); !errors.Is(err, ErrTripNotFound) {
		t.Fatalf("expected ErrTripNotFound, got %v", err)
	}
}

func TestDeleteTripCascadesMembers(t *testing.T) {
	repo := newFakeTripRepo()
	seedTrip(repo, "trip-1", "owner")
	repo.members[memberKey("trip-1", "member")] = &Member{TripID: "trip-1", UserID: "member", Role: RoleMember}
	svc := newTestService(repo)

	if err := svc.DeleteTrip(context.Background(), "member", "trip-1"); !errors.Is(err, access.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := svc.DeleteTrip(context.Background(), "owner", "trip-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(repo.trips) != 0 || len(repo.members) != 0 {
		t.Fatalf("expected trip and members removed")
	}
}

func TestListTripsIncludesMemberships(t *testing.T) {
	repo := newFakeTripRepo()
	seedTrip(repo, "trip-1", "owner")
	seedTrip(repo, "trip-2", "other")
	seedTrip(repo, "trip-3", "other")
	repo.members[memberKey("trip-2", "owner")] = &Member{TripID: "trip-2", UserID: "owner", Role: RoleMember}
	svc := newTestService(repo)

	trips, total, err := svc.ListTrips(context.Background(), "owner", ListFilter{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if total != 2 || len(trips) != 2 {
		t.Fatalf("expected 2 trips, got %d", total)
	}
}

func TestNormalizeMemberRole(t *testing.T) {
	trip := &Trip{ID: "trip-1", OwnerID: "owner"}

	owner := Member{TripID: "trip-1", UserID: "owner", Role: RoleMember}
	NormalizeMemberRole(trip, &owner)
	if owner.Role != RoleOwner {
		t.Fatalf("expected owner row forced to owner, got %q", owner.Role)
	}

	other := Member{TripID: "trip-1", UserID: "guest", Role: RoleOwner}
	NormalizeMemberRole(trip, &other)
	if other.Role != RoleMember {
		t.Fatalf("expected non-owner forced to member, got %q", other.Role)
	}
}

func TestListMembersRequiresParticipant(t *testing.T) {
	repo := newFakeTripRepo()
	seedTrip(repo, "trip-1", "owner")
	svc := newTestService(repo)

	members, err := svc.ListMembers(context.Background(), "owner", "trip-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(members))
	}
	if _, err := svc.ListMembers(context.Background(), "stranger", "trip-1"); !errors.Is(err, access.ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

func TestAddMemberIsIdempotent(t *testing.T) {
	repo := newFakeTripRepo()
	seedTrip(repo, "trip-1", "owner")
	svc := newTestService(repo)

	member, created, err := svc.AddMember(context.Background(), "trip-1", "guest")
	if err != nil || !created {
		t.Fatalf("expected created member, got %v %v", created, err)
	}
	if member.Role != RoleMember {
		t.Fatalf("expected member role, got %q", member.Role)
	}

	_, created, err = svc.AddMember(context.Background(), "trip-1", "guest")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created {
		t.Fatalf("expected existing row on second call")
	}
	if len(repo.members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(repo.members))
	}

	owner, created, _ := svc.AddMember(context.Background(), "trip-1", "owner")
	if created || owner.Role != RoleOwner {
		t.Fatalf("expected existing owner row, got %v %q", created, owner.Role)
	}
}
