package appointments

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Appointment

	// skipExistsCheck simula una carrera: el check previo no ve la otra cita.
	skipExistsCheck bool
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Appointment{}}
}

func (r *testRepo) Create(ctx context.Context, a Appointment) error {
	for _, cur := range r.byID {
		if cur.IsActive && cur.AnimalTypeID == a.AnimalTypeID && cur.Date.Equal(a.Date) {
			return ErrDuplicate
		}
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Appointment, error) {
	a, ok := r.byID[id]
	if !ok {
		return Appointment{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) ExistsActive(ctx context.Context, date time.Time, animalTypeID int64) (bool, error) {
	if r.skipExistsCheck {
		return false, nil
	}
	for _, a := range r.byID {
		if a.IsActive && a.AnimalTypeID == animalTypeID && a.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (r *testRepo) ListActiveTimestamps(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	out := make([]time.Time, 0)
	for _, a := range r.byID {
		if a.IsActive && !a.Date.Before(from) && a.Date.Before(to) {
			out = append(out, a.Date)
		}
	}
	return out, nil
}

func (r *testRepo) List(ctx context.Context, from, to time.Time) ([]Appointment, error) {
	out := make([]Appointment, 0)
	for _, a := range r.byID {
		if !a.Date.Before(from) && a.Date.Before(to) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *testRepo) Deactivate(ctx context.Context, id string, at time.Time) (Appointment, error) {
	a, ok := r.byID[id]
	if !ok {
		return Appointment{}, ErrNotFound
	}
	a.IsActive = false
	a.UpdatedAt = at
	r.byID[id] = a
	return a, nil
}

type setLookup map[int64]bool

func (l setLookup) Exists(ctx context.Context, id int64) (bool, error) {
	return l[id], nil
}

type failingLookup struct{}

func (failingLookup) Exists(ctx context.Context, id int64) (bool, error) {
	return false, errors.New("db down")
}

type recordingNotifier struct {
	got []Appointment
	err error
}

func (n *recordingNotifier) AppointmentBooked(ctx context.Context, a Appointment) error {
	n.got = append(n.got, a)
	return n.err
}

type recordingObserver struct {
	outcomes []string
}

func (o *recordingObserver) ObserveBooking(outcome string) {
	o.outcomes = append(o.outcomes, outcome)
}

const (
	dog int64 = 1
	cat int64 = 2
)

func newTestService(t *testing.T, repo *testRepo, opts ...Option) *Service {
	t.Helper()
	loc := mustLoc(t, "Europe/Moscow")
	svc := NewService(repo, setLookup{1: true}, setLookup{dog: true, cat: true}, loc, opts...)

	now := time.Date(2030, 3, 20, 12, 0, 0, 0, loc)
	svc.now = func() time.Time { return now }
	return svc
}

// -------------------------
// Tests
// -------------------------

func TestService_Book_DogCatScenario(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	a, err := svc.Book(ctx, BookInput{ClientID: 1, AppointmentDate: "25.03.2030 10:00", AnimalTypeID: dog})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID == "" || !a.IsActive {
		t.Fatalf("unexpected appointment: %+v", a)
	}
	if got := FormatSlot(a.Date, svc.Location()); got != "25.03.2030 10:00" {
		t.Fatalf("unexpected stored date %s", got)
	}

	_, err = svc.Book(ctx, BookInput{ClientID: 1, AppointmentDate: "25.03.2030 10:00", AnimalTypeID: dog})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}

	if _, err := svc.Book(ctx, BookInput{ClientID: 1, AppointmentDate: "25.03.2030 10:00", AnimalTypeID: cat}); err != nil {
		t.Fatalf("other category at same time must succeed: %v", err)
	}

	if len(repo.byID) != 2 {
		t.Fatalf("expected 2 stored appointments, got %d", len(repo.byID))
	}
}

func TestService_Book_PastDate_RegardlessOfOtherFields(t *testing.T) {
	svc := newTestService(t, newTestRepo())

	// cliente y categoría inexistentes: igual gana PastDate
	for _, date := range []string{"20.03.2030 12:00", "20.03.2030 11:59", "01.01.2000 10:00"} {
		_, err := svc.Book(context.Background(), BookInput{ClientID: 99, AppointmentDate: date, AnimalTypeID: 99})
		if !errors.Is(err, ErrPastDate) {
			t.Fatalf("%s: expected ErrPastDate, got %v", date, err)
		}
	}
}

func TestService_Book_InvalidFormat(t *testing.T) {
	svc := newTestService(t, newTestRepo())

	_, err := svc.Book(context.Background(), BookInput{ClientID: 1, AppointmentDate: "2030-03-25T10:00", AnimalTypeID: dog})
	if !errors.Is(err, ErrInvalidDateFormat) {
		t.Fatalf("expected ErrInvalidDateFormat, got %v", err)
	}
}

func TestService_Book_MissingFields(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(t, repo)

	_, err := svc.Book(context.Background(), BookInput{AppointmentDate: "  "})

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, f := range []string{"client", "appointment_date", "animal_type"} {
		if len(ve.Fields[f]) == 0 {
			t.Fatalf("expected %s listed, got %v", f, ve.Fields)
		}
	}
}

func TestService_Book_NotFound(t *testing.T) {
	svc := newTestService(t, newTestRepo())
	ctx := context.Background()

	_, err := svc.Book(ctx, BookInput{ClientID: 42, AppointmentDate: "25.03.2030 10:00", AnimalTypeID: dog})
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Entity != EntityClient {
		t.Fatalf("expected client NotFoundError, got %v", err)
	}

	_, err = svc.Book(ctx, BookInput{ClientID: 1, AppointmentDate: "25.03.2030 10:00", AnimalTypeID: 42})
	if !errors.As(err, &nf) || nf.Entity != EntityAnimalType {
		t.Fatalf("expected animal type NotFoundError, got %v", err)
	}
}

func TestService_Book_LookupFailureIsNotTaxonomy(t *testing.T) {
	loc := mustLoc(t, "Europe/Moscow")
	svc := NewService(newTestRepo(), failingLookup{}, setLookup{dog: true}, loc)
	svc.now = func() time.Time { return time.Date(2030, 3, 20, 12, 0, 0, 0, loc) }

	_, err := svc.Book(context.Background(), BookInput{ClientID: 1, AppointmentDate: "25.03.2030 10:00", AnimalTypeID: dog})
	if err == nil {
		t.Fatalf("expected error")
	}
	if _, _, ok := Describe(err); ok {
		t.Fatalf("infrastructure error must not map to a 400 code: %v", err)
	}
}

func TestService_Book_StorageBackstopMapsToConflict(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	in := BookInput{ClientID: 1, AppointmentDate: "25.03.2030 10:00", AnimalTypeID: dog}
	if _, err := svc.Book(ctx, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	repo.skipExistsCheck = true
	_, err := svc.Book(ctx, in)
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken from storage backstop, got %v", err)
	}
}

func TestService_Book_NotifierFailureDoesNotFailBooking(t *testing.T) {
	n := &recordingNotifier{err: errors.New("broker down")}
	o := &recordingObserver{}
	svc := newTestService(t, newTestRepo(), WithNotifier(n), WithObserver(o))

	a, err := svc.Book(context.Background(), BookInput{ClientID: 1, AppointmentDate: "25.03.2030 10:00", AnimalTypeID: dog})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(n.got) != 1 || n.got[0].ID != a.ID {
		t.Fatalf("notifier not called with booked appointment")
	}

	_, _ = svc.Book(context.Background(), BookInput{ClientID: 1, AppointmentDate: "25.03.2030 10:00", AnimalTypeID: dog})
	if len(o.outcomes) != 2 || o.outcomes[0] != "booked" || o.outcomes[1] != CodeSlotTaken {
		t.Fatalf("unexpected outcomes: %v", o.outcomes)
	}
}

func TestService_FreeSlots_ExcludeBooked_AndDeactivateFrees(t *testing.T) {
	repo := newTestRepo()
	svc := newTestService(t, repo)
	ctx := context.Background()

	before, err := svc.FreeSlots(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, err := svc.Book(ctx, BookInput{ClientID: 1, AppointmentDate: "21.03.2030 10:00", AnimalTypeID: dog})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after, _ := svc.FreeSlots(ctx)
	if len(after) != len(before)-1 {
		t.Fatalf("expected one slot less, got %d vs %d", len(after), len(before))
	}
	for _, s := range after {
		if s.Equal(a.Date) {
			t.Fatalf("booked slot still offered")
		}
	}

	got, err := svc.Deactivate(ctx, a.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IsActive {
		t.Fatalf("expected inactive")
	}

	freed, _ := svc.FreeSlots(ctx)
	if len(freed) != len(before) {
		t.Fatalf("deactivation should free the slot")
	}

	if _, err := svc.Book(ctx, BookInput{ClientID: 1, AppointmentDate: "21.03.2030 10:00", AnimalTypeID: dog}); err != nil {
		t.Fatalf("slot should be bookable again: %v", err)
	}
}

func TestService_Deactivate_NotFound(t *testing.T) {
	svc := newTestService(t, newTestRepo())

	_, err := svc.Deactivate(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDescribe_Codes(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{ErrInvalidDateFormat, CodeInvalidFormat},
		{ErrPastDate, CodePastDate},
		{&NotFoundError{Entity: EntityClient}, CodeNotFound},
		{ErrSlotTaken, CodeSlotTaken},
		{&ValidationError{Fields: map[string][]string{"client": {"x"}}}, CodeValidationError},
	}
	for _, c := range cases {
		code, msg, ok := Describe(c.err)
		if !ok || code != c.code || msg == "" {
			t.Fatalf("Describe(%v) = %q %q %v", c.err, code, msg, ok)
		}
	}
}
