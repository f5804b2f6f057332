package queue

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/apperr"
	"github.com/hms/hms/internal/platform/auth"
)

type mockRepo struct {
	entries map[uuid.UUID]*Entry
	writes  int
}

func newMockRepo() *mockRepo {
	return &mockRepo{entries: make(map[uuid.UUID]*Entry)}
}

func (m *mockRepo) Create(_ context.Context, e *Entry) error {
	e.ID = uuid.New()
	cp := *e
	m.entries[e.ID] = &cp
	m.writes++
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Entry, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "queue entry %s not found", id)
	}
	cp := *e
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, e *Entry) error {
	if _, ok := m.entries[e.ID]; !ok {
		return apperr.New(apperr.NotFound, "queue entry %s not found", e.ID)
	}
	cp := *e
	m.entries[e.ID] = &cp
	m.writes++
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.entries[id]; !ok {
		return apperr.New(apperr.NotFound, "queue entry %s not found", id)
	}
	delete(m.entries, id)
	m.writes++
	return nil
}

func (m *mockRepo) List(_ context.Context, f Filter, limit, offset int) ([]*Entry, int, error) {
	all := m.filtered(f)
	total := len(all)
	if offset > len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (m *mockRepo) ListAll(_ context.Context, f Filter) ([]*Entry, error) {
	return m.filtered(f), nil
}

func (m *mockRepo) DeleteByVisit(_ context.Context, visitID uuid.UUID) (int, error) {
	var n int
	for id, e := range m.entries {
		if e.VisitID == visitID {
			delete(m.entries, id)
			n++
		}
	}
	if n > 0 {
		m.writes++
	}
	return n, nil
}

func (m *mockRepo) filtered(f Filter) []*Entry {
	var out []*Entry
	for _, e := range m.entries {
		if f.VisitID != nil && e.VisitID != *f.VisitID {
			continue
		}
		if f.Department != "" && e.Department != f.Department {
			continue
		}
		if f.Priority != "" && e.Priority != f.Priority {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	// Same ordering contract as the real repository.
	sort.Slice(out, func(i, j int) bool {
		return out[i].ArrivalTime.After(out[j].ArrivalTime)
	})
	return out
}

type stubVisits struct {
	known map[uuid.UUID]bool
}

func (s *stubVisits) VisitExists(_ context.Context, id uuid.UUID) error {
	if !s.known[id] {
		return apperr.New(apperr.NotFound, "visit %s not found", id)
	}
	return nil
}

func testActor() auth.ActingUser {
	return auth.ActingUser{ID: uuid.New(), Role: auth.RoleNurse}
}

func newTestService(visitIDs ...uuid.UUID) (*Service, *mockRepo) {
	repo := newMockRepo()
	known := make(map[uuid.UUID]bool)
	for _, id := range visitIDs {
		known[id] = true
	}
	return NewService(repo, &stubVisits{known: known}), repo
}

func TestCreateDefaults(t *testing.T) {
	visitID := uuid.New()
	svc, _ := newTestService(visitID)
	actor := testActor()

	entry, err := svc.Create(context.Background(), actor, visitID, CreateInput{Department: "cardiology"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if entry.Department != DeptCardiology {
		t.Errorf("department = %q, want %q", entry.Department, DeptCardiology)
	}
	if entry.Priority != PriorityNormal {
		t.Errorf("priority = %q, want %q", entry.Priority, PriorityNormal)
	}
	if entry.Status != StatusWaiting {
		t.Errorf("status = %q, want %q", entry.Status, StatusWaiting)
	}
	if entry.AssignedTo == nil || *entry.AssignedTo != actor.ID {
		t.Errorf("assigned_to = %v, want actor %s", entry.AssignedTo, actor.ID)
	}
	if entry.ArrivalTime.IsZero() {
		t.Error("arrival_time not stamped")
	}
	if entry.VisitID != visitID {
		t.Errorf("visit_id = %s, want %s", entry.VisitID, visitID)
	}
}

func TestCreateRequiresVisit(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Create(context.Background(), testActor(), uuid.Nil, CreateInput{Department: "Triage"})
	if apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("nil visit: got %v, want validation error", err)
	}

	_, err = svc.Create(context.Background(), testActor(), uuid.New(), CreateInput{Department: "Triage"})
	if !apperr.IsNotFound(err) {
		t.Fatalf("unknown visit: got %v, want not found", err)
	}

	if repo.writes != 0 {
		t.Errorf("repo saw %d writes after failed creates, want 0", repo.writes)
	}
}

func TestCreateRejectsUnknownEnums(t *testing.T) {
	visitID := uuid.New()
	svc, repo := newTestService(visitID)

	cases := []CreateInput{
		{Department: "Surgery"},
		{Department: "Triage", Priority: "critical"},
		{Department: "Triage", Status: "done"},
	}
	for _, in := range cases {
		if _, err := svc.Create(context.Background(), testActor(), visitID, in); apperr.KindOf(err) != apperr.Validation {
			t.Errorf("Create(%+v): got %v, want validation error", in, err)
		}
	}
	if repo.writes != 0 {
		t.Errorf("repo saw %d writes after rejected creates, want 0", repo.writes)
	}
}

func TestUpdateAppliesSubset(t *testing.T) {
	visitID := uuid.New()
	svc, _ := newTestService(visitID)
	entry, err := svc.Create(context.Background(), testActor(), visitID, CreateInput{Department: "Triage"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	status := "in progress"
	start := time.Now().UTC()
	updated, err := svc.Update(context.Background(), testActor(), entry.ID, UpdateInput{
		Status:    &status,
		StartTime: &start,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != StatusInProgress {
		t.Errorf("status = %q, want %q", updated.Status, StatusInProgress)
	}
	if updated.StartTime == nil || !updated.StartTime.Equal(start) {
		t.Errorf("start_time = %v, want %v", updated.StartTime, start)
	}
	if updated.Department != DeptTriage {
		t.Errorf("department changed to %q, want untouched %q", updated.Department, DeptTriage)
	}
	if updated.VisitID != visitID {
		t.Errorf("visit_id changed to %s", updated.VisitID)
	}
	if !updated.ArrivalTime.Equal(entry.ArrivalTime) {
		t.Errorf("arrival_time changed from %v to %v", entry.ArrivalTime, updated.ArrivalTime)
	}
}

func TestUpdateRejectsUnknownEnums(t *testing.T) {
	visitID := uuid.New()
	svc, repo := newTestService(visitID)
	entry, err := svc.Create(context.Background(), testActor(), visitID, CreateInput{Department: "Triage"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	writesBefore := repo.writes

	bad := "nonsense"
	for _, in := range []UpdateInput{{Department: &bad}, {Priority: &bad}, {Status: &bad}} {
		if _, err := svc.Update(context.Background(), testActor(), entry.ID, in); apperr.KindOf(err) != apperr.Validation {
			t.Errorf("Update(%+v): got %v, want validation error", in, err)
		}
	}
	if repo.writes != writesBefore {
		t.Error("repo written after rejected updates")
	}

	got, err := svc.Get(context.Background(), entry.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Department != DeptTriage || got.Status != StatusWaiting {
		t.Errorf("entry mutated by rejected updates: %+v", got)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Update(context.Background(), testActor(), uuid.New(), UpdateInput{}); !apperr.IsNotFound(err) {
		t.Errorf("got %v, want not found", err)
	}
}

func TestDelete(t *testing.T) {
	visitID := uuid.New()
	svc, _ := newTestService(visitID)
	entry, err := svc.Create(context.Background(), testActor(), visitID, CreateInput{Department: "Triage"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(context.Background(), testActor(), entry.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), entry.ID); !apperr.IsNotFound(err) {
		t.Errorf("Get after delete: got %v, want not found", err)
	}
	if err := svc.Delete(context.Background(), testActor(), entry.ID); !apperr.IsNotFound(err) {
		t.Errorf("second delete: got %v, want not found", err)
	}
}

func TestListFilters(t *testing.T) {
	visitA, visitB := uuid.New(), uuid.New()
	svc, _ := newTestService(visitA, visitB)
	ctx := context.Background()
	actor := testActor()

	if _, err := svc.Create(ctx, actor, visitA, CreateInput{Department: "Triage"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, actor, visitA, CreateInput{Department: "Cardiology", Priority: "Urgent"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, actor, visitB, CreateInput{Department: "Triage"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, total, err := svc.List(ctx, Filter{VisitID: &visitA}, 20, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 {
		t.Errorf("visit filter total = %d, want 2", total)
	}

	_, total, err = svc.List(ctx, Filter{Department: DeptTriage}, 20, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 {
		t.Errorf("department filter total = %d, want 2", total)
	}

	_, total, err = svc.List(ctx, Filter{VisitID: &visitA, Priority: PriorityUrgent}, 20, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 {
		t.Errorf("combined filter total = %d, want 1", total)
	}
}

func TestListOrdersByArrivalDescending(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &stubVisits{})
	ctx := context.Background()
	visitID := uuid.New()
	base := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)

	// Inserted out of order on purpose.
	for _, offset := range []time.Duration{30 * time.Minute, 0, 45 * time.Minute, 15 * time.Minute} {
		e := &Entry{
			VisitID:     visitID,
			Department:  DeptTriage,
			Priority:    PriorityNormal,
			Status:      StatusWaiting,
			ArrivalTime: base.Add(offset),
		}
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	entries, total, err := svc.List(ctx, Filter{}, 20, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 4 || len(entries) != 4 {
		t.Fatalf("got %d/%d entries, want 4", len(entries), total)
	}
	for i := 1; i < len(entries); i++ {
		if !entries[i-1].ArrivalTime.After(entries[i].ArrivalTime) {
			t.Errorf("entries[%d] arrived %v, not after entries[%d] %v",
				i-1, entries[i-1].ArrivalTime, i, entries[i].ArrivalTime)
		}
	}
}

func TestStats(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &stubVisits{})
	ctx := context.Background()
	visitID := uuid.New()
	base := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)

	startA := base.Add(10 * time.Minute)
	startB := base.Add(20 * time.Minute)
	seed := []*Entry{
		{VisitID: visitID, Department: DeptTriage, Priority: PriorityNormal, Status: StatusCompleted, ArrivalTime: base, StartTime: &startA},
		{VisitID: visitID, Department: DeptTriage, Priority: PriorityUrgent, Status: StatusWaiting, ArrivalTime: base, StartTime: &startB},
		{VisitID: visitID, Department: DeptCardiology, Priority: PriorityNormal, Status: StatusWaiting, ArrivalTime: base},
	}
	for _, e := range seed {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	stats, err := svc.Stats(ctx, Filter{})
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalWaiting != 2 {
		t.Errorf("total_waiting = %d, want 2", stats.TotalWaiting)
	}
	if stats.AverageWaitTimeMinutes != 15 {
		t.Errorf("average_wait_time_minutes = %d, want 15", stats.AverageWaitTimeMinutes)
	}
	if stats.FilteredQueueCount != 3 {
		t.Errorf("filtered_queue_count = %d, want 3", stats.FilteredQueueCount)
	}
	if got := stats.ByDepartment[DeptTriage]; got != 2 {
		t.Errorf("by_department[Triage] = %d, want 2", got)
	}
	if got := stats.ByDepartment[DeptPharmacy]; got != 0 {
		t.Errorf("by_department[Pharmacy] = %d, want 0", got)
	}
	if len(stats.ByDepartment) != 13 || len(stats.ByPriority) != 3 || len(stats.ByStatus) != 7 {
		t.Errorf("breakdown maps incomplete: %d/%d/%d", len(stats.ByDepartment), len(stats.ByPriority), len(stats.ByStatus))
	}
}

func TestStatsEmpty(t *testing.T) {
	svc, _ := newTestService()
	stats, err := svc.Stats(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalWaiting != 0 || stats.AverageWaitTimeMinutes != 0 || stats.FilteredQueueCount != 0 {
		t.Errorf("empty stats = %+v, want zeroes", stats)
	}
	if len(stats.ByStatus) != 7 {
		t.Errorf("by_status has %d keys, want 7", len(stats.ByStatus))
	}
}

func TestStatsScopedFilter(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &stubVisits{})
	ctx := context.Background()
	base := time.Now().UTC()

	visitA, visitB := uuid.New(), uuid.New()
	seed := []*Entry{
		{VisitID: visitA, Department: DeptTriage, Priority: PriorityNormal, Status: StatusWaiting, ArrivalTime: base},
		{VisitID: visitA, Department: DeptEmergency, Priority: PriorityEmergency, Status: StatusInProgress, ArrivalTime: base},
		{VisitID: visitB, Department: DeptTriage, Priority: PriorityNormal, Status: StatusWaiting, ArrivalTime: base},
	}
	for _, e := range seed {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	stats, err := svc.Stats(ctx, Filter{VisitID: &visitA})
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.FilteredQueueCount != 2 {
		t.Errorf("filtered_queue_count = %d, want 2", stats.FilteredQueueCount)
	}
	if stats.TotalWaiting != 1 {
		t.Errorf("total_waiting = %d, want 1", stats.TotalWaiting)
	}
}
