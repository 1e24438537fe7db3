package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/existflow/clientpulse/internal/model"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newProject(t *testing.T, id, owner string, created time.Time) *model.Project {
	t.Helper()
	budget := 1000.0
	p, err := model.NewProject(id, owner, model.ProjectInput{
		Name:      "Project " + id,
		Client:    "client-1",
		StartDate: model.NewDate(t0),
		Deadline:  model.NewDate(t0.AddDate(0, 1, 0)),
		Budget:    &budget,
		Tasks: []model.Task{
			{Title: "design", AssignedTo: "sam"},
			{Title: "build", Status: model.TaskInProgress, DueDate: model.NewDate(t0.AddDate(0, 0, 10))},
			{Title: "ship"},
		},
	}, created)
	if err != nil {
		t.Fatalf("new project: %v", err)
	}
	return p
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), "mongodb", "mongodb://localhost"); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestRebind(t *testing.T) {
	pg := &Store{driver: DriverPostgres}
	got := pg.rebind("SELECT doc FROM t WHERE id = ? AND owner_id = ?")
	if got != "SELECT doc FROM t WHERE id = $1 AND owner_id = $2" {
		t.Fatalf("postgres rebind: got=%q", got)
	}
	lite := &Store{driver: DriverSQLite}
	if q := "SELECT ?"; lite.rebind(q) != q {
		t.Fatalf("sqlite rebind should be identity")
	}
}

func TestProjectRoundTripKeepsTaskOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := newProject(t, "p-1", "alice", t0)

	if err := s.CreateProject(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := s.GetProject(ctx, "alice", "p-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if len(got.Tasks) != len(p.Tasks) {
		t.Fatalf("tasks: want=%d got=%d", len(p.Tasks), len(got.Tasks))
	}
	for i := range p.Tasks {
		want, have := p.Tasks[i], got.Tasks[i]
		if want.Title != have.Title || want.Status != have.Status || want.AssignedTo != have.AssignedTo {
			t.Fatalf("task %d: want=%+v got=%+v", i, want, have)
		}
		if (want.DueDate == nil) != (have.DueDate == nil) {
			t.Fatalf("task %d due date presence differs", i)
		}
		if want.DueDate != nil && !want.DueDate.Equal(have.DueDate.Time) {
			t.Fatalf("task %d due date: want=%v got=%v", i, want.DueDate, have.DueDate)
		}
	}
	if !got.CreatedAt.Equal(p.CreatedAt) || !got.UpdatedAt.Equal(p.UpdatedAt) {
		t.Fatalf("timestamps: want=%v/%v got=%v/%v", p.CreatedAt, p.UpdatedAt, got.CreatedAt, got.UpdatedAt)
	}
	if got.Client != nil {
		t.Fatalf("client snapshot must not be stored")
	}
}

func TestUpdateAdvancesUpdatedAt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	// frozen clock: every save must still move forward
	s.SetClock(func() time.Time { return t0 })

	p := newProject(t, "p-1", "alice", t0)
	if err := s.CreateProject(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	prev := p.UpdatedAt
	for i := 0; i < 3; i++ {
		p.Notes = fmt.Sprintf("rev %d", i)
		if err := s.UpdateProject(ctx, p); err != nil {
			t.Fatalf("update: %v", err)
		}
		if !p.UpdatedAt.After(prev) {
			t.Fatalf("updatedAt did not advance: prev=%v got=%v", prev, p.UpdatedAt)
		}
		prev = p.UpdatedAt
	}

	got, err := s.GetProject(ctx, "alice", "p-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.UpdatedAt.Equal(prev) || got.Notes != "rev 2" {
		t.Fatalf("stored: updatedAt=%v notes=%q", got.UpdatedAt, got.Notes)
	}
}

func TestUpdateMissingReturnsNotFound(t *testing.T) {
	s := openTestStore(t)
	p := newProject(t, "ghost", "alice", t0)
	if err := s.UpdateProject(context.Background(), p); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got=%v", err)
	}
}

func TestOwnerScoping(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := newProject(t, "p-1", "alice", t0)
	if err := s.CreateProject(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := s.GetProject(ctx, "mallory", "p-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other owner get: want ErrNotFound, got=%v", err)
	}
	if err := s.DeleteProject(ctx, "mallory", "p-1"); err != nil {
		t.Fatalf("other owner delete: %v", err)
	}
	if _, err := s.GetProject(ctx, "alice", "p-1"); err != nil {
		t.Fatalf("project should survive foreign delete: %v", err)
	}
	list, total, err := s.ListProjects(ctx, "mallory", Page{})
	if err != nil || total != 0 || len(list) != 0 {
		t.Fatalf("other owner list: total=%d len=%d err=%v", total, len(list), err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := newProject(t, "p-1", "alice", t0)
	if err := s.CreateProject(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := s.DeleteProject(ctx, "alice", "p-1"); err != nil {
			t.Fatalf("delete %d: %v", i, err)
		}
	}
	if _, err := s.GetProject(ctx, "alice", "p-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound after delete, got=%v", err)
	}
}

func TestListPagination(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		p := newProject(t, fmt.Sprintf("p-%d", i), "alice", t0.Add(time.Duration(i)*time.Minute))
		if err := s.CreateProject(ctx, p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	page, total, err := s.ListProjects(ctx, "alice", Page{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 {
		t.Fatalf("total: want=5 got=%d", total)
	}
	if len(page) != 2 || page[0].ID != "p-2" || page[1].ID != "p-3" {
		t.Fatalf("page: got=%v", ids(page))
	}
}

func TestPageNormalize(t *testing.T) {
	tests := []struct {
		in, want Page
	}{
		{Page{}, Page{Limit: DefaultPageLimit}},
		{Page{Limit: 1000, Offset: -4}, Page{Limit: MaxPageLimit}},
		{Page{Limit: 10, Offset: 20}, Page{Limit: 10, Offset: 20}},
	}
	for _, tt := range tests {
		if got := tt.in.Normalize(); got != tt.want {
			t.Fatalf("Normalize(%+v): want=%+v got=%+v", tt.in, tt.want, got)
		}
	}
}

func TestClientsByIDs(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for _, id := range []string{"c-1", "c-2"} {
		c := &model.Client{ID: id, OwnerID: "alice", Name: "Client " + id, CreatedAt: t0, UpdatedAt: t0}
		if err := s.CreateClient(ctx, c); err != nil {
			t.Fatalf("create client: %v", err)
		}
	}

	got, err := s.GetClientsByIDs(ctx, "alice", []string{"c-1", "c-2", "c-missing"})
	if err != nil {
		t.Fatalf("by ids: %v", err)
	}
	if len(got) != 2 || got["c-1"].Name != "Client c-1" {
		t.Fatalf("clients: %+v", got)
	}

	empty, err := s.GetClientsByIDs(ctx, "alice", nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty ids: %v %v", empty, err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	u := &model.User{ID: "u-1", Email: "ada@example.com", PasswordHash: "hash", CreatedAt: t0}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}

	dup := &model.User{ID: "u-2", Email: "ada@example.com", PasswordHash: "hash", CreatedAt: t0}
	if err := s.CreateUser(ctx, dup); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("want ErrDuplicate, got=%v", err)
	}

	got, err := s.GetUserByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.ID != "u-1" || got.PasswordHash != "hash" || !got.CreatedAt.Equal(t0) {
		t.Fatalf("user: %+v", got)
	}
	if _, err := s.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got=%v", err)
	}
}

func ids(ps []*model.Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}
