package memstore_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dalemusser/academyhub/internal/app/store/memstore"
	"github.com/dalemusser/academyhub/internal/app/store/storeerr"
	"github.com/dalemusser/academyhub/internal/app/system/latency"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type item struct {
	ID   primitive.ObjectID
	Name string
	Tags []string
}

func newCollection() *memstore.Collection[item] {
	return memstore.New("item",
		func(i item) primitive.ObjectID { return i.ID },
		func(i item) item {
			i.Tags = append([]string(nil), i.Tags...)
			return i
		},
		latency.None(),
	)
}

func insert(t *testing.T, c *memstore.Collection[item], name string) item {
	t.Helper()
	got, err := c.Insert(context.Background(), item{ID: primitive.NewObjectID(), Name: name})
	if err != nil {
		t.Fatalf("Insert(%q) failed: %v", name, err)
	}
	return got
}

func TestCollection_AllPreservesInsertionOrder(t *testing.T) {
	c := newCollection()
	names := []string{"c", "a", "b"}
	for _, n := range names {
		insert(t, c, n)
	}

	all, err := c.All(context.Background())
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != len(names) {
		t.Fatalf("len: got %d, want %d", len(all), len(names))
	}
	for i, n := range names {
		if all[i].Name != n {
			t.Errorf("all[%d]: got %q, want %q", i, all[i].Name, n)
		}
	}
}

func TestCollection_InsertRejectsMissingOrDuplicateID(t *testing.T) {
	c := newCollection()
	ctx := context.Background()

	if _, err := c.Insert(ctx, item{Name: "no id"}); !errors.Is(err, storeerr.ErrValidation) {
		t.Errorf("missing id: expected ErrValidation, got %v", err)
	}

	first := insert(t, c, "first")
	if _, err := c.Insert(ctx, item{ID: first.ID, Name: "dup"}); err == nil {
		t.Error("expected error on duplicate identity")
	}
}

func TestCollection_GetNotFound(t *testing.T) {
	c := newCollection()
	_, err := c.Get(context.Background(), primitive.NewObjectID())
	var nf *storeerr.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *NotFoundError, got %v", err)
	}
	if nf.Entity != "item" || nf.Op != "get" {
		t.Errorf("unexpected detail: %+v", nf)
	}
}

func TestCollection_ReturnedRecordsDoNotAliasStore(t *testing.T) {
	c := newCollection()
	ctx := context.Background()
	created, err := c.Insert(ctx, item{ID: primitive.NewObjectID(), Name: "x", Tags: []string{"a"}})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	created.Tags[0] = "mutated"
	got, _ := c.Get(ctx, created.ID)
	if got.Tags[0] != "a" {
		t.Errorf("stored tags changed through returned copy: %v", got.Tags)
	}
}

func TestCollection_UpdateErrorLeavesRecordUnchanged(t *testing.T) {
	c := newCollection()
	ctx := context.Background()
	rec := insert(t, c, "before")

	boom := errors.New("boom")
	_, err := c.Update(ctx, rec.ID, "rename", func(cur item) (item, error) {
		cur.Name = "after"
		return cur, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	got, _ := c.Get(ctx, rec.ID)
	if got.Name != "before" {
		t.Errorf("Name: got %q, want %q", got.Name, "before")
	}
}

func TestCollection_UpdateRejectsIdentityChange(t *testing.T) {
	c := newCollection()
	rec := insert(t, c, "x")
	_, err := c.Update(context.Background(), rec.ID, "rename", func(cur item) (item, error) {
		cur.ID = primitive.NewObjectID()
		return cur, nil
	})
	if !errors.Is(err, storeerr.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestCollection_DeleteKeepsOrderAndIndex(t *testing.T) {
	c := newCollection()
	ctx := context.Background()
	a := insert(t, c, "a")
	b := insert(t, c, "b")
	cc := insert(t, c, "c")

	if err := c.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := c.Delete(ctx, b.ID); !errors.Is(err, storeerr.ErrNotFound) {
		t.Errorf("second Delete: expected ErrNotFound, got %v", err)
	}

	all, _ := c.All(ctx)
	if len(all) != 2 || all[0].ID != a.ID || all[1].ID != cc.ID {
		t.Fatalf("unexpected order after delete: %+v", all)
	}
	if got, err := c.Get(ctx, cc.ID); err != nil || got.Name != "c" {
		t.Errorf("Get after delete: got %+v, %v", got, err)
	}
}

func TestCollection_GetManyReportsMissing(t *testing.T) {
	c := newCollection()
	a := insert(t, c, "a")
	b := insert(t, c, "b")
	ghost := primitive.NewObjectID()

	found, missing := c.GetMany(context.Background(), []primitive.ObjectID{b.ID, ghost, a.ID})
	if len(found) != 2 || found[0].ID != b.ID || found[1].ID != a.ID {
		t.Errorf("found: got %+v", found)
	}
	if len(missing) != 1 || missing[0] != ghost {
		t.Errorf("missing: got %v, want [%v]", missing, ghost)
	}
}

func TestCollection_ConcurrentInsertsAllLand(t *testing.T) {
	c := newCollection()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Insert(context.Background(), item{ID: primitive.NewObjectID(), Name: "n"})
		}()
	}
	wg.Wait()
	if c.Len() != 50 {
		t.Errorf("Len: got %d, want 50", c.Len())
	}
}

func TestCollection_LatencyHookCalledPerOperation(t *testing.T) {
	calls := 0
	c := memstore.New("item",
		func(i item) primitive.ObjectID { return i.ID },
		func(i item) item { return i },
		latency.Func(func(context.Context) { calls++ }),
	)
	ctx := context.Background()
	rec, _ := c.Insert(ctx, item{ID: primitive.NewObjectID()})
	_, _ = c.Get(ctx, rec.ID)
	_, _ = c.All(ctx)
	c.Snapshot()
	c.Peek(rec.ID)

	if calls != 3 {
		t.Errorf("latency calls: got %d, want 3", calls)
	}
}
