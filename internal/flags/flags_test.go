package flags

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/cipherlab/internal/clock"
	"github.com/ziadkadry99/cipherlab/internal/db"
	"github.com/ziadkadry99/cipherlab/internal/tour"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func setupRouter(store *Store) chi.Router {
	r := chi.NewRouter()
	RegisterRoutes(r, store)
	return r
}

func TestCompletedUnknownKey(t *testing.T) {
	store := setupTestStore(t)
	done, err := store.Completed(testContext(t), "nope")
	if err != nil {
		t.Fatalf("Completed: %v", err)
	}
	if done {
		t.Error("unknown key reported completed")
	}
}

func TestMarkCompleted(t *testing.T) {
	store := setupTestStore(t)
	ctx := testContext(t)

	if err := store.MarkCompleted(ctx, tour.CipherPageKey); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	first, err := store.Get(ctx, tour.CipherPageKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !first.Completed || first.CompletedAt == nil {
		t.Fatalf("unexpected flag %+v", first)
	}

	if err := store.MarkCompleted(ctx, tour.CipherPageKey); err != nil {
		t.Fatalf("second MarkCompleted: %v", err)
	}
	second, err := store.Get(ctx, tour.CipherPageKey)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CompletedAt.Equal(*first.CompletedAt) {
		t.Errorf("completion time moved from %v to %v", first.CompletedAt, second.CompletedAt)
	}

	done, err := store.Completed(ctx, tour.CipherPageKey)
	if err != nil || !done {
		t.Errorf("Completed = %v, %v", done, err)
	}
}

func TestResetAndList(t *testing.T) {
	store := setupTestStore(t)
	ctx := testContext(t)

	for _, k := range []string{"b", "a", "c"} {
		if err := store.MarkCompleted(ctx, k); err != nil {
			t.Fatal(err)
		}
	}
	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 3 || list[0].Key != "a" || list[2].Key != "c" {
		t.Fatalf("List = %+v", list)
	}

	if err := store.Reset(ctx, "a"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if err := store.Reset(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Reset: got %v, want ErrNotFound", err)
	}

	n, err := store.ResetAll(ctx)
	if err != nil {
		t.Fatalf("ResetAll: %v", err)
	}
	if n != 2 {
		t.Errorf("ResetAll removed %d, want 2", n)
	}
}

func TestStoreBacksTourEngine(t *testing.T) {
	store := setupTestStore(t)
	clk := clock.NewFake(time.Unix(0, 0))
	steps := []tour.Step{{Title: "only", Position: tour.Center}}

	first := tour.New(steps, "k", nil, store, tour.Options{AutoStart: true, Clock: clk})
	if err := first.Mount(testContext(t)); err != nil {
		t.Fatal(err)
	}
	clk.Advance(tour.DefaultStartDelay)
	if !first.Snapshot().Active {
		t.Fatal("fresh tour did not start")
	}
	first.Advance()
	first.Unmount()

	second := tour.New(steps, "k", nil, store, tour.Options{AutoStart: true, Clock: clk})
	if err := second.Mount(testContext(t)); err != nil {
		t.Fatal(err)
	}
	clk.Advance(tour.DefaultStartDelay)
	if second.Snapshot().Active {
		t.Fatal("completed tour started again")
	}
}

func TestRoutes(t *testing.T) {
	store := setupTestStore(t)
	r := setupRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/tours/welcome", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET status = %d", w.Code)
	}
	var f Flag
	json.NewDecoder(w.Body).Decode(&f)
	if f.Completed || f.Key != "welcome" {
		t.Errorf("unexpected flag %+v", f)
	}

	req = httptest.NewRequest(http.MethodPut, "/api/tours/welcome/complete", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT status = %d: %s", w.Code, w.Body.String())
	}

	done, err := store.Completed(testContext(t), "welcome")
	if err != nil || !done {
		t.Fatalf("flag not stored: %v %v", done, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/tours", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var list []Flag
	json.NewDecoder(w.Body).Decode(&list)
	if len(list) != 1 || !list[0].Completed {
		t.Errorf("list = %+v", list)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/tours/welcome", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/tours/welcome", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("second DELETE status = %d, want 404", w.Code)
	}
}
