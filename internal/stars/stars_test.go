package stars

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ziadkadry99/cipherlab/internal/clock"
)

func TestCountCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/repos/acme/cipherlab" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"stargazers_count": 42}`))
	}))
	defer srv.Close()

	clk := clock.NewFake(time.Unix(0, 0))
	c := New("acme/cipherlab", WithBaseURL(srv.URL+"/"), WithClock(clk), WithTTL(time.Minute))

	n, ok := c.Count(testContext(t))
	if !ok || n != 42 {
		t.Fatalf("Count = %d, %v", n, ok)
	}
	c.Count(testContext(t))
	if hits.Load() != 1 {
		t.Errorf("hits = %d, want 1", hits.Load())
	}

	clk.Advance(2 * time.Minute)
	c.Count(testContext(t))
	if hits.Load() != 2 {
		t.Errorf("hits = %d after expiry, want 2", hits.Load())
	}
}

func TestCountFailureIsUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer srv.Close()

	c := New("acme/cipherlab", WithBaseURL(srv.URL))
	if n, ok := c.Count(testContext(t)); ok || n != 0 {
		t.Errorf("Count = %d, %v; want 0, false", n, ok)
	}
}

func TestCountKeepsLastValueOnFailure(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"stargazers_count": 7}`))
	}))
	defer srv.Close()

	clk := clock.NewFake(time.Unix(0, 0))
	c := New("acme/cipherlab", WithBaseURL(srv.URL), WithClock(clk), WithTTL(time.Second))
	c.Count(testContext(t))

	fail.Store(true)
	clk.Advance(time.Hour)
	if n, ok := c.Count(testContext(t)); !ok || n != 7 {
		t.Errorf("Count = %d, %v; want 7, true", n, ok)
	}
}

func TestInvalidRepo(t *testing.T) {
	c := New("not-a-repo", WithBaseURL("http://127.0.0.1:0"))
	if _, ok := c.Count(testContext(t)); ok {
		t.Error("invalid repo reported a count")
	}
}

func TestBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := New("acme/cipherlab", WithBaseURL(srv.URL))
	if _, ok := c.Count(testContext(t)); ok {
		t.Error("bad JSON reported a count")
	}
}
