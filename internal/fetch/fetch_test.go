package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestGet_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != DefaultUserAgent {
			t.Errorf("User-Agent = %q, want %q", got, DefaultUserAgent)
		}
		w.Write([]byte("<html>hello</html>"))
	}))
	defer srv.Close()

	c := NewClient(WithBackoff(0))
	page, ok := c.Get(context.Background(), srv.URL)
	if !ok {
		t.Fatal("Get returned ok=false for a healthy server")
	}
	if page.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", page.StatusCode)
	}
	if page.Body != "<html>hello</html>" {
		t.Errorf("Body = %q", page.Body)
	}
}

func TestGet_NonOKStatusIsStillAnAnswer(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(WithBackoff(0))
	page, ok := c.Get(context.Background(), srv.URL)
	if !ok {
		t.Fatal("Get returned ok=false for a 404; status codes are the caller's to judge")
	}
	if page.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", page.StatusCode)
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1 (no retry on non-2xx)", hits.Load())
	}
}

func TestGet_RetriesTransportFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			// Hijack and slam the connection to force a transport error.
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Error("server does not support hijacking")
				return
			}
			conn, _, err := hj.Hijack()
			if err != nil {
				t.Errorf("hijack: %v", err)
				return
			}
			conn.Close()
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	c := NewClient(WithRetries(2), WithBackoff(0))
	page, ok := c.Get(context.Background(), srv.URL)
	if !ok {
		t.Fatal("Get returned ok=false, want recovery on third attempt")
	}
	if page.Body != "recovered" {
		t.Errorf("Body = %q, want recovered", page.Body)
	}
	if hits.Load() != 3 {
		t.Errorf("server hit %d times, want 3", hits.Load())
	}
}

func TestGet_ExhaustedRetriesReturnAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening

	c := NewClient(WithRetries(1), WithBackoff(0))
	if _, ok := c.Get(context.Background(), srv.URL); ok {
		t.Error("Get returned ok=true against a closed server")
	}
}

func TestGet_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("late"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(WithBackoff(0))
	if _, ok := c.Get(ctx, srv.URL); ok {
		t.Error("Get returned ok=true with a cancelled context")
	}
}
