package reporter

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kumareport/internal/kuma"
	"kumareport/internal/models"
)

type fakeFetcher struct {
	page       models.StatusPage
	heartbeats models.HeartbeatData
	pageErr    error
	beatErr    error

	calls []string
}

func (f *fakeFetcher) FetchMonitorList(ctx context.Context, slug string) (models.StatusPage, error) {
	f.calls = append(f.calls, "monitors:"+slug)
	return f.page, f.pageErr
}

func (f *fakeFetcher) FetchHeartbeats(ctx context.Context, slug string) (models.HeartbeatData, error) {
	f.calls = append(f.calls, "heartbeats:"+slug)
	return f.heartbeats, f.beatErr
}

func TestRun_WritesReport(t *testing.T) {
	f := &fakeFetcher{
		page: models.StatusPage{PublicGroupList: []models.PublicGroup{
			{MonitorList: []models.Monitor{{ID: "1", Name: "A"}}},
		}},
		heartbeats: models.HeartbeatData{HeartbeatList: map[models.MonitorID][]models.Heartbeat{
			"1": {{Status: models.Num(1), Ping: models.Num(12)}},
		}},
	}

	var out bytes.Buffer
	if err := Run(context.Background(), f, "main", &out); err != nil {
		t.Fatalf("Run err=%v", err)
	}
	if strings.Join(f.calls, ",") != "monitors:main,heartbeats:main" {
		t.Fatalf("unexpected call order %v", f.calls)
	}
	for _, want := range []string{"- Monitor: A (ID: 1)", "  - Status: UP", "  - Ping: 12 ms", "Summary: 1 monitors, 1 up"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRun_MonitorFetchFailureSkipsHeartbeats(t *testing.T) {
	f := &fakeFetcher{pageErr: &kuma.HTTPError{URL: "x", StatusCode: http.StatusBadGateway}}

	var out bytes.Buffer
	err := Run(context.Background(), f, "main", &out)
	var httpErr *kuma.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if len(f.calls) != 1 {
		t.Fatalf("heartbeat fetch must not start, calls=%v", f.calls)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestRun_HeartbeatFailureWritesNothing(t *testing.T) {
	f := &fakeFetcher{beatErr: &kuma.DecodeError{URL: "x", Err: errors.New("bad json")}}

	var out bytes.Buffer
	err := Run(context.Background(), f, "main", &out)
	var decodeErr *kuma.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestRun_AgainstStatusPageServer(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status-page/main", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"publicGroupList":[{"monitorList":[{"id":1,"name":"A"},{"id":2,"name":"B"}]}]}`))
	})
	mux.HandleFunc("/api/status-page/heartbeat/main", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"heartbeatList":{"1":[{"status":0,"ping":null}],"2":[],"3":[{"status":2,"ping":7}]}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	var out bytes.Buffer
	if err := Run(context.Background(), kuma.NewClient(srv.URL), "main", &out); err != nil {
		t.Fatalf("Run err=%v", err)
	}

	want := strings.Join([]string{
		"",
		"--- Combined Monitor Status ---",
		"- Monitor: A (ID: 1)",
		"  - Status: DOWN",
		"  - Ping: n/a",
		"- Monitor: B (ID: 2) has no heartbeat data.",
		"- Monitor: Unknown Monitor (ID: 3)",
		"  - Status: PENDING/OTHER",
		"  - Ping: 7 ms",
		"Summary: 3 monitors, 0 up, 1 down, 1 pending/other, 1 without data",
		"",
	}, "\n")
	if out.String() != want {
		t.Fatalf("unexpected report:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestRun_ServerErrorProducesNoReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "heartbeat") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"publicGroupList":[]}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := Run(context.Background(), kuma.NewClient(srv.URL), "main", &out)
	var httpErr *kuma.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500 HTTPError, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestRun_TrailingGarbageProducesNoReport(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status-page/main", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"publicGroupList":[{"monitorList":[{"id":1,"name":"A"}]}]}<html>oops</html>`))
	})
	mux.HandleFunc("/api/status-page/heartbeat/main", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"heartbeatList":{"1":[{"status":1,"ping":12}]}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	var out bytes.Buffer
	err := Run(context.Background(), kuma.NewClient(srv.URL), "main", &out)
	var decodeErr *kuma.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestRun_UnusualHeartbeatValuesStillReport(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status-page/main", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"publicGroupList":[{"monitorList":[{"id":1,"name":"A"},{"id":2,"name":"B"},{"id":3,"name":"C"}]}]}`))
	})
	mux.HandleFunc("/api/status-page/heartbeat/main", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"heartbeatList":{"1":[{"status":"pending","ping":4}],"2":[{"status":1.0,"ping":5}],"3":[{"status":1,"ping":"12"}]}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	var out bytes.Buffer
	if err := Run(context.Background(), kuma.NewClient(srv.URL), "main", &out); err != nil {
		t.Fatalf("Run err=%v", err)
	}

	want := strings.Join([]string{
		"",
		"--- Combined Monitor Status ---",
		"- Monitor: A (ID: 1)",
		"  - Status: PENDING/OTHER",
		"  - Ping: 4 ms",
		"- Monitor: B (ID: 2)",
		"  - Status: UP",
		"  - Ping: 5 ms",
		"- Monitor: C (ID: 3)",
		"  - Status: UP",
		"  - Ping: n/a",
		"Summary: 3 monitors, 2 up, 0 down, 1 pending/other, 0 without data",
		"",
	}, "\n")
	if out.String() != want {
		t.Fatalf("unexpected report:\n%s\nwant:\n%s", out.String(), want)
	}
}
