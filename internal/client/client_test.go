package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestStartSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/start" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["map_name"] != "intersection" {
			t.Errorf("map_name = %v", req["map_name"])
		}
		if _, ok := req["run_id"]; ok {
			t.Errorf("interactive start must not carry a run_id")
		}
		json.NewEncoder(w).Encode(map[string]string{"message": "Interactive simulation started with intersection map."})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	msg, err := c.StartSession(context.Background(), "intersection")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if msg == "" {
		t.Errorf("expected a message")
	}
}

func TestRunBenchmarkCarriesRunID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		if req["run_id"] != "intersection_after_ai" || req["ai_mode"] != true {
			t.Errorf("unexpected benchmark request: %v", req)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"avg_travel_time":    40.0,
			"avg_waiting_time":   5.0,
			"vehicles_completed": 120,
			"avg_ev_wait_time":   6.0,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	sum, err := c.RunBenchmark(context.Background(), "intersection", "intersection_after_ai", true)
	if err != nil {
		t.Fatalf("RunBenchmark: %v", err)
	}
	if sum.AvgTravelTime != 40 || sum.VehiclesCompleted != 120 || sum.AvgEVWaitTime != 6 {
		t.Errorf("unexpected summary: %+v", sum)
	}
}

func TestPollStepOptionalPhase(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			json.NewEncoder(w).Encode(map[string]any{"vehicles_we": 3, "vehicles_ns": 5, "current_phase": 2})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	snap, err := c.PollStep(context.Background())
	if err != nil {
		t.Fatalf("PollStep: %v", err)
	}
	if snap.VehiclesWestEast != 3 || snap.VehiclesNorthSouth != 5 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	if snap.CurrentPhase == nil || *snap.CurrentPhase != 2 {
		t.Errorf("current_phase not decoded: %+v", snap.CurrentPhase)
	}

	snap, err = c.PollStep(context.Background())
	if err != nil {
		t.Fatalf("PollStep empty payload: %v", err)
	}
	if snap.CurrentPhase != nil {
		t.Errorf("expected nil phase for maps without signal data")
	}
}

func TestToggleAIReportsServerValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"message": "AI logic has been disabled.", "ai_enabled": false})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	res, err := c.ToggleAI(context.Background())
	if err != nil {
		t.Fatalf("ToggleAI: %v", err)
	}
	if res.Enabled {
		t.Errorf("client must adopt the server-reported value")
	}
}

func TestServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid map name specified"})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.StartSession(context.Background(), "nowhere")
	if err == nil {
		t.Fatalf("expected error")
	}
	var serr *ServiceError
	if !errors.As(err, &serr) {
		t.Fatalf("expected ServiceError, got %T: %v", err, err)
	}
	if serr.Status != http.StatusBadRequest || serr.Message != "Invalid map name specified" {
		t.Errorf("unexpected service error: %+v", serr)
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, time.Second)
	_, err := c.PollStep(context.Background())
	if err == nil {
		t.Fatalf("expected transport error")
	}
	var serr *ServiceError
	if errors.As(err, &serr) {
		t.Fatalf("transport failure must not be a ServiceError: %v", err)
	}
}
