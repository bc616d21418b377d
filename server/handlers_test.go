package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"q.log/linprog/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestRouter(cfg config.Config) *gin.Engine {
	router := gin.New()
	handlers := NewHandlers(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	RegisterRoutes(router.Group("/v1"), handlers)
	return router
}

func post(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const (
	productionBody = `{"c":[3,5],"A":[[1,0],[0,2],[3,2]],"b":[4,12,18],"sense":"max"}`
	equalityBody   = `{"c":[2,3],"A":[[1,1],[1,0]],"b":[4,3],"sense":"max","constraint_types":["=","<="]}`
	infeasibleBody = `{"c":[1,1],"A":[[1,1],[1,1]],"b":[10,5],"constraint_types":["=","<="]}`
)

func TestHandlers_HandleHealth(t *testing.T) {
	router := setupTestRouter(config.Default())

	req, _ := http.NewRequest(http.MethodGet, "/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Status != "ok" || resp.Version != ServiceVersion {
		t.Errorf("unexpected health response %+v", resp)
	}
}

func TestHandlers_HandleSimplex(t *testing.T) {
	router := setupTestRouter(config.Default())

	for _, path := range []string{"/v1/solve/simplex", "/v1/solve/bigm"} {
		w := post(t, router, path, productionBody)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected status %d, got %d: %s", path, http.StatusOK, w.Code, w.Body.String())
		}
		var resp SolveResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if resp.Status != "optimal" {
			t.Errorf("%s: expected status optimal, got %q", path, resp.Status)
		}
		if math.Abs(resp.ObjectiveValue-36) > 1e-9 {
			t.Errorf("%s: expected objective 36, got %v", path, resp.ObjectiveValue)
		}
		if len(resp.Solution) != 2 || math.Abs(resp.Solution[0]-2) > 1e-9 || math.Abs(resp.Solution[1]-6) > 1e-9 {
			t.Errorf("%s: expected solution [2 6], got %v", path, resp.Solution)
		}
		if resp.Log != "" {
			t.Errorf("%s: expected no log without ?trace", path)
		}
	}
}

func TestHandlers_HandleSimplex_Trace(t *testing.T) {
	router := setupTestRouter(config.Default())

	w := post(t, router, "/v1/solve/bigm?trace=true", equalityBody)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var resp SolveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if math.Abs(resp.ObjectiveValue-12) > 1e-9 {
		t.Errorf("expected objective 12, got %v", resp.ObjectiveValue)
	}
	if !strings.Contains(resp.Log, "BASE CHANGE") {
		t.Errorf("expected pivot log, got %q", resp.Log)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestHandlers_HandleSimplex_Minimize(t *testing.T) {
	router := setupTestRouter(config.Default())

	w := post(t, router, "/v1/solve/minimize", `{"c":[1,-2],"A":[[1,1],[0,1]],"b":[4,3]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var resp SolveResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if math.Abs(resp.ObjectiveValue+6) > 1e-9 {
		t.Errorf("expected objective -6, got %v", resp.ObjectiveValue)
	}
}

func TestHandlers_HandleGraphical(t *testing.T) {
	router := setupTestRouter(config.Default())

	w := post(t, router, "/v1/solve/graphical", productionBody)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var resp GraphicalResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Vertices) != 5 {
		t.Errorf("expected 5 vertices, got %v", resp.Vertices)
	}
	if got := resp.Vertices[resp.ChosenVertexIndex]; got != [2]float64{2, 6} {
		t.Errorf("expected chosen vertex (2, 6), got %v", got)
	}
	if len(resp.VertexObjectives) != len(resp.Vertices) || resp.VertexObjectives[resp.ChosenVertexIndex] != 36 {
		t.Errorf("unexpected vertex objectives %v", resp.VertexObjectives)
	}
	if resp.ObjectiveValue != 36 || resp.MaybeUnbounded {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestHandlers_Errors(t *testing.T) {
	router := setupTestRouter(config.Default())

	cases := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
		result string
	}{
		{"MalformedJSON", "/v1/solve/bigm", `{"c":`, http.StatusBadRequest, "INVALID_REQUEST", ""},
		{"MissingC", "/v1/solve/bigm", `{"A":[[1]],"b":[1]}`, http.StatusBadRequest, "INVALID_REQUEST", ""},
		{"BadType", "/v1/solve/bigm", `{"c":[1],"A":[[1]],"b":[1],"constraint_types":["<"]}`, http.StatusBadRequest, "INVALID_REQUEST", ""},
		{"Dimensions", "/v1/solve/bigm", `{"c":[1,1],"A":[[1,1]],"b":[1,2]}`, http.StatusBadRequest, "INVALID_DIMENSIONS", ""},
		{"StandardRejectsEquality", "/v1/solve/simplex", equalityBody, http.StatusBadRequest, "UNSUPPORTED_CONSTRAINTS", ""},
		{"GraphicalThreeVars", "/v1/solve/graphical", `{"c":[1,1,1],"A":[[1,1,1]],"b":[1]}`, http.StatusBadRequest, "UNSUPPORTED_DIMENSION", ""},
		{"Infeasible", "/v1/solve/bigm", infeasibleBody, http.StatusUnprocessableEntity, "INFEASIBLE", "infeasible"},
		{"GraphicalInfeasible", "/v1/solve/graphical", infeasibleBody, http.StatusUnprocessableEntity, "INFEASIBLE", "infeasible"},
		{"Unbounded", "/v1/solve/simplex", `{"c":[1,0],"A":[[1,-1]],"b":[1]}`, http.StatusUnprocessableEntity, "UNBOUNDED", "unbounded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := post(t, router, tc.path, tc.body)
			if w.Code != tc.status {
				t.Fatalf("expected status %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
			var resp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.Code != tc.code {
				t.Errorf("expected code %q, got %q (%s)", tc.code, resp.Code, resp.Error)
			}
			if resp.Status != tc.result {
				t.Errorf("expected status %q, got %q", tc.result, resp.Status)
			}
		})
	}
}

func TestHandlers_IterationLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Simplex.MaxIterations = 1
	router := setupTestRouter(cfg)

	w := post(t, router, "/v1/solve/simplex", productionBody)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}
	if !strings.Contains(w.Body.String(), "ITERATION_LIMIT") {
		t.Errorf("expected ITERATION_LIMIT, got %s", w.Body.String())
	}
}

func TestNewRouter_Metrics(t *testing.T) {
	router := NewRouter(config.Default(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	gin.SetMode(gin.TestMode)

	if w := post(t, router, "/v1/solve/graphical", productionBody); w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), `linprog_solves_total{method="graphical",status="optimal"}`) {
		t.Error("expected linprog_solves_total in /metrics output")
	}
}
