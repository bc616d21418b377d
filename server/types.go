package server

// SolveResponse is returned by every successful solve.
type SolveResponse struct {
	Solution       []float64 `json:"solution"`
	ObjectiveValue float64   `json:"objective_value"`
	Status         string    `json:"status"`
	Iterations     int       `json:"iterations"`

	// Log is the formatted pivot trace, present when ?trace=true.
	Log string `json:"log,omitempty"`
}

// GraphicalResponse adds the vertex data needed to draw the region.
type GraphicalResponse struct {
	SolveResponse
	Vertices          [][2]float64 `json:"vertices"`
	VertexObjectives  []float64    `json:"vertex_objectives"`
	ChosenVertexIndex int          `json:"chosen_vertex_index"`
	MaybeUnbounded    bool         `json:"maybe_unbounded"`
}

// ErrorResponse is returned on failure.
type ErrorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code"`
	Status string `json:"status,omitempty"`
}

// HealthResponse is returned by GET /v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
