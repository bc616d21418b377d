package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"q.log/linprog/config"
	"q.log/linprog/graphical"
	"q.log/linprog/instance"
	"q.log/linprog/model"
	"q.log/linprog/simplex"
)

// ServiceVersion is reported by the health endpoint.
const ServiceVersion = "0.1.0"

// Handlers contains the HTTP handlers.
type Handlers struct {
	cfg    config.Config
	logger *slog.Logger
}

// NewHandlers creates handlers using cfg for solver options.
func NewHandlers(cfg config.Config, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{cfg: cfg, logger: logger}
}

// HandleHealth handles GET /v1/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Version: ServiceVersion})
}

// HandleSimplex returns the handler for POST /v1/solve/{simplex,bigm,minimize}.
//
// Request Body:
//
//	instance.Problem
//
// Query:
//
//	trace=true  include the pivot log in the response
//
// Response:
//
//	200 OK: SolveResponse
//	400 Bad Request: invalid body or constraints unsupported by the method
//	422 Unprocessable Entity: infeasible, unbounded or iteration limit
func (h *Handlers) HandleSimplex(method string, solver simplex.Solver) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := h.logger.With("request_id", requestID(c), "method", method)

		lp, ok := h.bindProblem(c, logger, method)
		if !ok {
			return
		}

		opts := h.cfg.SimplexOptions()
		var trace *simplex.Trace
		if withTrace, _ := strconv.ParseBool(c.Query("trace")); withTrace {
			trace = &simplex.Trace{}
			opts = append(opts, simplex.WithTrace(trace))
		}

		start := time.Now()
		sol, err := solver.Solve(lp, opts...)
		solveDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
		if err != nil {
			h.fail(c, logger, method, err)
			return
		}
		solvesTotal.WithLabelValues(method, sol.Status.String()).Inc()
		simplexIterations.Observe(float64(sol.Iterations))

		resp := toResponse(sol)
		if trace != nil {
			var sb strings.Builder
			if err := trace.Format(&sb); err != nil {
				logger.Warn("Failed to format trace", "error", err)
			}
			resp.Log = sb.String()
		}
		logger.Info("Solved", "objective", sol.Objective, "iterations", sol.Iterations)
		c.JSON(http.StatusOK, resp)
	}
}

// HandleGraphical handles POST /v1/solve/graphical.
//
// Response:
//
//	200 OK: GraphicalResponse
//	400 Bad Request: invalid body or n != 2
//	422 Unprocessable Entity: empty feasible region
func (h *Handlers) HandleGraphical(c *gin.Context) {
	const method = "graphical"
	logger := h.logger.With("request_id", requestID(c), "method", method)

	lp, ok := h.bindProblem(c, logger, method)
	if !ok {
		return
	}

	start := time.Now()
	res, err := graphical.Solve(lp, h.cfg.GraphicalOptions()...)
	solveDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		h.fail(c, logger, method, err)
		return
	}
	solvesTotal.WithLabelValues(method, res.Status.String()).Inc()

	resp := GraphicalResponse{
		SolveResponse:     toResponse(&res.Solution),
		Vertices:          make([][2]float64, len(res.Vertices)),
		VertexObjectives:  make([]float64, len(res.Vertices)),
		ChosenVertexIndex: res.Chosen,
		MaybeUnbounded:    res.MaybeUnbounded,
	}
	for i, v := range res.Vertices {
		resp.Vertices[i] = [2]float64{v.X, v.Y}
		resp.VertexObjectives[i] = v.Objective
	}
	if res.MaybeUnbounded {
		logger.Warn("Feasible region may be unbounded", "vertices", len(res.Vertices))
	}
	logger.Info("Solved", "objective", res.Objective, "vertices", len(res.Vertices))
	c.JSON(http.StatusOK, resp)
}

func (h *Handlers) bindProblem(c *gin.Context, logger *slog.Logger, method string) (*model.LinearProgram, bool) {
	var req instance.Problem
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		solvesTotal.WithLabelValues(method, "error").Inc()
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: describeBindError(err),
			Code:  "INVALID_REQUEST",
		})
		return nil, false
	}
	lp, err := req.LinearProgram()
	if err != nil {
		h.fail(c, logger, method, err)
		return nil, false
	}
	return lp, true
}

func (h *Handlers) fail(c *gin.Context, logger *slog.Logger, method string, err error) {
	httpStatus, code := errorStatus(err)
	resp := ErrorResponse{Error: err.Error(), Code: code}
	label := "error"
	if status, ok := model.StatusOf(err); ok {
		resp.Status = status.String()
		label = resp.Status
	}
	solvesTotal.WithLabelValues(method, label).Inc()
	logger.Info("Solve failed", "error", err, "code", code)
	c.JSON(httpStatus, resp)
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrInvalidDimensions):
		return http.StatusBadRequest, "INVALID_DIMENSIONS"
	case errors.Is(err, model.ErrUnsupportedConstraints):
		return http.StatusBadRequest, "UNSUPPORTED_CONSTRAINTS"
	case errors.Is(err, model.ErrUnsupportedDimension):
		return http.StatusBadRequest, "UNSUPPORTED_DIMENSION"
	case errors.Is(err, model.ErrInfeasible):
		return http.StatusUnprocessableEntity, "INFEASIBLE"
	case errors.Is(err, model.ErrUnbounded):
		return http.StatusUnprocessableEntity, "UNBOUNDED"
	case errors.Is(err, model.ErrCycleGuard):
		return http.StatusUnprocessableEntity, "ITERATION_LIMIT"
	}
	return http.StatusBadRequest, "INVALID_PROBLEM"
}

// describeBindError flattens validator errors into "field: tag" pairs.
func describeBindError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request body: " + err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Namespace()+": "+fe.Tag())
	}
	return "invalid request body: " + strings.Join(parts, ", ")
}

func toResponse(sol *model.Solution) SolveResponse {
	return SolveResponse{
		Solution:       sol.Values,
		ObjectiveValue: sol.Objective,
		Status:         sol.Status.String(),
		Iterations:     sol.Iterations,
	}
}

func requestID(c *gin.Context) string {
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	c.Header("X-Request-ID", id)
	return id
}
