// Package server exposes the solvers over HTTP.
//
// Example requests:
//
//	curl -X POST http://localhost:8080/v1/solve/bigm?trace=true \
//	  -H "Content-Type: application/json" \
//	  -d '{"c":[2,3],"A":[[1,1],[1,0]],"b":[4,3],"sense":"max","constraint_types":["=","<="]}'
//
//	curl -X POST http://localhost:8080/v1/solve/graphical \
//	  -H "Content-Type: application/json" \
//	  -d '{"c":[3,5],"A":[[1,0],[0,2],[3,2]],"b":[4,12,18]}'
package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"q.log/linprog/config"
	"q.log/linprog/simplex"
)

// RegisterRoutes registers the solve and health routes under v1.
func RegisterRoutes(v1 *gin.RouterGroup, h *Handlers) {
	v1.GET("/health", h.HandleHealth)

	solve := v1.Group("/solve")
	solve.POST("/simplex", h.HandleSimplex("simplex", simplex.Standard{}))
	solve.POST("/bigm", h.HandleSimplex("bigm", simplex.BigM{}))
	solve.POST("/minimize", h.HandleSimplex("minimize", simplex.Minimize{}))
	solve.POST("/graphical", h.HandleGraphical)
}

// NewRouter builds the gin engine with recovery, /metrics and /v1 routes.
func NewRouter(cfg config.Config, logger *slog.Logger) *gin.Engine {
	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Server.Debug {
		router.Use(gin.Logger())
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	RegisterRoutes(router.Group("/v1"), NewHandlers(cfg, logger))
	return router
}
