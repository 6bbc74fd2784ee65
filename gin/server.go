// Package gin serves menus, facilities and allergens as JSON over HTTP.
package gin

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/mensa"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// Server exposes the mensa services as a JSON API:
//
//	GET /menu?mensa=191&color=green&tag=vegan&max_price=3.50&allergen=22a&date=2026-10-16
//	GET /codes?pattern=hu
//	GET /allergens
type Server struct {
	MenuService     mensa.MenuService
	FacilityService mensa.FacilityService
	AllergenService mensa.AllergenService

	logger *slog.Logger
	engine *gin.Engine
}

// NewServer creates a Server and registers its routes.
func NewServer(menus mensa.MenuService, facilities mensa.FacilityService, allergens mensa.AllergenService, logger *slog.Logger) *Server {
	s := &Server{
		MenuService:     menus,
		FacilityService: facilities,
		AllergenService: allergens,
		logger:          logger,
		engine:          gin.New(),
	}

	s.engine.Use(gin.Recovery(), requestID(), s.logRequests(), cors())
	s.engine.GET("/menu", s.handleMenu)
	s.engine.GET("/codes", s.handleCodes)
	s.engine.GET("/allergens", s.handleAllergens)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// requestID propagates the caller's request ID or assigns a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(RequestIDHeader, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		begin := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", c.Writer.Status(),
			"duration", time.Since(begin),
			"request_id", c.GetString(RequestIDHeader),
		)
	}
}

// cors allows every origin to read responses.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Next()
	}
}
