// Package httpapi exposes the booking service over HTTP. Session identity
// travels in an HTTP-only cookie; every authorization failure maps to an
// explicit status, never a dropped request.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Amrit-pandey/airbnb-clone/internal/logging"
	"github.com/Amrit-pandey/airbnb-clone/internal/server/config"
	"github.com/Amrit-pandey/airbnb-clone/internal/server/services"
)

type HTTPServer struct {
	config   *config.Config
	logger   logging.Logger
	users    *services.UserService
	listings *services.ListingService
	bookings *services.BookingService
	uploads  *services.UploadService
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, us *services.UserService,
	ls *services.ListingService, bs *services.BookingService, up *services.UploadService) *HTTPServer {
	return &HTTPServer{
		config:   cfg,
		logger:   l.With("module", "http_server"),
		users:    us,
		listings: ls,
		bookings: bs,
		uploads:  up,
	}
}

// Router assembles the gin engine with all routes and middleware.
func (s *HTTPServer) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.corsMiddleware())
	r.Use(s.sessionMiddleware())

	r.GET("/", s.handleRoot)
	r.POST("/register", s.handleRegister)
	r.POST("/login", s.handleLogin)
	r.POST("/logout", s.handleLogout)
	r.GET("/profile", s.handleProfile)

	r.GET("/places", s.handleListAllPlaces)
	r.GET("/places/:id", s.handleGetPlace)

	authed := r.Group("/", s.requireAuth())
	authed.POST("/places", s.handleCreatePlace)
	authed.PUT("/places", s.handleUpdatePlace)
	authed.GET("/user-places", s.handleUserPlaces)
	authed.POST("/bookings", s.handleCreateBooking)
	authed.GET("/bookings", s.handleMyBookings)
	authed.POST("/upload", s.handleUpload)
	authed.POST("/upload-by-link", s.handleUploadByLink)

	return r
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.config.EndpointAddrHTTP,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.config.EndpointAddrHTTP)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
