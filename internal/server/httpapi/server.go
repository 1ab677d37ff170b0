// Package httpapi exposes the authentication service over HTTP:
// signup, login, and the token-guarded profile endpoint.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/authgate/internal/logging"
	"github.com/dmitrijs2005/authgate/internal/server/auth"
	"github.com/dmitrijs2005/authgate/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address string
	users   *services.UserService
	issuer  *auth.Issuer
	logger  logging.Logger
	engine  *gin.Engine
}

func NewServer(a string, l logging.Logger, us *services.UserService, issuer *auth.Issuer) *Server {
	s := &Server{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		issuer:  issuer,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	user := r.Group("/user")
	user.POST("/signup", s.signUp)
	user.POST("/login", s.login)
	user.GET("/me", s.requireToken(), s.me)

	s.engine = r
	return s
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{Addr: s.address, Handler: s.engine}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
