// Package httpapi exposes the record operations as an HTTP JSON API.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/facevault/internal/logging"
	"github.com/dmitrijs2005/facevault/internal/server/models"
	"github.com/dmitrijs2005/facevault/internal/server/services"
	"github.com/gorilla/mux"
)

// UserService is the part of the user service the handlers need.
type UserService interface {
	Create(ctx context.Context, f services.UserFields) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, skip, limit int) ([]models.User, error)
	Update(ctx context.Context, id int64, f services.UserFields) (*models.User, error)
	Delete(ctx context.Context, id int64) (*models.User, error)
}

// EmbeddingService is the part of the embedding service the handlers need.
type EmbeddingService interface {
	Create(ctx context.Context, f services.EmbeddingFields) (*models.Embedding, error)
	GetByID(ctx context.Context, id int64) (*models.Embedding, error)
	List(ctx context.Context, skip, limit int) ([]models.Embedding, error)
	Update(ctx context.Context, id int64, f services.EmbeddingFields) (*models.Embedding, error)
	Delete(ctx context.Context, id int64) (*models.Embedding, error)
}

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address    string
	logger     logging.Logger
	users      UserService
	embeddings EmbeddingService
}

func NewHTTPServer(a string, l logging.Logger, us UserService, es EmbeddingService) (*HTTPServer, error) {
	return &HTTPServer{
		address:    a,
		logger:     l.With("module", "http_server"),
		users:      us,
		embeddings: es,
	}, nil
}

// Router builds the full route table. Collection endpoints keep their
// trailing slash; item endpoints take a numeric id path variable.
func (s *HTTPServer) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestIDMiddleware, s.loggingMiddleware)

	r.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)

	u := r.PathPrefix("/users").Subrouter()
	u.HandleFunc("/", s.handleCreateUser).Methods(http.MethodPost)
	u.HandleFunc("/", s.handleListUsers).Methods(http.MethodGet)
	u.HandleFunc("/{id:[0-9]+}", s.handleGetUser).Methods(http.MethodGet)
	u.HandleFunc("/{id:[0-9]+}", s.handleUpdateUser).Methods(http.MethodPut)
	u.HandleFunc("/{id:[0-9]+}", s.handleDeleteUser).Methods(http.MethodDelete)

	e := r.PathPrefix("/embeddings").Subrouter()
	e.HandleFunc("/", s.handleCreateEmbedding).Methods(http.MethodPost)
	e.HandleFunc("/", s.handleListEmbeddings).Methods(http.MethodGet)
	e.HandleFunc("/{id:[0-9]+}", s.handleGetEmbedding).Methods(http.MethodGet)
	e.HandleFunc("/{id:[0-9]+}", s.handleUpdateEmbedding).Methods(http.MethodPut)
	e.HandleFunc("/{id:[0-9]+}", s.handleDeleteEmbedding).Methods(http.MethodDelete)

	return r
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
