package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/facevault/internal/common"
	"github.com/dmitrijs2005/facevault/internal/server/models"
	"github.com/dmitrijs2005/facevault/internal/server/services"
	"github.com/gorilla/mux"
)

type userResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Birthday  string    `json:"birthday"`
	DateAdded time.Time `json:"date_added"`
}

type embeddingResponse struct {
	ID     int64     `json:"id"`
	UserID int64     `json:"user_id"`
	Vector []float64 `json:"embedding_vector"`
}

type errorResponse struct {
	Detail string       `json:"detail"`
	Fields []fieldError `json:"fields,omitempty"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone,
		Birthday: u.Birthday, DateAdded: u.DateAdded,
	}
}

func toEmbeddingResponse(e *models.Embedding) embeddingResponse {
	return embeddingResponse{ID: e.ID, UserID: e.UserID, Vector: e.Vector}
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(context.Background(), "failed to encode response", "error", err)
	}
}

func (s *HTTPServer) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, errorResponse{Detail: detail})
}

func (s *HTTPServer) writeValidationError(w http.ResponseWriter, errs []fieldError) {
	s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Detail: common.ErrorValidation.Error(),
		Fields: errs,
	})
}

// writeServiceError maps a record-store failure onto an HTTP response.
func (s *HTTPServer) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFoundDetail string) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		s.writeError(w, http.StatusNotFound, notFoundDetail)
	case errors.Is(err, common.ErrorConflict):
		s.writeError(w, http.StatusConflict, "duplicate email or phone")
	default:
		s.logger.Error(r.Context(), err.Error())
		s.writeError(w, http.StatusInternalServerError, common.ErrorInternal.Error())
	}
}

// pathID extracts the numeric id path variable. The route pattern already
// constrains it to digits.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// listBounds parses the skip and limit query parameters, applying the
// defaults when absent. A non-integer value is a validation failure.
func listBounds(r *http.Request) (int, int, []fieldError) {
	skip, limit := services.DefaultSkip, services.DefaultLimit
	var errs []fieldError

	if v := r.URL.Query().Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fieldError{Field: "skip", Message: "must be an integer"})
		} else {
			skip = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fieldError{Field: "limit", Message: "must be an integer"})
		} else {
			limit = n
		}
	}
	return skip, limit, errs
}

func (s *HTTPServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the FaceVault API"})
}

func (s *HTTPServer) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		s.writeValidationError(w, errs)
		return
	}

	u, err := s.users.Create(r.Context(), req.fields())
	if err != nil {
		s.writeServiceError(w, r, err, "User not found")
		return
	}

	s.logger.Info(r.Context(), "user created", "id", u.ID)
	s.writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (s *HTTPServer) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid id")
		return
	}

	u, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "User not found")
		return
	}

	s.writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (s *HTTPServer) handleListUsers(w http.ResponseWriter, r *http.Request) {
	skip, limit, errs := listBounds(r)
	if len(errs) > 0 {
		s.writeValidationError(w, errs)
		return
	}

	result, err := s.users.List(r.Context(), skip, limit)
	if err != nil {
		s.writeServiceError(w, r, err, "User not found")
		return
	}

	out := make([]userResponse, 0, len(result))
	for i := range result {
		out = append(out, toUserResponse(&result[i]))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *HTTPServer) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid id")
		return
	}

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		s.writeValidationError(w, errs)
		return
	}

	u, err := s.users.Update(r.Context(), id, req.fields())
	if err != nil {
		s.writeServiceError(w, r, err, "User not found")
		return
	}

	s.logger.Info(r.Context(), "user updated", "id", u.ID)
	s.writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (s *HTTPServer) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid id")
		return
	}

	u, err := s.users.Delete(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "User not found")
		return
	}

	s.logger.Info(r.Context(), "user deleted", "id", u.ID)
	s.writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (s *HTTPServer) handleCreateEmbedding(w http.ResponseWriter, r *http.Request) {
	var req createEmbeddingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		s.writeValidationError(w, errs)
		return
	}

	e, err := s.embeddings.Create(r.Context(), req.fields())
	if err != nil {
		s.writeServiceError(w, r, err, "Embedding not found")
		return
	}

	s.logger.Info(r.Context(), "embedding created", "id", e.ID)
	s.writeJSON(w, http.StatusOK, toEmbeddingResponse(e))
}

func (s *HTTPServer) handleGetEmbedding(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid id")
		return
	}

	e, err := s.embeddings.GetByID(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "Embedding not found")
		return
	}

	s.writeJSON(w, http.StatusOK, toEmbeddingResponse(e))
}

func (s *HTTPServer) handleListEmbeddings(w http.ResponseWriter, r *http.Request) {
	skip, limit, errs := listBounds(r)
	if len(errs) > 0 {
		s.writeValidationError(w, errs)
		return
	}

	result, err := s.embeddings.List(r.Context(), skip, limit)
	if err != nil {
		s.writeServiceError(w, r, err, "Embedding not found")
		return
	}

	out := make([]embeddingResponse, 0, len(result))
	for i := range result {
		out = append(out, toEmbeddingResponse(&result[i]))
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *HTTPServer) handleUpdateEmbedding(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid id")
		return
	}

	var req createEmbeddingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		s.writeValidationError(w, errs)
		return
	}

	e, err := s.embeddings.Update(r.Context(), id, req.fields())
	if err != nil {
		s.writeServiceError(w, r, err, "Embedding not found")
		return
	}

	s.logger.Info(r.Context(), "embedding updated", "id", e.ID)
	s.writeJSON(w, http.StatusOK, toEmbeddingResponse(e))
}

func (s *HTTPServer) handleDeleteEmbedding(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid id")
		return
	}

	e, err := s.embeddings.Delete(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "Embedding not found")
		return
	}

	s.logger.Info(r.Context(), "embedding deleted", "id", e.ID)
	s.writeJSON(w, http.StatusOK, toEmbeddingResponse(e))
}
