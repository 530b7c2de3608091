package httpapi

import (
	"github.com/dmitrijs2005/facevault/internal/server/services"
)

// fieldError names one violated constraint on one input field.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

const msgRequired = "field required"

// createUserRequest is the body of POST /users/ and PUT /users/{id}. All
// fields must be present; pointer types distinguish an absent field from an
// empty one.
type createUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Birthday *string `json:"birthday"`
}

// validate returns all violated constraints, in field order.
func (r *createUserRequest) validate() []fieldError {
	var errs []fieldError
	if r.Name == nil {
		errs = append(errs, fieldError{Field: "name", Message: msgRequired})
	}
	if r.Email == nil {
		errs = append(errs, fieldError{Field: "email", Message: msgRequired})
	}
	if r.Phone == nil {
		errs = append(errs, fieldError{Field: "phone", Message: msgRequired})
	}
	if r.Birthday == nil {
		errs = append(errs, fieldError{Field: "birthday", Message: msgRequired})
	}
	return errs
}

// fields converts the validated request into service input. Must only be
// called after validate returned no errors.
func (r *createUserRequest) fields() services.UserFields {
	return services.UserFields{
		Name:     *r.Name,
		Email:    *r.Email,
		Phone:    *r.Phone,
		Birthday: *r.Birthday,
	}
}

// createEmbeddingRequest is the body of POST /embeddings/ and
// PUT /embeddings/{id}.
type createEmbeddingRequest struct {
	UserID *int64     `json:"user_id"`
	Vector *[]float64 `json:"embedding_vector"`
}

func (r *createEmbeddingRequest) validate() []fieldError {
	var errs []fieldError
	if r.UserID == nil {
		errs = append(errs, fieldError{Field: "user_id", Message: msgRequired})
	}
	if r.Vector == nil {
		errs = append(errs, fieldError{Field: "embedding_vector", Message: msgRequired})
	}
	return errs
}

func (r *createEmbeddingRequest) fields() services.EmbeddingFields {
	return services.EmbeddingFields{
		UserID: *r.UserID,
		Vector: *r.Vector,
	}
}
