package category

import (
	"github.com/go-playground/validator/v10"

	errs "github.com/matzehuels/cattree/pkg/errors"
)

// requestValidate is shared by all request payloads.
var requestValidate = validator.New(validator.WithRequiredStructEnabled())

// CreateRequest is the body of POST /categories.
type CreateRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	Type        string `json:"type,omitempty" validate:"max=64"`
}

// Validate checks the payload before it is sent to the backend.
func (r CreateRequest) Validate() error {
	if err := requestValidate.Struct(r); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid create request")
	}
	return nil
}

// UpdateRequest is the body of PUT /categories/{id}. Nil fields are left
// unchanged by the backend.
type UpdateRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitnil,min=1,max=120"`
	Description *string `json:"description,omitempty" validate:"omitnil,max=2000"`
	Type        *string `json:"type,omitempty" validate:"omitnil,max=64"`
}

// IsEmpty reports whether the request changes nothing.
func (r UpdateRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil && r.Type == nil
}

// Validate checks the payload before it is sent to the backend.
// An update must change at least one field.
func (r UpdateRequest) Validate() error {
	if r.IsEmpty() {
		return errs.New(errs.ErrCodeInvalidInput, "update request changes no fields")
	}
	if err := requestValidate.Struct(r); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid update request")
	}
	return nil
}
