package category

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	errs "github.com/matzehuels/cattree/pkg/errors"
)

func ptr(s string) *string { return &s }

func TestCreateRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateRequest
		wantErr bool
	}{
		{"name only", CreateRequest{Name: "Books"}, false},
		{"all fields", CreateRequest{Name: "Books", Description: "Printed", Type: "physical"}, false},
		{"missing name", CreateRequest{Type: "physical"}, true},
		{"name too long", CreateRequest{Name: strings.Repeat("x", 121)}, true},
		{"type too long", CreateRequest{Name: "Books", Type: strings.Repeat("t", 65)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.True(t, errs.Is(err, errs.ErrCodeInvalidInput), "err = %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUpdateRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     UpdateRequest
		wantErr bool
	}{
		{"rename", UpdateRequest{Name: ptr("Books")}, false},
		{"clear description", UpdateRequest{Description: ptr("")}, false},
		{"retype", UpdateRequest{Type: ptr("digital")}, false},
		{"empty", UpdateRequest{}, true},
		{"empty name", UpdateRequest{Name: ptr("")}, true},
		{"long description", UpdateRequest{Description: ptr(strings.Repeat("d", 2001))}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.True(t, errs.Is(err, errs.ErrCodeInvalidInput), "err = %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
