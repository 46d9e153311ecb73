package apierror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestFromValidationError(t *testing.T) {
	validate := validator.New()
	err := validate.Struct(struct {
		Email string `validate:"required,email"`
		Name  string `validate:"min=3"`
	}{Email: "nope", Name: "a"})

	resp := FromValidationError(err)
	if resp.Code() != http.StatusUnprocessableEntity {
		t.Fatalf("Code() = %d, want 422", resp.Code())
	}

	verr, ok := resp.(*ValidationError)
	if !ok {
		t.Fatalf("FromValidationError() returned %T", resp)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("fields = %+v", verr.Fields)
	}
	if verr.Fields[0].Field != "Email" || verr.Fields[0].Rule != "email" {
		t.Errorf("first field = %+v", verr.Fields[0])
	}
	if verr.Fields[1].Rule != "min" || verr.Fields[1].Param != "3" {
		t.Errorf("second field = %+v", verr.Fields[1])
	}
}

func TestFromValidationError_OtherError(t *testing.T) {
	if resp := FromValidationError(errors.New("boom")); resp != MalformedBodyError {
		t.Errorf("FromValidationError() = %v, want MalformedBodyError", resp)
	}
}

func TestSimpleError(t *testing.T) {
	err := NewSimple(http.StatusTeapot, "teapot")
	if err.Code() != http.StatusTeapot || err.Error() != "teapot" {
		t.Errorf("NewSimple() = %+v", err)
	}
}
