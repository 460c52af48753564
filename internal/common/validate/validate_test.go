package validate

import (
	"errors"
	"testing"
)

type sampleRequest struct {
	Title    string `json:"title" validate:"required,max=10"`
	Email    string `json:"email" validate:"required,email"`
	Priority string `json:"priority" validate:"required,oneof=low medium high urgent"`
	Ignored  string `json:"-" validate:"omitempty"`
}

func TestStructValid(t *testing.T) {
	req := sampleRequest{Title: "backup", Email: "ops@example.com", Priority: "high"}
	if err := Struct(req); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestStructFieldMapUsesJSONNames(t *testing.T) {
	req := sampleRequest{Title: "", Email: "not-an-email", Priority: "sideways"}
	err := Struct(req)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var ve *Errors
	if !errors.As(err, &ve) {
		t.Fatalf("expected *validate.Errors, got %T", err)
	}

	if _, ok := ve.Fields["title"]; !ok {
		t.Errorf("expected field key 'title' (json tag), got keys %v", ve.Fields)
	}
	if got := ve.Fields["email"]; got != "must be a valid email address" {
		t.Errorf("unexpected email message: %q", got)
	}
	if got := ve.Fields["priority"]; got != "must be one of: low, medium, high, urgent" {
		t.Errorf("unexpected priority message: %q", got)
	}
}

func TestStructErrorString(t *testing.T) {
	err := Struct(sampleRequest{Title: "way too long for this field", Email: "ops@example.com", Priority: "low"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if err.Error() == "" {
		t.Fatal("expected non-empty error string")
	}
}
