package application

import (
	"errors"
	"testing"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
		wantMsg   string
	}{
		{
			name:      "valid value",
			fieldName: "title",
			value:     "Portfolio",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "projectID",
			value:     "",
			wantErr:   true,
			wantMsg:   "project ID is required",
		},
		{
			name:      "whitespace only",
			fieldName: "subtitle",
			value:     "   ",
			wantErr:   true,
			wantMsg:   "subtitle is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
				if valErr.Message != tt.wantMsg {
					t.Errorf("expected message %q, got %q", tt.wantMsg, valErr.Message)
				}
			}
		})
	}
}

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"task-manager", false},
		{"web", false},
		{"app2", false},
		{"snake_case", false},
		{"", true},
		{"Task-Manager", true},
		{"double--dash", true},
		{"-leading", true},
		{"has space", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := ValidateSlug("projectID", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSlug(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	for _, ok := range []string{"", "#fff", "#4a90e2", "#4A90E2"} {
		if err := ValidateColor("color", ok); err != nil {
			t.Errorf("ValidateColor(%q) unexpected error: %v", ok, err)
		}
	}
	for _, bad := range []string{"blue", "#12", "4a90e2", "#4a90e2ff"} {
		if err := ValidateColor("color", bad); err == nil {
			t.Errorf("ValidateColor(%q) expected error", bad)
		}
	}
}

func TestConfirmationError_IsSentinel(t *testing.T) {
	err := error(&ConfirmationError{Prompt: "Delete anyway?"})
	if !errors.Is(err, ErrConfirmationRequired) {
		t.Error("ConfirmationError should match ErrConfirmationRequired")
	}
	if err.Error() != "Delete anyway?" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
