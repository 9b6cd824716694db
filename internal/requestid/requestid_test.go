package requestid_test

import (
	"context"
	"strings"
	"testing"

	"github.com/ErlanBelekov/project-tracker/internal/requestid"
	"github.com/google/uuid"
)

func TestNew_IsUUID(t *testing.T) {
	if _, err := uuid.Parse(requestid.New()); err != nil {
		t.Errorf("New() is not a uuid: %v", err)
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := requestid.WithRequestID(context.Background(), "req-1")
	if got := requestid.FromContext(ctx); got != "req-1" {
		t.Errorf("FromContext = %q, want req-1", got)
	}
	if got := requestid.FromContext(context.Background()); got != "" {
		t.Errorf("FromContext(empty) = %q, want empty", got)
	}
}

func TestValid(t *testing.T) {
	tests := map[string]bool{
		"":                        false,
		"abc-123":                 true,
		"has space":               false,
		"line\nbreak":             false,
		strings.Repeat("a", 129):  false,
		"0f8fad5b-d9cb-469f-a165": true,
	}
	for id, want := range tests {
		if got := requestid.Valid(id); got != want {
			t.Errorf("Valid(%q) = %v, want %v", id, got, want)
		}
	}
}
