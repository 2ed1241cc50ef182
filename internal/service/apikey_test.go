package service

import (
	"context"
	"errors"
	"testing"
)

func TestAPIKeyService_Create_RejectsUnknownScopes(t *testing.T) {
	t.Parallel()

	svc := &APIKeyService{}

	tests := []struct {
		name   string
		scopes []string
	}{
		{"unknown scope", []string{"delete"}},
		{"mixed valid and unknown", []string{"read", "webhook"}},
		{"empty scope string", []string{""}},
		{"uppercase", []string{"READ"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.Create(context.Background(), "angler-1", "key", tt.scopes)
			if !errors.Is(err, ErrInvalidScope) {
				t.Errorf("Create(%v) error = %v, want ErrInvalidScope", tt.scopes, err)
			}
		})
	}
}
