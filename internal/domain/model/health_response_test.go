package model

import (
	"errors"
	"testing"
)

func TestNewHealthResponse(t *testing.T) {
	up := ComponentUp(nil)
	down := ComponentDown(errors.New("refused"), nil)
	disabled := ComponentDisabled("cache disabled")

	tests := []struct {
		name     string
		database ComponentHealthStatus
		cache    ComponentHealthStatus
		want     HealthStatus
	}{
		{"all up", up, up, StatusUp},
		{"cache disabled", up, disabled, StatusUp},
		{"database down", down, up, StatusDown},
		{"cache down", up, down, StatusDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewHealthResponse(tt.database, tt.cache)
			if got.Status != tt.want || got.IsDown() != (tt.want == StatusDown) {
				t.Errorf("expected %s, got %+v", tt.want, got)
			}
		})
	}
}

func TestComponentStatusKeepsDetailsAndSetsMessage(t *testing.T) {
	details := map[string]string{"dialect": "postgres"}

	got := ComponentDown(errors.New("connection refused"), details)
	if got.Status != StatusDown || got.Details["message"] != "connection refused" || got.Details["dialect"] != "postgres" {
		t.Errorf("unexpected component %+v", got)
	}
	if _, touched := details["message"]; touched {
		t.Error("expected the caller's details to be left untouched")
	}

	if up := ComponentUp(nil); up.Details["message"] != "UP" {
		t.Errorf("unexpected component %+v", up)
	}
	if disabled := ComponentDisabled("cache disabled"); disabled.Status != StatusUnknown || disabled.Details["message"] != "cache disabled" {
		t.Errorf("unexpected component %+v", disabled)
	}
}
