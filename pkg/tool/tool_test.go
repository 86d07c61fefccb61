package tool

import (
	"errors"
	"testing"
)

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantErr bool
	}{
		{"square end mill", Profile{Shape: Square, Diameter: 6.35}, false},
		{"zero diameter", Profile{Shape: Square, Diameter: 0}, true},
		{"negative diameter", Profile{Shape: Square, Diameter: -3}, true},
		{"unknown shape", Profile{Shape: Shape(7), Diameter: 6}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUnsupportedShape(t *testing.T) {
	err := Profile{Shape: Shape(7), Diameter: 6}.Validate()
	var serr *UnsupportedShapeError
	if !errors.As(err, &serr) {
		t.Fatalf("error = %v, want *UnsupportedShapeError", err)
	}
}

func TestRadius(t *testing.T) {
	p := Profile{Shape: Square, Diameter: 6}
	if got := p.Radius(); got != 3 {
		t.Errorf("Radius() = %v, want 3", got)
	}
}
