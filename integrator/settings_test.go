package integrator

import (
	"errors"
	"testing"
)

func TestSettingsSteps(t *testing.T) {
	tests := []struct {
		name    string
		s       Settings
		steps   int
		wantErr bool
	}{
		{"exact multiple", Settings{RK4, 0.01, 20}, 2000, false},
		{"single step", Settings{Euler, 1, 1}, 1, false},
		{"binary inexact step", Settings{Euler, 0.1, 0.3}, 3, false},
		{"not a multiple", Settings{RK4, 0.3, 1}, 0, true},
		{"shorter than a step", Settings{RK4, 1, 0.4}, 0, true},
		{"zero step", Settings{RK4, 0, 1}, 0, true},
		{"negative step", Settings{RK4, -0.1, 1}, 0, true},
		{"zero duration", Settings{RK4, 0.1, 0}, 0, true},
		{"negative duration", Settings{Euler, 0.1, -1}, 0, true},
		{"unknown method", Settings{Method(42), 0.1, 1}, 0, true},
		{"unset method", Settings{StepSize: 0.1, Duration: 1}, 0, true},
		{"too many steps", Settings{Euler, 1e-9, 1}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := tt.s.Steps()
			if tt.wantErr {
				if !errors.Is(err, ErrConfig) {
					t.Fatalf("expected a configuration error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if n != tt.steps {
				t.Fatalf("steps=%d, expected %d", n, tt.steps)
			}
		})
	}
}

func TestSolveRejectsInvalidSettings(t *testing.T) {
	f := func(t float64, s []float64) []float64 { return []float64{0} }
	if _, err := Solve(f, 0, []float64{1}, Settings{RK4, 0.3, 1}); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if _, err := Solve(nil, 0, []float64{1}, Settings{RK4, 0.1, 1}); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected configuration error for nil func, got %v", err)
	}
	if _, err := Solve(f, 0, nil, Settings{RK4, 0.1, 1}); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected configuration error for empty state, got %v", err)
	}
}

func TestSolveLength(t *testing.T) {
	f := func(t float64, s []float64) []float64 { return []float64{1} }
	tr, err := Solve(f, 1, []float64{0}, Settings{Euler, 0.25, 2})
	if err != nil {
		t.Fatalf("err: %s", err)
	}
	if tr.Len() != 9 {
		t.Fatalf("expected 9 samples, got %d", tr.Len())
	}
	if tf, sf := tr.Final(); tf != 3 || sf[0] != 2 {
		t.Fatalf("final sample (%f, %v), expected (3, [2])", tf, sf)
	}
}

func TestParseMethod(t *testing.T) {
	for name, exp := range map[string]Method{"euler": Euler, "RK4": RK4, " rk4 ": RK4, "Forward-Euler": Euler} {
		m, err := ParseMethod(name)
		if err != nil || m != exp {
			t.Fatalf("ParseMethod(%q)=%s, %v", name, m, err)
		}
		if back, _ := ParseMethod(m.String()); back != m {
			t.Fatalf("%s does not round trip", m)
		}
	}
	if _, err := ParseMethod("dopri"); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if _, err := NewSettings("rk4", 0.3, 1); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
