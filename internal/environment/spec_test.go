package environment

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "env.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing spec file: %v", err)
	}
	return path
}

func TestLoadSpec(t *testing.T) {
	path := writeSpec(t, `
name = "drift-2d"
observation_dim = 2
action_dim = 2
action_low = [-1.0, -1.0]
action_high = [1.0, 1.0]
max_steps = 50
`)

	spec, err := LoadSpec(path)
	if err != nil {
		t.Fatalf("loading spec: %v", err)
	}
	if spec.Name != "drift-2d" || spec.ObservationDim != 2 || spec.MaxSteps != 50 {
		t.Errorf("spec = %+v, want drift-2d dim 2 max 50", spec)
	}
	if !spec.Bounded() {
		t.Error("spec should report bounded actions")
	}
	if spec.NumPlayers != 1 {
		t.Errorf("default num_players = %d, want 1", spec.NumPlayers)
	}
}

func TestLoadSpecDefaults(t *testing.T) {
	path := writeSpec(t, `name = "minimal"`)

	spec, err := LoadSpec(path)
	if err != nil {
		t.Fatalf("loading spec: %v", err)
	}
	if spec.ObservationDim != 1 || spec.ActionDim != 1 || spec.MaxSteps != 1000 {
		t.Errorf("defaults not applied: %+v", spec)
	}
	if spec.Bounded() {
		t.Error("minimal spec should be unbounded")
	}
}

func TestSpecValidate(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		wantErr bool
	}{
		{
			name: "valid",
			spec: Spec{Name: "x", ObservationDim: 1, ActionDim: 1, NumPlayers: 1},
		},
		{
			name:    "missing name",
			spec:    Spec{ObservationDim: 1, ActionDim: 1, NumPlayers: 1},
			wantErr: true,
		},
		{
			name:    "zero observation dim",
			spec:    Spec{Name: "x", ActionDim: 1, NumPlayers: 1},
			wantErr: true,
		},
		{
			name:    "multiple players",
			spec:    Spec{Name: "x", ObservationDim: 1, ActionDim: 1, NumPlayers: 2},
			wantErr: true,
		},
		{
			name:    "mismatched bounds",
			spec:    Spec{Name: "x", ObservationDim: 1, ActionDim: 1, NumPlayers: 1, ActionLow: []float64{-1}},
			wantErr: true,
		},
		{
			name: "inverted bounds",
			spec: Spec{
				Name: "x", ObservationDim: 1, ActionDim: 1, NumPlayers: 1,
				ActionLow: []float64{2}, ActionHigh: []float64{-2},
			},
			wantErr: true,
		},
		{
			name: "bounds not matching action dim",
			spec: Spec{
				Name: "x", ObservationDim: 1, ActionDim: 2, NumPlayers: 1,
				ActionLow: []float64{-1}, ActionHigh: []float64{1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
