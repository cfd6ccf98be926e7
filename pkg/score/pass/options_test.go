package pass

import "testing"

func TestOptions_ValidateAndSetDefaults(t *testing.T) {
	opts := &Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}

	if opts.Unit != DefaultUnit {
		t.Errorf("Unit = %v, want %v", opts.Unit, DefaultUnit)
	}
	if opts.SpacingLinear != DefaultSpacingLinear {
		t.Errorf("SpacingLinear = %v, want %v", opts.SpacingLinear, DefaultSpacingLinear)
	}
	if opts.Tempo != DefaultTempo {
		t.Errorf("Tempo = %v, want %v", opts.Tempo, DefaultTempo)
	}
	if opts.PPQ != DefaultPPQ {
		t.Errorf("PPQ = %v, want %v", opts.PPQ, DefaultPPQ)
	}
	if opts.CastOffUnit != DefaultCastOffUnit {
		t.Errorf("CastOffUnit = %v, want %v", opts.CastOffUnit, DefaultCastOffUnit)
	}
	if opts.Logger == nil {
		t.Error("Logger = nil after validation")
	}
}

func TestOptions_ValidateAndSetDefaults_KeepsExplicitValues(t *testing.T) {
	opts := &Options{Unit: 12, Tempo: 90}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Unit != 12 {
		t.Errorf("Unit = %v, want 12", opts.Unit)
	}
	if opts.Tempo != 90 {
		t.Errorf("Tempo = %v, want 90", opts.Tempo)
	}
}

func TestOptions_ValidateAndSetDefaults_Rejects(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"negative unit", Options{Unit: -1}},
		{"negative tempo", Options{Tempo: -10}},
		{"negative ppq", Options{PPQ: -480}},
		{"negative cast-off unit", Options{CastOffUnit: -8}},
	}

	for _, tt := range tests {
		if err := tt.opts.ValidateAndSetDefaults(); err == nil {
			t.Errorf("%s: ValidateAndSetDefaults() error = nil, want error", tt.name)
		}
	}
}

func TestOptions_ValidateAndSetDefaults_Idempotent(t *testing.T) {
	opts := &Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	opts.Unit = 20
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Unit != 20 {
		t.Errorf("Unit = %v after revalidation, want 20", opts.Unit)
	}
}
