package main

import "testing"

func TestDefaultOutputFile(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"model.dae", "model.glb"},
		{"dir/Model.DAE", "dir/Model.glb"},
		{"model.dae.gz", "model.glb"},
		{"model.dae.zst", "model.glb"},
		{"model.zae", "model.glb"},
		{"model.xml", "model.xml.glb"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := defaultOutputFile(tt.input); got != tt.want {
				t.Errorf("defaultOutputFile(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
