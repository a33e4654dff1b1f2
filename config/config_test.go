package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yaml")
	os.WriteFile(path, []byte(`
convert:
  scale: 2.5
  skip_broken_mesh: true
texture:
  resolution_limit: 1024
logging:
  level: debug
`), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Convert.Scale != 2.5 || !cfg.Convert.SkipBrokenMesh || cfg.Convert.ForceUnlit {
		t.Error("convert:", cfg.Convert)
	}
	if cfg.Texture.ResolutionLimit != 1024 || cfg.Texture.Scale != 1 {
		t.Error("texture:", cfg.Texture)
	}
	if cfg.Logging.Level != "debug" {
		t.Error("logging:", cfg.Logging)
	}
}

func TestLoadDefault(t *testing.T) {
	wd, _ := os.Getwd()
	os.Chdir(t.TempDir())
	defer os.Chdir(wd)

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *Default() {
		t.Error("expected defaults:", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "none.yaml")); err == nil {
		t.Error("missing file accepted")
	}
	path := filepath.Join(dir, "bad.yaml")
	os.WriteFile(path, []byte("convert:\n  scael: 2\n"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("unknown key accepted")
	}
}
