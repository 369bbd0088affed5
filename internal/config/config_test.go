package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	pmerrors "github.com/carlosnayan/protomodel/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "protomodel.conf")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
schema = "proto/messages.proto"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Schema != "proto/messages.proto" {
		t.Errorf("Schema = %q", cfg.Schema)
	}
	if cfg.Generator.Output != "gen/models" {
		t.Errorf("Generator.Output = %q, want default gen/models", cfg.Generator.Output)
	}
	if cfg.Generator.Package != "models" {
		t.Errorf("Generator.Package = %q, want default models", cfg.Generator.Package)
	}
	if cfg.Generator.Tests != cfg.Generator.Output {
		t.Errorf("Generator.Tests = %q, want same as output", cfg.Generator.Tests)
	}
	if cfg.Protoc.Path != "protoc" {
		t.Errorf("Protoc.Path = %q, want default protoc", cfg.Protoc.Path)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("SCHEMA_DIR", "/srv/schemas")
	path := writeConfig(t, `
schema = "${SCHEMA_DIR}/messages.proto"

[generator]
output = "env(\"SCHEMA_DIR\")/gen"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Schema != "/srv/schemas/messages.proto" {
		t.Errorf("Schema = %q, env not expanded", cfg.Schema)
	}
	if cfg.Generator.Output != "/srv/schemas/gen" {
		t.Errorf("Generator.Output = %q, env(\"...\") not expanded", cfg.Generator.Output)
	}
}

func TestLoadRejectsMissingSchema(t *testing.T) {
	path := writeConfig(t, `
[generator]
output = "gen"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for missing schema")
	}
	if !errors.Is(err, pmerrors.ErrConfig) {
		t.Errorf("error = %v, want ErrConfig", err)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	path := writeConfig(t, `schema = [broken`)

	_, err := Load(path)
	if !errors.Is(err, pmerrors.ErrConfig) {
		t.Errorf("error = %v, want ErrConfig", err)
	}
}
