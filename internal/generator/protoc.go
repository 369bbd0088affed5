package generator

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	pmerrors "github.com/carlosnayan/protomodel/internal/errors"
	"github.com/carlosnayan/protomodel/internal/logger"
)

// runProtoc invokes protoc with the Go plugin to produce the wire
// bindings the generated codecs sit on top of. The M mapping pins the
// bindings' import path to the wire subpackage so the .proto file does
// not need a go_package option.
func runProtoc(protocPath, schemaPath, wireDir, wireImportPath string, log *logger.Logger) (string, error) {
	if _, err := exec.LookPath(protocPath); err != nil {
		return "", pmerrors.Wrapf(pmerrors.ErrProtocNotFound, "%q: %v", protocPath, err)
	}

	base := filepath.Base(schemaPath)
	args := []string{
		"--go_out=" + wireDir,
		"--go_opt=paths=source_relative",
		"--go_opt=M" + base + "=" + wireImportPath,
		"--proto_path=" + filepath.Dir(schemaPath),
		base,
	}
	log.Debug("running %s %s", protocPath, strings.Join(args, " "))

	cmd := exec.Command(protocPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", pmerrors.Wrapf(pmerrors.ErrProtocFailed, "%v: %s", err, strings.TrimSpace(stderr.String()))
	}

	stem := strings.TrimSuffix(base, filepath.Ext(base))
	binding := filepath.Join(wireDir, stem+".pb.go")
	if _, err := os.Stat(binding); err != nil {
		return "", pmerrors.Wrapf(pmerrors.ErrBindingsMissing, "expected %s: %v", binding, err)
	}
	return binding, nil
}
