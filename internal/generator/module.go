package generator

import (
	"os"
	"path/filepath"
	"strings"

	pmerrors "github.com/carlosnayan/protomodel/internal/errors"
)

// detectUserModule finds the enclosing go.mod by traversing up from
// outputDir and returns its module path. Generated files import each
// other through paths rooted at it.
func detectUserModule(outputDir string) (string, error) {
	root, err := findModuleRoot(outputDir)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return "", pmerrors.Wrap(pmerrors.ErrModuleNotFound, err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "module ") {
			name := strings.TrimSpace(strings.TrimPrefix(line, "module "))
			if idx := strings.Index(name, "//"); idx != -1 {
				name = strings.TrimSpace(name[:idx])
			}
			return name, nil
		}
	}
	return "", pmerrors.Wrapf(pmerrors.ErrModuleNotFound, "no module declaration in %s", filepath.Join(root, "go.mod"))
}

// findModuleRoot returns the closest ancestor directory of outputDir
// that contains a go.mod.
func findModuleRoot(outputDir string) (string, error) {
	dir, err := filepath.Abs(outputDir)
	if err != nil {
		return "", pmerrors.Wrap(pmerrors.ErrModuleNotFound, err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", pmerrors.Wrapf(pmerrors.ErrModuleNotFound, "no go.mod above %s", outputDir)
		}
		dir = parent
	}
}

// importPaths holds the import paths of the three generated packages.
type importPaths struct {
	Models     string
	Wire       string
	Primitives string
}

// calculateImportPaths maps the output directory onto import paths under
// the user's module. The wire bindings and the primitives package live in
// fixed subdirectories of the model output.
func calculateImportPaths(userModule, outputDir string) (importPaths, error) {
	moduleRoot, err := findModuleRoot(outputDir)
	if err != nil {
		return importPaths{}, err
	}
	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return importPaths{}, pmerrors.Wrap(pmerrors.ErrModuleNotFound, err)
	}
	relPath, err := filepath.Rel(moduleRoot, abs)
	if err != nil {
		return importPaths{}, pmerrors.Wrap(pmerrors.ErrModuleNotFound, err)
	}

	base := userModule
	if importBase := filepath.ToSlash(relPath); importBase != "." {
		base = userModule + "/" + importBase
	}
	return importPaths{
		Models:     base,
		Wire:       base + "/wire",
		Primitives: base + "/primitives",
	}, nil
}
