// Package generator turns an adapted schema into Go source: the typed
// model with its bidirectional codecs, the primitive-support package and
// a property-based round-trip test module. Rendering is string assembly
// over the schema scope tree; protoc supplies the wire bindings the
// codecs convert to and from.
package generator

import (
	"path/filepath"
	"strings"

	"github.com/emicklei/proto"

	"github.com/carlosnayan/protomodel/internal/config"
	pmerrors "github.com/carlosnayan/protomodel/internal/errors"
	"github.com/carlosnayan/protomodel/internal/logger"
	"github.com/carlosnayan/protomodel/internal/schema"
)

// Options configures one compiler run.
type Options struct {
	SchemaPath  string
	OutputDir   string
	TestDir     string // defaults to OutputDir
	PackageName string // defaults to "models"
	ProtocPath  string // defaults to "protoc"
	Logger      *logger.Logger
}

func (o *Options) fillDefaults() {
	if o.PackageName == "" {
		o.PackageName = "models"
	}
	if o.ProtocPath == "" {
		o.ProtocPath = "protoc"
	}
	if o.TestDir == "" {
		o.TestDir = o.OutputDir
	}
	if o.Logger == nil {
		o.Logger = logger.GetDefaultLogger()
	}
}

// OptionsFromConfig maps a loaded config file onto compiler options.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := Options{
		SchemaPath:  cfg.Schema,
		OutputDir:   cfg.Generator.Output,
		TestDir:     cfg.Generator.Tests,
		PackageName: cfg.Generator.Package,
	}
	if cfg.Protoc != nil {
		opts.ProtocPath = cfg.Protoc.Path
	}
	return opts
}

// schemaStem returns the schema file name without extension, used to
// name every emitted file.
func schemaStem(schemaPath string) string {
	base := filepath.Base(schemaPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// renderModelSource assembles the complete model file: every enum, then
// every message (nested definitions first) with its struct and codec pair.
func renderModelSource(file *schema.SchemaFile, st *renderState, pkg string, paths importPaths) (string, error) {
	var chunks []string
	for _, se := range file.AllEnums() {
		chunk, err := renderEnum(se)
		if err != nil {
			return "", err
		}
		chunks = append(chunks, chunk)
	}
	for _, msg := range file.AllMessages() {
		typ, err := st.renderMessageType(msg)
		if err != nil {
			return "", err
		}
		codec, err := st.renderCodecs(msg)
		if err != nil {
			return "", err
		}
		chunks = append(chunks, typ, codec)
	}

	var importLines []string
	if st.usesProto {
		importLines = append(importLines, `"google.golang.org/protobuf/proto"`, "")
	}
	if st.usesPrimitives {
		importLines = append(importLines, `primitives "`+paths.Primitives+`"`)
	}
	if st.usesWire {
		importLines = append(importLines, `wirepb "`+paths.Wire+`"`)
	}

	header, err := executeTemplate("model_header.tmpl", headerData{
		Schema:  file.Filename,
		Package: pkg,
		Imports: importLines,
	})
	if err != nil {
		return "", err
	}
	return header + "\n" + strings.Join(chunks, "\n"), nil
}

// renderPrimitivesModule emits the self-contained primitive-support package.
func renderPrimitivesModule() (string, error) {
	return executeTemplate("primitives.tmpl", struct{ Package string }{"primitives"})
}

// collectExternals lists every type reference that resolved to nothing in
// the schema, in "message.field type" form. These pass through the
// compiler unchanged on the assumption that a sibling schema defines them.
func collectExternals(file *schema.SchemaFile) []string {
	var externals []string
	seen := make(map[string]bool)
	note := func(msg *schema.Message, fieldName, typeName string) {
		if schema.Resolve(msg, typeName).Kind != schema.KindExternal {
			return
		}
		entry := msg.FullName + "." + fieldName + " " + typeName
		if !seen[entry] {
			seen[entry] = true
			externals = append(externals, entry)
		}
	}

	for _, msg := range file.AllMessages() {
		for _, field := range msg.Fields {
			note(msg, field.Name, field.Type)
		}
		for _, oneof := range msg.Oneofs {
			for _, element := range oneof.Elements {
				if member, ok := element.(*proto.OneOfField); ok {
					note(msg, oneof.Name+"."+member.Name, member.Type)
				}
			}
		}
		for _, mf := range msg.MapFields {
			note(msg, mf.Name, mf.Type)
		}
	}
	return externals
}

// Generate runs the whole pipeline: protoc for the wire bindings, then
// the model, primitives and test modules, each written atomically.
func Generate(opts Options) error {
	opts.fillDefaults()
	log := opts.Logger

	if opts.SchemaPath == "" {
		return pmerrors.Wrapf(pmerrors.ErrConfig, "no schema path configured")
	}

	userModule, err := detectUserModule(opts.OutputDir)
	if err != nil {
		return err
	}
	paths, err := calculateImportPaths(userModule, opts.OutputDir)
	if err != nil {
		return err
	}

	wireDir := filepath.Join(opts.OutputDir, "wire")
	if err := ensureDir(wireDir); err != nil {
		return err
	}

	binding, err := runProtoc(opts.ProtocPath, opts.SchemaPath, wireDir, paths.Wire, log)
	if err != nil {
		return err
	}
	log.Debug("wire bindings at %s", binding)

	file, err := schema.ParseFile(opts.SchemaPath)
	if err != nil {
		return err
	}
	log.Info("compiling %s: %d messages, %d enums", opts.SchemaPath, len(file.AllMessages()), len(file.AllEnums()))

	for _, external := range collectExternals(file) {
		log.Debug("external reference %s passed through", external)
	}

	st := newRenderState(file)
	stem := schemaStem(opts.SchemaPath)

	model, err := renderModelSource(file, st, opts.PackageName, paths)
	if err != nil {
		return err
	}
	modelPath := filepath.Join(opts.OutputDir, stem+".go")
	if err := writeFileAtomic(modelPath, []byte(model)); err != nil {
		return err
	}
	log.Info("wrote %s", modelPath)

	primitives, err := renderPrimitivesModule()
	if err != nil {
		return err
	}
	primitivesPath := filepath.Join(opts.OutputDir, "primitives", "primitives.go")
	if err := writeFileAtomic(primitivesPath, []byte(primitives)); err != nil {
		return err
	}
	log.Info("wrote %s", primitivesPath)

	tests, err := renderTestModule(file, opts.PackageName, st.boxed, testImports{
		Models:     paths.Models,
		Wire:       paths.Wire,
		Primitives: paths.Primitives,
	})
	if err != nil {
		return err
	}
	if tests != "" {
		testPath := filepath.Join(opts.TestDir, stem+"_roundtrip_test.go")
		if err := writeFileAtomic(testPath, []byte(tests)); err != nil {
			return err
		}
		log.Info("wrote %s", testPath)
	}

	return nil
}

// Validate parses and dry-renders a schema without touching protoc or
// the filesystem. It returns the external references a generate run
// would pass through; schema problems come back as the error.
func Validate(schemaPath string) ([]string, error) {
	file, err := schema.ParseFile(schemaPath)
	if err != nil {
		return nil, err
	}

	st := newRenderState(file)
	for _, se := range file.AllEnums() {
		if _, err := renderEnum(se); err != nil {
			return nil, err
		}
	}
	for _, msg := range file.AllMessages() {
		if _, err := st.renderMessageType(msg); err != nil {
			return nil, err
		}
		if _, err := st.renderCodecs(msg); err != nil {
			return nil, err
		}
	}
	return collectExternals(file), nil
}
