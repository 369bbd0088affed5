// Package protomodel generates typed Go data models and bidirectional
// codecs from protobuf schemas.
//
// protomodel includes:
//   - A scope-aware adapter over the parsed .proto AST
//   - Type resolution across nested message scopes
//   - Generation of model structs, enums and oneof unions
//   - Per-message Encode/Decode functions against protoc-gen-go bindings
//   - A generated property-based round-trip test module
//
// Configuration lives in protomodel.conf:
//
//	schema = "proto/messages.proto"
//
//	[generator]
//	output = "gen/models"
//	package = "models"
//
// CLI Commands:
//
//	protomodel generate          # Generate models, codecs and tests
//	protomodel generate --watch  # Regenerate on schema changes
//	protomodel validate          # Parse and resolve a schema without output
//
// For more examples and documentation, visit:
// https://github.com/carlosnayan/protomodel
package protomodel

const Version = "0.1.0"
