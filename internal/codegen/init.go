package codegen

import (
	"github.com/okra-platform/elemgen/internal/codegen/protobuf"
	"github.com/okra-platform/elemgen/internal/codegen/rust"
	"github.com/okra-platform/elemgen/internal/codegen/typemap"
	"github.com/okra-platform/elemgen/internal/codegen/typescript"
)

// DefaultRegistry is the global registry instance with pre-registered generators
var DefaultRegistry = NewRegistry()

func init() {
	// Register Rust generator
	DefaultRegistry.Register("rust", rust.DefaultTypes, func(types typemap.TypeMap) Generator {
		return rust.NewGenerator(types)
	})

	// Register TypeScript generator
	DefaultRegistry.Register("typescript", typescript.DefaultTypes, func(types typemap.TypeMap) Generator {
		return typescript.NewGenerator(types)
	})

	// Register ts as an alias for typescript
	DefaultRegistry.Register("ts", typescript.DefaultTypes, func(types typemap.TypeMap) Generator {
		return typescript.NewGenerator(types)
	})

	DefaultRegistry.Register("protobuf", protobuf.DefaultTypes, func(types typemap.TypeMap) Generator {
		return protobuf.NewGenerator(types)
	})
}
