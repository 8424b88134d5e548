// Package typemap maps declared schema type names to target-language type names.
package typemap

import (
	"fmt"
	"sort"
	"strings"
)

// TypeMap is a lookup table from schema type names to target type names.
// Names missing from the table map to themselves.
type TypeMap map[string]string

// Map returns the target type for a declared type, passing unknown names through unchanged
func (m TypeMap) Map(declared string) string {
	if mapped, ok := m[declared]; ok {
		return mapped
	}
	return declared
}

// Lookup reports the target type and whether the table knows the declared type
func (m TypeMap) Lookup(declared string) (string, bool) {
	mapped, ok := m[declared]
	return mapped, ok
}

// With returns a copy of the table with overrides applied on top
func (m TypeMap) With(overrides map[string]string) TypeMap {
	merged := make(TypeMap, len(m)+len(overrides))
	for k, v := range m {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// Validate checks that mapping is a fixed point once applied: every target
// type is either absent from the table or maps to itself
func (m TypeMap) Validate() error {
	var broken []string
	for declared, mapped := range m {
		if again, ok := m[mapped]; ok && again != mapped {
			broken = append(broken, fmt.Sprintf("%s -> %s -> %s", declared, mapped, again))
		}
	}
	if len(broken) > 0 {
		sort.Strings(broken)
		return fmt.Errorf("type map is not idempotent: %s", strings.Join(broken, ", "))
	}
	return nil
}
