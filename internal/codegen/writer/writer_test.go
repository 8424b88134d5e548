package writer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter_BasicWriting(t *testing.T) {
	// Test: Basic write operations
	w := NewWriter("  ")

	w.Write("hello")
	w.Write(" world")

	assert.Equal(t, "hello world", w.String())
}

func TestWriter_WriteLine(t *testing.T) {
	// Test: WriteLine adds newline
	w := NewWriter("  ")

	w.WriteLine("mod bar;")
	w.WriteLine("mod foo;")

	assert.Equal(t, "mod bar;\nmod foo;\n", w.String())
}

func TestWriter_Indentation(t *testing.T) {
	// Test: Proper indentation handling
	w := NewWriter("  ")

	w.WriteLine("pub struct Foo {")
	w.Indent()
	w.WriteLine("label: String,")
	w.WriteLine("count: i32,")
	w.Dedent()
	w.WriteLine("}")

	assert.Equal(t, "pub struct Foo {\n  label: String,\n  count: i32,\n}\n", w.String())
}

func TestWriter_NestedIndentation(t *testing.T) {
	// Test: Multiple levels of indentation
	w := NewWriter("\t")

	w.WriteLine("a {")
	w.Indent()
	w.WriteLine("b {")
	w.Indent()
	w.WriteLine("c;")
	w.Dedent()
	w.WriteLine("}")
	w.Dedent()
	w.WriteLine("}")

	assert.Equal(t, "a {\n\tb {\n\t\tc;\n\t}\n}\n", w.String())
}

func TestWriter_DedentBounds(t *testing.T) {
	// Test: Dedent doesn't go below zero
	w := NewWriter("  ")

	w.Dedent()
	w.WriteLine("top")
	w.Indent()
	w.WriteLine("inner")

	assert.Equal(t, "top\n  inner\n", w.String())
}

func TestWriter_WriteBlock(t *testing.T) {
	// Test: WriteBlock helper function
	w := NewWriter("  ")

	w.WriteBlock("export interface Foo {", "}", func() {
		w.WriteLine("label: string;")
	})

	assert.Equal(t, "export interface Foo {\n  label: string;\n}\n", w.String())
}

func TestWriter_EmptyBlock(t *testing.T) {
	// Test: A block without content keeps opener and closer adjacent
	w := NewWriter("  ")

	w.WriteBlock("pub struct Empty {", "}", func() {})

	assert.Equal(t, "pub struct Empty {\n}\n", w.String())
}

func TestWriter_WriteFormatted(t *testing.T) {
	// Test: Formatted write operations
	w := NewWriter("  ")

	w.WriteLinef("message %s {", "Foo")
	w.Indent()
	w.WriteLinef("string %s = %d;", "label", 1)

	assert.Equal(t, "message Foo {\n  string label = 1;\n", w.String())
}

func TestWriter_Bytes(t *testing.T) {
	// Test: Bytes returns byte slice
	w := NewWriter("  ")

	w.Write("hello")

	assert.Equal(t, []byte("hello"), w.Bytes())
}
