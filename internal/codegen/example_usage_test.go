package codegen_test

import (
	"fmt"
	"log"
	"strings"

	"github.com/okra-platform/elemgen/internal/codegen"
	"github.com/okra-platform/elemgen/internal/schema"
)

func Example_usage() {
	iface, err := schema.ParseWebIDL(`
[Exposed=Window]
interface HTMLDataElement : HTMLElement {
  [HTMLConstructor] constructor();
  [CEReactions] attribute DOMString value;
};`)
	if err != nil {
		log.Fatal(err)
	}

	for _, lang := range []string{"rust", "typescript"} {
		gen, err := codegen.DefaultRegistry.Get(lang, nil)
		if err != nil {
			log.Fatal(err)
		}
		code, err := gen.Generate(iface)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(strings.TrimSpace(string(code)))
	}

	// Output:
	// pub struct HTMLDataElement {
	//   value: String,
	// }
	// export interface HTMLDataElement {
	//   value: string;
	// }
}
