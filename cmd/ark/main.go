// Command ark compiles and runs a single serialized Ark program. The
// surface-language driver and REPL are out of scope (spec §1); this is the
// one operation §6.2 actually describes: compile, verify free variables
// against globals, run, print the toHost result.
package main

import (
	"fmt"
	"os"

	"github.com/ursalang/ark"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: ark <program.json>")
		os.Exit(2)
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "ark:", err)
		os.Exit(1)
	}

	state := ark.NewArkState(ark.ArkOptions{})
	compiled, err := ark.CompileString(string(data), state.Globals)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ark:", err)
		os.Exit(1)
	}
	result, err := state.Run(compiled)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ark:", err)
		os.Exit(1)
	}
	fmt.Println(state.Adapter.ToHost(result))
}
