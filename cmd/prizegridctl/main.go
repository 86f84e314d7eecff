// prizegridctl runs one-off operator tasks against a PrizeGrid deployment
package main

import (
	"fmt"
	"os"
)

func newRegistry() *Registry {
	r := NewRegistry()
	r.Register(&TokenCommand{out: os.Stdout})
	r.Register(&MigrateCommand{})
	r.Register(&RolloverCommand{})
	r.Register(&AuditCommand{out: os.Stdout})
	r.Register(&ResetCommand{})
	return r
}

func main() {
	registry := newRegistry()

	if len(os.Args) < 2 {
		registry.PrintHelp(os.Stderr)
		os.Exit(1)
	}

	cmd, ok := registry.Get(os.Args[1])
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		registry.PrintHelp(os.Stderr)
		os.Exit(1)
	}

	if err := cmd.Run(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cmd.Name(), err)
		os.Exit(1)
	}
}
