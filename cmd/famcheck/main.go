// famcheck loads a scenario file into a fresh manager, verifies the family
// index and prints one line per family.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/famecs/famecs/internal/component"
	"github.com/famecs/famecs/internal/core/ecs"
	"github.com/famecs/famecs/internal/scenario"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: famcheck <scenario.yaml> [kind|@source ...]")
		os.Exit(1)
	}

	catalog := scenario.NewCatalog()
	component.Register(catalog)
	world := scenario.NewWorld(ecs.NewManager(), catalog)

	st, err := scenario.Load(os.Args[1], world)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := world.Manager.Check(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("%d sources, %d entities\n", st.Sources, st.Entities)
	for _, f := range world.Manager.Families() {
		fmt.Printf("%6d  %-24s %s\n", f.Size, f.Key, strings.Join(world.Describe(f.Key), ", "))
	}

	// optional superset query
	if len(os.Args) > 2 {
		keys, err := world.Keys(os.Args[2:]...)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		es := world.Manager.QuerySuperset(keys...)
		fmt.Printf("query %s: %d entities\n", strings.Join(os.Args[2:], " "), len(es))
	}
}
