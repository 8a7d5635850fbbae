// pseudo-enum generates Luau enum-like modules from a TOML file of named
// identifier lists.
//
// Run "pseudo-enum init" once to scaffold pseudo-enum.toml, list your enums
// under [enums] and then run "pseudo-enum build" to regenerate the module at
// build_path.
package main

import (
	"github.com/a-jentleman/pseudo-enum/internal/cmd"
)

func main() {
	cmd.Execute()
}
