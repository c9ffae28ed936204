package main

import (
	"fmt"

	"github.com/Shopify/go-lua"
	"github.com/spf13/cobra"

	"signum/internal/host/luahost"
	"signum/internal/logging"
)

// =============================================================================
// LUA COMMAND - run Lua with the signum library
// =============================================================================

var luaChunk string

var luaCmd = &cobra.Command{
	Use:   "lua [file]",
	Short: "Run a Lua script with the signum library loaded",
	Long: `Runs a Lua file (or the chunk given with -e) in a state where the global
table "signum" provides sign(x [, opts]) and nan.

Example:
  signum lua -e 'print(signum.sign(-2), signum.sign("x", {if_exc = {0}}))'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLua,
}

func runLua(cmd *cobra.Command, args []string) error {
	if (luaChunk == "") == (len(args) == 0) {
		return fmt.Errorf("provide exactly one of a file or -e CHUNK")
	}

	l := lua.NewState()
	lua.OpenLibraries(l)
	host, _ := luahost.Open(l, evaluatorOptions()...)

	var err error
	if luaChunk != "" {
		err = lua.DoString(l, luaChunk)
	} else {
		err = lua.DoFile(l, args[0])
	}
	if err != nil {
		if msg, ok := l.ToString(-1); ok {
			return fmt.Errorf("lua: %s", msg)
		}
		return fmt.Errorf("lua: %w", err)
	}

	if live := host.Live(); live != 0 {
		registry.Get(logging.CategoryHost).Warn(fmt.Sprintf("%d lua values still held after run", live))
	}
	return nil
}
