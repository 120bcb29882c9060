package commands

import (
	"fmt"
	"strings"

	"AshenKeep/internal/game"
)

var Help = Define(Definition{
	Name:        "help",
	Aliases:     []string{"h"},
	ZeroArg:     true,
	Usage:       "help",
	Description: "list the available commands",
}, func(ctx *Context) bool {
	var b strings.Builder
	b.WriteString("\r\n" + game.Style("Commands of the Keep", game.AnsiBold, game.AnsiCyan))
	for _, cmd := range All() {
		usage := cmd.Usage
		if usage == "" {
			usage = cmd.Name
		}
		b.WriteString(fmt.Sprintf("\r\n  %-24s %s", usage, cmd.Description))
	}
	b.WriteString("\r\n  " + fmt.Sprintf("%-24s %s", "quit", "leave the keep"))
	ctx.Player.Send(game.Ansi(b.String()))
	return false
})
