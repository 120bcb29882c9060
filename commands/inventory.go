package commands

import (
	"fmt"

	"AshenKeep/internal/game"
)

var Inventory = Define(Definition{
	Name:        "inventory",
	Aliases:     []string{"i", "inv"},
	ZeroArg:     true,
	Usage:       "inventory",
	Description: "list what you carry, hold, and wear",
}, func(ctx *Context) bool {
	inv := ctx.Player.Inventory()
	ctx.Player.Send(game.Ansi(fmt.Sprintf("\r\n%s (%d/%d weight)",
		game.Style("You carry", game.AnsiBold, game.AnsiCyan),
		inv.CurrentCapacity(), inv.CarryCapacity())))
	if items := inv.Items(); len(items) > 0 {
		for _, item := range items {
			ctx.Player.Send(game.Ansi(fmt.Sprintf("\r\n  %s", game.HighlightItemName(item.Name))))
		}
	} else {
		ctx.Player.Send(game.Ansi(game.Style("\r\n  nothing", game.AnsiDim)))
	}
	if held := ctx.Player.Held(); len(held) > 0 {
		ctx.Player.Send(game.Ansi(fmt.Sprintf("\r\nIn hand: %s", joinNames(itemNames(held)))))
	}
	if worn := ctx.Player.Equipped(); len(worn) > 0 {
		names := make([]string, len(worn))
		for i, item := range worn {
			names[i] = fmt.Sprintf("%s (%s)", game.HighlightItemName(item.Name), item.Slot)
		}
		ctx.Player.Send(game.Ansi(fmt.Sprintf("\r\nWorn: %s", joinNames(names))))
	}
	return false
})
