package commands

import (
	"fmt"
	"strings"

	"AshenKeep/internal/game"
)

var Eat = Define(Definition{
	Name:        "eat",
	Usage:       "eat <item>",
	Description: "eat a consumable from your pack",
}, func(ctx *Context) bool {
	return consume(ctx, "eat")
})

var Drink = Define(Definition{
	Name:        "drink",
	Aliases:     []string{"quaff"},
	Usage:       "drink <item>",
	Description: "drink a consumable from your pack",
}, func(ctx *Context) bool {
	return consume(ctx, "drink")
})

func consume(ctx *Context, verb string) bool {
	target := strings.TrimSpace(ctx.Arg)
	item, err := game.ConsumeItem(ctx.World, ctx.Player, target, verb)
	if err != nil {
		ctx.Player.Send(game.Ansi(game.Style("\r\n"+capitalize(err.Error())+".", game.AnsiYellow)))
		return false
	}
	ctx.Player.Send(game.Ansi(fmt.Sprintf("\r\nYou %s %s. (%d/%d HP)",
		verb, game.HighlightItemName(item.Name),
		ctx.Player.Stat(game.StatHealth), ctx.Player.Stat(game.StatMaxHealth))))
	return false
}
