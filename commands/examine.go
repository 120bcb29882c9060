package commands

import (
	"fmt"
	"strings"

	"AshenKeep/internal/game"
)

var Examine = Define(Definition{
	Name:        "examine",
	Aliases:     []string{"x", "inspect"},
	Usage:       "examine <target>",
	Description: "study an item or a creature closely",
}, func(ctx *Context) bool {
	target := strings.TrimSpace(ctx.Arg)
	if target == "" {
		ctx.Player.Send(game.Ansi("\r\nExamine what?"))
		return false
	}
	width := wrapWidth(ctx.Player)

	if item, ok := ctx.Player.FindCarried(target); ok {
		describeItem(ctx, item, width)
		return false
	}

	room, ok := ctx.World.Graph().Room(ctx.Player.Room())
	if !ok {
		ctx.Player.Send(game.Ansi(game.Style("\r\nYou see only void.", game.AnsiYellow)))
		return false
	}
	if item, found := room.FindItem(target); found {
		describeItem(ctx, item, width)
		return false
	}
	if npc, found := room.FindNPC(target, ctx.Player.Stat(game.StatPerception)); found {
		desc := strings.TrimSpace(npc.Description)
		if desc == "" {
			desc = "You see nothing remarkable."
		}
		cur, max := npc.Health()
		ctx.Player.Send(game.Ansi(fmt.Sprintf("\r\n%s. %s (%d/%d HP, %s)",
			game.HighlightNPCName(npc.Name), game.WrapText(desc, width), cur, max, npc.Faction())))
		return false
	}
	ctx.Player.Send(game.Ansi("\r\nYou don't see that here."))
	return false
})

func describeItem(ctx *Context, item *game.Item, width int) {
	desc := strings.TrimSpace(item.Description)
	if desc == "" {
		desc = "You see nothing special."
	}
	ctx.Player.Send(game.Ansi(fmt.Sprintf("\r\nYou study %s. %s",
		game.HighlightItemName(item.Name), game.WrapText(desc, width))))
	ctx.Player.Send(game.Ansi(game.Style(fmt.Sprintf("\r\nWeight %d, worth %d.", item.Weight, item.Value), game.AnsiDim)))
}
