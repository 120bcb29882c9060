package commands

import (
	"fmt"
	"strings"

	"AshenKeep/internal/game"
)

var Look = Define(Definition{
	Name:        "look",
	Aliases:     []string{"l"},
	ZeroArg:     true,
	Usage:       "look",
	Description: "describe your surroundings",
}, func(ctx *Context) bool {
	room, ok := ctx.World.Graph().Room(ctx.Player.Room())
	if !ok {
		ctx.Player.Send(game.Ansi(game.Style("\r\nYou see only void.", game.AnsiYellow)))
		return false
	}

	width := wrapWidth(ctx.Player)
	title := game.Style(room.Name, game.AnsiBold, game.AnsiCyan)
	desc := game.Style(game.WrapText(room.Description, width), game.AnsiItalic, game.AnsiDim)
	exits := game.Style(room.ExitList(), game.AnsiGreen)
	ctx.Player.Send(game.Ansi(fmt.Sprintf("\r\n%s\r\n%s\r\nExits: %s", title, desc, exits)))

	if others := ctx.World.PlayersInRoom(room.ID, ctx.Player); len(others) > 0 {
		names := make([]string, len(others))
		for i, other := range others {
			names[i] = game.HighlightName(other.Name)
		}
		ctx.Player.Send(game.Ansi(fmt.Sprintf("\r\nYou see: %s", joinNames(names))))
	}

	if npcs := room.NPCs(ctx.Player.Stat(game.StatPerception)); len(npcs) > 0 {
		names := make([]string, len(npcs))
		for i, npc := range npcs {
			names[i] = game.HighlightNPCName(npc.Name)
		}
		ctx.Player.Send(game.Ansi(fmt.Sprintf("\r\nYou notice: %s", joinNames(names))))
	}

	if dead := room.DeadNPCs(); len(dead) > 0 {
		names := make([]string, len(dead))
		for i, npc := range dead {
			names[i] = game.Style(npc.Name, game.AnsiDim)
		}
		ctx.Player.Send(game.Ansi(fmt.Sprintf("\r\nLying still: %s", joinNames(names))))
	}

	if items := room.Items(); len(items) > 0 {
		ctx.Player.Send(game.Ansi(fmt.Sprintf("\r\nOn the ground: %s", joinNames(itemNames(items)))))
	}

	if ambience := strings.TrimSpace(room.Ambience); ambience != "" {
		ctx.Player.Send(game.Ansi(game.Style("\r\n"+game.WrapText(ambience, width), game.AnsiDim)))
	}
	return false
})
