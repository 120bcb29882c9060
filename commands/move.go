package commands

import (
	"fmt"
	"strings"

	"AshenKeep/internal/game"
)

var Go = Define(Definition{
	Name:        "go",
	Aliases:     []string{"move", "walk"},
	Usage:       "go <direction>",
	Description: "walk through a door (north/south/east/west/up/down)",
}, func(ctx *Context) bool {
	target := strings.TrimSpace(ctx.Arg)
	if target == "" {
		ctx.Player.Send(game.Ansi("\r\nGo where?"))
		return false
	}
	room, ok := ctx.World.Graph().Room(ctx.Player.Room())
	if !ok {
		ctx.Player.Send(game.Ansi(game.Style("\r\nYou see only void.", game.AnsiYellow)))
		return false
	}
	direction := game.NormalizeDirection(target)
	door, ok := room.Door(direction)
	if !ok {
		ctx.Player.Send(game.Ansi("\r\nThere is no way through in that direction."))
		return false
	}
	if room.DoorLocked(door) {
		if !openLockedDoor(ctx, room, door) {
			return false
		}
	}
	dest, ok := ctx.World.Graph().Room(door.Rooms[1])
	if !ok {
		ctx.Player.Send(game.Ansi(game.Style("\r\nThe way leads nowhere.", game.AnsiYellow)))
		return false
	}

	ctx.World.BroadcastToRoom(room.ID, game.Ansi(fmt.Sprintf("\r\n%s leaves %s.", game.HighlightName(ctx.Player.Name), direction)), ctx.Player)
	ctx.Player.SetRoom(dest.ID)
	ctx.World.BroadcastToRoom(dest.ID, game.Ansi(fmt.Sprintf("\r\n%s arrives.", game.HighlightName(ctx.Player.Name))), ctx.Player)
	Look.Handler(ctx)
	ctx.World.NotifyEnter(dest, ctx.Player)
	return false
})

// openLockedDoor tries the player's key first, then a dexterity pick.
// A successful pick unlocks the door for everyone, permanently.
func openLockedDoor(ctx *Context, room *game.Room, door *game.Door) bool {
	if door.HasKey && ctx.Player.HasKey() {
		room.UnlockDoor(door)
		ctx.Player.Send(game.Ansi(game.Style("\r\nYour key turns and the lock gives way.", game.AnsiGreen)))
		return true
	}
	if door.PickDexterity > 0 && ctx.Player.Stat(game.StatDexterity) >= door.PickDexterity {
		room.UnlockDoor(door)
		ctx.Player.Send(game.Ansi(game.Style("\r\nYou work the lock until it clicks open.", game.AnsiGreen)))
		ctx.World.BroadcastToRoom(room.ID, game.Ansi(fmt.Sprintf("\r\n%s picks a lock open.", game.HighlightName(ctx.Player.Name))), ctx.Player)
		return true
	}
	ctx.Player.Send(game.Ansi(game.Style("\r\nThe door is locked.", game.AnsiYellow)))
	return false
}
