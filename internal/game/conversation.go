package game

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ConversationState tracks the conversation lifecycle.
type ConversationState int

const (
	ConvGreeting ConversationState = iota
	ConvMenu
	ConvEnded
)

// conversationFlavor holds the fixed line templates a faction produces
// for each menu action. Templates are chosen once at encounter creation
// with no randomization; %s is the NPC name.
type conversationFlavor struct {
	greeting string
	who      string
	news     string
	trade    string
	quest    string
	bye      string
}

var factionFlavors = map[Faction]conversationFlavor{
	FactionAlly: {
		greeting: "%s clasps your arm warmly. \"Well met, friend.\"",
		who:      "\"I am %s, sworn to the keep and to those who defend it.\"",
		news:     "\"The roads grow worse by the week. Travel armed, friend.\"",
		trade:    "\"Let us see what we might exchange.\"",
		quest:    "\"There is work for willing hands, if you would take it.\"",
		bye:      "%s nods. \"Walk safely.\"",
	},
	FactionNeutral: {
		greeting: "%s regards you evenly. \"Yes? What is it?\"",
		who:      "\"%s. That is all you need to know.\"",
		news:     "\"News costs nothing, so here: nothing here is free.\"",
		trade:    "\"Coin and goods I understand. Show me.\"",
		quest:    "\"I have an errand, if you care for honest pay.\"",
		bye:      "%s turns away without ceremony.",
	},
	FactionHostile: {
		greeting: "%s sneers at you. \"Speak quickly.\"",
		who:      "\"None of your business who %s is.\"",
		news:     "\"The only news you need: stay out of my way.\"",
		trade:    "\"Trade? With you? Laughable.\"",
		quest:    "\"I'd sooner hire a rat.\"",
		bye:      "%s spits at your feet as you go.",
	},
	FactionWildlife: {
		greeting: "%s watches you with wary animal eyes.",
		who:      "%s tilts its head, uncomprehending.",
		news:     "%s sniffs the air and ignores you.",
		trade:    "%s has no interest in your goods.",
		quest:    "%s paces in a slow circle.",
		bye:      "%s loses interest and wanders off.",
	},
}

// Conversation is a menu-driven state machine pitting one NPC against
// exactly one player. It lives in the world's arena table keyed by ID.
type Conversation struct {
	ID     uuid.UUID
	world  *World
	player *Player
	npc    *NPC
	flavor conversationFlavor

	mu    sync.Mutex
	state ConversationState
}

func newConversation(w *World, p *Player, npc *NPC) *Conversation {
	flavor, ok := factionFlavors[npc.Faction()]
	if !ok {
		flavor = factionFlavors[FactionNeutral]
	}
	return &Conversation{
		ID:     uuid.New(),
		world:  w,
		player: p,
		npc:    npc,
		flavor: flavor,
		state:  ConvGreeting,
	}
}

// State returns the conversation's current lifecycle state.
func (c *Conversation) State() ConversationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Conversation) setState(state ConversationState) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

func (c *Conversation) line(template string) string {
	return Ansi("\r\n" + fmt.Sprintf(template, HighlightNPCName(c.npc.Name)))
}

// tradeAvailable reports whether trade and quest menu actions do real
// work; other factions only produce flavor.
func (c *Conversation) tradeAvailable() bool {
	switch c.npc.Faction() {
	case FactionAlly, FactionNeutral:
		return true
	}
	return false
}

// Run drives the conversation loop on the player's own goroutine.
// Returns true when the connection should terminate.
func (c *Conversation) Run() bool {
	p := c.player
	p.Output <- c.line(c.flavor.greeting)
	c.setState(ConvMenu)

	for c.State() == ConvMenu {
		p.Output <- Ansi(Style("\r\n[who, news, trade, quest, bye]: ", AnsiBold, AnsiYellow))
		line, err := p.Session.ReadLine()
		if err != nil {
			// Disconnect mid-conversation behaves as bye.
			c.end()
			return true
		}
		switch strings.ToLower(Trim(line)) {
		case "who":
			p.Output <- c.line(c.flavor.who)
		case "news":
			p.Output <- c.line(c.flavor.news)
		case "trade":
			p.Output <- c.line(c.flavor.trade)
			if !c.tradeAvailable() {
				continue
			}
			trade := newTrade(c.world, p, c.npc)
			if quit := trade.Run(); quit {
				c.end()
				return true
			}
		case "quest":
			p.Output <- c.line(c.flavor.quest)
			if c.tradeAvailable() && c.npc.Quest {
				p.Output <- Ansi(fmt.Sprintf("\r\n%s unfolds a worn map and marks a spot beyond the gates.", HighlightNPCName(c.npc.Name)))
			}
		case "bye", "":
			p.Output <- c.line(c.flavor.bye)
			c.end()
		default:
			p.Output <- Ansi(Style("\r\nChoose who, news, trade, quest, or bye.", AnsiYellow))
		}
	}
	return false
}

func (c *Conversation) end() {
	c.setState(ConvEnded)
	c.world.finishConversation(c)
}
