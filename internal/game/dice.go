package game

import "math/rand"

// Roller produces one d100 roll in [1, 100]. Encounters take a Roller
// so tests can script the dice.
type Roller func() int

// D100 is the default roller.
func D100() int {
	return rand.Intn(100) + 1
}
