package model

import "fmt"

// Game selects which game profile's scope tables are active for a run.
type Game string

// Supported game profiles.
const (
	GameCK3  Game = "ck3"
	GameVic3 Game = "vic3"
)

// ParseGame maps the --game flag value to a Game.
func ParseGame(s string) (Game, error) {
	switch Game(s) {
	case GameCK3, GameVic3:
		return Game(s), nil
	default:
		return "", fmt.Errorf("unknown game %q (supported: ck3, vic3)", s)
	}
}
