package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is a debug command bound to a key.
type Action int

const (
	ActionAddCoins Action = iota
	ActionSpendCoins
	ActionAddDiamonds
	ActionAddOfflineStars
	ActionWinGame
	ActionWatchAd
	ActionPlayWithFriend
	ActionToggleNoAds
	ActionGuestLogin
)

var bindings = map[ebiten.Key]Action{
	ebiten.KeyC: ActionAddCoins,
	ebiten.KeyX: ActionSpendCoins,
	ebiten.KeyD: ActionAddDiamonds,
	ebiten.KeyO: ActionAddOfflineStars,
	ebiten.KeyW: ActionWinGame,
	ebiten.KeyA: ActionWatchAd,
	ebiten.KeyF: ActionPlayWithFriend,
	ebiten.KeyN: ActionToggleNoAds,
	ebiten.KeyL: ActionGuestLogin,
}

// AppendJustPressedActions appends the actions whose keys were pressed this tick.
func AppendJustPressedActions(actions []Action) []Action {
	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		if action, ok := bindings[key]; ok {
			actions = append(actions, action)
		}
	}
	return actions
}
