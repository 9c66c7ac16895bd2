package game

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/workbitai/oopsworld/client/fonts"
	"github.com/workbitai/oopsworld/client/input"
	"github.com/workbitai/oopsworld/pkg/auth"
	"github.com/workbitai/oopsworld/pkg/events"
	"github.com/workbitai/oopsworld/pkg/log"
	"github.com/workbitai/oopsworld/pkg/queue"
	"github.com/workbitai/oopsworld/pkg/session"
	"github.com/workbitai/oopsworld/pkg/state"
	"github.com/workbitai/oopsworld/pkg/tasks"
	"golang.org/x/image/font"
)

const loginTimeout = 10 * time.Second

// Task targets used by the debug actions.
const (
	winTarget    = 3
	adTarget     = 3
	friendTarget = 1
)

type loginResult struct {
	raw []byte
	err error
}

// Game implements ebiten.Game interface, which has Update, Draw and Layout methods.
// It hosts the player state and drives its lifecycle from the ebiten loop.
type Game struct {
	// debug enables the key bound debug actions and the overlay.
	debug bool
	// state owns every player-state service.
	state *state.Manager
	// authClient performs guest logins. Nil disables them.
	authClient *auth.Client
	// loginResults carries login responses from the request goroutine to Update.
	loginResults queue.Queue[loginResult]
	// taskChanges buffers task records for the status line.
	taskChanges queue.Queue[tasks.Record]
	subscriptions []*events.Subscription

	loggingIn bool
	quitting  bool
	status    string
	actions   []input.Action
}

type NewGameOptions struct {
	Debug      bool
	State      *state.Manager
	AuthClient *auth.Client
}

func NewGame(opts NewGameOptions) *Game {
	g := &Game{
		debug:        opts.Debug,
		state:        opts.State,
		authClient:   opts.AuthClient,
		loginResults: queue.NewInMemoryQueue[loginResult](4),
		taskChanges:  queue.NewInMemoryQueue[tasks.Record](64),
	}

	g.subscriptions = append(g.subscriptions,
		g.state.Tasks().Changed().SubscribeQueue(g.taskChanges),
		g.state.Tasks().DayRolledOver().Subscribe(func(day string) {
			g.status = fmt.Sprintf("New day %s", day)
		}),
		g.state.Session().ProfileChanged().Subscribe(func(p session.Profile) {
			g.status = fmt.Sprintf("Signed in as %s", p.Username)
		}),
	)

	g.state.OnEnable()
	return g
}

func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() && !g.quitting {
		g.quit()
		return ebiten.Termination
	}

	g.state.SyncFocus(ebiten.IsFocused())

	g.state.Update(time.Second / time.Duration(ebiten.TPS()))

	if err := g.drainLoginResults(); err != nil {
		return fmt.Errorf("failed to drain login results: %v", err)
	}

	changes, err := g.taskChanges.ReadAllMessages()
	if err != nil {
		return fmt.Errorf("failed to read task changes: %v", err)
	}
	for _, record := range changes {
		if record.Completed {
			g.status = fmt.Sprintf("%s completed", record.Name)
		}
	}

	if g.debug {
		g.actions = input.AppendJustPressedActions(g.actions[:0])
		for _, action := range g.actions {
			g.handleAction(action)
		}
	}

	return nil
}

func (g *Game) quit() {
	g.quitting = true
	for _, sub := range g.subscriptions {
		sub.Unsubscribe()
	}
	g.state.OnQuit()
}

func (g *Game) handleAction(action input.Action) {
	w := g.state.Wallet()
	t := g.state.Tasks()
	switch action {
	case input.ActionAddCoins:
		w.AddCoins(10)
	case input.ActionSpendCoins:
		if !w.TrySpendCoins(25) {
			g.status = "Not enough coins"
		}
	case input.ActionAddDiamonds:
		w.AddDiamonds(1)
	case input.ActionAddOfflineStars:
		w.AddOfflineStars(1)
	case input.ActionWinGame:
		t.AddProgress(tasks.Win3Times, 1, winTarget)
	case input.ActionWatchAd:
		t.AddProgress(tasks.Watch3Ads, 1, adTarget)
	case input.ActionPlayWithFriend:
		t.Complete(tasks.PlayWithFriend, friendTarget)
	case input.ActionToggleNoAds:
		w.SetNoAds(!w.NoAds())
	case input.ActionGuestLogin:
		g.startGuestLogin()
	}
}

func (g *Game) startGuestLogin() {
	if g.authClient == nil || g.loggingIn {
		return
	}
	g.loggingIn = true
	g.status = "Signing in..."
	deviceID := g.state.Session().DeviceID()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
		defer cancel()
		raw, err := g.authClient.GuestLogin(ctx, deviceID)
		if err := g.loginResults.Enqueue(loginResult{raw: raw, err: err}); err != nil {
			log.Error("Failed to enqueue login result: %v", err)
		}
	}()
}

func (g *Game) drainLoginResults() error {
	results, err := g.loginResults.ReadAllMessages()
	if err != nil {
		return err
	}
	for _, result := range results {
		g.loggingIn = false
		if result.err != nil {
			log.Error("Guest login failed: %v", result.err)
			g.status = "Sign in failed"
			continue
		}
		if !g.state.Session().TryApplyLoginResponse(result.raw) {
			g.status = "Sign in rejected"
			continue
		}
		g.state.Tasks().Complete(tasks.DailyLogin, 1)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	w := g.state.Wallet()
	profile := g.state.Session().Profile()

	name := profile.Username
	if name == "" {
		name = "Not signed in"
	}
	g.drawLine(screen, name, 30, fonts.TTFNormalFont)
	g.drawLine(screen, fmt.Sprintf("Coins %d   Diamonds %d   Stars %d", w.Coins(), w.Diamonds(), w.OfflineStars()), 60, fonts.TTFNormalFont)

	y := 100.0
	for _, record := range g.state.Tasks().Records() {
		mark := " "
		if record.Completed {
			mark = "x"
		}
		g.drawLine(screen, fmt.Sprintf("[%s] %-16s %d", mark, record.Name, record.Progress), y, fonts.TTFSmallFont)
		y += 22
	}
	g.drawLine(screen, fmt.Sprintf("Points %d", g.state.Tasks().GetCompletedPoints(rewardPoints)), y+10, fonts.TTFSmallFont)

	if g.status != "" {
		g.drawLine(screen, g.status, DefaultScreenHeight-20, fonts.TTFSmallFont)
	}

	if g.debug {
		g.drawDebugOverlay(screen)
	}
}

func (g *Game) drawLine(screen *ebiten.Image, s string, y float64, face font.Face) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(20, y)
	op.ColorScale.ScaleWithColor(color.White)
	text.DrawWithOptions(screen, s, face, op)
}

func (g *Game) drawDebugOverlay(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %0.1f", ebiten.ActualTPS()), DefaultScreenWidth-200, 4)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Pending: %s", g.state.Accumulator().Pending()), DefaultScreenWidth-200, 20)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Accruing: %t", g.state.Accumulator().Accruing()), DefaultScreenWidth-200, 36)
}

// rewardPoints is the points each task is worth on the HUD.
func rewardPoints(id tasks.TaskID) int {
	switch id {
	case tasks.DailyLogin:
		return 10
	case tasks.Spend2Hours:
		return 30
	default:
		return 20
	}
}

const (
	DefaultScreenWidth  = 640
	DefaultScreenHeight = 480
)

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return DefaultScreenWidth, DefaultScreenHeight
}
