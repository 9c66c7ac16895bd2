package state

import (
	"time"

	"github.com/workbitai/oopsworld/pkg/clock"
	"github.com/workbitai/oopsworld/pkg/prefs"
	"github.com/workbitai/oopsworld/pkg/session"
	"github.com/workbitai/oopsworld/pkg/spendtime"
	"github.com/workbitai/oopsworld/pkg/tasks"
	"github.com/workbitai/oopsworld/pkg/wallet"
)

// Lifecycle is the set of host callbacks the player state reacts to.
// All of them must be called from the host's single update goroutine.
type Lifecycle interface {
	OnEnable()
	OnDisable()
	OnPause(paused bool)
	OnFocus(focused bool)
	OnQuit()
	Update(dt time.Duration)
}

var _ Lifecycle = &Manager{}

// Manager constructs and owns every player-state service over one store.
type Manager struct {
	store       prefs.Store
	clock       clock.Clock
	session     *session.Session
	wallet      *wallet.Wallet
	tasks       *tasks.Tracker
	accumulator *spendtime.Accumulator
	focused     bool
}

type NewManagerOptions struct {
	Store prefs.Store
	// Clock defaults to the system clock.
	Clock clock.Clock
	// ProfileKeys defaults to session.DefaultProfileKeys.
	ProfileKeys *session.ProfileKeys
}

// NewManager wires the services together and restores the session from the store.
func NewManager(opts NewManagerOptions) *Manager {
	c := opts.Clock
	if c == nil {
		c = clock.SystemClock{}
	}

	sess := session.New(session.NewSessionOptions{
		Store:       opts.Store,
		ProfileKeys: opts.ProfileKeys,
	})
	tracker := tasks.NewTracker(tasks.NewTrackerOptions{
		Store: opts.Store,
		Clock: c,
	})

	m := &Manager{
		store:   opts.Store,
		clock:   c,
		session: sess,
		wallet: wallet.New(wallet.NewWalletOptions{
			Store: opts.Store,
			Users: sess,
		}),
		tasks:       tracker,
		accumulator: spendtime.New(tracker),
		focused:     true,
	}
	sess.LoadFromPrefs()
	tracker.EnsureDay()
	return m
}

func (m *Manager) Store() prefs.Store                  { return m.store }
func (m *Manager) Session() *session.Session           { return m.session }
func (m *Manager) Wallet() *wallet.Wallet              { return m.wallet }
func (m *Manager) Tasks() *tasks.Tracker               { return m.tasks }
func (m *Manager) Accumulator() *spendtime.Accumulator { return m.accumulator }

func (m *Manager) OnEnable() {
	m.accumulator.Enable()
}

func (m *Manager) OnDisable() {
	m.accumulator.Disable()
}

func (m *Manager) OnPause(paused bool) {
	if paused {
		m.accumulator.Pause()
		return
	}
	m.accumulator.Resume()
}

func (m *Manager) OnFocus(focused bool) {
	m.focused = focused
	m.accumulator.SetFocused(focused)
}

// SyncFocus forwards the host's polled focus state, calling OnFocus only on a change.
func (m *Manager) SyncFocus(focused bool) {
	if focused != m.focused {
		m.OnFocus(focused)
	}
}

func (m *Manager) OnQuit() {
	m.accumulator.Quit()
}

// Update is called once per frame with the frame's duration.
func (m *Manager) Update(dt time.Duration) {
	m.accumulator.Tick(dt)
}
