package wallet

import (
	"math"

	"github.com/workbitai/oopsworld/pkg/events"
	"github.com/workbitai/oopsworld/pkg/log"
	"github.com/workbitai/oopsworld/pkg/prefs"
)

const (
	CoinsKey    = "COINS"
	DiamondsKey = "DIAMONDS"
	NoAdsKey    = "NO_ADS"
	// OfflineStarsKey is the legacy key used before offline stars were kept per user.
	OfflineStarsKey = "OFFLINE_STARS"
)

// OfflineStarsUserKey returns the offline-star key for a user.
func OfflineStarsUserKey(userID string) string {
	return OfflineStarsKey + "_" + userID
}

// UserResolver resolves the id of the current user, or "" when nobody is signed in.
type UserResolver interface {
	ResolveUserID() string
}

// Wallet owns the player's currency balances.
// Every mutation is saved immediately and followed by a notification
// carrying the new value.
type Wallet struct {
	store               prefs.Store
	users               UserResolver
	coinsChanged        *events.Emitter[int]
	diamondsChanged     *events.Emitter[int]
	offlineStarsChanged *events.Emitter[int]
	noAdsChanged        *events.Emitter[bool]
}

type NewWalletOptions struct {
	Store prefs.Store
	// Users may be nil, in which case offline stars use the legacy key.
	Users UserResolver
}

func New(opts NewWalletOptions) *Wallet {
	return &Wallet{
		store:               opts.Store,
		users:               opts.Users,
		coinsChanged:        events.NewEmitter[int]("CoinsChanged"),
		diamondsChanged:     events.NewEmitter[int]("DiamondsChanged"),
		offlineStarsChanged: events.NewEmitter[int]("OfflineStarsChanged"),
		noAdsChanged:        events.NewEmitter[bool]("NoAdsChanged"),
	}
}

func (w *Wallet) CoinsChanged() *events.Emitter[int]        { return w.coinsChanged }
func (w *Wallet) DiamondsChanged() *events.Emitter[int]     { return w.diamondsChanged }
func (w *Wallet) OfflineStarsChanged() *events.Emitter[int] { return w.offlineStarsChanged }
func (w *Wallet) NoAdsChanged() *events.Emitter[bool]       { return w.noAdsChanged }

func (w *Wallet) Coins() int {
	return w.balance(CoinsKey)
}

func (w *Wallet) Diamonds() int {
	return w.balance(DiamondsKey)
}

func (w *Wallet) AddCoins(amount int) {
	w.add(CoinsKey, amount, w.coinsChanged)
}

func (w *Wallet) AddDiamonds(amount int) {
	w.add(DiamondsKey, amount, w.diamondsChanged)
}

func (w *Wallet) SetCoins(amount int) {
	w.set(CoinsKey, amount, w.coinsChanged)
}

func (w *Wallet) SetDiamonds(amount int) {
	w.set(DiamondsKey, amount, w.diamondsChanged)
}

// TrySpendCoins deducts amount if the balance covers it.
// A non-positive amount succeeds without touching the balance.
func (w *Wallet) TrySpendCoins(amount int) bool {
	return w.trySpend(CoinsKey, amount, w.coinsChanged)
}

func (w *Wallet) TrySpendDiamonds(amount int) bool {
	return w.trySpend(DiamondsKey, amount, w.diamondsChanged)
}

func (w *Wallet) NoAds() bool {
	return w.store.GetInt(NoAdsKey, 0) == 1
}

func (w *Wallet) SetNoAds(enabled bool) {
	v := 0
	if enabled {
		v = 1
	}
	w.store.SetInt(NoAdsKey, v)
	w.save()
	log.Debug("No-ads set to %t", enabled)
	w.noAdsChanged.Emit(enabled)
}

// offlineStarsKey resolves the key for the current user, migrating the legacy
// balance into the user's key the first time that user is seen.
func (w *Wallet) offlineStarsKey() string {
	userID := ""
	if w.users != nil {
		userID = w.users.ResolveUserID()
	}
	if userID == "" {
		return OfflineStarsKey
	}

	key := OfflineStarsUserKey(userID)
	if !w.store.HasKey(key) {
		legacy := max(0, w.store.GetInt(OfflineStarsKey, 0))
		w.store.SetInt(key, legacy)
		w.save()
		log.Info("Migrated %d offline stars to user %s", legacy, userID)
	}
	return key
}

func (w *Wallet) OfflineStars() int {
	return w.balance(w.offlineStarsKey())
}

func (w *Wallet) AddOfflineStars(amount int) {
	w.add(w.offlineStarsKey(), amount, w.offlineStarsChanged)
}

func (w *Wallet) SetOfflineStars(amount int) {
	w.set(w.offlineStarsKey(), amount, w.offlineStarsChanged)
}

func (w *Wallet) TrySpendOfflineStars(amount int) bool {
	return w.trySpend(w.offlineStarsKey(), amount, w.offlineStarsChanged)
}

func (w *Wallet) balance(key string) int {
	return max(0, w.store.GetInt(key, 0))
}

func (w *Wallet) add(key string, amount int, changed *events.Emitter[int]) {
	if amount <= 0 {
		return
	}
	w.commit(key, saturatingAdd(w.balance(key), amount), changed)
}

// saturatingAdd adds two non-negative ints, capping at math.MaxInt.
func saturatingAdd(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}

func (w *Wallet) set(key string, amount int, changed *events.Emitter[int]) {
	w.commit(key, max(0, amount), changed)
}

func (w *Wallet) trySpend(key string, amount int, changed *events.Emitter[int]) bool {
	if amount <= 0 {
		return true
	}
	balance := w.balance(key)
	if balance < amount {
		log.Debug("Insufficient %s: have %d, need %d", key, balance, amount)
		return false
	}
	w.commit(key, balance-amount, changed)
	return true
}

func (w *Wallet) commit(key string, value int, changed *events.Emitter[int]) {
	w.store.SetInt(key, value)
	w.save()
	log.Debug("Wallet %s=%d", key, value)
	changed.Emit(value)
}

func (w *Wallet) save() {
	if err := w.store.Save(); err != nil {
		log.Error("Failed to save wallet: %v", err)
	}
}
