package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/workbitai/oopsworld/client/game"
	"github.com/workbitai/oopsworld/pkg/auth"
	"github.com/workbitai/oopsworld/pkg/log"
	"github.com/workbitai/oopsworld/pkg/prefs"
	"github.com/workbitai/oopsworld/pkg/state"
	"github.com/workbitai/oopsworld/pkg/version"
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level")
	prefsPath := flag.String("prefs-path", "prefs.db", "Path to the player prefs SQLite file")
	authURL := flag.String("auth-url", auth.DefaultAuthServerURL, "URL of the authentication server")
	debug := flag.Bool("debug", false, "Enable debug actions and overlay")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting client version %s", version.Get())
	ctx := context.Background()

	backend, err := prefs.NewSQLiteBackend(ctx, *prefsPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to open prefs backend: %v", err))
	}
	store, err := prefs.Open(ctx, backend)
	if err != nil {
		panic(fmt.Sprintf("Failed to load prefs: %v", err))
	}
	defer func() {
		if err := store.Close(ctx); err != nil {
			log.Error("Failed to close prefs: %v", err)
		}
	}()

	stateManager := state.NewManager(state.NewManagerOptions{
		Store: store,
	})

	g := game.NewGame(game.NewGameOptions{
		Debug: *debug,
		State: stateManager,
		AuthClient: auth.NewClient(auth.NewClientOptions{
			BaseURL: *authURL,
		}),
	})

	ebiten.SetWindowSize(game.DefaultScreenWidth, game.DefaultScreenHeight)
	ebiten.SetWindowTitle("Oops World")
	ebiten.SetWindowClosingHandled(true)
	// Update must keep running while unfocused to observe focus loss.
	ebiten.SetRunnableOnUnfocused(true)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		panic(fmt.Sprintf("Failed to run game: %v", err))
	}
}
