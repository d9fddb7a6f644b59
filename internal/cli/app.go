// Package cli is the interactive surface over the vault core. It maps menu
// commands to core operations and contains no business logic of its own.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/credvault/internal/auth"
	"github.com/dmitrijs2005/credvault/internal/config"
	"github.com/dmitrijs2005/credvault/internal/logging"
	"github.com/dmitrijs2005/credvault/internal/notify"
	"github.com/dmitrijs2005/credvault/internal/storage"
	"github.com/dmitrijs2005/credvault/internal/vault"
)

type App struct {
	config       *config.Config
	authService  *auth.Service
	vaultService *vault.Service
	token        string
	userName     string
	reader       *bufio.Reader
	log          logging.Logger
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	cipher, err := cfg.Cipher()
	if err != nil {
		return nil, err
	}

	snap := storage.NewSnapshot(cfg.SnapshotPath, cipher)
	store, err := storage.NewStore(snap, log)
	if err != nil {
		return nil, err
	}

	as := auth.NewService(store, notify.NewLogNotifier(log), cfg, log)
	vs := vault.NewService(store, cfg, log)

	return &App{
		config:       cfg,
		authService:  as,
		vaultService: vs,
		reader:       bufio.NewReader(os.Stdin),
		log:          log,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return a.userName
	}
	return "not logged in"
}
