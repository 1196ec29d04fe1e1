package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/api"
	"github.com/abhisek/quizdeck/internal/app"
	"github.com/abhisek/quizdeck/internal/auth"
	"github.com/abhisek/quizdeck/internal/store"
)

// deps bundles what every command needs: the local store, the restored
// session, and the backend client.
type deps struct {
	Store   *store.Store
	Session *auth.Session
	Client  *api.Client
}

func (d *deps) Close() {
	_ = d.Store.Close()
}

// openDeps opens the store and builds the session and API client.
func openDeps(cmd *cobra.Command) (*deps, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	session := auth.NewSession(st.CredentialRepo(), nil)
	client := api.NewClient(resolveServerURL(cmd), nil, session)

	return &deps{Store: st, Session: session, Client: client}, nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(app.Options{
		Session:  d.Session,
		Client:   d.Client,
		Attempts: d.Store.AttemptRepo(),
	})
}
