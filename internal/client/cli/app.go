package cli

import (
	"bufio"
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/authgate/internal/client/api"
	"github.com/dmitrijs2005/authgate/internal/client/config"
	"github.com/dmitrijs2005/authgate/internal/client/tokenstore"
)

type App struct {
	config *config.Config
	api    api.Client
	tokens tokenstore.Store

	token    string
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	apiClient := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout)
	tokens := tokenstore.NewFileStore(c.TokenFile)

	a := &App{config: c, api: apiClient, tokens: tokens, reader: bufio.NewReader(os.Stdin)}

	// Pick up the token from a previous session, if any.
	token, err := tokens.Load()
	if err != nil {
		if !errors.Is(err, tokenstore.ErrNoToken) {
			return nil, err
		}
	} else {
		a.token = token
	}

	return a, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

// setSession stores the freshly issued token both in memory and on disk.
// A save failure is not fatal, the session just will not survive a restart.
func (a *App) setSession(token, userName string) error {
	a.token = token
	a.userName = userName
	return a.tokens.Save(token)
}

func (a *App) clearSession() error {
	a.token = ""
	a.userName = ""
	return a.tokens.Clear()
}
