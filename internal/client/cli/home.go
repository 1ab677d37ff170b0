package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dmitrijs2005/authgate/internal/client/api"
)

// Home fetches and prints the authenticated account's profile.
//
// A 401 means the stored token is no longer accepted (expired or revoked),
// so the session is cleared and the user is asked to log in again. An
// unreachable server leaves the token in place.
func (a *App) Home(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Not logged in. Use 'login' or 'register' first.")
		return nil
	}

	profile, err := a.api.Me(ctx, a.token)
	if err != nil {
		switch {
		case errors.Is(err, api.ErrUnauthorized):
			log.Printf("Session expired, please log in again")
			return a.clearSession()
		case errors.Is(err, api.ErrUnavailable):
			log.Printf("Server unavailable: %s", err.Error())
			return nil
		default:
			return err
		}
	}

	a.userName = profile.Username

	fmt.Printf("id:       %s\n", profile.ID)
	fmt.Printf("username: %s\n", profile.Username)
	fmt.Printf("email:    %s\n", profile.Email)
	return nil
}
