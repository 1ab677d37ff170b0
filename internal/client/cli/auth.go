package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/authgate/internal/client/api"
	"github.com/dmitrijs2005/authgate/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username, email and password and attempts to create
// a new account. On success the issued token is stored and the session is
// considered logged in, no separate login step is needed.
//
// The password byte slice is securely wiped before returning. Any I/O or
// service error is returned unchanged.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.api.SignUp(ctx, userName, email, password)
	if err != nil {
		if errors.Is(err, api.ErrAccountExists) {
			log.Printf("Registration unsuccessfull: username or email already taken")
			return nil
		}
		if errors.Is(err, api.ErrInvalidInput) {
			log.Printf("Registration unsuccessfull: %s", err.Error())
			return nil
		}
		return err
	}

	if err := a.setSession(token, userName); err != nil {
		log.Printf("Warning: could not save token: %s", err.Error())
	}

	fmt.Println("Success!")
	return nil
}

// Login prompts for credentials and tries to authenticate.
//
// On success the new token replaces any stored one. Wrong credentials and
// an unreachable server are reported to the user without failing the REPL.
// The password is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.api.Login(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, api.ErrUnavailable):
			log.Printf("Server unavailable: %s", err.Error())
		case errors.Is(err, api.ErrUnauthorized):
			log.Printf("Login unsuccessfull: wrong email or password")
		case errors.Is(err, api.ErrInvalidInput):
			log.Printf("Login unsuccessfull: %s", err.Error())
		default:
			return err
		}
		return nil
	}

	log.Printf("Login successfull")
	return a.setSession(token, email)
}

// Logout removes the cached token. The server keeps no session state, so
// forgetting the token is all there is to it.
func (a *App) Logout(ctx context.Context) error {
	return a.clearSession()
}
