package cli

import (
	"context"
	"fmt"
	"log"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName
	} else if a.isLoggedIn() {
		s = "logged in"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to AuthGate CLI (type 'help' for commands)")

	for {
		fmt.Printf("agcli %s> ", a.getStatus())

		line, err := a.reader.ReadString('\n')
		if err != nil && line == "" {
			break
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]

		var cmdErr error

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: home, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, exit")
			}
		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "home", "me":
			cmdErr = a.Home(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}

		if cmdErr != nil {
			log.Printf("%s", cmdErr.Error())
		}
	}
}
