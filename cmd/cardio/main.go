package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/dom/meucoracao/internal/client"
	"github.com/dom/meucoracao/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
	}

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := client.OpenSessionStore(ctx, cfg.SessionDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	c := client.New(cfg.APIURL, store, &http.Client{Timeout: cfg.Timeout})
	if _, err := c.Restore(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not restore session: %v\n", err)
	}

	if err := run(ctx, c, command, args); err != nil {
		fmt.Fprintln(os.Stderr, "Erro:", client.Message(err))
		store.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, c *client.Client, command string, args []string) error {
	switch command {
	case "register":
		return registerCmd(ctx, c, args)
	case "login":
		return loginCmd(ctx, c, args)
	case "logout":
		return logoutCmd(ctx, c)
	case "whoami":
		return whoamiCmd(ctx, c)
	}

	if res, ok := resources[command]; ok {
		if len(args) == 0 {
			return fmt.Errorf("missing action for %s, want one of list, get, add, edit, rm", command)
		}
		return res.run(ctx, c, args[0], args[1:])
	}

	printUsage()
	return fmt.Errorf("unknown command: %s", command)
}

func printUsage() {
	fmt.Println(`cardio - Meu Coração command line client

USAGE:
  cardio <command> [options]

COMMANDS:
  register  Create an account and sign in
  login     Sign in with email and password
  logout    Forget the saved session
  whoami    Show the signed-in user
  agenda    Appointments:  list | get | add | edit | rm
  alergias  Allergies:     list | get | add | edit | rm
  laudos    Reports:       list | get | add | edit | rm
  remedios  Medications:   list | get | add | edit | rm
  help      Show this help message

ENVIRONMENT:
  API_URL            Backend API URL (default: http://localhost:3000)
  CARDIO_SESSION_DB  Session database (default: ~/.meucoracao/session.db)
  API_TIMEOUT        Request timeout (default: 30s)

EXAMPLES:
  cardio register --name=Ana --email=ana@example.com
  cardio remedios add --nome=Losartana --dosagem=50mg
  cardio remedios edit --id=<id> --dosagem=100mg
  cardio agenda list
  cardio laudos rm --id=<id>`)
}
