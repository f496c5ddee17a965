package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dom/meucoracao/internal/client"
	"golang.org/x/term"
)

var errNotSignedIn = errors.New("not signed in, run: cardio login")

func registerCmd(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "Full name")
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password (prompted when omitted)")
	fs.Parse(args)

	pw, err := passwordOrPrompt(*password)
	if err != nil {
		return err
	}

	session, err := c.Register(ctx, *name, *email, pw)
	if err != nil {
		return err
	}
	fmt.Printf("Registered and signed in as %s <%s>\n", session.User.Name, session.User.Email)
	return nil
}

func loginCmd(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "Email address")
	password := fs.String("password", "", "Password (prompted when omitted)")
	fs.Parse(args)

	pw, err := passwordOrPrompt(*password)
	if err != nil {
		return err
	}

	session, err := c.Login(ctx, *email, pw)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s <%s>\n", session.User.Name, session.User.Email)
	return nil
}

func logoutCmd(ctx context.Context, c *client.Client) error {
	if err := c.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Signed out")
	return nil
}

func whoamiCmd(ctx context.Context, c *client.Client) error {
	if c.Session() == nil {
		return errNotSignedIn
	}
	user, err := c.Me(ctx)
	if err != nil {
		return err
	}
	return printJSON(user)
}

func passwordOrPrompt(password string) (string, error) {
	if password != "" {
		return password, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("--password is required when stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(string(raw), "\r\n"), nil
}
