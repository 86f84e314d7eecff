package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/PrizeGrid_Go/internal/auth"
)

// TokenCommand issues a player JWT signed with JWT_SECRET, for local testing
type TokenCommand struct {
	out io.Writer
}

func (c *TokenCommand) Name() string { return "token" }

func (c *TokenCommand) Description() string {
	return "Issue a signed player token (-user, -operator, -ttl)"
}

func (c *TokenCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	user := fs.String("user", "", "player id to put in the token")
	operator := fs.Bool("operator", false, "grant the operator role")
	ttl := fs.Duration("ttl", time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" {
		return errors.New("-user is required")
	}

	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return errors.New("JWT_SECRET is not set")
	}

	role := ""
	if *operator {
		role = auth.RoleOperator
	}
	token, err := auth.NewVerifier(secret).Issue(*user, role, *ttl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.out, token)
	return err
}
