package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jobtracker/jobtracker-api/internal/bootstrap"
	domainauth "github.com/jobtracker/jobtracker-api/internal/domain/auth"
)

type issueTokenOptions struct {
	UserID string
	Name   string
	TTL    time.Duration
}

func runIssueToken(cmdCtx *commandContext, args []string) error {
	opts, err := parseIssueTokenFlags(args)
	if err != nil {
		return err
	}

	codec, err := bootstrap.NewTokenCodec(cmdCtx.Config.Auth)
	if err != nil {
		return err
	}

	ttl := opts.TTL
	if ttl == 0 {
		ttl = cmdCtx.Config.Auth.JWTLifetime.Duration()
	}
	token, err := codec.IssueTTL(domainauth.Identity{UserID: opts.UserID, Name: opts.Name}, ttl)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	if codec.IsRestricted(opts.UserID) {
		cmdCtx.Logger.Warn("issued token belongs to the read-only demo account", "user_id", opts.UserID)
	}
	return writeln(cmdCtx.Out, token)
}

func parseIssueTokenFlags(args []string) (issueTokenOptions, error) {
	fs := flag.NewFlagSet("issue-token", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := issueTokenOptions{}
	fs.StringVar(&opts.UserID, "user", "", "User id (UUID) to embed in the token")
	fs.StringVar(&opts.Name, "name", "", "Display name to embed in the token")
	fs.DurationVar(&opts.TTL, "ttl", 0, "Token validity (defaults to JWT_LIFETIME)")

	if err := fs.Parse(args); err != nil {
		return issueTokenOptions{}, err
	}

	opts.UserID = strings.TrimSpace(opts.UserID)
	if opts.UserID == "" {
		return issueTokenOptions{}, errors.New("--user is required")
	}
	if _, err := uuid.Parse(opts.UserID); err != nil {
		return issueTokenOptions{}, fmt.Errorf("--user must be a UUID: %w", err)
	}
	if opts.TTL < 0 {
		return issueTokenOptions{}, errors.New("--ttl must not be negative")
	}
	return opts, nil
}
