// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/ssotoken/cmd/app/commands"
	"github.com/allisson/ssotoken/internal/app"
	"github.com/allisson/ssotoken/internal/config"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "app",
		Usage:   "SSO token service",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMigrations()
				},
			},
			{
				Name:  "create-party",
				Usage: "Register a new party with an SSO shared secret",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Required: true,
						Usage:    "Unique party name",
					},
					&cli.StringFlag{
						Name:     "domain",
						Aliases:  []string{"d"},
						Required: true,
						Usage:    "Party domain (e.g., partner.example.com)",
					},
					&cli.StringFlag{
						Name:    "key",
						Aliases: []string{"k"},
						Value:   "",
						Usage:   "Hex SSO key, 128 or 256 bit (omit to generate)",
					},
					&cli.StringFlag{
						Name:    "privacy-key",
						Aliases: []string{"p"},
						Value:   "",
						Usage:   "Hex privacy key for field encryption, 128 or 256 bit (optional)",
					},
					&cli.BoolFlag{
						Name:    "active",
						Aliases: []string{"a"},
						Value:   true,
						Usage:   "Whether the party can authenticate immediately",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					logger := container.Logger()
					defer func() {
						if err := container.Shutdown(context.Background()); err != nil {
							logger.Error("failed to shutdown container", slog.Any("error", err))
						}
					}()

					useCase, err := container.PartyUseCase()
					if err != nil {
						return err
					}

					return commands.RunCreateParty(
						ctx,
						useCase,
						logger,
						cmd.String("name"),
						cmd.String("domain"),
						cmd.String("key"),
						cmd.String("privacy-key"),
						cmd.Bool("active"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				},
			},
			{
				Name:  "generate-key",
				Usage: "Generate a random hex SSO key",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "bits",
						Aliases: []string{"b"},
						Value:   256,
						Usage:   "Key size in bits (128 or 256)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunGenerateKey(cmd.Int("bits"), commands.DefaultIO())
				},
			},
			{
				Name:  "issue-token",
				Usage: "Encode a token offline from a hex key and attributes",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "key",
						Aliases:  []string{"k"},
						Required: true,
						Usage:    "Hex SSO key, 128 or 256 bit",
					},
					&cli.StringSliceFlag{
						Name:    "attr",
						Aliases: []string{"a"},
						Usage:   "Attribute in k=v form (repeatable)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunIssueToken(
						cmd.String("key"),
						cmd.StringSlice("attr"),
						commands.DefaultIO(),
					)
				},
			},
			{
				Name:  "decode-token",
				Usage: "Decode and verify a token offline from a hex key",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "key",
						Aliases:  []string{"k"},
						Required: true,
						Usage:    "Hex SSO key, 128 or 256 bit",
					},
					&cli.StringFlag{
						Name:     "token",
						Aliases:  []string{"t"},
						Required: true,
						Usage:    "Encoded token",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunDecodeToken(
						cmd.String("key"),
						cmd.String("token"),
						commands.DefaultIO(),
					)
				},
			},
			{
				Name:  "encrypt-field",
				Usage: "Encrypt an attribute value offline from a hex privacy key",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "key",
						Aliases:  []string{"k"},
						Required: true,
						Usage:    "Hex privacy key, 128 or 256 bit",
					},
					&cli.StringFlag{
						Name:    "value",
						Aliases: []string{"v"},
						Usage:   "Attribute value to encrypt",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunEncryptField(
						cmd.String("key"),
						cmd.String("value"),
						commands.DefaultIO(),
					)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
