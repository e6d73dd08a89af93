// Package main is the entry point for the foodgram CLI.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Barty-sim/foodgram-project-react/internal/auth"
	"github.com/Barty-sim/foodgram-project-react/internal/config"
	"github.com/Barty-sim/foodgram-project-react/internal/model"
	"github.com/Barty-sim/foodgram-project-react/internal/storage/sqlite"
	"github.com/Barty-sim/foodgram-project-react/pkg/app"
)

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "foodgram",
		Short:         "A recipe sharing service: recipes, subscriptions, shopping lists",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(versionCmd(), serveCmd(), configCmd(), loadDataCmd(), createSuperuserCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("foodgram %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the foodgram HTTP service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			return app.Run(app.RunParams{
				ConfigPath: cfgPath,
				Version:    version,
				Commit:     commit,
				Date:       date,
			})
		},
	}
	cmd.Flags().StringP("config", "c", "", "Path to configuration file")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <path>",
		Short: "Validate configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}
			fmt.Printf("Configuration OK (listening on %s, database %s)\n",
				cfg.Server.Bind, cfg.Database.Path)
			return nil
		},
	})
	return cmd
}

// openStore loads the config and opens the database for one-shot commands.
func openStore(cmd *cobra.Command) (*sqlite.Store, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		resolved, err := app.ResolveConfigPath()
		if err != nil {
			return nil, err
		}
		cfgPath = resolved
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return sqlite.Open(cfg.Database.Path, cfg.Database.BusyTimeout)
}

func loadDataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loaddata <ingredients|tags> <file.json>",
		Short: "Import ingredient or tag fixtures (idempotent)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, path := args[0], args[1]
			if kind != "ingredients" && kind != "tags" {
				return fmt.Errorf("unknown fixture kind %q (want ingredients or tags)", kind)
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := context.Background()
			var count int
			switch kind {
			case "ingredients":
				var ingredients []model.Ingredient
				if err := json.Unmarshal(raw, &ingredients); err != nil {
					return fmt.Errorf("parsing %s: %w", path, err)
				}
				for _, ing := range ingredients {
					if ing.Name == "" || ing.MeasurementUnit == "" {
						return fmt.Errorf("invalid ingredient entry %+v: name and measurement_unit required", ing)
					}
					if err := store.UpsertIngredient(ctx, ing); err != nil {
						return err
					}
				}
				count = len(ingredients)
			case "tags":
				var tags []model.Tag
				if err := json.Unmarshal(raw, &tags); err != nil {
					return fmt.Errorf("parsing %s: %w", path, err)
				}
				for _, tag := range tags {
					if tag.Name == "" || tag.Slug == "" {
						return fmt.Errorf("invalid tag entry %+v: name and slug required", tag)
					}
					if err := store.UpsertTag(ctx, tag); err != nil {
						return err
					}
				}
				count = len(tags)
			}

			fmt.Printf("Loaded %d %s from %s\n", count, kind, path)
			return nil
		},
	}
	cmd.Flags().StringP("config", "c", "", "Path to configuration file")
	return cmd
}

func createSuperuserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create a staff user (interactive unless flags are given)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, _ := cmd.Flags().GetString("email")
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")

			if email == "" || username == "" || password == "" {
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewInput().
							Title("Email").
							Value(&email).
							Validate(func(s string) error {
								_, err := mail.ParseAddress(s)
								return err
							}),
						huh.NewInput().
							Title("Username").
							Value(&username).
							Validate(func(s string) error {
								if s == "" {
									return errors.New("username required")
								}
								return nil
							}),
						huh.NewInput().
							Title("Password").
							EchoMode(huh.EchoModePassword).
							Value(&password).
							Validate(func(s string) error {
								if len(s) < 8 {
									return errors.New("password must be at least 8 characters")
								}
								return nil
							}),
					),
				)
				if err := form.Run(); err != nil {
					return err
				}
			}

			if _, err := mail.ParseAddress(email); err != nil {
				return fmt.Errorf("invalid email %q: %w", email, err)
			}
			if len(password) < 8 {
				return errors.New("password must be at least 8 characters")
			}

			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			user, err := store.CreateUser(context.Background(), model.User{
				Email:        email,
				Username:     username,
				FirstName:    username,
				LastName:     username,
				PasswordHash: hash,
				IsStaff:      true,
			})
			if err != nil {
				if errors.Is(err, model.ErrDuplicate) {
					return fmt.Errorf("a user with that email or username already exists")
				}
				return err
			}

			fmt.Printf("Superuser created: %s (id %d)\n", user.Email, user.ID)
			return nil
		},
	}
	cmd.Flags().StringP("config", "c", "", "Path to configuration file")
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("username", "", "Username")
	cmd.Flags().String("password", "", "Password (insecure on shared shells, prefer the prompt)")
	return cmd
}
