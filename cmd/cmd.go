// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "Path to configuration file",
	Value:   "config.toml",
}

// setupCommand handles setup operations for the cache database and session import.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize the local catalog cache and run migrations",
				Flags:  []cli.Flag{configFlag},
				Action: r.SetupDatabase,
			},
			{
				Name:  "session",
				Usage: "Import an existing browser session from a cURL command",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing cURL command",
					},
				},
				Action: r.SetupSession,
			},
		},
	}
}

// authCommand handles account operations against the CineNiche backend.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Sign in, register, and inspect the current session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password", Required: true},
					&cli.BoolFlag{Name: "remember", Usage: "Request a persistent cookie instead of a session cookie"},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "register",
				Usage: "Create a new account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Account email", Required: true},
					&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Account password", Required: true},
				},
				Action: r.AuthRegister,
			},
			{
				Name:   "status",
				Usage:  "Show the current session",
				Flags:  []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}},
				Action: r.AuthStatus,
			},
			{
				Name:   "logout",
				Usage:  "End the current session",
				Action: r.AuthLogout,
			},
			{
				Name:   "google",
				Usage:  "Sign in with Google",
				Flags:  []cli.Flag{configFlag},
				Action: r.AuthGoogle,
			},
		},
	}
}

// catalogCommand handles catalog browsing operations.
func catalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "catalog",
		Aliases: []string{"cat"},
		Usage:   "Browse the movie catalog",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List catalog titles",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "genre", Aliases: []string{"g"}, Usage: "Filter by genre tag"},
					&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "Filter by title, director, or cast"},
					&cli.IntFlag{Name: "limit", Usage: "Maximum number of titles to print", Value: 0},
					&cli.BoolFlag{Name: "cached", Usage: "Read from the local cache instead of the backend"},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.CatalogList,
			},
			{
				Name:      "get",
				Usage:     "Show one title with its average rating",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags:     []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}},
				Action:    r.CatalogGet,
			},
			{
				Name:      "search",
				Usage:     "Search titles by substring",
				Arguments: []cli.Argument{&cli.StringArg{Name: "term"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "cached", Usage: "Read from the local cache instead of the backend"},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.CatalogSearch,
			},
			{
				Name:   "genres",
				Usage:  "List distinct genre tags",
				Action: r.CatalogGenres,
			},
			{
				Name:  "recent",
				Usage: "List the newest releases",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Usage: "Maximum number of titles to print", Value: 10},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.CatalogRecent,
			},
		},
	}
}

// rateCommand submits a star rating for a title.
func rateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "rate",
		Usage:     "Rate a title from 1 to 5 stars",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "stars", Aliases: []string{"s"}, Usage: "Stars from 1 to 5", Required: true},
			&cli.IntFlag{Name: "user", Usage: "User id to rate as (defaults to configured user)"},
		},
		Action: r.Rate,
	}
}

// recsCommand resolves recommendations against the catalog.
func recsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "recs",
		Usage: "Show recommendations",
		Commands: []*cli.Command{
			{
				Name:      "movie",
				Usage:     "Titles recommended alongside the given title",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags:     []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}},
				Action:    r.RecsMovie,
			},
			{
				Name:      "user",
				Usage:     "Titles recommended for a user",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags:     []cli.Flag{&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}},
				Action:    r.RecsUser,
			},
		},
	}
}

// adminCommand handles catalog management operations.
func adminCommand(r *Runner) *cli.Command {
	movieFlags := []cli.Flag{
		&cli.StringFlag{Name: "title", Usage: "Title"},
		&cli.StringFlag{Name: "type", Usage: "Movie or TV Show"},
		&cli.StringFlag{Name: "director", Usage: "Director"},
		&cli.StringFlag{Name: "cast", Usage: "Comma-separated cast"},
		&cli.StringFlag{Name: "country", Usage: "Country"},
		&cli.IntFlag{Name: "year", Usage: "Release year"},
		&cli.StringFlag{Name: "rating", Usage: "Maturity rating"},
		&cli.StringFlag{Name: "duration", Usage: "Duration, e.g. 98 min"},
		&cli.StringFlag{Name: "description", Usage: "Synopsis"},
		&cli.StringFlag{Name: "genre", Usage: "Comma-separated genre tags"},
	}

	return &cli.Command{
		Name:  "admin",
		Usage: "Manage the catalog (requires the Administrator role)",
		Commands: []*cli.Command{
			{
				Name:   "add",
				Usage:  "Add a title to the catalog",
				Flags:  movieFlags,
				Action: r.AdminAdd,
			},
			{
				Name:      "update",
				Usage:     "Update a title; only the provided flags change",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Flags:     movieFlags,
				Action:    r.AdminUpdate,
			},
			{
				Name:      "delete",
				Usage:     "Delete a title from the catalog",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.AdminDelete,
			},
			{
				Name:  "export",
				Usage: "Export per-genre listings",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Export format: csv, json, markdown, txt", Value: "csv"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output directory"},
					&cli.StringSliceFlag{Name: "genre", Aliases: []string{"g"}, Usage: "Genres to export (default: all)"},
					&cli.IntFlag{Name: "workers", Usage: "Concurrent export workers", Value: 5},
					&cli.Float64Flag{Name: "rate-limit", Usage: "Poster downloads per second", Value: 5},
				},
				Action: r.AdminExport,
			},
		},
	}
}

// syncCommand refreshes the local catalog cache.
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "sync",
		Usage:  "Sync the backend catalog into the local cache",
		Flags:  []cli.Flag{configFlag},
		Action: r.Sync,
	}
}

// dumpCommand dumps client-visible backend state.
func dumpCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "dump",
		Usage: "Dump session and catalog state as JSON",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output", Value: true},
			&cli.StringFlag{Name: "save", Usage: "Also write the dump to a file"},
		},
		Action: r.Dump,
	}
}

// tuiCommand launches the interactive terminal UI.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Browse the catalog interactively",
		Action: r.TUI,
	}
}
