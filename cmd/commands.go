// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "askminstrel",
		Usage:   "Browse artist, album, and track metadata from the remote catalog",
		Version: "1.0.0",
		Commands: []*cli.Command{
			searchCommand(r),
			artistCommand(r),
			albumCommand(r),
			trackCommand(r),
			cacheCommand(r),
			configCommand(r),
		},
	}
}

// commonFlags are shared by every command that reaches the remote catalog.
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.BoolFlag{
			Name:  "no-cache",
			Usage: "Clear the cache and bypass memoization for this run",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
			Value: true,
		},
	}
}

// searchCommand queries the catalog for one entity type
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the catalog for artists, albums, or tracks",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "type"},
			&cli.StringArg{Name: "query"},
		},
		Flags:  commonFlags(),
		Action: r.SearchCatalog,
	}
}

// artistCommand shows artist detail plus albums
func artistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "artist",
		Usage: "Show artist detail and their albums",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Flags:  commonFlags(),
		Action: r.ArtistDetail,
	}
}

// albumCommand shows album detail plus tracks
func albumCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "album",
		Usage: "Show album detail and its tracks",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Flags:  commonFlags(),
		Action: r.AlbumDetail,
	}
}

// trackCommand shows track detail plus audio features
func trackCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "track",
		Usage: "Show track detail and its audio features",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Flags:  commonFlags(),
		Action: r.TrackDetail,
	}
}

// cacheCommand manages the on-disk memoization store
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the on-disk call cache",
		Commands: []*cli.Command{
			{
				Name:  "clear",
				Usage: "Remove every cached catalog response",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.CacheClear,
			},
		},
	}
}

// configCommand writes a starter configuration file
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration helpers",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write the example configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to write",
						Value:   "config.toml",
					},
				},
				Action: r.ConfigInit,
			},
		},
	}
}
