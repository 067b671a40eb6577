package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/litescript/kat-search/internal/kat"
	"github.com/litescript/kat-search/internal/qbit"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type searchOptions struct {
	query   kat.Query
	json    bool
	urlOnly bool
	send    int
}

func newSearchCmd() *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search [flags] <query...>",
		Short: "Run one search and print the results page",
		Example: `  kat-search search ubuntu
  kat-search search --category books --page 2 ubuntu
  kat-search search --imdb tt0133093 --language en --sort seeders --order desc matrix`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.query.Query = strings.Join(args, " ")
			return runSearch(cmd, opts)
		},
	}

	q := &opts.query
	f := cmd.Flags()
	f.StringVar(&q.Category, "category", "", "category, e.g. movies, tv, books")
	f.StringVar(&q.Uploader, "uploader", "", "uploader user name")
	f.IntVar(&q.MinSeeds, "min-seeds", 0, "minimum seeders")
	f.StringVar(&q.Age, "age", "", "maximum age: hour, 24h, week, month, year")
	f.IntVar(&q.MinFiles, "min-files", 0, "minimum file count")
	f.StringVar(&q.IMDB, "imdb", "", "IMDb id (tt prefix is stripped)")
	f.StringVar(&q.TVRage, "tvrage", "", "TVRage id")
	f.StringVar(&q.ISBN, "isbn", "", "ISBN")
	f.StringVar(&q.Language, "language", "", "language code, see 'codes languages'")
	f.IntVar(&q.AdultFilter, "safe", 0, "1 to filter adult content")
	f.IntVar(&q.Verified, "verified", 0, "1 for verified torrents only")
	f.IntVar(&q.Season, "season", 0, "season number")
	f.IntVar(&q.Episode, "episode", 0, "episode number")
	f.StringVar(&q.PlatformID, "platform", "", "platform, see 'codes platforms'")
	f.IntVarP(&q.Page, "page", "p", 0, "results page (1-based)")
	f.StringVar(&q.SortBy, "sort", "", "sort field: seeders, leechers, size, files_count, time_add")
	f.StringVar(&q.Order, "order", "", "sort order: asc or desc")

	f.BoolVar(&opts.json, "json", false, "print JSON instead of a table")
	f.BoolVar(&opts.urlOnly, "url", false, "print the request URL without fetching it")
	f.IntVar(&opts.send, "send", 0, "queue result N (1-based) in qBittorrent")

	return cmd
}

func runSearch(cmd *cobra.Command, opts *searchOptions) error {
	client := kat.NewClient(cfg.Search.BaseURL, cfg.Timeout(),
		kat.WithUserAgent(cfg.Search.UserAgent),
		kat.WithErrorReporter(func(err error) {
			log.WithFields(log.Fields{"query": opts.query.Query}).Debugf("Rejected search: %v", err)
		}),
	)

	if opts.urlOnly {
		u, err := client.URL(&opts.query)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), u)
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := client.Search(ctx, &opts.query)
	if err != nil {
		return err
	}

	format := cfg.Output.Format
	if opts.json {
		format = "json"
	}
	if err := render(cmd.OutOrStdout(), format, result); err != nil {
		return err
	}

	if opts.send > 0 {
		return sendResult(ctx, result, opts.send)
	}
	return nil
}

func sendResult(ctx context.Context, result *kat.Result, n int) error {
	if n > len(result.Results) {
		return fmt.Errorf("no result %d on this page (%d results)", n, len(result.Results))
	}
	q := cfg.QBittorrent
	client := qbit.NewClient(q.Host, q.Port, q.Username, q.Password)
	t := result.Results[n-1]
	if err := client.AddTorrent(ctx, t, q.SavePath); err != nil {
		return fmt.Errorf("sending %q to qBittorrent: %w", t.Title, err)
	}
	fields := log.Fields{"title": t.Title, "host": q.Host}
	if v, err := client.Version(ctx); err == nil {
		fields["qbittorrent"] = v
	}
	log.WithFields(fields).Infof("Sent result %d to qBittorrent", n)
	return nil
}

func init() {
	rootCmd.AddCommand(newSearchCmd())
}
