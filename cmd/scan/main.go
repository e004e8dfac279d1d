// Command scan classifies a saved page snapshot offline and prints what the
// filter would suppress.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/jessevdk/go-flags"
	"github.com/lysyi3m/feed-comb/app/batch"
	"github.com/lysyi3m/feed-comb/app/cfg"
	"github.com/lysyi3m/feed-comb/app/feed"
	"github.com/lysyi3m/feed-comb/app/filter"
	"github.com/lysyi3m/feed-comb/app/pattern"
	"github.com/lysyi3m/feed-comb/app/settings"
)

type options struct {
	Settings string `long:"settings" short:"s" description:"YAML file with filter settings (defaults when missing)"`
	URL      string `long:"url" short:"u" default:"https://www.youtube.com/" description:"Page URL the snapshot was taken from"`
	Out      string `long:"out" short:"o" description:"Write the marked HTML to this file"`
	Verbose  bool   `long:"verbose" short:"v" description:"List every suppressed item"`
	Version  bool   `long:"version" description:"Print the version and exit"`

	Args struct {
		Page string `positional-arg-name:"page.html" description:"Saved page snapshot"`
	} `positional-args:"yes"`
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type printJournal struct {
	out     io.Writer
	verbose bool
}

func (j printJournal) Record(s filter.Suppression) {
	if !j.verbose {
		return
	}
	fmt.Fprintf(j.out, "  [%s] %q by %q (%s)\n", s.Reason, s.Title, s.Channel, s.Trigger)
}

func run(args []string, out io.Writer) error {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "scan"
	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}

	if opts.Version {
		fmt.Fprintf(out, "scan %s\n", cfg.GetVersion())
		return nil
	}
	if opts.Args.Page == "" {
		return fmt.Errorf("a page snapshot is required")
	}

	s := settings.Defaults()
	if opts.Settings != "" {
		loaded, err := settings.LoadFile(opts.Settings)
		if err != nil {
			return err
		}
		s = loaded
	}
	manager := settings.NewManager(s)

	f, err := os.Open(opts.Args.Page)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	doc, err := feed.ParseDocument(f, contentType(opts.Args.Page))
	if err != nil {
		return err
	}

	engine := filter.NewEngine(manager, pattern.NewCache(pattern.DefaultVariants()), printJournal{out: out, verbose: opts.Verbose})
	engine.SetPage(filter.ParsePage(opts.URL))

	scheduler := batch.NewScheduler(doc, engine, batch.Manual{}, batch.Options{})
	scheduler.ScanAll()
	processed := scheduler.Drain()

	stats := engine.Stats()
	fmt.Fprintf(out, "%s: %s items on %s page, %s suppressed, %s exempted\n",
		filepath.Base(opts.Args.Page),
		humanize.Comma(int64(processed)),
		engine.Page(),
		humanize.Comma(stats.Total()),
		humanize.Comma(stats.Exempted()))
	for _, rc := range stats.Summary() {
		fmt.Fprintf(out, "  %-20s %s\n", rc.Reason, humanize.Comma(rc.Count))
	}

	if opts.Out == "" {
		return nil
	}

	rendered, err := doc.HTML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.Out, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.Out, err)
	}
	fmt.Fprintf(out, "marked HTML written to %s (%s)\n", opts.Out, humanize.Bytes(uint64(len(rendered))))
	return nil
}

func contentType(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "text/html"
}
