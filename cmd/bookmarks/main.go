// Package main manages the bookmarked-jobs store from the command line.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"github.com/pthm-cable/resumefx/bookmarks"
	"github.com/pthm-cable/resumefx/config"
)

const usage = `usage: bookmarks [-config file] [-file path] <command> [args]

commands:
  list [-q term] [-sort newest|oldest|match|company]
  add <jobID>
  remove <jobID>
  toggle <jobID>
  clear
  export <file.csv>
  catalog
`

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("loading .env: %v", err)
	}

	configPath := flag.String("config", os.Getenv("RESUMEFX_CONFIG"), "Path to config.yaml (empty = use defaults)")
	file := flag.String("file", os.Getenv("RESUMEFX_BOOKMARKS"), "Bookmark store file (empty = use config)")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	path := *file
	if path == "" {
		path = cfg.Bookmarks.Path
	}
	store := bookmarks.NewStore(bookmarks.NewFileStore(path), cfg.Bookmarks.Key)

	if err := run(flag.Args(), os.Stdout, store, time.Now); err != nil {
		fmt.Fprintln(os.Stderr, "bookmarks:", err)
		os.Exit(1)
	}
}

// run executes one command against store.
func run(args []string, out io.Writer, store *bookmarks.Store, now func() time.Time) error {
	if len(args) == 0 {
		return errors.New("missing command\n" + usage)
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "list":
		return list(rest, out, store)
	case "add":
		job, err := jobArg(rest)
		if err != nil {
			return err
		}
		if _, err := store.Add(job, now()); err != nil {
			return err
		}
		fmt.Fprintf(out, "bookmarked %d %s\n", job.ID, job.Title)
	case "remove":
		id, err := idArg(rest)
		if err != nil {
			return err
		}
		if _, err := store.Remove(id); err != nil {
			return err
		}
		fmt.Fprintf(out, "removed %d\n", id)
	case "toggle":
		job, err := jobArg(rest)
		if err != nil {
			return err
		}
		on, err := store.Toggle(job, now())
		if err != nil {
			return err
		}
		state := "removed"
		if on {
			state = "bookmarked"
		}
		fmt.Fprintf(out, "%s %d %s\n", state, job.ID, job.Title)
	case "clear":
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(out, "cleared")
	case "export":
		if len(rest) != 1 {
			return errors.New("export needs a file name")
		}
		return export(rest[0], store)
	case "catalog":
		jobs, err := bookmarks.Catalog()
		if err != nil {
			return err
		}
		return bookmarks.ExportJobsCSV(out, jobs)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func idArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errors.New("expected one job id")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid job id %q: %w", args[0], err)
	}
	return id, nil
}

func jobArg(args []string) (bookmarks.Job, error) {
	id, err := idArg(args)
	if err != nil {
		return bookmarks.Job{}, err
	}
	return bookmarks.Lookup(id)
}

func list(args []string, out io.Writer, store *bookmarks.Store) error {
	flags := flag.NewFlagSet("list", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	term := flags.String("q", "", "search title, company and skills")
	sortBy := flags.String("sort", string(bookmarks.SortNewest), "newest, oldest, match or company")
	if err := flags.Parse(args); err != nil {
		return err
	}
	order, err := bookmarks.ParseSortOrder(*sortBy)
	if err != nil {
		return err
	}

	saved, err := store.Load()
	if err != nil {
		return err
	}
	shown := bookmarks.Sort(bookmarks.Search(saved, *term), order)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tMATCH\tSAVED")
	for _, b := range shown {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d%%\t%s\n",
			b.ID, b.Title, b.Company, b.Match, b.BookmarkedAt.Format(time.DateOnly))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d of %d bookmarks\n", len(shown), len(saved))
	return nil
}

func export(path string, store *bookmarks.Store) error {
	saved, err := store.Load()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := bookmarks.ExportCSV(f, saved); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
