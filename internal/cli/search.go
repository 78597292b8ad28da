package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ruckusreads/ruckus/internal/catalog"
)

// SearchCommand looks books up in Open Library and prints the normalized
// candidates without touching the database.
type SearchCommand struct {
	Query   string
	ISBN    string
	Limit   int
	BaseURL string
	Timeout time.Duration

	out io.Writer
}

func NewSearchCommand() *SearchCommand {
	return &SearchCommand{out: os.Stdout}
}

func (cmd *SearchCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)

	fs.StringVar(&cmd.Query, "q", "", "Free-text query (title, author)")
	fs.StringVar(&cmd.ISBN, "isbn", "", "ISBN-10 or ISBN-13 to look up")
	fs.IntVar(&cmd.Limit, "limit", catalog.DefaultSearchLimit, "Maximum number of results")
	fs.StringVar(&cmd.BaseURL, "base-url", catalog.DefaultBaseURL, "Open Library base URL")
	fs.DurationVar(&cmd.Timeout, "timeout", 30*time.Second, "Request timeout")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s search [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Search the Open Library catalog and print normalized results.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s search -q \"left hand of darkness\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s search -isbn 9780441478125\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if (cmd.Query == "") == (cmd.ISBN == "") {
		fs.Usage()
		return fmt.Errorf("exactly one of -q or -isbn is required")
	}
	if cmd.Limit < 1 {
		return fmt.Errorf("limit must be positive, got %d", cmd.Limit)
	}

	return nil
}

func (cmd *SearchCommand) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), cmd.Timeout)
	defer cancel()

	client := catalog.NewOpenLibraryClient(
		catalog.WithBaseURL(cmd.BaseURL),
		catalog.WithSearchLimit(cmd.Limit),
	)

	var (
		candidates []catalog.Candidate
		err        error
	)
	if cmd.ISBN != "" {
		candidates, err = client.SearchByISBN(ctx, cmd.ISBN)
	} else {
		candidates, err = client.Search(ctx, cmd.Query)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	cmd.printResults(candidates)
	return nil
}

func (cmd *SearchCommand) printResults(candidates []catalog.Candidate) {
	out := cmd.out
	if out == nil {
		out = os.Stdout
	}

	if len(candidates) == 0 {
		fmt.Fprintln(out, "No results found")
		return
	}

	fmt.Fprintf(out, "=== %d result(s) ===\n", len(candidates))
	for i, c := range candidates {
		book := catalog.ToBook(c)
		fmt.Fprintf(out, "%d. %s\n", i+1, book.Title)
		if len(book.Authors) > 0 {
			fmt.Fprintf(out, "   by %s\n", strings.Join(book.Authors, ", "))
		}
		if book.PublishYear != nil {
			fmt.Fprintf(out, "   published %d\n", *book.PublishYear)
		}
		if book.PageCount != nil {
			fmt.Fprintf(out, "   %d pages\n", *book.PageCount)
		}
		if book.ISBN13 != nil {
			fmt.Fprintf(out, "   ISBN-13 %s\n", *book.ISBN13)
		}
		if book.OpenLibraryID != nil {
			fmt.Fprintf(out, "   %s/works/%s\n", strings.TrimRight(cmd.BaseURL, "/"), *book.OpenLibraryID)
		}
	}
}
