// shortctl drives the shortener backend from a terminal.
//
//	shortctl shorten <url>
//	shortctl list
//	shortctl analytics <code>
//	shortctl delete [-yes] <code>
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"

	"url-shortener-console/internal/client"
	"url-shortener-console/internal/config"
	"url-shortener-console/internal/domain"
	"url-shortener-console/internal/view"
	"url-shortener-console/pkg/validator"
)

const usage = "expected 'shorten', 'list', 'analytics' or 'delete' subcommands"

var errUsage = errors.New(usage)

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	api := client.NewClient(cfg.Backend.BaseURL, &http.Client{Timeout: cfg.Backend.Timeout}, nil)

	if err := run(context.Background(), api, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, api view.API, args []string, in io.Reader, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "shorten":
		fs := flag.NewFlagSet("shorten", flag.ContinueOnError)
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return errors.New("usage: shortctl shorten <url>")
		}
		return doShorten(ctx, api, fs.Arg(0), out)
	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return doList(ctx, api, out)
	case "analytics":
		fs := flag.NewFlagSet("analytics", flag.ContinueOnError)
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return errors.New("usage: shortctl analytics <code>")
		}
		return doAnalytics(ctx, api, fs.Arg(0), out)
	case "delete":
		fs := flag.NewFlagSet("delete", flag.ContinueOnError)
		yes := fs.Bool("yes", false, "delete without asking")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return errors.New("usage: shortctl delete [-yes] <code>")
		}
		return doDelete(ctx, api, fs.Arg(0), *yes, in, out)
	default:
		return errUsage
	}
}

func doShorten(ctx context.Context, api view.API, input string, out io.Writer) error {
	form := view.NewCreationView(api, nil)
	form.Submit(ctx, input)
	if form.Error != "" {
		return errors.New(form.Error)
	}

	fmt.Fprintln(out, form.Result.ShortURL)
	return nil
}

func doList(ctx context.Context, api view.API, out io.Writer) error {
	list := view.NewListView(api)
	list.Refresh(ctx)
	if list.IsEmpty() {
		fmt.Fprintln(out, view.MsgEmptyList)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tSHORT URL\tORIGINAL URL\tCLICKS\tCREATED")
	for _, link := range list.Links {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			link.ShortCode, link.ShortURL, link.OriginalURL, link.Clicks, domain.FormatTimestamp(link.CreatedAt))
	}
	return tw.Flush()
}

func doAnalytics(ctx context.Context, api view.API, code string, out io.Writer) error {
	if err := validator.ValidateShortCode(code); err != nil {
		return err
	}

	analytics := view.NewAnalyticsView(api)
	analytics.Load(ctx, code)
	if analytics.Status != view.StatusLoaded {
		return errors.New(view.MsgAnalyticsFailed)
	}

	s := analytics.Summary
	fmt.Fprintf(out, "Original URL:  %s\n", s.OriginalURL)
	fmt.Fprintf(out, "Short URL:     %s\n", s.ShortURL)
	fmt.Fprintf(out, "Created:       %s\n", domain.FormatTimestamp(s.CreatedAt))
	fmt.Fprintf(out, "Total clicks:  %d\n", s.TotalClicks)
	fmt.Fprintf(out, "Recent clicks: %d\n", s.RecentCount())

	if !s.HasClicks() {
		fmt.Fprintln(out, view.MsgNoClicks)
		return nil
	}
	for _, row := range analytics.Rows() {
		fmt.Fprintf(out, "  #%d  %s  IP: %s\n", row.Number, domain.FormatTimestamp(row.Timestamp), row.IPAddress)
	}
	return nil
}

func doDelete(ctx context.Context, api view.API, code string, yes bool, in io.Reader, out io.Writer) error {
	if err := validator.ValidateShortCode(code); err != nil {
		return err
	}

	list := view.NewListView(api)
	list.RequestDelete(code)

	if !yes && !confirm(in, out, fmt.Sprintf("Delete %s? [y/N] ", code)) {
		list.CancelDelete()
		fmt.Fprintln(out, "Cancelled")
		return nil
	}

	if !list.ConfirmDelete(ctx) {
		return errors.New(view.MsgDeleteFailed)
	}
	fmt.Fprintln(out, view.MsgDeleted)
	return nil
}

// confirm reads one line and accepts only y or yes
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
