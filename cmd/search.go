package cmd

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rubiojr/catalogue/pkg/catalogue"
	"github.com/rubiojr/catalogue/pkg/pagination"
	"github.com/rubiojr/catalogue/pkg/querystring"
	"github.com/rubiojr/catalogue/pkg/search"
	"github.com/urfave/cli/v3"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			Margin(1, 0, 0, 0)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)

	currentTabStyle = tabStyle.
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Underline(true)

	recordStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Margin(0, 0, 0, 2)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	filterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	noDataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Margin(1, 0)
)

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search the catalogue",
		ArgsUsage: "[query]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "query",
				Usage: "Search query",
			},
			&cli.StringFlag{
				Name:  "group",
				Usage: "Result group (tna, nonTna)",
				Value: catalogue.DefaultGroup,
			},
			&cli.IntFlag{
				Name:  "page",
				Usage: "Page number",
				Value: 1,
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Sort order (date:desc, date:asc, title:asc, title:desc)",
			},
			&cli.StringSliceFlag{
				Name:  "filter",
				Usage: "Filter as name=value, e.g. level=Item or covering_date_from-year=1960 (repeatable)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			query := c.String("query")
			if query == "" {
				query = strings.Join(c.Args().Slice(), " ")
			}
			rawQuery, err := buildSearchQuery(query, c.String("group"), c.String("sort"), int(c.Int("page")), c.StringSlice("filter"))
			if err != nil {
				return err
			}
			return searchCatalogue(ctx, c.String("config"), c.Bool("debug"), rawQuery)
		},
	}
}

// buildSearchQuery turns the command line flags into the query string of
// the search page.
func buildSearchQuery(query, group, sortBy string, page int, filters []string) (string, error) {
	params := querystring.New()
	if query != "" {
		params.Add(catalogue.Q, query)
	}
	params.Add(catalogue.Group, group)
	if sortBy != "" {
		params.Add(catalogue.Sort, sortBy)
	}
	for _, f := range filters {
		name, value, ok := strings.Cut(f, "=")
		if !ok || name == "" {
			return "", fmt.Errorf("invalid filter %q, expected name=value", f)
		}
		params.Add(name, value)
	}
	if page > 1 {
		params.Add(pagination.PageParam, strconv.Itoa(page))
	}
	return params.Encode(), nil
}

func searchCatalogue(ctx context.Context, configPath string, debug bool, rawQuery string) error {
	cfg, err := loadConfig(configPath, debug)
	if err != nil {
		return err
	}

	service := search.NewService(newClient(cfg), searchConfig(cfg))
	results, err := service.Search(ctx, rawQuery)
	if errors.Is(err, pagination.ErrPageNotFound) {
		return fmt.Errorf("page not found")
	}
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	fmt.Print(renderResults(results))
	return nil
}

// renderResults formats a results page for the terminal.
func renderResults(r *search.Results) string {
	var out strings.Builder

	title := "Search the catalogue"
	if r.Query != "" {
		title = fmt.Sprintf("Results for %q", r.Query)
	}
	out.WriteString(titleStyle.Render(title) + "\n")

	var tabs []string
	for _, b := range r.Buckets {
		style := tabStyle
		if b.IsCurrent {
			style = currentTabStyle
		}
		tabs = append(tabs, style.Render(b.LabelWithCount()))
	}
	out.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n")

	if len(r.Errors) > 0 || len(r.NonFieldErrors) > 0 {
		out.WriteString(headerStyle.Render("Please correct the following") + "\n")
		names := make([]string, 0, len(r.Errors))
		for name := range r.Errors {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			out.WriteString(errorStyle.Render(fmt.Sprintf("  %s: %s", name, r.Errors[name].Text)) + "\n")
		}
		for _, e := range r.NonFieldErrors {
			out.WriteString(errorStyle.Render("  "+e.Text) + "\n")
		}
	}

	if len(r.SelectedFilters) > 0 {
		out.WriteString(headerStyle.Render("Selected filters") + "\n")
		for _, f := range r.SelectedFilters {
			out.WriteString(filterStyle.Render("  "+f.Label) + metaStyle.Render("  "+f.Href) + "\n")
		}
	}

	if r.MoreOptions != nil {
		out.WriteString(headerStyle.Render(r.MoreOptions.Field.Label) + "\n")
		for _, item := range r.MoreOptions.Field.Items {
			out.WriteString("  " + checkbox(item.Checked) + " " + item.Text + "\n")
		}
		return out.String()
	}

	if len(r.Records) == 0 {
		out.WriteString(noDataStyle.Render("No results found") + "\n")
	} else {
		if p := r.Pagination; p != nil {
			summary := fmt.Sprintf("Showing %d to %d of %d results, page %d of %d",
				p.Range.From, p.Range.To, p.Total, p.Page, p.Pages)
			out.WriteString(headerStyle.Render(summary) + "\n")
		}
		for _, rec := range r.Records {
			var lines []string
			lines = append(lines, lipgloss.NewStyle().Bold(true).Render(rec.Title))
			var meta []string
			for _, m := range []string{rec.Reference, rec.CoveringDates, rec.HeldBy} {
				if m != "" {
					meta = append(meta, m)
				}
			}
			if len(meta) > 0 {
				lines = append(lines, metaStyle.Render(strings.Join(meta, " | ")))
			}
			out.WriteString(recordStyle.Render(strings.Join(lines, "\n")) + "\n")
		}
	}

	if !r.FiltersVisible {
		return out.String()
	}
	for _, f := range r.Fields {
		if f.Type != search.TypeMultiChoice || !f.Visible || len(f.Items) == 0 {
			continue
		}
		out.WriteString(headerStyle.Render(f.Label) + "\n")
		for _, item := range f.Items {
			out.WriteString("  " + checkbox(item.Checked) + " " + item.Text + "\n")
		}
		if f.MoreOptions != nil && f.MoreOptions.Available {
			out.WriteString(metaStyle.Render("  more options: "+f.MoreOptions.URL) + "\n")
		}
	}

	return out.String()
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}
