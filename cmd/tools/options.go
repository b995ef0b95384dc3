package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/stocksuperhero/dashboard/internal/filter"
	"github.com/stocksuperhero/dashboard/internal/model"
	"github.com/stocksuperhero/dashboard/internal/repository"

	"github.com/google/subcommands"
)

type optionsCmd struct {
	sectors    string
	industries string
	tags       string
	symbols    bool
}

func (*optionsCmd) Name() string     { return "options" }
func (*optionsCmd) Synopsis() string { return "print selector options and the filtered view" }
func (*optionsCmd) Usage() string {
	return `options [-sectors a,b] [-industries a,b] [-tags a,b] [-symbols]

  Loads the company table and prints, as JSON, the options each selector
  would offer for the given selections and the size of the resulting view.
  With -symbols the view's symbols are printed too.
`
}

func (c *optionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sectors, "sectors", "", "comma separated selected sectors")
	f.StringVar(&c.industries, "industries", "", "comma separated selected industries")
	f.StringVar(&c.tags, "tags", "", "comma separated selected classification tags")
	f.BoolVar(&c.symbols, "symbols", false, "include the symbols of the view")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func (c *optionsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	env, err := openEnv(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer env.close()

	records, err := repository.NewCompanyRepository(env.db, env.logger).List(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading companies: %v\n", err)
		return subcommands.ExitFailure
	}

	state := model.NewFilterState(splitList(c.sectors), splitList(c.industries), splitList(c.tags))
	view := filter.DerivedView(records, state)

	out := struct {
		Filters   model.FilterState `json:"filters"`
		Options   filter.Options    `json:"options"`
		ViewCount int               `json:"view_count"`
		Symbols   []string          `json:"symbols,omitempty"`
	}{
		Filters:   state,
		Options:   filter.AvailableOptions(records, state),
		ViewCount: len(view),
	}
	if c.symbols {
		out.Symbols = filter.Symbols(view)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
