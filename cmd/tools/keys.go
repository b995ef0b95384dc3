package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/stocksuperhero/dashboard/internal/repository"
	"github.com/stocksuperhero/dashboard/internal/service"

	"github.com/google/subcommands"
)

type hashKeyCmd struct {
	key string
}

func (*hashKeyCmd) Name() string     { return "hash-key" }
func (*hashKeyCmd) Synopsis() string { return "print the bcrypt hash of an access key" }
func (*hashKeyCmd) Usage() string {
	return `hash-key -key <access key>

  Prints the value to store in app_keys.key_hash.
`
}

func (c *hashKeyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.key, "key", "", "access key to hash (required)")
}

func (c *hashKeyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.key == "" {
		fmt.Fprintln(os.Stderr, "Error: -key is required.")
		return subcommands.ExitUsageError
	}

	hash, err := service.HashKey(c.key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing key: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(hash)
	return subcommands.ExitSuccess
}

type addKeyCmd struct {
	label string
	key   string
}

func (*addKeyCmd) Name() string     { return "add-key" }
func (*addKeyCmd) Synopsis() string { return "store a new active access key" }
func (*addKeyCmd) Usage() string {
	return `add-key -label <label> -key <access key>

  Hashes the key and inserts it into app_keys as active.
`
}

func (c *addKeyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.label, "label", "", "who the key is for (required)")
	f.StringVar(&c.key, "key", "", "access key (required)")
}

func (c *addKeyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.label == "" || c.key == "" {
		fmt.Fprintln(os.Stderr, "Error: -label and -key are required.")
		return subcommands.ExitUsageError
	}

	env, err := openEnv(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer env.close()

	hash, err := service.HashKey(c.key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing key: %v\n", err)
		return subcommands.ExitFailure
	}

	id, err := repository.NewAccessKeyRepository(env.db, env.logger).Create(ctx, c.label, hash)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error storing key: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Created access key %d for %q\n", id, c.label)
	return subcommands.ExitSuccess
}
