package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cattree/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCacheClear(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func (c *CLI) runCacheClear(ctx context.Context, w io.Writer) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if cfg.Cache.Backend == cache.BackendNone {
		printInfo(w, "Cache is disabled")
		return nil
	}

	store, err := cfg.OpenCache(ctx)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	clearer, ok := store.(cache.Clearer)
	if !ok {
		return fmt.Errorf("%s cache cannot be cleared", cfg.Cache.Backend)
	}
	count, err := clearer.Clear(ctx)
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	printSuccess(w, "Cleared %s", plural(count, "cached entry"))
	printDetail(w, "Location: %s", cacheLocation(cfg.Cache.Backend, cfg.CacheOptions()))
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where responses are cached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cacheLocation(cfg.Cache.Backend, cfg.CacheOptions()))
			return nil
		},
	}
}

// cacheLocation describes where a backend keeps its entries.
func cacheLocation(backend string, opts cache.Options) string {
	switch backend {
	case cache.BackendRedis:
		return fmt.Sprintf("redis://%s/%d (keys %s*)", opts.RedisAddr, opts.RedisDB, cache.RedisNamespace)
	case cache.BackendNone:
		return "disabled"
	}
	return opts.Dir
}
