package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cattree/pkg/buildinfo"
	"github.com/matzehuels/cattree/pkg/observability"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Global flags:
//   - --config: config file (TOML or YAML); defaults to
//     $XDG_CONFIG_HOME/cattree/config.toml
//   - --base-url: backend API root, overriding config and CATTREE_BASE_URL
//   - --no-cache: bypass the response cache
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "cattree manages hierarchical product categories",
		Long:         `cattree is a CLI tool for browsing, editing and visualizing a category hierarchy held by a REST backend, as an indented table or as a laid-out tree.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.Logger.GetLevel() <= LogDebug {
				observability.NewLogHooks(c.Logger).Install()
			}
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/cattree/config.toml)")
	flags.StringVar(&c.baseURL, "base-url", "", "backend API root (overrides config)")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the response cache")

	// Register all subcommands
	root.AddCommand(c.listCommand())
	root.AddCommand(c.filtersCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.createCommand())
	root.AddCommand(c.updateCommand())
	root.AddCommand(c.deleteCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
