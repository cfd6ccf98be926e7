package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fernandoherreradelasheras/verovio/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artifact cache",
	}

	cmd.PersistentFlags().StringVar(&dir, "cache-dir", "", "cache directory (default: ~/.cache/verovio)")

	cmd.AddCommand(c.cacheInfoCommand(&dir))
	cmd.AddCommand(c.cacheClearCommand(&dir))

	return cmd
}

// resolveCacheDir picks the explicit directory when given, the default
// location otherwise.
func resolveCacheDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return cacheDir()
}

// openCacheInspector opens the file cache at root for stats and clearing.
func openCacheInspector(root string) (cache.Inspector, error) {
	store, err := cache.NewFileCache(root)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	insp, ok := store.(cache.Inspector)
	if !ok {
		return nil, fmt.Errorf("cache at %s does not support inspection", root)
	}
	return insp, nil
}

// cacheInfoCommand creates the "cache info" subcommand.
func (c *CLI) cacheInfoCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache location and usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveCacheDir(*dir)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			insp, err := openCacheInspector(root)
			if err != nil {
				return err
			}
			stats, err := insp.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("read cache stats: %w", err)
			}

			printKeyValue("Directory", root)
			printKeyValue("Entries", fmt.Sprintf("%d", stats.Entries))
			printKeyValue("Size", formatBytes(stats.Bytes))
			return nil
		},
	}
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveCacheDir(*dir)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if _, err := os.Stat(root); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			insp, err := openCacheInspector(root)
			if err != nil {
				return err
			}
			stats, err := insp.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("read cache stats: %w", err)
			}
			if err := insp.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cleared %d cached entries", stats.Entries)
			printDetail("Directory: %s", root)
			return nil
		},
	}
}

// formatBytes renders a byte count in a human-readable unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
