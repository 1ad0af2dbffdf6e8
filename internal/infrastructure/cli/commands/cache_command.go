package commands

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/raqm/internal/app"
)

// NewCacheCommand creates the cache command with all subcommands
func NewCacheCommand(container *app.Container) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the generated content cache",
	}

	cacheCmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Clear cache directory",
			RunE: func(cmd *cobra.Command, args []string) error {
				if container.CacheStore == nil {
					return fmt.Errorf(ErrCacheStoreUnavailable)
				}
				if err := container.CacheStore.Clear(); err != nil {
					return fmt.Errorf("failed to clear cache: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "size",
			Short: "Show cache size",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showCacheSize(cmd.OutOrStdout(), container)
			},
		},
	)

	return cacheCmd
}

func showCacheSize(out io.Writer, container *app.Container) error {
	if container.CacheStore == nil {
		return fmt.Errorf(ErrCacheStoreUnavailable)
	}

	dir := container.CacheStore.Dir()
	count, totalSize, err := calculateDirectorySize(dir)
	if err != nil {
		return fmt.Errorf("failed to calculate cache size: %w", err)
	}
	if count == 0 {
		fmt.Fprintln(out, MsgNoCachedResponses)
		return nil
	}

	fmt.Fprintf(out, "Cache directory: %s\nEntries: %d\nSize: %s\n", dir, count, humanize.Bytes(uint64(totalSize)))
	return nil
}

func calculateDirectorySize(dir string) (int, int64, error) {
	var (
		count int
		total int64
	)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		count++
		total += info.Size()
		return nil
	})
	return count, total, err
}
