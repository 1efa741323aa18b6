// Command sync processes a vault directory (or a single file) through the
// metadata sync pipeline, exporting cards and events to the output directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-mdsync/cmd/mdsync/internal/bootstrap"
	syncercmd "github.com/goliatone/go-mdsync/internal/commands/syncer"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runSync(os.Args[1:]); err != nil {
		log.Fatalf("mdsync sync: %v", err)
	}
}

func runSync(args []string) error {
	fs := flag.NewFlagSet("mdsync-sync", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to the TOML configuration file")
	vaultPath := fs.String("vault", "", "Vault directory to process (overrides config)")
	exportDir := fs.String("export-dir", "", "Directory receiving .vcf/.ics output (overrides config)")
	file := fs.String("file", "", "Process a single markdown file instead of the whole vault")
	pattern := fs.String("pattern", "", "Only process files whose base name matches this pattern")

	if err := fs.Parse(args); err != nil {
		return err
	}

	mod, err := moduleBuilder(bootstrap.Options{
		ConfigPath: *configPath,
		VaultPath:  *vaultPath,
		ExportDir:  *exportDir,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer mod.Module.Close()

	ctx := context.Background()

	if *file != "" {
		handler := mod.Module.SyncDocumentHandler()
		if err := handler.Execute(ctx, syncercmd.SyncDocumentCommand{Path: *file}); err != nil {
			return err
		}
		fmt.Printf("processed %s, output in %s\n", *file, mod.ExportDir)
		return nil
	}

	handler := mod.Module.SyncDirectoryHandler()
	cmd := syncercmd.SyncDirectoryCommand{
		Directory: mod.Config.Vault.Path,
		Pattern:   *pattern,
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		return err
	}
	fmt.Printf("processed vault %s, output in %s\n", mod.Config.Vault.Path, mod.ExportDir)
	return nil
}
