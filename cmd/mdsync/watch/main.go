// Command watch monitors a vault directory and syncs markdown writes as they
// settle. It blocks until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-mdsync/cmd/mdsync/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runWatch(os.Args[1:]); err != nil {
		log.Fatalf("mdsync watch: %v", err)
	}
}

func runWatch(args []string) error {
	fs := flag.NewFlagSet("mdsync-watch", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to the TOML configuration file")
	vaultPath := fs.String("vault", "", "Vault directory to watch (overrides config)")
	exportDir := fs.String("export-dir", "", "Directory receiving .vcf/.ics output (overrides config)")

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

	w, err := mod.Module.Watcher()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("watching %s, output in %s (Ctrl+C to stop)\n", mod.Config.Vault.Path, mod.ExportDir)
	if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
