// Command preview inspects a single markdown document: it prints the typed
// frontmatter envelope and renders the body to HTML without touching any
// backend.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-mdsync/internal/markdown"
	"github.com/goliatone/go-mdsync/internal/metadata"
)

func main() {
	if err := runPreview(os.Args[1:]); err != nil {
		log.Fatalf("mdsync preview: %v", err)
	}
}

func runPreview(args []string) error {
	fs := flag.NewFlagSet("mdsync-preview", flag.ExitOnError)
	showHTML := fs.Bool("html", false, "Render the document body to HTML")
	showMeta := fs.Bool("metadata", true, "Print the parsed metadata tree")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: preview [flags] <file.md>")
	}

	source, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	env, body, err := markdown.ProbeEnvelope(source)
	if err != nil {
		return fmt.Errorf("probe: %w", err)
	}
	fmt.Printf("class: %s\n", orDash(env.Class))
	fmt.Printf("id:    %s\n", orDash(env.ID))
	fmt.Printf("title: %s\n", orDash(env.Title))
	fmt.Printf("name:  %s\n", orDash(env.Name))

	if *showMeta {
		front, _ := metadata.ExtractFrontmatter(string(source))
		meta := metadata.Parse(front)
		fmt.Println("metadata:")
		for _, key := range meta.Keys() {
			value, _ := meta.Get(key)
			fmt.Printf("  %s = %s\n", key, metadata.Serialize(value))
		}
	}

	if *showHTML {
		html, err := markdown.NewRenderer().Render(body)
		if err != nil {
			return err
		}
		fmt.Println("---")
		os.Stdout.Write(html)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
