// Package main provides the verify command: it checks the tables in an output
// directory against the manifest written by the normalizer.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"jobnorm/internal/formatter"
	"jobnorm/pkg/metadata"
)

func main() {
	dir := flag.String("dir", ".", "Output directory holding manifest.yaml")
	flag.Parse()

	m, err := metadata.Load(*dir)
	if errors.Is(err, metadata.ErrNoManifest) {
		fmt.Printf("❌ No %s in %s. Run the normalizer with output.manifest enabled.\n", metadata.ManifestFile, *dir)
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("📂 Manifest: run %s, generated %s\n", m.RunID, m.GeneratedAt.Format("2006-01-02 15:04:05"))

	rows := make([][]string, len(m.Tables))
	for i, t := range m.Tables {
		rows[i] = []string{t.Name, t.File, strconv.Itoa(t.Rows), t.Hash[:min(12, len(t.Hash))]}
	}

	fmt.Println(formatter.RenderTable([]string{"Table", "File", "Rows", "SHA-256"}, rows))

	if _, err := metadata.Verify(*dir); err != nil {
		fmt.Printf("❌ Verification failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ All tables match the manifest")
}
