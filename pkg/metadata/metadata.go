// Package metadata records and verifies the manifest written next to a set of
// output tables: one SHA-256 and row count per file.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ManifestFile is the manifest's file name inside the output directory.
const ManifestFile = "manifest.yaml"

// Manifest verification errors.
var (
	ErrNoManifest   = errors.New("no manifest found")
	ErrHashMismatch = errors.New("hash mismatch")
)

// Manifest describes one run's output.
type Manifest struct {
	GeneratedAt time.Time `yaml:"generated_at"`
	RunID       string    `yaml:"run_id"`
	Source      string    `yaml:"source"`
	SourceHash  string    `yaml:"source_hash"`
	Tables      []Table   `yaml:"tables"`
}

// Table is one output file. File is relative to the manifest's directory.
type Table struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
	Rows int    `yaml:"rows"`
	Hash string `yaml:"sha256"`
}

// CalculateHash computes the SHA-256 of the file at path.
func CalculateHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Build hashes the source file and every table file under dir. Entries in
// tables need Name, File and Rows; Hash is filled in.
func Build(dir, runID, source string, tables []Table) (*Manifest, error) {
	m := &Manifest{
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		RunID:       runID,
		Source:      source,
	}

	if source != "" {
		hash, err := CalculateHash(source)
		if err != nil {
			return nil, err
		}

		m.SourceHash = hash
	}

	for _, t := range tables {
		hash, err := CalculateHash(filepath.Join(dir, t.File))
		if err != nil {
			return nil, err
		}

		t.Hash = hash
		m.Tables = append(m.Tables, t)
	}

	return m, nil
}

// Save writes the manifest into dir.
func (m *Manifest) Save(dir string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, ManifestFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

// Load reads the manifest stored in dir.
func Load(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoManifest
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	return &m, nil
}

// Verify checks every table in dir against the manifest stored there.
func Verify(dir string) (bool, error) {
	m, err := Load(dir)
	if err != nil {
		return false, err
	}

	for _, t := range m.Tables {
		calculated, err := CalculateHash(filepath.Join(dir, t.File))
		if err != nil {
			return false, err
		}

		if calculated != t.Hash {
			return false, fmt.Errorf("%w: %s: expected %s, got %s", ErrHashMismatch, t.File, t.Hash, calculated)
		}
	}

	return true, nil
}

// SameTables reports whether two manifests list identical table contents,
// ignoring run id and timestamp.
func SameTables(a, b *Manifest) bool {
	if len(a.Tables) != len(b.Tables) {
		return false
	}

	for i := range a.Tables {
		if a.Tables[i] != b.Tables[i] {
			return false
		}
	}

	return true
}
