// Package manifest keeps a history of downloaded releases in the download
// directory, one YAML file per directory. The history is append-only; it
// exists so a user can tell later which release a jar on disk came from.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the manifest file inside a download directory.
const FileName = "manifest.yaml"

// Entry is one recorded download.
type Entry struct {
	Slug          string    `yaml:"slug"`
	Title         string    `yaml:"title,omitempty"`
	VersionID     string    `yaml:"version_id"`
	VersionNumber string    `yaml:"version_number"`
	GameVersions  []string  `yaml:"game_versions,omitempty"`
	Loaders       []string  `yaml:"loaders,omitempty"`
	Files         []string  `yaml:"files"`
	DownloadedAt  time.Time `yaml:"downloaded_at"`
}

// Manifest is the recorded download history of one directory.
type Manifest struct {
	Entries []Entry `yaml:"downloads"`

	path string
}

// Load reads the manifest of a download directory. A directory without a
// manifest yields an empty one bound to the right path.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	m.path = path
	return &m, nil
}

// Add appends an entry, stamping it with the current time when the caller
// left DownloadedAt unset.
func (m *Manifest) Add(entry Entry) {
	if entry.DownloadedAt.IsZero() {
		entry.DownloadedAt = time.Now().UTC()
	}
	m.Entries = append(m.Entries, entry)
}

// Save writes the manifest back atomically, so an interrupted write never
// truncates the history.
func (m *Manifest) Save() error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := atomicWrite(m.path, data, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// Record appends one entry to the manifest in dir, creating the manifest
// when the directory has none yet.
func Record(dir string, entry Entry) error {
	m, err := Load(dir)
	if err != nil {
		return err
	}

	m.Add(entry)
	return m.Save()
}

// atomicWrite writes data through a temp file in the target directory and
// renames it into place, so readers never see a half-written manifest.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("set temp file permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}
