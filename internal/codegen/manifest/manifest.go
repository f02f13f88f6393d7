// Package manifest records digests of generated artifacts so stale or hand
// edited outputs can be detected.
package manifest

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/crypto/blake2b"

	"github.com/wuespace/mavgen/internal/mavlink"
)

// FileName is the manifest file written next to the generated sources.
const FileName = "mavgen.manifest.json"

var (
	ErrMissing  = errors.New("artifact missing")
	ErrModified = errors.New("artifact modified")
)

// Entry describes one generated artifact.
type Entry struct {
	Path     string `json:"path"` // relative to the manifest directory, slash separated
	Message  string `json:"message"`
	ID       uint32 `json:"id"`
	CRCExtra uint8  `json:"crcExtra"`
	Digest   string `json:"digest"` // hex BLAKE2b-256 of the file contents
}

// Manifest lists the artifacts of one generator run for one language.
type Manifest struct {
	Generator string  `json:"generator"`
	Lang      string  `json:"lang"`
	Source    string  `json:"source"`
	Entries   []Entry `json:"entries"`
}

func New(generator, lang, source string) *Manifest {
	return &Manifest{Generator: generator, Lang: lang, Source: source}
}

// Digest returns the hex BLAKE2b-256 digest of data.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Add records an artifact written for msg.
func (m *Manifest) Add(path string, msg *mavlink.Message, content []byte) {
	m.Entries = append(m.Entries, Entry{
		Path:     filepath.ToSlash(path),
		Message:  msg.Name,
		ID:       msg.ID,
		CRCExtra: msg.CRCExtra,
		Digest:   Digest(content),
	})
}

// Write stores the manifest in dir, entries sorted by path.
func (m *Manifest) Write(dir string) error {
	sort.Slice(m.Entries, func(i, j int) bool { return m.Entries[i].Path < m.Entries[j].Path })
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Load reads the manifest stored in dir.
func Load(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}

// Verify checks every entry against the files in dir. All mismatches are
// reported together.
func (m *Manifest) Verify(dir string) error {
	var errs []error
	for _, e := range m.Entries {
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(e.Path)))
		if errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("%s: %w", e.Path, ErrMissing))
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.Path, err))
			continue
		}
		if Digest(data) != e.Digest {
			errs = append(errs, fmt.Errorf("%s (%s): %w", e.Path, e.Message, ErrModified))
		}
	}
	return errors.Join(errs...)
}
