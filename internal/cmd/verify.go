package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/wuespace/mavgen/internal/codegen/manifest"
)

type Verify struct {
	Dir []string `arg:"" name:"dir" help:"Directories holding generated records and their manifest"`
}

// Run is called by Kong when the verify command is executed.
func (v *Verify) Run(logger *slog.Logger) error {
	var errs []error
	for _, dir := range v.Dir {
		m, err := manifest.Load(dir)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", dir, err))
			continue
		}
		if err := m.Verify(dir); err != nil {
			logger.Error("Generated records do not match manifest", "dir", dir, "source", m.Source, "lang", m.Lang, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", dir, err))
			continue
		}
		logger.Info("Generated records are up to date", "dir", dir, "source", m.Source, "lang", m.Lang, "records", len(m.Entries))
	}
	return errors.Join(errs...)
}
