// Package common holds the helpers shared by the command packages.
package common

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"fkondo/pos-receipts/internal/config"
	"fkondo/pos-receipts/internal/logging"
	"fkondo/pos-receipts/internal/session"
)

// LoadSession reads a CSV export from disk and loads it into a fresh
// session. Reading the file is the only I/O boundary; everything after the
// read is synchronous in-memory work.
func LoadSession(path string, cfg *config.Config, log *logrus.Logger) (*session.Session, session.LoadStats, error) {
	if path == "" {
		return nil, session.LoadStats{}, fmt.Errorf("no input file given, use --file")
	}

	data, err := os.ReadFile(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return nil, session.LoadStats{}, fmt.Errorf("error reading %s: %w", path, err)
	}

	logger := logging.NewLogrusAdapterFromLogger(log)
	s := session.New(cfg.ColumnNames(), logger)
	stats, err := s.Load(string(data))
	if err != nil {
		return nil, session.LoadStats{}, fmt.Errorf("error loading %s: %w", path, err)
	}

	return s, stats, nil
}
