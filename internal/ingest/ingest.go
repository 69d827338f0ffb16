// Package ingest reads plain text documents from disk and indexes them.
package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/fileid"
	"github.com/hyperjump/kotae/internal/rag"
)

// Ingestor reads files and indexes their content through the rag service.
type Ingestor struct {
	svc    *rag.Service
	logger *zap.Logger
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(ing *Ingestor) { ing.logger = l }
}

// NewIngestor creates an ingestor over the given service.
func NewIngestor(svc *rag.Service, opts ...Option) *Ingestor {
	ing := &Ingestor{svc: svc, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(ing)
	}
	return ing
}

// IngestFile reads the file at path and indexes it. The document ID is derived
// from the absolute path so reingesting updates the same document. If
// allowedExts is non-empty, the file's extension must be in the list
// (case-insensitive).
func (ing *Ingestor) IngestFile(ctx context.Context, path string, allowedExts []string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("absolute path: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(absPath))
	if len(allowedExts) > 0 && !extensionAllowed(ext, allowedExts) {
		return fmt.Errorf("extension %q not in allowed list", ext)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", absPath)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return fmt.Errorf("file is empty: %s", absPath)
	}
	docID := fileid.FileDocID(absPath)
	if err := ing.svc.Index(ctx, docID, text); err != nil {
		return err
	}
	ing.logger.Debug("file ingested", zap.String("path", absPath), zap.String("doc_id", docID))
	return nil
}

// IngestDirectory walks dir and ingests every matching file, returning the
// count of files indexed. Files that fail to ingest are logged and skipped;
// only a context error or an unreadable directory aborts the walk.
func (ing *Ingestor) IngestDirectory(ctx context.Context, dir string, allowedExts []string, recursive bool) (int, error) {
	count := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if !recursive && path != dir {
				return fs.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if len(allowedExts) > 0 && !extensionAllowed(ext, allowedExts) {
			return nil
		}
		if ingestErr := ing.IngestFile(ctx, path, allowedExts); ingestErr != nil {
			ing.logger.Warn("failed to ingest file", zap.String("path", path), zap.Error(ingestErr))
			return nil
		}
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("walk %s: %w", dir, err)
	}
	return count, nil
}

func extensionAllowed(ext string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(a, ext) {
			return true
		}
	}
	return false
}
