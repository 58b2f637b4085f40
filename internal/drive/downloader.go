package drive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// fileSource is the part of Service the downloader needs.
type fileSource interface {
	ListFiles(ctx context.Context, folderID string) ([]*File, error)
	DownloadFile(ctx context.Context, fileID string, w io.Writer) error
	ExportCSV(ctx context.Context, fileID string, w io.Writer) error
}

// Resolver maps a remote file name to the local path it should land at. It
// returns false for files that are not inputs.
type Resolver func(name string) (string, bool)

// Downloader pulls the input exports out of a Drive folder.
type Downloader struct {
	source fileSource
}

// NewDownloader creates a new Downloader.
func NewDownloader(s *Service) *Downloader {
	return &Downloader{source: s}
}

// DownloadInputs downloads every file of the folder that resolve accepts and
// returns the local paths written.
//
//   - Files whose extension matches the destination are downloaded directly.
//   - XLSX files headed for a CSV destination have their first sheet converted.
//   - Google Sheets are exported as CSV.
func (d *Downloader) DownloadInputs(ctx context.Context, folderID string, resolve Resolver) ([]string, error) {
	files, err := d.source.ListFiles(ctx, folderID)
	if err != nil {
		return nil, err
	}

	var localPaths []string
	for _, f := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		dest, ok := resolve(f.Name)
		if !ok {
			log.Debug().Str("file", f.Name).Msg("skipping drive file")
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create download dir: %w", err)
		}

		if err := d.fetch(ctx, f, dest); err != nil {
			return nil, err
		}
		log.Info().Str("file", f.Name).Str("path", dest).Msg("downloaded input")
		localPaths = append(localPaths, dest)
	}

	return localPaths, nil
}

func (d *Downloader) fetch(ctx context.Context, f *File, dest string) error {
	srcExt := strings.ToLower(filepath.Ext(f.Name))
	destExt := strings.ToLower(filepath.Ext(dest))

	switch {
	case f.IsSpreadsheet():
		if destExt != ".csv" {
			return fmt.Errorf("google sheet %s can only be exported to csv, not %s", f.Name, dest)
		}
		return writeTo(dest, func(w io.Writer) error { return d.source.ExportCSV(ctx, f.ID, w) })

	case srcExt == ".xlsx" && destExt == ".csv":
		// XLSX: download then convert first sheet to CSV
		tmpXLSXPath := dest + ".download.xlsx"
		if err := writeTo(tmpXLSXPath, func(w io.Writer) error { return d.source.DownloadFile(ctx, f.ID, w) }); err != nil {
			return err
		}
		defer os.Remove(tmpXLSXPath)
		if err := convertXLSXToCSV(tmpXLSXPath, dest); err != nil {
			return fmt.Errorf("failed to convert %s to csv: %w", f.Name, err)
		}
		return nil

	case srcExt == destExt:
		return writeTo(dest, func(w io.Writer) error { return d.source.DownloadFile(ctx, f.ID, w) })

	default:
		return fmt.Errorf("cannot store %s as %s", f.Name, dest)
	}
}

func writeTo(path string, fill func(w io.Writer) error) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create local file %s: %w", path, err)
	}
	if err := fill(out); err != nil {
		out.Close()
		os.Remove(path)
		return fmt.Errorf("failed to download %s: %w", filepath.Base(path), err)
	}
	return out.Close()
}
