package gateways

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/tmakino/opskit/internal/domain/entities"
)

// BackupArchiver packages a directory tree into a timestamped tar.gz archive
type BackupArchiver struct {
	now func() time.Time
}

// NewBackupArchiver creates a new backup archiver
func NewBackupArchiver() *BackupArchiver {
	return &BackupArchiver{now: time.Now}
}

// Archive creates prefix-YYYYMMDD-HHMMSS.tar.gz under outputDir from sourceDir.
// Returns an artifact describing the created archive.
func (a *BackupArchiver) Archive(ctx context.Context, sourceDir, outputDir, prefix string) (*entities.BackupArtifact, error) {
	info, err := os.Stat(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat source: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source is not a directory: %s", sourceDir)
	}

	if prefix == "" {
		prefix = filepath.Base(sourceDir)
	}
	if outputDir == "" {
		outputDir = "."
	}

	createdAt := a.now()
	archiveName := fmt.Sprintf("%s-%s.tar.gz", prefix, createdAt.Format("20060102-150405"))
	archivePath := filepath.Join(outputDir, archiveName)

	fileCount, err := a.createTarball(ctx, sourceDir, archivePath)
	if err != nil {
		// Remove the partial archive, best effort
		_ = os.Remove(archivePath)
		return nil, err
	}

	archiveInfo, err := os.Stat(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat archive: %w", err)
	}

	return &entities.BackupArtifact{
		Source:      sourceDir,
		ArchivePath: archivePath,
		Files:       fileCount,
		SizeBytes:   archiveInfo.Size(),
		CreatedAt:   createdAt,
	}, nil
}

// createTarball creates a gzipped tar archive from a source directory and
// returns the number of regular files written
func (a *BackupArchiver) createTarball(ctx context.Context, sourceDir, archivePath string) (int, error) {
	if err := os.MkdirAll(filepath.Dir(archivePath), 0750); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	//nolint:gosec // G304: archivePath is constructed for backup output
	file, err := os.Create(archivePath)
	if err != nil {
		return 0, fmt.Errorf("failed to create archive file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	//nolint:errcheck // Defer close
	defer gzipWriter.Close()

	tarWriter := tar.NewWriter(gzipWriter)
	//nolint:errcheck // Defer close
	defer tarWriter.Close()

	fileCount := 0
	walkErr := filepath.Walk(sourceDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Abort promptly on cancellation, partial archives are useless
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		// Handle symlinks - read the link target
		var linkTarget string
		if info.Mode()&os.ModeSymlink != 0 {
			linkTarget, err = os.Readlink(path)
			if err != nil {
				// Skip broken/unreadable symlinks to prevent extraction errors
				fmt.Fprintf(os.Stderr, "Warning: skipping unreadable symlink: %s (%v)\n", path, err)
				return nil
			}
		}

		header, err := tar.FileInfoHeader(info, linkTarget)
		if err != nil {
			return fmt.Errorf("failed to create tar header: %w", err)
		}

		relPath, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}

		// Skip the root directory itself
		if relPath == "." {
			return nil
		}

		header.Name = relPath

		if err := tarWriter.WriteHeader(header); err != nil {
			return fmt.Errorf("failed to write tar header: %w", err)
		}

		// Directory and symlink entries carry no payload
		if info.IsDir() || info.Mode()&os.ModeSymlink != 0 {
			return nil
		}

		if info.Mode().IsRegular() {
			//nolint:gosec // G304: File path from filepath.Walk for archiving
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open file: %w", err)
			}
			//nolint:errcheck // Defer close
			defer f.Close()

			if _, err := io.Copy(tarWriter, f); err != nil {
				return fmt.Errorf("failed to write file to tar: %w", err)
			}
			fileCount++
		}

		return nil
	})

	if walkErr != nil {
		return fileCount, fmt.Errorf("failed to archive %s: %w", sourceDir, walkErr)
	}
	return fileCount, nil
}
