// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"fmt"
	"time"

	"github.com/tmakino/opskit/internal/domain/entities"
	"github.com/tmakino/opskit/internal/domain/interfaces"
)

// Archiver interface for creating backup archives
type Archiver interface {
	Archive(ctx context.Context, sourceDir, outputDir, prefix string) (*entities.BackupArtifact, error)
}

// ChecksumWriter interface for writing and verifying checksum sidecars
type ChecksumWriter interface {
	CalculateChecksum(filePath string) (string, error)
	WriteSidecar(filePath string) (string, error)
}

// BackupOrchestrator coordinates the archive-then-checksum backup workflow
type BackupOrchestrator struct {
	archiver Archiver
	checksum ChecksumWriter
	logger   interfaces.Logger
}

// NewBackupOrchestrator creates a new backup orchestrator
func NewBackupOrchestrator(archiver Archiver, checksum ChecksumWriter, logger interfaces.Logger) *BackupOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &BackupOrchestrator{
		archiver: archiver,
		checksum: checksum,
		logger:   logger,
	}
}

// BackupRequest describes one backup run
type BackupRequest struct {
	SourceDir string
	OutputDir string
	Prefix    string
	Checksum  bool
}

// BackupResult contains the result of a backup run
type BackupResult struct {
	Artifact *entities.BackupArtifact
	Duration time.Duration
}

// RunBackup archives the source directory and, when requested, writes a
// SHA256 sidecar next to the archive
func (o *BackupOrchestrator) RunBackup(ctx context.Context, req BackupRequest) (*BackupResult, error) {
	start := time.Now()

	o.logger.Info("starting backup",
		interfaces.F("source", req.SourceDir),
		interfaces.F("output", req.OutputDir))

	artifact, err := o.archiver.Archive(ctx, req.SourceDir, req.OutputDir, req.Prefix)
	if err != nil {
		return nil, fmt.Errorf("archive step failed: %w", err)
	}

	if req.Checksum {
		sidecar, err := o.checksum.WriteSidecar(artifact.ArchivePath)
		if err != nil {
			return nil, fmt.Errorf("checksum step failed: %w", err)
		}
		artifact.ChecksumPath = sidecar

		sum, err := o.checksum.CalculateChecksum(artifact.ArchivePath)
		if err != nil {
			return nil, fmt.Errorf("checksum step failed: %w", err)
		}
		artifact.SHA256 = sum
	}

	o.logger.Info("backup complete",
		interfaces.F("archive", artifact.ArchivePath),
		interfaces.F("files", artifact.Files),
		interfaces.F("bytes", artifact.SizeBytes))

	return &BackupResult{
		Artifact: artifact,
		Duration: time.Since(start),
	}, nil
}
