package entities

import "time"

// BackupArtifact describes a completed backup archive
type BackupArtifact struct {
	Source       string    `json:"source"`
	ArchivePath  string    `json:"archive_path"`
	ChecksumPath string    `json:"checksum_path,omitempty"`
	Files        int       `json:"files"`
	SizeBytes    int64     `json:"size_bytes"`
	SHA256       string    `json:"sha256,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
