package stash

import (
	"github.com/pilgrimtabby/gdrive-stash/pkg/models"
	"github.com/pilgrimtabby/gdrive-stash/pkg/remote"
	"github.com/pilgrimtabby/gdrive-stash/pkg/storage"
)

// reservedName is never uploaded, regardless of exclude configuration
const reservedName = ".DS_Store"

// Skip reasons surfaced in reports and progress output
const (
	reasonReserved = "reserved filename"
	reasonExcluded = "excluded by pattern"
	reasonUpToDate = "remote copy is up to date"
	reasonAbsent   = "not present remotely"
	reasonStale    = "local file newer than remote copy"
)

// decision describes what to do with one local file
type decision struct {
	Action models.Action
	Reason string
	// Excluded marks skips caused by exclusion rather than freshness
	Excluded bool
	// Remote is the matching remote entry, when one exists
	Remote *models.RemoteFile
}

// decide reconciles a local file against the remote listing of its parent
// directory. A file is uploaded when absent remotely, replaced when the local
// modification time is after the remote created time (the created time is
// reset on every replace, which keeps it usable as the staleness marker),
// and skipped otherwise.
func decide(entry storage.FileInfo, children []models.RemoteFile, patterns []string) decision {
	if entry.Name == reservedName {
		return decision{Action: models.ActionSkip, Reason: reasonReserved, Excluded: true}
	}
	if shouldExclude(entry.RelativePath, patterns) {
		return decision{Action: models.ActionSkip, Reason: reasonExcluded, Excluded: true}
	}

	match := remote.FindChild(children, entry.Name, models.KindFile)
	if match == nil {
		return decision{Action: models.ActionUpload, Reason: reasonAbsent}
	}

	if entry.ModTime.After(match.Created) {
		return decision{Action: models.ActionReplace, Reason: reasonStale, Remote: match}
	}

	return decision{Action: models.ActionSkip, Reason: reasonUpToDate, Remote: match}
}
