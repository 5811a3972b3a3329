// Package remote maps drive paths to remote directory ids.
package remote

import (
	"context"
	"fmt"
	"sync"

	"github.com/pilgrimtabby/gdrive-stash/internal/platform"
	"github.com/pilgrimtabby/gdrive-stash/pkg/gdrive"
	"github.com/pilgrimtabby/gdrive-stash/pkg/models"
)

// Resolver resolves drive paths to directory ids by crawling path components
// from the root. Resolved ids are cached per normalized path so repeated
// resolutions within one process don't re-list the same directories.
type Resolver struct {
	client gdrive.Client

	mu  sync.RWMutex
	ids map[string]string // normalized drive path -> directory id
}

// NewResolver creates a resolver backed by the given client
func NewResolver(client gdrive.Client) *Resolver {
	return &Resolver{
		client: client,
		ids:    make(map[string]string),
	}
}

// ResolveDir returns the id of the directory at destDir and the listing of
// its children. The drive root resolves to the empty id. When makeParents is
// set, missing path components are created; otherwise a missing component is
// an error.
func (r *Resolver) ResolveDir(ctx context.Context, destDir string, makeParents bool) (string, []models.RemoteFile, error) {
	normalized := platform.NormalizeDrivePath(destDir)

	if id, ok := r.cached(normalized); ok {
		children, err := r.client.List(ctx, id)
		if err != nil {
			return "", nil, err
		}
		return id, children, nil
	}

	children, err := r.client.List(ctx, "")
	if err != nil {
		return "", nil, err
	}

	// Drive root: no id, root listing is the children
	components := platform.SplitDrivePath(normalized)
	if len(components) == 0 {
		return "", children, nil
	}

	currID := ""
	currPath := ""
	for _, dir := range components {
		if currPath == "" {
			currPath = dir
		} else {
			currPath = currPath + "/" + dir
		}

		match := FindChild(children, dir, models.KindFolder)
		switch {
		case match != nil:
			currID = match.ID
			children, err = r.client.List(ctx, currID)
			if err != nil {
				return "", nil, err
			}

		case makeParents:
			currID, err = r.client.Mkdir(ctx, currID, dir)
			if err != nil {
				return "", nil, err
			}
			children = nil

		default:
			return "", nil, fmt.Errorf(
				"destination %s is not a directory (case-sensitive); use --make-parents to create missing directories",
				destDir)
		}

		r.store(currPath, currID)
	}

	return currID, children, nil
}

// FindChild searches a remote listing for an entry with matching name and
// kind. Names are matched case-sensitively: the remote service is not case
// sensitive but local filesystems generally are. Returns nil when absent.
func FindChild(entries []models.RemoteFile, name string, kind models.RemoteKind) *models.RemoteFile {
	for i := range entries {
		if entries[i].Name == name && entries[i].Kind == kind {
			return &entries[i]
		}
	}
	return nil
}

func (r *Resolver) cached(path string) (string, bool) {
	if path == "" {
		return "", true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.ids[path]
	return id, ok
}

func (r *Resolver) store(path, id string) {
	r.mu.Lock()
	r.ids[path] = id
	r.mu.Unlock()
}
