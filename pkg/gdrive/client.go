// Package gdrive wraps the external drive command-line client. The client
// owns authentication and actual data transfer; this package only builds
// argument vectors, spawns the client, and parses its text output.
package gdrive

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pilgrimtabby/gdrive-stash/pkg/models"
)

// FieldSeparator separates columns in the client's list output. The string
// contains a character that is forbidden in filenames on both Windows ("?")
// and macOS (":"), so it cannot collide with a real name.
const FieldSeparator = ":DELIMITER?"

// createdLayout is the layout of the created column. The client prints it in
// the machine's local time zone.
const createdLayout = "2006-01-02 15:04:05"

// Client is the operation surface of the external drive client.
// Implementations include the command-spawning client and test fakes.
type Client interface {
	// List returns the entries of a remote directory. The empty parentID
	// means the drive root.
	List(ctx context.Context, parentID string) ([]models.RemoteFile, error)

	// Mkdir creates a remote directory and returns its id
	Mkdir(ctx context.Context, parentID, name string) (string, error)

	// Upload uploads a local file into a remote directory
	Upload(ctx context.Context, parentID, localPath string) error

	// Delete removes a remote file by id
	Delete(ctx context.Context, fileID string) error
}

// CommandClient implements Client by spawning the external binary
type CommandClient struct {
	runner Runner
}

// NewClient resolves the client binary on PATH and returns a CommandClient
func NewClient(binary string) (*CommandClient, error) {
	runner, err := NewExecRunner(binary)
	if err != nil {
		return nil, err
	}
	return &CommandClient{runner: runner}, nil
}

// NewClientWithRunner creates a CommandClient with a custom runner
func NewClientWithRunner(runner Runner) *CommandClient {
	return &CommandClient{runner: runner}
}

// List returns the entries of a remote directory
func (c *CommandClient) List(ctx context.Context, parentID string) ([]models.RemoteFile, error) {
	args := []string{
		"files", "list",
		"--field-separator", FieldSeparator,
		"--skip-header",
		"--full-name",
	}
	if parentID != "" {
		args = append(args, "--parent", parentID)
	}

	out, err := c.runner.Run(ctx, args...)
	if err != nil {
		if parentID != "" {
			return nil, fmt.Errorf("directory with id %s not found: %w", parentID, err)
		}
		return nil, fmt.Errorf("failed to list drive root: %w", err)
	}

	return ParseList(out)
}

// ParseList parses the delimiter-separated listing table printed by the
// external client. Empty output means an empty directory.
func ParseList(out []byte) ([]models.RemoteFile, error) {
	text := strings.TrimSpace(string(out))
	if text == "" {
		return nil, nil
	}

	lines := strings.Split(text, "\n")
	entries := make([]models.RemoteFile, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		fields := strings.Split(line, FieldSeparator)
		if len(fields) < 5 {
			return nil, fmt.Errorf("malformed list entry (%d fields): %q", len(fields), line)
		}

		// The created column is printed in the machine's local zone, so it
		// stays comparable to local file modification times.
		created, err := time.ParseInLocation(createdLayout, fields[4], time.Local)
		if err != nil {
			return nil, fmt.Errorf("malformed created time in list entry %q: %w", line, err)
		}

		entries = append(entries, models.RemoteFile{
			ID:      fields[0],
			Name:    fields[1],
			Kind:    models.ParseRemoteKind(fields[2]),
			RawType: fields[2],
			Size:    fields[3],
			Created: created,
		})
	}

	return entries, nil
}

// Mkdir creates a remote directory and returns its id
func (c *CommandClient) Mkdir(ctx context.Context, parentID, name string) (string, error) {
	args := []string{"files", "mkdir", "--print-only-id"}
	if parentID != "" {
		args = append(args, "--parent", parentID)
	}
	args = append(args, name)

	out, err := c.runner.Run(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("failed to create remote directory %s: %w", name, err)
	}

	id := strings.TrimSpace(string(out))
	if id == "" {
		return "", fmt.Errorf("client printed no id for new remote directory %s", name)
	}

	return id, nil
}

// Upload uploads a local file into a remote directory
func (c *CommandClient) Upload(ctx context.Context, parentID, localPath string) error {
	args := []string{"files", "upload"}
	if parentID != "" {
		args = append(args, "--parent", parentID)
	}
	args = append(args, localPath)

	if _, err := c.runner.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to upload %s: %w", localPath, err)
	}

	return nil
}

// Delete removes a remote file by id
func (c *CommandClient) Delete(ctx context.Context, fileID string) error {
	if _, err := c.runner.Run(ctx, "files", "delete", fileID); err != nil {
		return fmt.Errorf("failed to delete remote file %s: %w", fileID, err)
	}

	return nil
}
