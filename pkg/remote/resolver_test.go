package remote

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pilgrimtabby/gdrive-stash/pkg/models"
)

// fakeClient serves an in-memory directory tree keyed by parent id. The
// drive root is the empty id.
type fakeClient struct {
	dirs      map[string][]models.RemoteFile
	nextID    int
	listCalls int
	mkdirs    []string
}

func newFakeClient() *fakeClient {
	return &fakeClient{dirs: map[string][]models.RemoteFile{}}
}

func (c *fakeClient) addFolder(parentID, name string) string {
	c.nextID++
	id := fmt.Sprintf("dir%d", c.nextID)
	c.dirs[parentID] = append(c.dirs[parentID], models.RemoteFile{
		ID:      id,
		Name:    name,
		Kind:    models.KindFolder,
		RawType: "folder",
		Created: time.Now(),
	})
	return id
}

func (c *fakeClient) List(ctx context.Context, parentID string) ([]models.RemoteFile, error) {
	c.listCalls++
	return c.dirs[parentID], nil
}

func (c *fakeClient) Mkdir(ctx context.Context, parentID, name string) (string, error) {
	c.mkdirs = append(c.mkdirs, name)
	return c.addFolder(parentID, name), nil
}

func (c *fakeClient) Upload(ctx context.Context, parentID, localPath string) error {
	return nil
}

func (c *fakeClient) Delete(ctx context.Context, fileID string) error {
	return nil
}

// ============== ResolveDir Tests ==============

func TestResolveDir(t *testing.T) {
	t.Run("Root", func(t *testing.T) {
		client := newFakeClient()
		client.addFolder("", "backups")
		resolver := NewResolver(client)

		id, children, err := resolver.ResolveDir(context.Background(), "/", false)
		if err != nil {
			t.Fatalf("ResolveDir() error = %v", err)
		}
		if id != "" {
			t.Errorf("root id = %q, want empty", id)
		}
		if len(children) != 1 || children[0].Name != "backups" {
			t.Errorf("children = %v, want the root listing", children)
		}
	})

	t.Run("ExistingPath", func(t *testing.T) {
		client := newFakeClient()
		backupsID := client.addFolder("", "backups")
		photosID := client.addFolder(backupsID, "photos")
		resolver := NewResolver(client)

		id, children, err := resolver.ResolveDir(context.Background(), "/backups/photos", false)
		if err != nil {
			t.Fatalf("ResolveDir() error = %v", err)
		}
		if id != photosID {
			t.Errorf("id = %q, want %q", id, photosID)
		}
		if len(children) != 0 {
			t.Errorf("children = %v, want empty listing", children)
		}
	})

	t.Run("MissingWithoutMakeParents", func(t *testing.T) {
		client := newFakeClient()
		resolver := NewResolver(client)

		_, _, err := resolver.ResolveDir(context.Background(), "/backups", false)
		if err == nil {
			t.Fatal("ResolveDir() should fail for a missing directory")
		}
		if !strings.Contains(err.Error(), "--make-parents") {
			t.Errorf("error %q should suggest --make-parents", err)
		}
	})

	t.Run("CaseMismatch", func(t *testing.T) {
		client := newFakeClient()
		client.addFolder("", "Backups")
		resolver := NewResolver(client)

		if _, _, err := resolver.ResolveDir(context.Background(), "/backups", false); err == nil {
			t.Error("ResolveDir() should not match a folder differing only in case")
		}
	})

	t.Run("FileShadowsFolder", func(t *testing.T) {
		// A remote file named like the wanted directory must not satisfy
		// the lookup.
		client := newFakeClient()
		client.dirs[""] = append(client.dirs[""], models.RemoteFile{
			ID: "f1", Name: "backups", Kind: models.KindFile, RawType: "regular",
		})
		resolver := NewResolver(client)

		if _, _, err := resolver.ResolveDir(context.Background(), "/backups", false); err == nil {
			t.Error("ResolveDir() should not match a file entry")
		}
	})

	t.Run("MakeParents", func(t *testing.T) {
		client := newFakeClient()
		client.addFolder("", "backups")
		resolver := NewResolver(client)

		id, children, err := resolver.ResolveDir(context.Background(), "/backups/2024/photos", true)
		if err != nil {
			t.Fatalf("ResolveDir() error = %v", err)
		}
		if id == "" {
			t.Error("id should not be empty after creation")
		}
		if len(children) != 0 {
			t.Errorf("children = %v, want empty for a fresh directory", children)
		}
		if len(client.mkdirs) != 2 || client.mkdirs[0] != "2024" || client.mkdirs[1] != "photos" {
			t.Errorf("mkdirs = %v, want [2024 photos]", client.mkdirs)
		}
	})

	t.Run("CacheAvoidsRecrawl", func(t *testing.T) {
		client := newFakeClient()
		backupsID := client.addFolder("", "backups")
		client.addFolder(backupsID, "photos")
		resolver := NewResolver(client)

		if _, _, err := resolver.ResolveDir(context.Background(), "/backups/photos", false); err != nil {
			t.Fatalf("first ResolveDir() error = %v", err)
		}
		afterFirst := client.listCalls

		if _, _, err := resolver.ResolveDir(context.Background(), "/backups/photos", false); err != nil {
			t.Fatalf("second ResolveDir() error = %v", err)
		}

		// A cached path needs exactly one listing for its children
		if got := client.listCalls - afterFirst; got != 1 {
			t.Errorf("second resolution made %d list calls, want 1", got)
		}
	})
}

// ============== FindChild Tests ==============

func TestFindChild(t *testing.T) {
	entries := []models.RemoteFile{
		{ID: "1", Name: "docs", Kind: models.KindFolder},
		{ID: "2", Name: "docs", Kind: models.KindFile},
		{ID: "3", Name: "a.txt", Kind: models.KindFile},
	}

	t.Run("MatchesKind", func(t *testing.T) {
		got := FindChild(entries, "docs", models.KindFile)
		if got == nil || got.ID != "2" {
			t.Errorf("FindChild() = %v, want the file entry", got)
		}
	})

	t.Run("CaseSensitive", func(t *testing.T) {
		if got := FindChild(entries, "A.txt", models.KindFile); got != nil {
			t.Errorf("FindChild() = %v, want nil for case mismatch", got)
		}
	})

	t.Run("Absent", func(t *testing.T) {
		if got := FindChild(entries, "missing", models.KindFolder); got != nil {
			t.Errorf("FindChild() = %v, want nil", got)
		}
	})
}
