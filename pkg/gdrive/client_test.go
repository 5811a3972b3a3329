package gdrive

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pilgrimtabby/gdrive-stash/pkg/models"
)

// fakeRunner records invocations and plays back canned output
type fakeRunner struct {
	calls  [][]string
	output []byte
	err    error
}

func (r *fakeRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	r.calls = append(r.calls, args)
	return r.output, r.err
}

func listLine(id, name, typ, size, created string) string {
	return strings.Join([]string{id, name, typ, size, created}, FieldSeparator)
}

// ============== List Tests ==============

func TestClientList(t *testing.T) {
	t.Run("RootArguments", func(t *testing.T) {
		runner := &fakeRunner{}
		client := NewClientWithRunner(runner)

		if _, err := client.List(context.Background(), ""); err != nil {
			t.Fatalf("List() error = %v", err)
		}

		want := []string{"files", "list", "--field-separator", FieldSeparator, "--skip-header", "--full-name"}
		got := runner.calls[0]
		if strings.Join(got, " ") != strings.Join(want, " ") {
			t.Errorf("args = %v, want %v", got, want)
		}
	})

	t.Run("ParentArguments", func(t *testing.T) {
		runner := &fakeRunner{}
		client := NewClientWithRunner(runner)

		if _, err := client.List(context.Background(), "abc123"); err != nil {
			t.Fatalf("List() error = %v", err)
		}

		got := strings.Join(runner.calls[0], " ")
		if !strings.HasSuffix(got, "--parent abc123") {
			t.Errorf("args = %q, want --parent abc123 at the end", got)
		}
	})

	t.Run("ParsesEntries", func(t *testing.T) {
		out := listLine("id1", "photos", "folder", "", "2024-03-01 12:00:00") + "\n" +
			listLine("id2", "notes.txt", "regular", "1.5 KB", "2024-03-02 08:30:00") + "\n"
		runner := &fakeRunner{output: []byte(out)}
		client := NewClientWithRunner(runner)

		entries, err := client.List(context.Background(), "")
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("len(entries) = %d, want 2", len(entries))
		}

		if entries[0].Kind != models.KindFolder {
			t.Errorf("entries[0].Kind = %s, want folder", entries[0].Kind)
		}
		if entries[1].Kind != models.KindFile {
			t.Errorf("entries[1].Kind = %s, want file", entries[1].Kind)
		}
		if entries[1].Name != "notes.txt" {
			t.Errorf("entries[1].Name = %s, want notes.txt", entries[1].Name)
		}

		wantCreated := time.Date(2024, 3, 2, 8, 30, 0, 0, time.Local)
		if !entries[1].Created.Equal(wantCreated) {
			t.Errorf("entries[1].Created = %v, want %v", entries[1].Created, wantCreated)
		}
	})

	t.Run("EmptyDirectory", func(t *testing.T) {
		runner := &fakeRunner{output: []byte("\n")}
		client := NewClientWithRunner(runner)

		entries, err := client.List(context.Background(), "")
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("len(entries) = %d, want 0", len(entries))
		}
	})

	t.Run("NameContainingColons", func(t *testing.T) {
		// The separator contains characters forbidden in filenames, so
		// ordinary punctuation in names must survive parsing.
		out := listLine("id9", "report: final?.txt", "regular", "2 B", "2024-01-01 00:00:00")
		runner := &fakeRunner{output: []byte(out)}
		client := NewClientWithRunner(runner)

		entries, err := client.List(context.Background(), "")
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if entries[0].Name != "report: final?.txt" {
			t.Errorf("Name = %q, want %q", entries[0].Name, "report: final?.txt")
		}
	})

	t.Run("MalformedLine", func(t *testing.T) {
		runner := &fakeRunner{output: []byte("not a listing")}
		client := NewClientWithRunner(runner)

		if _, err := client.List(context.Background(), ""); err == nil {
			t.Error("List() should fail on malformed output")
		}
	})

	t.Run("UnknownParent", func(t *testing.T) {
		runner := &fakeRunner{err: errors.New("exit status 1")}
		client := NewClientWithRunner(runner)

		_, err := client.List(context.Background(), "bogus")
		if err == nil {
			t.Fatal("List() should fail for unknown parent")
		}
		if !strings.Contains(err.Error(), "bogus") {
			t.Errorf("error %q should name the parent id", err)
		}
	})
}

// ============== Mkdir Tests ==============

func TestClientMkdir(t *testing.T) {
	t.Run("RootParent", func(t *testing.T) {
		runner := &fakeRunner{output: []byte("newid42\n")}
		client := NewClientWithRunner(runner)

		id, err := client.Mkdir(context.Background(), "", "backups")
		if err != nil {
			t.Fatalf("Mkdir() error = %v", err)
		}
		if id != "newid42" {
			t.Errorf("id = %q, want newid42 (trailing newline stripped)", id)
		}

		want := "files mkdir --print-only-id backups"
		if got := strings.Join(runner.calls[0], " "); got != want {
			t.Errorf("args = %q, want %q", got, want)
		}
	})

	t.Run("WithParent", func(t *testing.T) {
		runner := &fakeRunner{output: []byte("child1")}
		client := NewClientWithRunner(runner)

		if _, err := client.Mkdir(context.Background(), "parent1", "sub"); err != nil {
			t.Fatalf("Mkdir() error = %v", err)
		}

		want := "files mkdir --print-only-id --parent parent1 sub"
		if got := strings.Join(runner.calls[0], " "); got != want {
			t.Errorf("args = %q, want %q", got, want)
		}
	})

	t.Run("NoIDPrinted", func(t *testing.T) {
		runner := &fakeRunner{output: []byte("  \n")}
		client := NewClientWithRunner(runner)

		if _, err := client.Mkdir(context.Background(), "", "backups"); err == nil {
			t.Error("Mkdir() should fail when the client prints no id")
		}
	})
}

// ============== Upload and Delete Tests ==============

func TestClientUpload(t *testing.T) {
	t.Run("RootParent", func(t *testing.T) {
		runner := &fakeRunner{}
		client := NewClientWithRunner(runner)

		if err := client.Upload(context.Background(), "", "/tmp/a.txt"); err != nil {
			t.Fatalf("Upload() error = %v", err)
		}

		want := "files upload /tmp/a.txt"
		if got := strings.Join(runner.calls[0], " "); got != want {
			t.Errorf("args = %q, want %q", got, want)
		}
	})

	t.Run("WithParent", func(t *testing.T) {
		runner := &fakeRunner{}
		client := NewClientWithRunner(runner)

		if err := client.Upload(context.Background(), "dir1", "/tmp/a.txt"); err != nil {
			t.Fatalf("Upload() error = %v", err)
		}

		want := "files upload --parent dir1 /tmp/a.txt"
		if got := strings.Join(runner.calls[0], " "); got != want {
			t.Errorf("args = %q, want %q", got, want)
		}
	})

	t.Run("Failure", func(t *testing.T) {
		runner := &fakeRunner{err: fmt.Errorf("exit status 1")}
		client := NewClientWithRunner(runner)

		err := client.Upload(context.Background(), "", "/tmp/a.txt")
		if err == nil {
			t.Fatal("Upload() should propagate failures")
		}
		if !strings.Contains(err.Error(), "/tmp/a.txt") {
			t.Errorf("error %q should name the local path", err)
		}
	})
}

func TestClientDelete(t *testing.T) {
	runner := &fakeRunner{}
	client := NewClientWithRunner(runner)

	if err := client.Delete(context.Background(), "file9"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	want := "files delete file9"
	if got := strings.Join(runner.calls[0], " "); got != want {
		t.Errorf("args = %q, want %q", got, want)
	}
}

// ============== Runner Tests ==============

func TestNewExecRunner(t *testing.T) {
	t.Run("MissingBinary", func(t *testing.T) {
		_, err := NewExecRunner("definitely-not-a-real-binary-name")
		if err == nil {
			t.Fatal("NewExecRunner() should fail for a missing binary")
		}
		if !strings.Contains(err.Error(), "definitely-not-a-real-binary-name") {
			t.Errorf("error %q should name the binary", err)
		}
	})
}
