package filecache

import (
	"errors"
	"sort"
	"strings"
	"testing"
)

func TestEntryNames_Sorted(t *testing.T) {
	c := New(Config{})
	defer func() { _ = c.Close() }()

	for _, name := range []string{"z/last", "m/middle", "a/first"} {
		if err := c.RegisterPlaceholder(name, true); err != nil {
			t.Fatal(err)
		}
	}

	names := c.EntryNames()
	if !sort.StringsAreSorted(names) {
		t.Errorf("EntryNames not sorted: %v", names)
	}
	if len(names) != 6 { // three placeholders plus three directories
		t.Errorf("entry count: got %d, want 6", len(names))
	}
}

func TestDump(t *testing.T) {
	c := New(Config{})
	defer func() { _ = c.Close() }()

	if err := c.RegisterPlaceholder("b.php", false); err != nil {
		t.Fatal(err)
	}
	if err := c.RegisterPlaceholder("a.php", false); err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	if err := c.Dump(&out); err != nil {
		t.Fatal(err)
	}

	if out.String() != "a.php\nb.php\n" {
		t.Errorf("Dump output:\n%q", out.String())
	}
}

func TestQueries_EmptyName(t *testing.T) {
	c := New(Config{})
	defer func() { _ = c.Close() }()

	if c.Exists("") || c.FileExists("") || c.DirExists("") {
		t.Error("empty name must never exist")
	}
	if _, _, ok := c.Read("", false); ok {
		t.Error("Read of empty name must miss")
	}
	if _, err := c.FileSize(""); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("FileSize of empty name: %v", err)
	}
}

func TestFileSize_MissingEntry(t *testing.T) {
	c := New(Config{})
	defer func() { _ = c.Close() }()

	_, err := c.FileSize("nope.txt")
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestFileSize_DirectoryHasNoSize(t *testing.T) {
	c := New(Config{})
	defer func() { _ = c.Close() }()

	if err := c.RegisterPlaceholder("dir/file.php", true); err != nil {
		t.Fatal(err)
	}

	size, err := c.FileSize("dir")
	if err != nil || size != -1 {
		t.Errorf("directory size: got %d (%v), want -1", size, err)
	}
}
