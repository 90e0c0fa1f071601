package filecache

import (
	"bytes"
	"errors"
	"sort"
	"testing"
)

// fakeBackend records delegated calls and serves canned query answers.
type fakeBackend struct {
	empties map[string]bool
	files   map[string][]byte
	dirs    map[string]bool

	fileSources map[string]string
	savedTo     string
	loadedFrom  string
	magic       bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		empties:     make(map[string]bool),
		files:       make(map[string][]byte),
		dirs:        make(map[string]bool),
		fileSources: make(map[string]string),
	}
}

func (f *fakeBackend) AddEmptyEntry(name string) error {
	f.empties[name] = true
	return nil
}

func (f *fakeBackend) AddFileContents(name, fullPath string) error {
	f.files[name] = []byte("from " + fullPath)
	f.fileSources[name] = fullPath
	return nil
}

func (f *fakeBackend) SaveCache(path string) error {
	f.savedTo = path
	return nil
}

func (f *fakeBackend) LoadCache(path string) error {
	f.loadedFrom = path
	return nil
}

func (f *fakeBackend) EntryExists(name string) bool {
	return f.empties[name] || f.dirs[name] || f.files[name] != nil
}

func (f *fakeBackend) FileExists(name string) bool { return f.files[name] != nil }

func (f *fakeBackend) DirExists(name string) bool { return f.dirs[name] }

func (f *fakeBackend) EmptyEntryExists(name string) bool { return f.empties[name] }

func (f *fakeBackend) FileContents(name string) ([]byte, bool, bool) {
	data, ok := f.files[name]
	return data, false, ok
}

func (f *fakeBackend) UncompressedFileSize(name string) (int64, bool) {
	data, ok := f.files[name]
	if !ok {
		return 0, false
	}

	return int64(len(data)), true
}

func (f *fakeBackend) EntryNames() []string {
	var names []string
	for name := range f.empties {
		names = append(names, name)
	}
	for name := range f.files {
		names = append(names, name)
	}
	for name := range f.dirs {
		names = append(names, name)
	}

	return names
}

func (f *fakeBackend) IsBackendArchive(string) bool { return f.magic }

func TestBackend_RegisterDelegates(t *testing.T) {
	b := newFakeBackend()
	c := New(Config{Backend: b})
	defer func() { _ = c.Close() }()

	if err := c.RegisterPlaceholder("app.php", true); err != nil {
		t.Fatal(err)
	}
	if !b.empties["app.php"] {
		t.Error("placeholder not delegated to AddEmptyEntry")
	}

	// The backend reads the source itself; the path need not exist here.
	if err := c.RegisterFile("lib/x.bin", "/virtual/x.bin"); err != nil {
		t.Fatal(err)
	}
	if b.fileSources["lib/x.bin"] != "/virtual/x.bin" {
		t.Error("file registration not delegated to AddFileContents")
	}
}

func TestBackend_SaveAndLoadDelegate(t *testing.T) {
	b := newFakeBackend()
	c := New(Config{Backend: b})
	defer func() { _ = c.Close() }()

	if err := c.Save("/out/cache.db"); err != nil {
		t.Fatal(err)
	}
	if b.savedTo != "/out/cache.db" {
		t.Errorf("SaveCache path: %q", b.savedTo)
	}

	if err := c.LoadMapped("/in/cache.db"); err != nil {
		t.Fatal(err)
	}
	if b.loadedFrom != "/in/cache.db" {
		t.Errorf("LoadCache path: %q", b.loadedFrom)
	}
}

func TestBackend_OwnedLoadUnsupported(t *testing.T) {
	c := New(Config{Backend: newFakeBackend()})
	defer func() { _ = c.Close() }()

	if err := c.Load("/in/cache.db", LoadOptions{}); err == nil {
		t.Error("owned load must be rejected with a backend configured")
	}
	if err := c.LoadFrom(bytes.NewReader(nil), LoadOptions{}); err == nil {
		t.Error("stream load must be rejected with a backend configured")
	}

	var buf bytes.Buffer
	if err := c.Serialize(&buf); err == nil {
		t.Error("stream serialize must be rejected with a backend configured")
	}
}

func TestBackend_QueriesDelegate(t *testing.T) {
	b := newFakeBackend()
	b.empties["app.php"] = true
	b.files["data.bin"] = []byte("payload")
	b.dirs["assets"] = true

	c := New(Config{Backend: b})
	defer func() { _ = c.Close() }()

	if !c.Exists("app.php") || !c.Exists("data.bin") || !c.Exists("assets") {
		t.Error("Exists not delegated")
	}
	if !c.FileExists("app.php") {
		t.Error("placeholders must count as files through the backend too")
	}
	if !c.FileExists("data.bin") || c.FileExists("assets") {
		t.Error("FileExists not delegated")
	}
	if !c.DirExists("assets") {
		t.Error("DirExists not delegated")
	}

	data, compressed, ok := c.Read("data.bin", false)
	if !ok || compressed || string(data) != "payload" {
		t.Errorf("Read: ok=%v compressed=%v data=%q", ok, compressed, data)
	}

	size, err := c.FileSize("data.bin")
	if err != nil || size != 7 {
		t.Errorf("FileSize: got %d (%v), want 7", size, err)
	}
	if _, err := c.FileSize("absent"); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("missing entry: %v", err)
	}

	names := c.EntryNames()
	if !sort.StringsAreSorted(names) || len(names) != 3 {
		t.Errorf("EntryNames: %v", names)
	}
	if c.Len() != 3 {
		t.Errorf("Len: got %d, want 3", c.Len())
	}
}

func TestBackend_DetectVersion(t *testing.T) {
	b := newFakeBackend()
	b.magic = true

	c := New(Config{Backend: b})
	defer func() { _ = c.Close() }()

	version, err := c.DetectVersion("/in/cache.db")
	if err != nil {
		t.Fatal(err)
	}
	if version != BackendVersion {
		t.Errorf("version: got %d, want %d", version, BackendVersion)
	}
}
