package persist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleState() State {
	return State{
		Windows: []Window{
			{ID: "a", Title: "A", Width: 40, MinWidth: 10, Controlbox: true, Order: 0},
			{ID: "b", Title: "B", Width: 60, Order: 1},
			{ID: "c", Title: "C", Width: 60, Stacked: StringPtr("b"), Order: 2},
		},
		StackedWindows:       map[string][]string{"b": {"c"}},
		ActiveStackedWindow:  StringPtr("c"),
		ActiveStackedWindows: map[string]string{"b": "c"},
		AllowStacking:        true,
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "empty", raw: "", wantErr: ErrNoState},
		{name: "whitespace", raw: "  \n", wantErr: ErrNoState},
		{name: "not json", raw: "{windows", wantErr: ErrMalformed},
		{name: "missing windows", raw: `{"stackedWindows":{}}`, wantErr: ErrMalformed},
		{name: "null windows", raw: `{"windows":null}`, wantErr: ErrMalformed},
		{name: "wrong type", raw: `{"windows":"a"}`, wantErr: ErrMalformed},
		{name: "empty windows", raw: `{"windows":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Parse() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMarshal_FieldNames(t *testing.T) {
	raw, err := Marshal(sampleState())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, field := range []string{`"windows"`, `"minWidth"`, `"controlbox"`, `"stacked":"b"`, `"stacked":null`, `"stackedWindows"`, `"activeStackedWindow":"c"`} {
		if !strings.Contains(raw, field) {
			t.Errorf("Marshal() = %s, missing %s", raw, field)
		}
	}

	s, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	w, ok := s.Window("c")
	if !ok || w.StackedUnder() != "b" {
		t.Errorf("Window(c) = %+v, want stacked under b", w)
	}
}

func TestState_ActiveFor(t *testing.T) {
	s := sampleState()
	if got := s.ActiveFor("b"); got != "c" {
		t.Errorf("ActiveFor(b) = %q, want c", got)
	}

	// Without the per-group map only the single active id is available.
	s.ActiveStackedWindows = nil
	if got := s.ActiveFor("b"); got != "c" {
		t.Errorf("ActiveFor(b) without map = %q, want c", got)
	}
	if got := s.ActiveFor("a"); got != "" {
		t.Errorf("ActiveFor(a) = %q, want empty", got)
	}
}

func TestStores(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(filepath.Join(dir, "files"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	sq, err := OpenSQLite(filepath.Join(dir, "db", "layouts.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer sq.Close()

	stores := map[string]Store{
		"memory": NewMemory(),
		"file":   fs,
		"sqlite": sq,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := store.Get("dockrow/layout/main"); err != nil || ok {
				t.Fatalf("Get() on empty store = ok %v, err %v", ok, err)
			}
			if err := store.Set("dockrow/layout/main", "one"); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if err := store.Set("dockrow/layout/main", "two"); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			v, ok, err := store.Get("dockrow/layout/main")
			if err != nil || !ok || v != "two" {
				t.Errorf("Get() = %q, %v, %v; want two, true, nil", v, ok, err)
			}
		})
	}
}

func TestFileStore_Path(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	path := fs.Path(Key("main"))
	if filepath.Dir(path) != dir {
		t.Errorf("Path() = %s, want a file directly in %s", path, dir)
	}
	if filepath.Base(path) != "dockrow_layout_main.json" {
		t.Errorf("Path() base = %s", filepath.Base(path))
	}

	if err := fs.Set(Key("main"), `{"windows":[]}`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != `{"windows":[]}` {
		t.Errorf("file content = %s", data)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("temp file %s left behind", e.Name())
		}
	}
}

type failingStore struct{}

func (failingStore) Get(string) (string, bool, error) { return "", false, errors.New("unavailable") }
func (failingStore) Set(string, string) error         { return errors.New("unavailable") }

func TestAdapter(t *testing.T) {
	mem := NewMemory()
	a := NewAdapter(mem, "main", nil)

	if a.Key() != "dockrow/layout/main" {
		t.Errorf("Key() = %q", a.Key())
	}
	if _, err := a.Load(); !errors.Is(err, ErrNoState) {
		t.Errorf("Load() on empty store error = %v, want ErrNoState", err)
	}

	a.Save(sampleState())
	if a.Written() == "" {
		t.Error("Written() empty after Save")
	}
	s, err := a.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(s.Windows) != 3 {
		t.Errorf("Load() windows = %d, want 3", len(s.Windows))
	}

	if err := mem.Set(a.Key(), "garbage"); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Load(); !errors.Is(err, ErrMalformed) {
		t.Errorf("Load() of garbage error = %v, want ErrMalformed", err)
	}
}

func TestAdapter_SaveSwallowsStoreErrors(t *testing.T) {
	a := NewAdapter(failingStore{}, "main", nil)
	a.Save(sampleState())
	if a.Written() != "" {
		t.Error("Written() should stay empty when the store rejects the write")
	}
	if _, err := a.Load(); err == nil || errors.Is(err, ErrNoState) {
		t.Errorf("Load() error = %v, want the store error", err)
	}
}
