package bookmarks

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"
)

var t0 = time.Date(2024, time.March, 4, 10, 30, 0, 0, time.UTC)

func mustCatalog(t *testing.T) []Job {
	t.Helper()
	jobs, err := Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	return jobs
}

func bookmarked(t *testing.T, n int) []BookmarkedJob {
	t.Helper()
	jobs := mustCatalog(t)
	out := make([]BookmarkedJob, n)
	for i := range out {
		out[i] = BookmarkedJob{Job: jobs[i], BookmarkedAt: t0.Add(time.Duration(i) * time.Hour)}
	}
	return out
}

func stores(t *testing.T) map[string]KV {
	return map[string]KV{
		"mem":  NewMemStore(),
		"file": NewFileStore(filepath.Join(t.TempDir(), "state", "bookmarks.json")),
	}
}

func TestCatalog(t *testing.T) {
	jobs := mustCatalog(t)
	if len(jobs) != 5 {
		t.Fatalf("catalog size = %d, want 5", len(jobs))
	}
	first := jobs[0]
	if first.ID != 1 || first.Company != "TechCorp Inc." || first.Location != "San Francisco, CA" {
		t.Errorf("first job = %+v", first)
	}
	if want := []string{"React", "TypeScript", "Next.js", "GraphQL"}; !reflect.DeepEqual(first.Skills, want) {
		t.Errorf("skills = %v, want %v", first.Skills, want)
	}
	if len(first.Benefits) != 4 || first.Match != 95 {
		t.Errorf("benefits = %v, match = %d", first.Benefits, first.Match)
	}

	// Callers get a copy
	jobs[0].Title = "changed"
	if again := mustCatalog(t); again[0].Title == "changed" {
		t.Error("Catalog returned shared slice")
	}

	if _, err := Lookup(99); err == nil {
		t.Error("Lookup(99) should fail")
	}
}

func TestRoundTrip(t *testing.T) {
	for name, kv := range stores(t) {
		for _, n := range []int{0, 1, 5} {
			t.Run(name, func(t *testing.T) {
				s := NewStore(kv, "")
				want := bookmarked(t, n)
				if err := s.Save(want); err != nil {
					t.Fatalf("Save: %v", err)
				}
				got, err := s.Load()
				if err != nil {
					t.Fatalf("Load: %v", err)
				}
				if !reflect.DeepEqual(got, want) {
					t.Errorf("n=%d: round trip mismatch\n got  %+v\n want %+v", n, got, want)
				}
			})
		}
	}
}

func TestLoadMissing(t *testing.T) {
	for name, kv := range stores(t) {
		t.Run(name, func(t *testing.T) {
			got, err := NewStore(kv, "").Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Errorf("Load on empty store = %#v, want empty list", got)
			}
		})
	}
}

func TestRemove(t *testing.T) {
	for name, kv := range stores(t) {
		t.Run(name, func(t *testing.T) {
			s := NewStore(kv, "")
			list := bookmarked(t, 3)
			if err := s.Save(list); err != nil {
				t.Fatal(err)
			}

			got, err := s.Remove(list[1].ID)
			if err != nil {
				t.Fatalf("Remove: %v", err)
			}
			want := []BookmarkedJob{list[0], list[2]}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("after Remove = %v, want %v", ids(got), ids(want))
			}
			stored, _ := s.Load()
			if !reflect.DeepEqual(stored, want) {
				t.Errorf("stored = %v, want %v", ids(stored), ids(want))
			}

			if _, err := s.Remove(list[1].ID); !errors.Is(err, ErrNotFound) {
				t.Errorf("second Remove error = %v, want ErrNotFound", err)
			}
		})
	}
}

func ids(list []BookmarkedJob) []int {
	out := make([]int, len(list))
	for i, b := range list {
		out[i] = b.ID
	}
	return out
}

func TestAddToggleClear(t *testing.T) {
	jobs := mustCatalog(t)
	s := NewStore(NewMemStore(), "")

	if _, err := s.Add(jobs[2], t0); err != nil {
		t.Fatal(err)
	}
	list, err := s.Add(jobs[2], t0.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || !list[0].BookmarkedAt.Equal(t0) {
		t.Errorf("duplicate Add changed list: %+v", list)
	}

	on, err := s.Toggle(jobs[0], t0)
	if err != nil || !on {
		t.Fatalf("Toggle on = %v, %v", on, err)
	}
	if got, _ := s.IDs(); !reflect.DeepEqual(got, []int{3, 1}) {
		t.Errorf("IDs = %v, want [3 1]", got)
	}

	on, err = s.Toggle(jobs[2], t0)
	if err != nil || on {
		t.Fatalf("Toggle off = %v, %v", on, err)
	}
	if has, _ := s.Has(3); has {
		t.Error("job 3 still bookmarked")
	}

	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.IDs(); len(got) != 0 {
		t.Errorf("IDs after Clear = %v", got)
	}
}

func TestAddTruncatesTimestamp(t *testing.T) {
	s := NewStore(NewMemStore(), "")
	at := time.Date(2024, 1, 1, 12, 0, 0, 123456789, time.FixedZone("X", 3600))
	list, err := s.Add(mustCatalog(t)[0], at)
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, 1, 1, 11, 0, 0, 123000000, time.UTC)
	if !list[0].BookmarkedAt.Equal(want) || list[0].BookmarkedAt.Location() != time.UTC {
		t.Errorf("BookmarkedAt = %v, want %v", list[0].BookmarkedAt, want)
	}
}

func TestMalformed(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not a list", `{"id": 1}`},
		{"wrong field type", `[{"id": "one"}]`},
		{"missing id", `[{"title": "x"}]`},
		{"bad timestamp", `[{"id": 1, "bookmarkedAt": "yesterday"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemStore()
			kv.Set(DefaultKey, []byte(tt.value))
			if _, err := NewStore(kv, "").Load(); !errors.Is(err, ErrMalformed) {
				t.Errorf("Load error = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestRejectsMissingID(t *testing.T) {
	for name, kv := range stores(t) {
		t.Run(name, func(t *testing.T) {
			s := NewStore(kv, "")
			jobs := mustCatalog(t)
			if _, err := s.Add(jobs[0], t0); err != nil {
				t.Fatal(err)
			}

			if _, err := s.Add(Job{Title: "untitled"}, t0); !errors.Is(err, ErrNoID) {
				t.Errorf("Add(id 0) error = %v, want ErrNoID", err)
			}
			if on, err := s.Toggle(Job{}, t0); on || !errors.Is(err, ErrNoID) {
				t.Errorf("Toggle(id 0) = %v, %v, want false, ErrNoID", on, err)
			}
			list := []BookmarkedJob{{Job: jobs[1], BookmarkedAt: t0}, {BookmarkedAt: t0}}
			if err := s.Save(list); !errors.Is(err, ErrNoID) {
				t.Errorf("Save with id 0 error = %v, want ErrNoID", err)
			}

			// The store is still readable and writable
			if _, err := s.Add(jobs[2], t0); err != nil {
				t.Fatalf("Add after rejected write: %v", err)
			}
			ids, err := s.IDs()
			if err != nil {
				t.Fatal(err)
			}
			if want := []int{jobs[0].ID, jobs[2].ID}; !slices.Equal(ids, want) {
				t.Errorf("ids = %v, want %v", ids, want)
			}
		})
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	if err := os.WriteFile(path, []byte("{truncated"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStore(NewFileStore(path), "").Load(); !errors.Is(err, ErrMalformed) {
		t.Errorf("Load error = %v, want ErrMalformed", err)
	}
}

func TestFileStoreKeepsOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	fs := NewFileStore(path)
	if err := fs.Set("theme", []byte(`"dark"`)); err != nil {
		t.Fatal(err)
	}
	if err := NewStore(fs, "").Save(bookmarked(t, 2)); err != nil {
		t.Fatal(err)
	}
	v, ok, err := fs.Get("theme")
	if err != nil || !ok || string(v) != `"dark"` {
		t.Errorf("theme = %s, %v, %v", v, ok, err)
	}
	if err := fs.Set("bad", []byte("{")); !errors.Is(err, ErrMalformed) {
		t.Errorf("Set invalid JSON error = %v, want ErrMalformed", err)
	}

	// No temp files left behind
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1", len(entries))
	}
}

func TestSearch(t *testing.T) {
	list := bookmarked(t, 5)
	tests := []struct {
		term string
		want []int
	}{
		{"", []int{1, 2, 3, 4, 5}},
		{"react developer", []int{3}},
		{"LABS", []int{5}},
		{"node", []int{2, 5}},
		{"graphql", []int{1}},
		{"cobol", []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			if got := ids(Search(list, tt.term)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.term, got, tt.want)
			}
		})
	}
}

func TestSort(t *testing.T) {
	list := bookmarked(t, 5)
	// Scramble bookmark times: 3 newest, 4 oldest
	list[2].BookmarkedAt = t0.Add(48 * time.Hour)
	list[3].BookmarkedAt = t0.Add(-48 * time.Hour)

	tests := []struct {
		order SortOrder
		want  []int
	}{
		{SortNewest, []int{3, 5, 2, 1, 4}},
		{SortOldest, []int{4, 1, 2, 5, 3}},
		{SortMatch, []int{1, 2, 3, 4, 5}},
		{SortCompany, []int{3, 4, 5, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			if got := ids(Sort(list, tt.order)); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Sort(%s) = %v, want %v", tt.order, got, tt.want)
			}
		})
	}
	if ids(list)[2] != 3 {
		t.Error("Sort modified its input")
	}

	if _, err := ParseSortOrder("Match"); err != nil {
		t.Errorf("ParseSortOrder(Match): %v", err)
	}
	if _, err := ParseSortOrder("salary"); err == nil {
		t.Error("ParseSortOrder(salary) should fail")
	}
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportCSV(&buf, bookmarked(t, 2)); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("export has %d lines, want 3", len(lines))
	}
	if !strings.HasSuffix(lines[0], "bookmarked_at") {
		t.Errorf("header = %q", lines[0])
	}

	var rows []jobRow
	if err := gocsv.UnmarshalString(buf.String(), &rows); err != nil {
		t.Fatal(err)
	}
	if rows[1].job().Title != "Full Stack Engineer" || rows[1].BookmarkedAt != "2024-03-04T11:30:00Z" {
		t.Errorf("row 2 = %+v", rows[1])
	}
	if got := splitList(rows[0].Skills); len(got) != 4 {
		t.Errorf("skills = %v", got)
	}
}
