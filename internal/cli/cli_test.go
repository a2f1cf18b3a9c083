package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/backlogr/internal/backlog"
	"github.com/sadopc/backlogr/internal/export"
	"github.com/sadopc/backlogr/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory(store.WithClock(func() time.Time {
		return time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	}))
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// run executes args against s and returns stdout.
func run(t *testing.T, s *store.Store, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(&app{store: s})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, s *store.Store, args ...string) string {
	t.Helper()
	out, err := run(t, s, args...)
	if err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out)
	}
	return out
}

// ============================================================
// add / wish
// ============================================================

func TestAddCommand(t *testing.T) {
	s := newTestStore(t)
	out := mustRun(t, s, "add", "Steam", "Hades", "II", "--status", "in progress", "--month", "Feb", "--year", "2025")

	if !strings.Contains(out, `Added "Hades II" to steam`) {
		t.Fatalf("unexpected output: %q", out)
	}
	games := s.Games("steam")
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	if games[0].Status != backlog.InProgress || games[0].Month != "Feb" || games[0].Year != "2025" {
		t.Fatalf("unexpected record: %+v", games[0])
	}
}

func TestAddCommandDefaultsStatus(t *testing.T) {
	s := newTestStore(t)
	mustRun(t, s, "add", "xbox", "Halo")
	if s.Games("xbox")[0].Status != backlog.NotStarted {
		t.Fatal("status should default to NotStarted")
	}
}

func TestAddCommandErrors(t *testing.T) {
	s := newTestStore(t)

	if _, err := run(t, s, "add", "gog", "Witcher"); err == nil || !strings.Contains(err.Error(), "unknown platform") {
		t.Fatalf("expected unknown platform error, got %v", err)
	}
	if _, err := run(t, s, "add", "steam", "Hades", "--status", "Abandoned"); !errors.Is(err, backlog.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	if _, err := run(t, s, "add", "steam", "Hades", "--year", "2030"); !errors.Is(err, backlog.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue for future year, got %v", err)
	}
	if _, err := run(t, s, "add", "steam", " "); !errors.Is(err, backlog.ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if _, err := run(t, s, "add", "steam"); err == nil {
		t.Fatal("expected error for missing title")
	}
	if s.Snapshot().Len() != 0 {
		t.Fatal("failed adds should not store anything")
	}
}

func TestWishCommand(t *testing.T) {
	s := newTestStore(t)
	mustRun(t, s, "wish", "Hollow", "Knight:", "Silksong")

	w := s.Wishlist()
	if len(w) != 1 || w[0].Title != "Hollow Knight: Silksong" {
		t.Fatalf("unexpected wishlist: %+v", w)
	}
}

// ============================================================
// set / rm
// ============================================================

func TestSetCommand(t *testing.T) {
	s := newTestStore(t)
	mustRun(t, s, "add", "epic", "Control", "--month", "Jan", "--year", "2024")

	mustRun(t, s, "set", "epic", "1", "status", "100%")
	mustRun(t, s, "set", "epic", "1", "year", "2025")
	mustRun(t, s, "set", "epic", "1", "month")

	g := s.Games("epic")[0]
	if g.Status != backlog.Hundred || g.Year != "2025" || g.Month != "" {
		t.Fatalf("unexpected record: %+v", g)
	}
}

func TestSetCommandErrors(t *testing.T) {
	s := newTestStore(t)
	mustRun(t, s, "add", "epic", "Control")

	if _, err := run(t, s, "set", "epic", "2", "status", "Completed"); err == nil {
		t.Fatal("expected error for out-of-range number")
	}
	if _, err := run(t, s, "set", "epic", "1", "title", "Alan Wake"); !errors.Is(err, backlog.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue for unknown field, got %v", err)
	}
	if _, err := run(t, s, "set", "epic", "1", "month", "June"); !errors.Is(err, backlog.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue for bad month, got %v", err)
	}
}

func TestRemoveCommand(t *testing.T) {
	s := newTestStore(t)
	mustRun(t, s, "add", "steam", "A")
	mustRun(t, s, "add", "steam", "B")
	mustRun(t, s, "wish", "C")

	out := mustRun(t, s, "rm", "steam", "1")
	if !strings.Contains(out, `Removed "A" from steam`) {
		t.Fatalf("unexpected output: %q", out)
	}
	if games := s.Games("steam"); len(games) != 1 || games[0].Title != "B" {
		t.Fatalf("unexpected games: %+v", games)
	}

	mustRun(t, s, "rm", "Wishlist", "1")
	if len(s.Wishlist()) != 0 {
		t.Fatal("wishlist item should be removed")
	}

	if _, err := run(t, s, "rm", "steam", "5"); err == nil {
		t.Fatal("expected error for out-of-range number")
	}
}

// ============================================================
// list / stats
// ============================================================

func seed(t *testing.T, s *store.Store) {
	t.Helper()
	mustRun(t, s, "add", "steam", "Hades", "--status", "Completed", "--month", "Jun", "--year", "2023")
	mustRun(t, s, "add", "steam", "Celeste", "--status", "Hundred", "--month", "Feb", "--year", "2025")
	mustRun(t, s, "add", "xbox", "Halo", "--status", "InProgress")
	mustRun(t, s, "add", "nintendo", "Metroid Dread", "--status", "OnHold")
	mustRun(t, s, "wish", "Silksong")
}

func TestListCommand(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	out := mustRun(t, s, "list")
	for _, want := range []string{"Hades", "Celeste", "Halo", "Metroid Dread", "4 of 4 games"} {
		if !strings.Contains(out, want) {
			t.Fatalf("list output missing %q:\n%s", want, out)
		}
	}

	out = mustRun(t, s, "list", "in", "progress")
	if !strings.Contains(out, "Halo") || strings.Contains(out, "Hades") {
		t.Fatalf("status alias search failed:\n%s", out)
	}
	if !strings.Contains(out, "1 of 4 games") {
		t.Fatalf("expected count line:\n%s", out)
	}

	out = mustRun(t, s, "list", "zzz")
	if !strings.Contains(out, "No games.") {
		t.Fatalf("expected empty message:\n%s", out)
	}
}

func TestListWishlist(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	out := mustRun(t, s, "list", "--wishlist")
	if !strings.Contains(out, "Silksong") || strings.Contains(out, "Hades") {
		t.Fatalf("unexpected wishlist output:\n%s", out)
	}
}

func TestStatsCommand(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)

	out := mustRun(t, s, "stats")
	for _, want := range []string{
		"Player's backlog",
		"Total games: 4",
		"Completed: 2 (50%)",
		"In progress: 1",
		"Month 2025",
		"2023",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("stats output missing %q:\n%s", want, out)
		}
	}

	out = mustRun(t, s, "stats", "--year", "2023")
	if !strings.Contains(out, "Month 2023") {
		t.Fatalf("year flag ignored:\n%s", out)
	}
}

// ============================================================
// import / export
// ============================================================

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestStore(t)
	seed(t, src)
	path := filepath.Join(t.TempDir(), "backup.json")

	out := mustRun(t, src, "export", path)
	if !strings.Contains(out, "Exported to "+path) {
		t.Fatalf("unexpected output: %q", out)
	}

	dst := newTestStore(t)
	out = mustRun(t, dst, "import", path)
	if !strings.Contains(out, "Imported 4 games and 1 wishlist items") {
		t.Fatalf("unexpected output: %q", out)
	}

	out = mustRun(t, dst, "import", path)
	if !strings.Contains(out, "Imported 0 games and 0 wishlist items, 5 duplicates skipped") {
		t.Fatalf("second import should skip everything: %q", out)
	}
	if dst.Snapshot().Len() != 4 {
		t.Fatalf("expected 4 games after re-import, got %d", dst.Snapshot().Len())
	}
}

func TestExportCSVToExportDir(t *testing.T) {
	s := newTestStore(t)
	seed(t, s)
	dir := t.TempDir()
	if err := s.SetSetting(store.SettingExportDir, dir); err != nil {
		t.Fatal(err)
	}

	mustRun(t, s, "export", "--csv")

	data, err := os.ReadFile(filepath.Join(dir, export.CSV.FileName()))
	if err != nil {
		t.Fatalf("csv not written to export_dir: %v", err)
	}
	if !strings.Contains(string(data), "steam,Hades,Completed,Jun,2023") {
		t.Fatalf("unexpected csv:\n%s", data)
	}
}

func TestImportErrors(t *testing.T) {
	s := newTestStore(t)
	dir := t.TempDir()

	if _, err := run(t, s, "import", filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte(`[{"title":"Hades"}]`), 0o644)
	if _, err := run(t, s, "import", bad); !errors.Is(err, backlog.ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", err)
	}
	if s.Snapshot().Len() != 0 {
		t.Fatal("malformed import should not change the backlog")
	}
}

func TestImportReportsSkipped(t *testing.T) {
	s := newTestStore(t)
	path := filepath.Join(t.TempDir(), "loose.json")
	os.WriteFile(path, []byte(`{"steam":[{"title":"Hades"},{"status":"Completed"},7]}`), 0o644)

	out := mustRun(t, s, "import", path)
	if !strings.Contains(out, "Imported 1 games") || !strings.Contains(out, "2 unreadable records ignored") {
		t.Fatalf("unexpected output: %q", out)
	}
}
