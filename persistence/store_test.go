package persistence

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"antworld/models"
)

const layoutJSON = `{
  "layouts": {
    "meadow": {
      "width": 3,
      "height": 2,
      "ant": {"x": 1, "y": 1},
      "rows": ["sc.", "#.~"]
    },
    "broken": {
      "width": 3,
      "height": 2,
      "rows": ["sc."]
    }
  }
}`

const layoutYAML = `
layouts:
  meadow:
    width: 3
    height: 2
    ant: {x: 1, y: 1}
    rows:
      - "sc."
      - "#.~"
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func checkMeadow(t *testing.T, layout *models.Layout) {
	t.Helper()
	if layout.Name != "meadow" {
		t.Errorf("Expected name meadow, got %q", layout.Name)
	}
	if layout.Width != 3 || layout.Height != 2 {
		t.Errorf("Expected 3x2, got %dx%d", layout.Width, layout.Height)
	}
	if layout.Ant != (models.Coord{X: 1, Y: 1}) {
		t.Errorf("Expected ant at (1, 1), got %s", layout.Ant)
	}
	if layout.Rows[1] != "#.~" {
		t.Errorf("Unexpected row %q", layout.Rows[1])
	}
}

func TestJSONStore(t *testing.T) {
	store, err := NewJSONStore(writeTemp(t, "layouts.json", layoutJSON))
	if err != nil {
		t.Fatalf("NewJSONStore failed: %v", err)
	}
	defer store.Close()

	layout, err := store.LoadLayout("meadow")
	if err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}
	checkMeadow(t, layout)

	// callers get their own copy
	layout.Rows[0] = "..."
	again, _ := store.LoadLayout("meadow")
	if again.Rows[0] != "sc." {
		t.Errorf("Store was mutated through a loaded layout: %q", again.Rows[0])
	}

	if _, err := store.LoadLayout("broken"); !errors.Is(err, models.ErrInvalidLayout) {
		t.Errorf("Expected ErrInvalidLayout, got %v", err)
	}
	if _, err := store.LoadLayout("desert"); !errors.Is(err, ErrLayoutNotFound) {
		t.Errorf("Expected ErrLayoutNotFound, got %v", err)
	}
}

func TestJSONStoreMissingFile(t *testing.T) {
	if _, err := NewJSONStore(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestYAMLStore(t *testing.T) {
	store, err := NewYAMLStore(writeTemp(t, "layouts.yaml", layoutYAML))
	if err != nil {
		t.Fatalf("NewYAMLStore failed: %v", err)
	}
	defer store.Close()

	layout, err := store.LoadLayout("meadow")
	if err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}
	checkMeadow(t, layout)
}

func TestRandomSourceIsDeterministic(t *testing.T) {
	src := NewRandomSource(12, 8, 42)

	a, err := src.LoadLayout("world")
	if err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}
	b, _ := src.LoadLayout("world")
	for y := range a.Rows {
		if a.Rows[y] != b.Rows[y] {
			t.Fatalf("Row %d differs between loads: %q vs %q", y, a.Rows[y], b.Rows[y])
		}
	}

	if a.Ant != (models.Coord{X: 6, Y: 4}) {
		t.Errorf("Expected ant in the middle, got %s", a.Ant)
	}
	if got := []rune(a.Rows[a.Ant.Y])[a.Ant.X]; got != models.GlyphEmpty {
		t.Errorf("Ant should start on empty ground, got %q", got)
	}
}

func TestRandomSourceRejectsBadDimensions(t *testing.T) {
	src := NewRandomSource(0, 3, 1)
	if _, err := src.LoadLayout("world"); !errors.Is(err, models.ErrInvalidLayout) {
		t.Errorf("Expected ErrInvalidLayout, got %v", err)
	}
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	store, err := NewPostgresStore(dsn)
	if err != nil {
		t.Fatalf("NewPostgresStore failed: %v", err)
	}
	defer store.Close()

	_, err = store.db.Exec(`INSERT INTO layouts (name, width, height, ant_x, ant_y, rows)
		VALUES ('meadow', 3, 2, 1, 1, '["sc.", "#.~"]')
		ON CONFLICT (name) DO UPDATE SET rows = EXCLUDED.rows`)
	if err != nil {
		t.Fatalf("failed to seed layout: %v", err)
	}

	layout, err := store.LoadLayout("meadow")
	if err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}
	checkMeadow(t, layout)

	if _, err := store.LoadLayout("no-such-layout"); !errors.Is(err, ErrLayoutNotFound) {
		t.Errorf("Expected ErrLayoutNotFound, got %v", err)
	}
}
