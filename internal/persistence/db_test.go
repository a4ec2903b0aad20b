package persistence

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/talgya/mapforge/internal/heightmap"
	"github.com/talgya/mapforge/internal/terrain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "presets.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPresetRoundTrip(t *testing.T) {
	db := openTestDB(t)

	cfg := heightmap.DefaultConfig()
	cfg.Seed = 1234
	cfg.Octaves = 4
	palette := terrain.DefaultPalette()

	id, err := db.SavePreset("islands", cfg, palette)
	if err != nil {
		t.Fatalf("SavePreset: %v", err)
	}
	if id == "" {
		t.Fatal("SavePreset returned empty ID")
	}

	gotCfg, gotPalette, err := db.LoadPreset("islands")
	if err != nil {
		t.Fatalf("LoadPreset: %v", err)
	}
	if gotCfg != cfg {
		t.Errorf("loaded config = %+v, want %+v", gotCfg, cfg)
	}
	if len(gotPalette) != len(palette) {
		t.Fatalf("loaded palette has %d regions, want %d", len(gotPalette), len(palette))
	}
	for i := range palette {
		if gotPalette[i] != palette[i] {
			t.Errorf("region %d = %+v, want %+v", i, gotPalette[i], palette[i])
		}
	}
}

func TestSavePresetReplacesByName(t *testing.T) {
	db := openTestDB(t)

	cfg := heightmap.DefaultConfig()
	if _, err := db.SavePreset("tuned", cfg, terrain.DefaultPalette()); err != nil {
		t.Fatalf("SavePreset: %v", err)
	}

	cfg.Seed = 777
	if _, err := db.SavePreset("tuned", cfg, terrain.DefaultPalette()); err != nil {
		t.Fatalf("SavePreset (replace): %v", err)
	}

	gotCfg, _, err := db.LoadPreset("tuned")
	if err != nil {
		t.Fatalf("LoadPreset: %v", err)
	}
	if gotCfg.Seed != 777 {
		t.Errorf("seed after replace = %d, want 777", gotCfg.Seed)
	}

	presets, err := db.ListPresets()
	if err != nil {
		t.Fatalf("ListPresets: %v", err)
	}
	if len(presets) != 1 {
		t.Fatalf("ListPresets returned %d rows after upsert, want 1", len(presets))
	}
}

func TestListPresetsOrdered(t *testing.T) {
	db := openTestDB(t)

	for _, name := range []string{"zebra", "alpine", "marsh"} {
		if _, err := db.SavePreset(name, heightmap.DefaultConfig(), terrain.DefaultPalette()); err != nil {
			t.Fatalf("SavePreset(%s): %v", name, err)
		}
	}

	presets, err := db.ListPresets()
	if err != nil {
		t.Fatalf("ListPresets: %v", err)
	}
	want := []string{"alpine", "marsh", "zebra"}
	if len(presets) != len(want) {
		t.Fatalf("ListPresets returned %d rows, want %d", len(presets), len(want))
	}
	for i, name := range want {
		if presets[i].Name != name {
			t.Errorf("preset %d = %q, want %q", i, presets[i].Name, name)
		}
	}
}

func TestLoadMissingPreset(t *testing.T) {
	db := openTestDB(t)

	_, _, err := db.LoadPreset("nope")
	if !errors.Is(err, ErrPresetNotFound) {
		t.Fatalf("LoadPreset error = %v, want ErrPresetNotFound", err)
	}
}

func TestDeletePreset(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.SavePreset("temp", heightmap.DefaultConfig(), terrain.DefaultPalette()); err != nil {
		t.Fatalf("SavePreset: %v", err)
	}
	if err := db.DeletePreset("temp"); err != nil {
		t.Fatalf("DeletePreset: %v", err)
	}
	if err := db.DeletePreset("temp"); !errors.Is(err, ErrPresetNotFound) {
		t.Fatalf("second DeletePreset error = %v, want ErrPresetNotFound", err)
	}
}
