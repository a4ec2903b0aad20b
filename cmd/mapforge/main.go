// Command mapforge generates procedural terrain maps: a domain-warped
// fractal-noise heightmap, colored by elevation bands into an RGB map.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/mapforge/internal/api"
	"github.com/talgya/mapforge/internal/config"
	"github.com/talgya/mapforge/internal/heightmap"
	"github.com/talgya/mapforge/internal/persistence"
	"github.com/talgya/mapforge/internal/render"
	"github.com/talgya/mapforge/internal/terrain"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var (
		configPath   = flag.String("config", "mapforge.toml", "parameter file (created with defaults if missing)")
		width        = flag.Int("width", 0, "override output width")
		height       = flag.Int("height", 0, "override output height")
		seed         = flag.Int64("seed", 0, "override noise seed")
		heightmapIn  = flag.String("heightmap-in", "", "classify an existing heightmap PNG instead of generating")
		dbPath       = flag.String("db", "data/presets.db", "preset database path")
		presetName   = flag.String("preset", "", "generate from a saved preset")
		savePreset   = flag.String("save-preset", "", "save the resolved parameters under this name and exit")
		deletePreset = flag.String("delete-preset", "", "delete the named preset and exit")
		listPresets  = flag.Bool("list-presets", false, "list saved presets and exit")
		servePort    = flag.Int("serve", 0, "serve the preview API on this port instead of writing files")
	)
	flag.Parse()

	// ── Parameter file ───────────────────────────────────────────────
	cfgFile, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	noiseCfg := cfgFile.NoiseConfig()
	palette := cfgFile.Palette()
	out := cfgFile.Output

	// ── Preset store ─────────────────────────────────────────────────
	needDB := *presetName != "" || *savePreset != "" || *deletePreset != "" || *listPresets || *servePort != 0
	var db *persistence.DB
	if needDB {
		os.MkdirAll("data", 0755)
		db, err = persistence.Open(*dbPath)
		if err != nil {
			slog.Error("failed to open preset database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
	}

	switch {
	case *listPresets:
		presets, err := db.ListPresets()
		if err != nil {
			slog.Error("failed to list presets", "error", err)
			os.Exit(1)
		}
		if len(presets) == 0 {
			fmt.Println("No presets saved.")
			return
		}
		for _, p := range presets {
			fmt.Printf("%-24s %s  (saved %s)\n", p.Name, p.ID, p.CreatedAt)
		}
		return

	case *deletePreset != "":
		if err := db.DeletePreset(*deletePreset); err != nil {
			slog.Error("failed to delete preset", "name", *deletePreset, "error", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted preset %q.\n", *deletePreset)
		return
	}

	if *presetName != "" {
		noiseCfg, palette, err = db.LoadPreset(*presetName)
		if err != nil {
			slog.Error("failed to load preset", "name", *presetName, "error", err)
			os.Exit(1)
		}
		slog.Info("preset loaded", "name", *presetName)
	}

	// Flag overrides apply on top of config file and preset.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			noiseCfg.Seed = *seed
		case "width":
			out.Width = *width
		case "height":
			out.Height = *height
		}
	})

	if *savePreset != "" {
		if _, err := db.SavePreset(*savePreset, noiseCfg, palette); err != nil {
			slog.Error("failed to save preset", "name", *savePreset, "error", err)
			os.Exit(1)
		}
		fmt.Printf("Saved preset %q.\n", *savePreset)
		return
	}

	// ── Preview API ──────────────────────────────────────────────────
	if *servePort != 0 {
		srv := &api.Server{Port: *servePort, Presets: db}
		srv.Start()
		fmt.Printf("Preview API: http://localhost:%d/api/v1/terrain\n", *servePort)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		return
	}

	// ── Heightmap ────────────────────────────────────────────────────
	var field *heightmap.Field
	if *heightmapIn != "" {
		field, err = loadHeightmap(*heightmapIn)
		if err != nil {
			slog.Error("failed to load heightmap", "path", *heightmapIn, "error", err)
			os.Exit(1)
		}
		slog.Info("heightmap loaded", "path", *heightmapIn,
			"size", fmt.Sprintf("%dx%d", field.Width, field.Height))
	} else {
		gen, err := heightmap.NewGenerator(noiseCfg)
		if err != nil {
			slog.Error("invalid parameters", "error", err)
			os.Exit(1)
		}

		start := time.Now()
		field, err = gen.Generate(out.Width, out.Height)
		if err != nil {
			slog.Error("generation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("heightmap generated",
			"size", fmt.Sprintf("%dx%d", out.Width, out.Height),
			"samples", humanize.Comma(int64(out.Width)*int64(out.Height)),
			"seed", noiseCfg.Seed,
			"elapsed", time.Since(start),
		)

		if err := writeRaster(out.Heightmap, field.Gray()); err != nil {
			slog.Error("failed to write heightmap", "error", err)
			os.Exit(1)
		}
	}

	// ── Terrain map ──────────────────────────────────────────────────
	terrainImg, err := terrain.Classify(field, palette)
	if err != nil {
		slog.Error("classification failed", "error", err)
		os.Exit(1)
	}
	if err := writeRaster(out.Terrain, terrainImg); err != nil {
		slog.Error("failed to write terrain map", "error", err)
		os.Exit(1)
	}

	if out.Preview > 0 {
		preview := render.Preview(terrainImg, out.Preview)
		path := previewPath(out.Terrain)
		if err := writeRaster(path, preview); err != nil {
			slog.Error("failed to write preview", "error", err)
			os.Exit(1)
		}
	}

	fmt.Println("Map generation complete.")
}

// writeRaster saves img as PNG and logs the resulting file size.
func writeRaster(path string, img image.Image) error {
	if err := render.WritePNG(path, img); err != nil {
		return err
	}
	if fi, err := os.Stat(path); err == nil {
		slog.Info("wrote raster", "path", path, "bytes", humanize.Bytes(uint64(fi.Size())))
	}
	return nil
}

// loadHeightmap reads an externally produced elevation raster for standalone
// classification.
func loadHeightmap(path string) (*heightmap.Field, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer in.Close()

	img, err := png.Decode(in)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return heightmap.FromImage(img), nil
}

// previewPath derives the preview filename: terrain.png → terrain_preview.png.
func previewPath(path string) string {
	ext := ".png"
	base := path
	if n := len(path) - len(ext); n > 0 && path[n:] == ext {
		base = path[:n]
	}
	return base + "_preview" + ext
}
