// Command snapshot exports and imports the collection snapshots of a
// configured store. It is the operational answer to "move the data": the
// same JSON the service persists, as plain files or one zip archive.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"bloodcorner/internal/blobstore"
	"bloodcorner/internal/collection"
	"bloodcorner/internal/infra"
	"bloodcorner/pkg/zip"
)

var snapshotKeys = []string{
	collection.DonorsKey,
	collection.RequestsKey,
	collection.PostsKey,
}

func main() {
	exportDir := flag.String("export", "", "write the snapshots as JSON files into this directory")
	importDir := flag.String("import", "", "load JSON snapshot files from this directory into the store")
	zipPath := flag.String("zip", "", "write the snapshots as a single zip archive at this path")
	flag.Parse()

	if err := run(*exportDir, *importDir, *zipPath); err != nil {
		fmt.Fprintln(os.Stderr, "snapshot:", err)
		os.Exit(1)
	}
}

func run(exportDir, importDir, zipPath string) error {
	modes := 0
	for _, m := range []string{exportDir, importDir, zipPath} {
		if m != "" {
			modes++
		}
	}
	if modes != 1 {
		return fmt.Errorf("exactly one of -export, -import or -zip is required")
	}

	_ = godotenv.Load()
	cfg, err := infra.LoadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	blobs, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer blobs.Close()

	switch {
	case exportDir != "":
		return exportFiles(ctx, blobs, exportDir)
	case importDir != "":
		return importFiles(ctx, blobs, importDir)
	default:
		return exportZip(ctx, blobs, zipPath)
	}
}

func openStore(ctx context.Context, cfg *infra.Config) (blobstore.Store, error) {
	switch cfg.StoreBackend {
	case infra.StoreRedis:
		client, err := infra.NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return blobstore.NewRedisStore(client, "bloodcorner:"), nil
	case infra.StorePostgres:
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return blobstore.NewPostgresStore(ctx, pool)
	default:
		return blobstore.NewFileStore(cfg.DataDir, cfg.StorageQuotaBytes)
	}
}

func exportFiles(ctx context.Context, blobs blobstore.Store, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, key := range snapshotKeys {
		blob, err := blobs.Get(ctx, key)
		if err != nil {
			return err
		}
		if blob == nil {
			blob = []byte("[]")
		}
		path := filepath.Join(dir, key+".json")
		if err := os.WriteFile(path, blob, 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d bytes)\n", path, len(blob))
	}
	return nil
}

func importFiles(ctx context.Context, blobs blobstore.Store, dir string) error {
	for _, key := range snapshotKeys {
		path := filepath.Join(dir, key+".json")
		blob, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			fmt.Printf("skipping %s: no file\n", key)
			continue
		}
		if err != nil {
			return err
		}
		if err := blobs.Put(ctx, key, blob); err != nil {
			return err
		}
		fmt.Printf("imported %s (%d bytes)\n", key, len(blob))
	}
	return nil
}

func exportZip(ctx context.Context, blobs blobstore.Store, path string) error {
	var assets []zip.Asset
	for _, key := range snapshotKeys {
		blob, err := blobs.Get(ctx, key)
		if err != nil {
			return err
		}
		if blob == nil {
			blob = []byte("[]")
		}
		assets = append(assets, zip.Asset{Filename: key + ".json", MIME: "application/json", Data: blob})
	}
	archive, err := zip.ArchiveAssets(assets)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, archive, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d bytes)\n", path, len(archive))
	return nil
}
