package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

// DiskDestination keeps backups as files in a directory, pruning the oldest
// beyond keep (0 keeps everything).
type DiskDestination struct {
	dir  string
	keep int
}

func NewDiskDestination(dir string, keep int) (*DiskDestination, error) {
	if dir == "" {
		return nil, fmt.Errorf("backup dir not set")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	return &DiskDestination{
		dir:  dir,
		keep: keep,
	}, nil
}

func (d *DiskDestination) Name() string {
	return "disk"
}

func (d *DiskDestination) Store(_ context.Context, fileName string, payload []byte) error {
	tmp, err := os.CreateTemp(d.dir, ".tmp-"+fileName)
	if err != nil {
		return err
	}
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), filepath.Join(d.dir, fileName)); err != nil {
		return err
	}

	d.prune()
	return nil
}

// Files lists stored backups, oldest first. Other files in the directory are
// left alone.
func (d *DiskDestination) Files() ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), FilePrefix) || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, e.Name())
	}
	// names embed a sortable timestamp
	sort.Strings(names)
	return names, nil
}

func (d *DiskDestination) prune() {
	if d.keep <= 0 {
		return
	}
	names, err := d.Files()
	if err != nil {
		log.Errorf("list backups in %s: %s", d.dir, err)
		return
	}
	for i := 0; i < len(names)-d.keep; i++ {
		if err := os.Remove(filepath.Join(d.dir, names[i])); err != nil {
			log.Errorf("prune backup %s: %s", names[i], err)
		}
	}
}
