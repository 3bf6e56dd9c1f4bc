package engine

import (
	"os"
	"path/filepath"

	"immichclient/pkg/asset"
)

type sliceSource struct {
	items []Item
	pos   int
}

func (s *sliceSource) Next() (Item, bool) {
	if s.pos >= len(s.items) {
		return Item{}, false
	}
	item := s.items[s.pos]
	s.pos++
	return item, true
}

// FromItems wraps a fixed set of items as a Source.
func FromItems(items []Item) Source {
	return &sliceSource{items: items}
}

// FromAssets wraps already-constructed assets as a Source.
func FromAssets(assets []*asset.Asset) Source {
	items := make([]Item, len(assets))
	for i, a := range assets {
		items[i] = Item{Asset: a, Ref: a.DeviceAssetID}
	}
	return &sliceSource{items: items}
}

type chanSource struct {
	ch <-chan Item
}

func (s *chanSource) Next() (Item, bool) {
	item, ok := <-s.ch
	return item, ok
}

// FromChannel adapts a channel of items to a Source. The sequence ends when
// the channel is closed.
func FromChannel(ch <-chan Item) Source {
	return &chanSource{ch: ch}
}

type dirSource struct {
	dir     string
	entries []os.DirEntry
	pos     int
}

func (s *dirSource) Next() (Item, bool) {
	for s.pos < len(s.entries) {
		entry := s.entries[s.pos]
		s.pos++
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		a, err := asset.FromPath(path)
		if err != nil {
			return Item{Ref: entry.Name(), Err: err}, true
		}
		return Item{Asset: a, Ref: a.DeviceAssetID}, true
	}
	return Item{}, false
}

// FromDir lists dir (non-recursive) and yields one Item per regular file.
// Files are read and hashed lazily, one Next call at a time, so a large
// directory is only pulled into memory as fast as the workers drain it.
func FromDir(dir string) (Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	return &dirSource{dir: dir, entries: entries}, nil
}
