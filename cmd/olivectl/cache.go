package main

import (
	"github.com/peterbourgon/diskv/v3"

	"github.com/oliveapp/olive-server/internal/localstate"
)

const localeCacheKey = "locale"

// diskLocaleStore persists the resolved locale on disk, playing the
// role the browser cookie plays for the web app. It implements
// language.LocalStore.
type diskLocaleStore struct {
	kv *diskv.Diskv
}

func newDiskLocaleStore() (*diskLocaleStore, error) {
	dir, err := localstate.CacheDir()
	if err != nil {
		return nil, err
	}
	kv := diskv.New(diskv.Options{
		BasePath:     dir,
		CacheSizeMax: 1 << 20,
	})
	return &diskLocaleStore{kv: kv}, nil
}

func (d *diskLocaleStore) Load() (string, bool) {
	data, err := d.kv.Read(localeCacheKey)
	if err != nil || len(data) == 0 {
		return "", false
	}
	return string(data), true
}

func (d *diskLocaleStore) Store(code string) {
	_ = d.kv.Write(localeCacheKey, []byte(code))
}
