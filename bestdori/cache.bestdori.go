package bestdori

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache keeps song metadata and the band table between requests. It is safe
// for concurrent use and lives as long as its owner keeps it.
type Cache struct {
	mu    sync.Mutex
	songs map[int]*Song
	bands map[int]Localized

	group singleflight.Group
}

func NewCache() *Cache {
	return &Cache{songs: map[int]*Song{}}
}

func (c *Cache) song(id int) (*Song, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.songs[id]
	return s, ok
}

func (c *Cache) putSong(id int, s *Song) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.songs[id] = s
}

// band reports the band's names and whether the band table is loaded.
func (c *Cache) band(id int) (Localized, bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bands == nil {
		return nil, false, false
	}
	names, ok := c.bands[id]
	return names, ok, true
}

func (c *Cache) putBands(bands map[int]Localized) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bands = bands
}
