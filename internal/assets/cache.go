// Package assets fronts the (external) renderer/audio asset providers
// with LRU-evicted handle caches, per §5's "scoped resources": GPU
// textures are acquired lazily, and fonts are cached per (family,
// size) with LRU eviction.
package assets

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dustin/go-humanize"

	"github.com/entryrt/engine/internal/logging"
)

// FontKey identifies one cached font handle.
type FontKey struct {
	Family string
	Size   int
}

// Cache holds texture handles keyed by costume id and font handles
// keyed by (family, size), both LRU-evicted.
type Cache struct {
	textures *lru.Cache[string, string]
	fonts    *lru.Cache[FontKey, string]
	log      *logging.Logger
}

const (
	defaultTextureCapacity = 256
	defaultFontCapacity    = 32
)

func New(log *logging.Logger) *Cache {
	textures, _ := lru.NewWithEvict(defaultTextureCapacity, func(id string, handle string) {
		if log != nil {
			log.Debug("texture handle evicted", map[string]any{"costume": id})
		}
	})
	fonts, _ := lru.NewWithEvict(defaultFontCapacity, func(k FontKey, handle string) {
		if log != nil {
			log.Debug("font handle evicted", map[string]any{"family": k.Family, "size": k.Size})
		}
	})
	return &Cache{textures: textures, fonts: fonts, log: log}
}

// TextureHandle returns a cached handle for costumeID, loading it via
// load on miss.
func (c *Cache) TextureHandle(costumeID string, load func() (string, error)) (string, error) {
	if h, ok := c.textures.Get(costumeID); ok {
		return h, nil
	}
	h, err := load()
	if err != nil {
		return "", err
	}
	c.textures.Add(costumeID, h)
	return h, nil
}

// FontHandle returns a cached handle for (family, size), loading via
// load on miss.
func (c *Cache) FontHandle(family string, size int, load func() (string, error)) (string, error) {
	k := FontKey{Family: family, Size: size}
	if h, ok := c.fonts.Get(k); ok {
		return h, nil
	}
	h, err := load()
	if err != nil {
		return "", err
	}
	c.fonts.Add(k, h)
	return h, nil
}

// InvalidateAll marks every cached handle invalid, used on a
// render-device reset per §5: the registry must request
// re-acquisition before the next frame.
func (c *Cache) InvalidateAll() {
	n := c.textures.Len() + c.fonts.Len()
	c.textures.Purge()
	c.fonts.Purge()
	if c.log != nil {
		c.log.Info("invalidated asset cache on device reset", map[string]any{"count": humanize.Comma(int64(n))})
	}
}
