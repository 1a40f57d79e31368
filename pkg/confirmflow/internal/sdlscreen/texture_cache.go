package sdlscreen

import (
	"container/list"

	"github.com/veandco/go-sdl2/sdl"
)

const defaultMaxCacheSize = 32

// cachedTexture keeps the texture size next to the texture so layout code
// does not have to query SDL for it.
type cachedTexture struct {
	key     string
	texture *sdl.Texture
	w, h    int32
}

// TextureCache is a small LRU of rendered text lines and icons. Evicted
// textures are destroyed, so it must only be used from the render thread.
type TextureCache struct {
	entries map[string]*list.Element
	order   *list.List // front is most recently used
	maxSize int
}

func NewTextureCache(maxSize int) *TextureCache {
	if maxSize <= 0 {
		maxSize = defaultMaxCacheSize
	}
	return &TextureCache{
		entries: make(map[string]*list.Element, maxSize),
		order:   list.New(),
		maxSize: maxSize,
	}
}

func (c *TextureCache) Get(key string) (*cachedTexture, bool) {
	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cachedTexture), true
}

func (c *TextureCache) Put(key string, texture *sdl.Texture, w, h int32) *cachedTexture {
	if el, ok := c.entries[key]; ok {
		old := el.Value.(*cachedTexture)
		if old.texture != texture {
			old.texture.Destroy()
		}
		old.texture, old.w, old.h = texture, w, h
		c.order.MoveToFront(el)
		return old
	}

	for c.order.Len() >= c.maxSize {
		c.evictOldest()
	}

	entry := &cachedTexture{key: key, texture: texture, w: w, h: h}
	c.entries[key] = c.order.PushFront(entry)
	return entry
}

func (c *TextureCache) Len() int {
	return c.order.Len()
}

func (c *TextureCache) evictOldest() {
	el := c.order.Back()
	if el == nil {
		return
	}
	entry := c.order.Remove(el).(*cachedTexture)
	delete(c.entries, entry.key)
	entry.texture.Destroy()
}

func (c *TextureCache) Destroy() {
	for c.order.Len() > 0 {
		c.evictOldest()
	}
}
