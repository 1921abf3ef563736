package grammar

import (
	"errors"
	"io/fs"
	"os"

	"github.com/bluele/gcache"

	"github.com/midbel/climb/parser"
)

// Resolve returns the preset called name or, when no preset has this name,
// the grammar found in the file name.
func Resolve(name string) (*parser.Language, error) {
	if _, ok := presets[name]; ok {
		return Lookup(name)
	}
	if _, err := os.Stat(name); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return Lookup(name)
	}
	return Load(name)
}

// Cache keeps the most recently resolved grammars. The Languages it returns
// are shared: derive them with Extend instead of defining new rules.
type Cache struct {
	cache gcache.Cache
}

func NewCache(size int) *Cache {
	load := func(key interface{}) (interface{}, error) {
		return Resolve(key.(string))
	}
	c := Cache{
		cache: gcache.New(max(size, 1)).LRU().LoaderFunc(load).Build(),
	}
	return &c
}

func (c *Cache) Get(name string) (*parser.Language, error) {
	v, err := c.cache.Get(name)
	if err != nil {
		return nil, err
	}
	return v.(*parser.Language), nil
}

// Forget drops name so that the next Get reads it again.
func (c *Cache) Forget(name string) {
	c.cache.Remove(name)
}
