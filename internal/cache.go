package internal

import (
	"crypto/md5"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/marcioaug/Refazer-sub001/internal/gosource"
)

type CacheEntry struct {
	Hash         string
	Document     *gosource.Document
	CreatedAt    time.Time
	LastAccessed time.Time
}

// Cache memoizes parsed documents by file name, invalidated by the MD5 of
// their content. Each Engine owns its own Cache.
type Cache struct {
	entries map[string]CacheEntry
	mutex   sync.Mutex
	hits    int
	misses  int
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]CacheEntry)}
}

// Load reads filename and returns its parsed document.
func (c *Cache) Load(filename string) (*gosource.Document, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return c.Document(filename, src)
}

// Document returns the parsed document for src, reparsing only when the
// content stored under filename has changed.
func (c *Cache) Document(filename string, src []byte) (*gosource.Document, error) {
	hash := getSourceHash(src)

	c.mutex.Lock()
	entry, exists := c.entries[filename]
	if exists && entry.Hash == hash {
		entry.LastAccessed = time.Now()
		c.entries[filename] = entry
		c.hits++
		c.mutex.Unlock()
		return entry.Document, nil
	}
	c.misses++
	c.mutex.Unlock()

	// parsed outside the lock; documents are read-only
	doc, err := gosource.Parse(filename, src)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	c.mutex.Lock()
	c.entries[filename] = CacheEntry{
		Hash:         hash,
		Document:     doc,
		CreatedAt:    now,
		LastAccessed: now,
	}
	c.mutex.Unlock()
	return doc, nil
}

// Stats reports cache hits and misses.
func (c *Cache) Stats() (hits, misses int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.hits, c.misses
}

func (c *Cache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.entries)
}

func (c *Cache) Invalidate(filename string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.entries, filename)
}

func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries = make(map[string]CacheEntry)
}

func getSourceHash(src []byte) string {
	return fmt.Sprintf("%x", md5.Sum(src))
}
