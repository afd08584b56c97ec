package xlstyle

import (
	"encoding/json"
	"strings"
	"sync"
	"weak"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"
)

// CacheMode selects how a StyleCache keys styles.
type CacheMode int

const (
	CacheFast CacheMode = iota // key with Encode
	CacheJSON                  // key with the JSON form of the style
	CacheNone                  // register a new excelize style on every lookup
	CacheWeak                  // key by the identity of the *Style passed to StyleOf
)

// String returns the mode name accepted by ParseCacheMode.
func (m CacheMode) String() string {
	switch m {
	case CacheFast:
		return "FAST_MAP"
	case CacheJSON:
		return "JSON_MAP"
	case CacheNone:
		return "NO_CACHE"
	case CacheWeak:
		return "WEAK_MAP"
	default:
		return "UNKNOWN"
	}
}

// ParseCacheMode parses "FAST_MAP", "JSON_MAP", "WEAK_MAP" or "NO_CACHE"
// (or the short forms "fast", "json", "weak", "none"), ignoring case.
func ParseCacheMode(s string) (CacheMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FAST_MAP", "FAST":
		return CacheFast, nil
	case "JSON_MAP", "JSON":
		return CacheJSON, nil
	case "NO_CACHE", "NONE":
		return CacheNone, nil
	case "WEAK_MAP", "WEAK":
		return CacheWeak, nil
	default:
		return 0, errors.Newf("unknown cache mode %q", s)
	}
}

// CacheStats counts StyleCache activity.
type CacheStats struct {
	Hits       int `json:"hits"`
	Misses     int `json:"misses"`
	Registered int `json:"registered"`
}

// StyleCache deduplicates styles registered with one excelize file so that
// cells sharing a format share one style record.
type StyleCache struct {
	file  *excelize.File
	mode  CacheMode
	ids   map[string]int // key → excelize style ID
	refs  map[weak.Pointer[Style]]int
	keys  map[int]string // excelize style ID → fast key
	stats CacheStats

	mu sync.Mutex // protects ids, refs, keys and stats
}

// NewStyleCache creates a cache that registers styles with f.
func NewStyleCache(f *excelize.File, mode CacheMode) *StyleCache {
	return &StyleCache{
		file: f,
		mode: mode,
		ids:  make(map[string]int),
		refs: make(map[weak.Pointer[Style]]int),
		keys: make(map[int]string),
	}
}

// Mode returns the cache's keying mode.
func (c *StyleCache) Mode() CacheMode { return c.mode }

// StyleID returns the excelize style ID for s, registering the style on
// first use. The empty style maps to 0, the workbook's default style.
//
// In CacheWeak mode a value has no identity, so every call registers; use
// StyleOf to share records between lookups of the same *Style.
func (c *StyleCache) StyleID(s Style) (int, error) {
	if s.IsEmpty() {
		return 0, nil
	}
	switch c.mode {
	case CacheJSON:
		return c.jsonStyleID(s)
	case CacheWeak:
		return c.weakStyleID(s)
	}

	// Fast keys are checked on every lookup: a value holding a delimiter
	// would otherwise share its key with a different style.
	key, err := EncodeStrict(s)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == CacheNone {
		return c.register(key)
	}
	if id, ok := c.ids[key]; ok {
		c.stats.Hits++
		return id, nil
	}
	c.stats.Misses++
	id, err := c.register(key)
	if err != nil {
		return 0, err
	}
	c.ids[key] = id
	return id, nil
}

// jsonStyleID looks s up by its JSON form. JSON keys are escaped, so only a
// miss needs the delimiter check that guards the registered record.
func (c *StyleCache) jsonStyleID(s Style) (int, error) {
	lookup, err := jsonKey(s)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if id, ok := c.ids[lookup]; ok {
		c.stats.Hits++
		return id, nil
	}
	c.stats.Misses++
	id, err := c.add(s)
	if err != nil {
		return 0, err
	}
	c.ids[lookup] = id
	return id, nil
}

// weakStyleID registers a style passed by value; nothing can look it up
// again, so no reference is kept.
func (c *StyleCache) weakStyleID(s Style) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.Misses++
	return c.add(s)
}

// StyleOf is StyleID for a style held by pointer. In CacheWeak mode the
// pointer itself is the key: the same *Style always maps to the same ID
// without being encoded again, and equal styles behind different pointers
// are looked up separately. The cache does not keep s alive, and s must not
// be modified after its first lookup. Other modes behave as StyleID(*s).
func (c *StyleCache) StyleOf(s *Style) (int, error) {
	if s == nil || s.IsEmpty() {
		return 0, nil
	}
	if c.mode != CacheWeak {
		return c.StyleID(*s)
	}

	ref := weak.Make(s)
	c.mu.Lock()
	defer c.mu.Unlock()

	if id, ok := c.refs[ref]; ok {
		c.stats.Hits++
		return id, nil
	}
	c.stats.Misses++
	id, err := c.add(*s)
	if err != nil {
		return 0, err
	}
	c.refs[ref] = id
	return id, nil
}

// add validates s and registers it. c.mu must be held.
func (c *StyleCache) add(s Style) (int, error) {
	key, err := EncodeStrict(s)
	if err != nil {
		return 0, err
	}
	return c.register(key)
}

// register adds the canonical form of key to the workbook. Registering the
// decoded key rather than the caller's value guarantees that every style
// sharing a key shares the exact same record.
func (c *StyleCache) register(key string) (int, error) {
	id, err := c.file.NewStyle(ToExcelize(Decode(key)))
	if err != nil {
		return 0, errors.Wrapf(err, "register style %q", key)
	}
	c.stats.Registered++
	c.keys[id] = key
	return id, nil
}

// Style returns the canonical style registered under id.
func (c *StyleCache) Style(id int) (Style, bool) {
	c.mu.Lock()
	key, ok := c.keys[id]
	c.mu.Unlock()
	if !ok {
		return Style{}, false
	}
	return Decode(key), true
}

// Styles returns the canonical style of every registered ID.
func (c *StyleCache) Styles() map[int]Style {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[int]Style, len(c.keys))
	for id, key := range c.keys {
		out[id] = Decode(key)
	}
	return out
}

// Len returns the number of distinct workbook styles registered through the
// cache. excelize merges identical definitions, so this is also meaningful
// for CacheNone.
func (c *StyleCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.keys)
}

// Stats returns a snapshot of the cache counters.
func (c *StyleCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// jsonKey is the structural-stringification key the fast codec replaces.
func jsonKey(s Style) (string, error) {
	snapshot := struct {
		Style
		Fill     Fill
		FillKind string `json:",omitempty"`
	}{Style: s, Fill: s.Fill}
	if s.Fill != nil {
		snapshot.FillKind = s.Fill.Kind().String()
	}
	b, err := json.Marshal(snapshot)
	if err != nil {
		return "", errors.Wrap(err, "marshal style key")
	}
	return string(b), nil
}
