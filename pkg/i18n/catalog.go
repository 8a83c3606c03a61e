package i18n

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// DefaultLanguage is used when no language is configured or matched.
const DefaultLanguage = "en"

// Catalog holds translations per language. It is safe for concurrent use.
type Catalog struct {
	mu          sync.RWMutex
	messages    map[string]map[string]any
	defaultLang string
	tags        []language.Tag
	matcher     language.Matcher
	log         *slog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithDefaultLanguage sets the fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(c *Catalog) {
		lang = strings.TrimSpace(lang)
		if lang == "" {
			return
		}
		if tag, err := language.Parse(lang); err == nil {
			lang = tag.String()
		}
		c.defaultLang = lang
	}
}

// WithLogger logs missing translations at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.log = l
		}
	}
}

// NewCatalog returns an empty catalog.
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		messages:    make(map[string]map[string]any),
		defaultLang: DefaultLanguage,
		log:         logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.rebuild()
	return c
}

// DefaultLanguage returns the fallback language.
func (c *Catalog) DefaultLanguage() string { return c.defaultLang }

// Add merges messages for lang into the catalog. Later keys win.
func (c *Catalog) Add(lang string, messages map[string]any) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("%w: language %q: %v", ErrInvalidCatalog, lang, err)
	}
	lang = tag.String()

	c.mu.Lock()
	defer c.mu.Unlock()
	cur, ok := c.messages[lang]
	if !ok {
		cur = make(map[string]any, len(messages))
		c.messages[lang] = cur
	}
	mergeTree(cur, messages)
	c.rebuild()
	return nil
}

// LoadYAML reads a {lang: {tree}} document into the catalog.
func (c *Catalog) LoadYAML(r io.Reader) error {
	var doc map[string]any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return errors.Join(ErrInvalidCatalog, err)
	}
	for lang, tree := range doc {
		m, ok := tree.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: language %q: expected a map, got %T", ErrInvalidCatalog, lang, tree)
		}
		if err := c.Add(lang, m); err != nil {
			return err
		}
	}
	return nil
}

// Languages returns the loaded languages, sorted.
func (c *Catalog) Languages() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	langs := make([]string, 0, len(c.messages))
	for lang := range c.messages {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// rebuild refreshes the matcher; the default language is always first so it
// wins when nothing matches. Callers hold the write lock.
func (c *Catalog) rebuild() {
	langs := make([]string, 0, len(c.messages))
	for lang := range c.messages {
		if lang != c.defaultLang {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)

	tags := []language.Tag{language.Make(c.defaultLang)}
	for _, lang := range langs {
		tags = append(tags, language.Make(lang))
	}
	c.tags = tags
	c.matcher = language.NewMatcher(tags)
}

// Match returns the loaded language that best fits an Accept-Language header.
func (c *Catalog) Match(acceptLanguage string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return c.defaultLang
	}
	_, idx, conf := c.matcher.Match(prefs...)
	if conf == language.No {
		return c.defaultLang
	}
	return c.tags[idx].String()
}

// Translate returns the message for key in lang, falling back to the default
// language. Placeholders are filled from values.
func (c *Catalog) Translate(lang, key string, values map[string]any) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, l := range []string{lang, c.defaultLang} {
		if tmpl, ok := lookup(c.messages[l], key); ok {
			return Interpolate(tmpl, values), true
		}
	}
	c.log.Debug("translation not found", logger.Lang(lang), slog.String("key", key))
	return "", false
}

// Localize is Translate with a fallback message used when the key is missing.
func (c *Catalog) Localize(lang, key, fallback string, values map[string]any) string {
	if msg, ok := c.Translate(lang, key, values); ok {
		return msg
	}
	return Interpolate(fallback, values)
}

var placeholder = regexp.MustCompile(`%\{([^}]+)\}`)

// Interpolate replaces %{name} placeholders; unknown names are kept.
func Interpolate(tmpl string, values map[string]any) string {
	if len(values) == 0 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	return placeholder.ReplaceAllStringFunc(tmpl, func(match string) string {
		if v, ok := values[match[2:len(match)-1]]; ok {
			return fmt.Sprint(v)
		}
		return match
	})
}

func lookup(tree map[string]any, key string) (string, bool) {
	if tree == nil {
		return "", false
	}
	parts := strings.Split(key, ".")
	cur := tree
	for i, part := range parts {
		v, ok := cur[part]
		if !ok {
			return "", false
		}
		if i == len(parts)-1 {
			s, isString := v.(string)
			return s, isString
		}
		next, isMap := v.(map[string]any)
		if !isMap {
			return "", false
		}
		cur = next
	}
	return "", false
}

func mergeTree(dst, src map[string]any) {
	for k, v := range src {
		sub, isMap := v.(map[string]any)
		cur, curIsMap := dst[k].(map[string]any)
		if isMap && curIsMap {
			mergeTree(cur, sub)
			continue
		}
		if isMap {
			v = maps.Clone(sub)
		}
		dst[k] = v
	}
}
