// Package avatar derives avatar image references from a person's name.
//
// The reference has the shape
//
//	<BaseURL><seed><ImageSuffix>?set=<Set>&size=<Size>
//
// where seed is firstName+lastName with no separator. Two people with the
// same name share a seed.
package avatar

import (
	"net/url"
	"strings"
)

// Config holds the avatar formatting policy. It is read once at startup.
type Config struct {
	BaseURL     string
	ImageSuffix string
	Set         string
	Size        string
	DefaultSeed string
}

// Generator derives avatar references. It holds no mutable state and is safe
// for concurrent use.
type Generator struct {
	cfg   Config
	query string
}

// NewGenerator returns a Generator for cfg. An empty DefaultSeed falls back
// to "default".
func NewGenerator(cfg Config) *Generator {
	if cfg.DefaultSeed == "" {
		cfg.DefaultSeed = "default"
	}

	params := url.Values{}
	if cfg.Set != "" {
		params.Set("set", cfg.Set)
	}
	if cfg.Size != "" {
		params.Set("size", cfg.Size)
	}

	return &Generator{cfg: cfg, query: params.Encode()}
}

// Seed concatenates the names, treating nil as empty. A blank result is
// replaced with the configured default seed.
func (g *Generator) Seed(firstName, lastName *string) string {
	seed := deref(firstName) + deref(lastName)
	if strings.TrimSpace(seed) == "" {
		return g.cfg.DefaultSeed
	}
	return seed
}

// Derive returns the avatar reference for the given names.
func (g *Generator) Derive(firstName, lastName *string) string {
	var b strings.Builder
	b.WriteString(g.cfg.BaseURL)
	b.WriteString(url.PathEscape(g.Seed(firstName, lastName)))
	b.WriteString(g.cfg.ImageSuffix)
	if g.query != "" {
		b.WriteByte('?')
		b.WriteString(g.query)
	}
	return b.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
