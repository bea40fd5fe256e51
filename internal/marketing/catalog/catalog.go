// Package catalog loads the marketing guide catalog from a YAML file.
// The catalog maps public guide slugs to titles and storage file names.
package catalog

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// DefaultSlug is the guide served when a capture does not name one.
const DefaultSlug = "guia-estrategico-consorcio"

// Guide is one downloadable material.
type Guide struct {
	Slug  string `yaml:"slug"`
	Title string `yaml:"title"`
	File  string `yaml:"file"`
}

type catalogFile struct {
	Guides []Guide `yaml:"guides"`
}

// Catalog is an immutable slug index built at startup.
type Catalog struct {
	guides map[string]Guide
}

// Load reads the catalog from path. A missing file yields the built-in
// default catalog so a bare deployment still serves the main guide.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read guide catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse guide catalog: %w", err)
	}
	if len(file.Guides) == 0 {
		return nil, fmt.Errorf("guide catalog %s lists no guides", path)
	}

	guides := make(map[string]Guide, len(file.Guides))
	for _, g := range file.Guides {
		if g.Slug == "" || g.File == "" {
			return nil, fmt.Errorf("guide catalog %s has an entry without slug or file", path)
		}
		if _, dup := guides[g.Slug]; dup {
			return nil, fmt.Errorf("guide catalog %s repeats slug %s", path, g.Slug)
		}
		guides[g.Slug] = g
	}
	return &Catalog{guides: guides}, nil
}

// Default returns the catalog shipped with the application.
func Default() *Catalog {
	return &Catalog{guides: map[string]Guide{
		DefaultSlug: {
			Slug:  DefaultSlug,
			Title: "Guia Estratégico do Consórcio",
			File:  "guia-estrategico-consorcio-v1.pdf",
		},
	}}
}

// Get resolves a slug. An empty slug resolves to the default guide.
func (c *Catalog) Get(slug string) (Guide, bool) {
	if slug == "" {
		slug = DefaultSlug
	}
	g, ok := c.guides[slug]
	return g, ok
}

// ObjectKey is the storage path for a guide inside an organization.
func (c *Catalog) ObjectKey(orgID uuid.UUID, g Guide) string {
	return "orgs/" + orgID.String() + "/guides/" + g.File
}
