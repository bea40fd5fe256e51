package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestLoadParsesGuides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guides.yaml")
	content := `guides:
  - slug: guia-estrategico-consorcio
    title: Guia Estratégico do Consórcio
    file: guia-estrategico-consorcio-v1.pdf
  - slug: guia-lance-embutido
    title: Guia do Lance Embutido
    file: guia-lance-embutido-v2.pdf
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g, ok := cat.Get("guia-lance-embutido")
	if !ok {
		t.Fatal("expected guia-lance-embutido in catalog")
	}
	if g.File != "guia-lance-embutido-v2.pdf" {
		t.Errorf("file %q, want guia-lance-embutido-v2.pdf", g.File)
	}

	if _, ok := cat.Get("missing"); ok {
		t.Error("unknown slug should not resolve")
	}
}

func TestLoadMissingFileFallsBackToDefault(t *testing.T) {
	cat, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cat.Get(""); !ok {
		t.Error("default catalog should resolve the empty slug")
	}
}

func TestLoadRejectsDuplicateSlugs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guides.yaml")
	content := `guides:
  - slug: a
    title: A
    file: a.pdf
  - slug: a
    title: A again
    file: a2.pdf
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for duplicate slugs")
	}
}

func TestObjectKeyEmbedsOrg(t *testing.T) {
	orgID := uuid.New()
	cat := Default()
	g, _ := cat.Get("")

	want := "orgs/" + orgID.String() + "/guides/guia-estrategico-consorcio-v1.pdf"
	if got := cat.ObjectKey(orgID, g); got != want {
		t.Errorf("key %q, want %q", got, want)
	}
}
