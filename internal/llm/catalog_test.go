package llm

import "testing"

func TestCatalog_AllProvidersWellFormed(t *testing.T) {
	for _, d := range Providers() {
		if d.ID == "" || d.Name == "" || d.Endpoint == "" {
			t.Errorf("descriptor %+v missing identity fields", d)
		}
		if d.DefaultModel == "" {
			t.Errorf("provider %s has no default model", d.ID)
		}
		found := false
		for _, m := range d.Models {
			if m.ID == d.DefaultModel {
				found = true
			}
		}
		if !found {
			t.Errorf("provider %s default model %q not in model list", d.ID, d.DefaultModel)
		}
	}
}

func TestLookup_KnownIDs(t *testing.T) {
	for _, id := range []string{"gemini", "anthropic", "openai", "openrouter", "mistral", "groq"} {
		d := Lookup(id)
		if d.ID != id {
			t.Errorf("Lookup(%q).ID = %q", id, d.ID)
		}
		if !Known(id) {
			t.Errorf("Known(%q) = false", id)
		}
	}
}

func TestLookup_UnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown provider id")
		}
	}()
	Lookup("does-not-exist")
}

func TestListModels_FreeFlags(t *testing.T) {
	models := ListModels("openrouter")
	if len(models) == 0 {
		t.Fatal("expected models for openrouter")
	}
	free := 0
	for _, m := range models {
		if m.Free {
			free++
		}
	}
	if free == 0 {
		t.Error("openrouter should list at least one free model")
	}
}
