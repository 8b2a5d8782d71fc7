package i18n

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundles_SameKeys(t *testing.T) {
	load := func(name string) map[string]string {
		raw, err := bundles.ReadFile(name)
		require.NoError(t, err)
		out := map[string]string{}
		require.NoError(t, json.Unmarshal(raw, &out))
		return out
	}

	en, de := load("en.json"), load("de.json")
	for key := range en {
		assert.Contains(t, de, key)
	}
	assert.Len(t, de, len(en))
}

func TestT_TemplateAndFallback(t *testing.T) {
	svc := NewInitI18nService()

	assert.Equal(t, "Must be at least 3.", svc.T("en", "validation.min", map[string]any{"min": "3"}))
	assert.Equal(t, "Case nicht gefunden.", svc.T("de-DE", "case_not_found", nil))
	// unbekannte Sprache fällt auf Englisch zurück, unbekannter Key auf den Key
	assert.Equal(t, "Case not found.", svc.T("fr", "case_not_found", nil))
	assert.Equal(t, "no.such_key", svc.T("en", "no.such_key", nil))
}

var errorKeyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`app_errors\.New\w*Error\(\s*"([a-z_]+\.[a-z_.]+)"`),
	regexp.MustCompile(`app_errors\.NewFieldValidationError\(\s*"[^"]*"\s*,\s*"[^"]*"\s*,\s*"([^"]+)"`),
}

// Jeder Message-Key, den der Code in AppErrors setzt, muss übersetzt sein.
func TestBundles_CoverErrorKeys(t *testing.T) {
	raw, err := bundles.ReadFile("en.json")
	require.NoError(t, err)
	en := map[string]string{}
	require.NoError(t, json.Unmarshal(raw, &en))

	seen := 0
	err = filepath.WalkDir("..", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return err
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, re := range errorKeyPatterns {
			for _, m := range re.FindAllStringSubmatch(string(src), -1) {
				seen++
				assert.Contains(t, en, m[1], "%s", path)
			}
		}
		return nil
	})
	require.NoError(t, err)
	assert.NotZero(t, seen)

	// ein Key pro Konflikt, kein Alias
	assert.NotContains(t, en, "task.already_completed")
	assert.Contains(t, en, "conflict.task_already_completed")
}
