package i18n

import (
	"embed"

	"github.com/goccy/go-json"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed en.json de.json
var bundles embed.FS

type Service interface {
	T(lang string, key string, params map[string]any) string
}

type I18nService struct {
	bundle     *i18n.Bundle
	localizers map[string]*i18n.Localizer
}

// NewInitI18nService lädt die eingebetteten Bundles, damit API und Worker aus jedem Verzeichnis starten können.
func NewInitI18nService() *I18nService {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, file := range []string{"en.json", "de.json"} {
		if _, err := bundle.LoadMessageFileFS(bundles, file); err != nil {
			panic(err)
		}
	}

	localizers := make(map[string]*i18n.Localizer)
	for _, tag := range bundle.LanguageTags() {
		localizers[tag.String()] = i18n.NewLocalizer(bundle, tag.String())
	}

	return &I18nService{bundle: bundle, localizers: localizers}
}

func (g *I18nService) T(lang string, key string, params map[string]any) string {
	// Die Middleware liefert nur "en" oder "de", alles andere handelt der Localizer selbst aus
	localizer, ok := g.localizers[lang]
	if !ok {
		localizer = i18n.NewLocalizer(g.bundle, lang)
	}
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: params,
	})

	if err != nil {
		return key
	}

	return msg
}
