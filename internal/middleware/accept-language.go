package middleware

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"
)

// Reihenfolge zählt: der erste Eintrag ist der Fallback.
var supportedLangs = []language.Tag{language.English, language.German}

var langMatcher = language.NewMatcher(supportedLangs)

// AcceptLanguageMiddleware wählt aus Accept-Language die beste unterstützte Sprache und legt sie in c.Locals("lang").
// "de-AT,de;q=0.9,en;q=0.8" ergibt "de", unbekannte Sprachen ergeben "en".
func AcceptLanguageMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, idx := language.MatchStrings(langMatcher, c.Get(fiber.HeaderAcceptLanguage))
		c.Locals("lang", supportedLangs[idx].String())
		return c.Next()
	}
}
