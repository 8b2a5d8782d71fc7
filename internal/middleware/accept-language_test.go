package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptLanguageMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(AcceptLanguageMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("lang").(string))
	})

	cases := []struct {
		header string
		want   string
	}{
		{header: "", want: "en"},
		{header: "de-DE,de;q=0.9,en-US;q=0.8,en;q=0.7", want: "de"},
		{header: "de-AT", want: "de"},
		{header: "fr-FR,fr;q=0.9", want: "en"},
		{header: "fr;q=0.9,de;q=0.5", want: "de"},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(fiber.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set(fiber.HeaderAcceptLanguage, tc.header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, tc.want, string(body), "header %q", tc.header)
	}
}
