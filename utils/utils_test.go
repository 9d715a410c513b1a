package utils_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notHeisenberg/Parcel-Ease-Server/types"
	"github.com/notHeisenberg/Parcel-Ease-Server/utils"
)

func captureLogEntry(t *testing.T, body string) types.LogEntry {
	t.Helper()

	var entry types.LogEntry
	app := fiber.New()
	app.Post("/echo", func(c *fiber.Ctx) error {
		err := c.Status(fiber.StatusOK).SendString("ok")
		entry = utils.CreateSanitizedLogEntry(c)
		return err
	})

	req := httptest.NewRequest("POST", "/echo", strings.NewReader(body))
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	return entry
}

func TestCreateSanitizedLogEntry(t *testing.T) {
	entry := captureLogEntry(t, `{"name":"Alice"}`)

	assert.Equal(t, "POST", entry.Method)
	assert.Equal(t, "/echo", entry.URL)
	assert.Equal(t, `{"name":"Alice"}`, entry.RequestBody)
	assert.Equal(t, "ok", entry.ResponseBody)
	assert.Equal(t, fiber.StatusOK, entry.StatusCode)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestCreateSanitizedLogEntry_TruncatesLargeBody(t *testing.T) {
	entry := captureLogEntry(t, strings.Repeat("x", 10001))

	assert.Equal(t, "[LARGE_REQUEST_BODY_TRUNCATED]", entry.RequestBody)
}
