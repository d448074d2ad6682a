package validate_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fruitstand/internal/domain"
	"fruitstand/internal/validate"
)

func TestReadyToEat(t *testing.T) {
	for in, want := range map[string]bool{
		"on":    true,
		"":      false,
		"ON":    false,
		"true":  false,
		"off":   false,
		" on":   false,
		"yes":   false,
		"on\n":  false,
		"1":     false,
		"false": false,
	} {
		assert.Equal(t, want, validate.ReadyToEat(in), "input %q", in)
	}
}

func TestID(t *testing.T) {
	_, ok := validate.ID("652f1c2e9b1e8a3d4c5b6a79")
	assert.True(t, ok)
	_, ok = validate.ID("")
	assert.False(t, ok)
	_, ok = validate.ID("../etc")
	assert.False(t, ok)
}

func decode(t *testing.T, contentType, body string) domain.FruitInput {
	t.Helper()
	var got domain.FruitInput
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		got = validate.FruitForm(c)
		return c.SendStatus(fiber.StatusNoContent)
	})
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	return got
}

func TestFruitFormURLEncoded(t *testing.T) {
	in := decode(t, fiber.MIMEApplicationForm, "name=Kiwi&color=&readyToEat=on")
	require.NotNil(t, in.Name)
	assert.Equal(t, "Kiwi", *in.Name)
	require.NotNil(t, in.Color, "present but empty stays present")
	assert.Equal(t, "", *in.Color)
	assert.True(t, in.ReadyToEat)
}

func TestFruitFormAbsentFields(t *testing.T) {
	in := decode(t, fiber.MIMEApplicationForm, "readyToEat=checked")
	assert.Nil(t, in.Name)
	assert.Nil(t, in.Color)
	assert.False(t, in.ReadyToEat)
}

func TestFruitFormMultipart(t *testing.T) {
	body := "--xx\r\nContent-Disposition: form-data; name=\"name\"\r\n\r\nLime\r\n" +
		"--xx\r\nContent-Disposition: form-data; name=\"readyToEat\"\r\n\r\non\r\n--xx--\r\n"
	in := decode(t, "multipart/form-data; boundary=xx", body)
	require.NotNil(t, in.Name)
	assert.Equal(t, "Lime", *in.Name)
	assert.Nil(t, in.Color)
	assert.True(t, in.ReadyToEat)
}
