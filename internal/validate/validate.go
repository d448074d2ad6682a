package validate

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"

	"fruitstand/internal/domain"
)

var reID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ReadyToEat applies the checkbox rule: only "on" is true.
func ReadyToEat(s string) bool {
	return s == "on"
}

// ID checks the general shape of a record identifier. Backends apply their
// own stricter parsing.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// FruitForm decodes a create/update body. Fields missing from the body stay
// nil so a full replace clears them.
func FruitForm(c *fiber.Ctx) domain.FruitInput {
	ready, _ := formField(c, "readyToEat")
	return domain.FruitInput{
		Name:       optional(c, "name"),
		Color:      optional(c, "color"),
		ReadyToEat: ReadyToEat(ready),
	}
}

func optional(c *fiber.Ctx, key string) *string {
	v, ok := formField(c, key)
	if !ok {
		return nil
	}
	return &v
}

func formField(c *fiber.Ctx, key string) (string, bool) {
	if args := c.Request().PostArgs(); args.Has(key) {
		return string(args.Peek(key)), true
	}
	if form, err := c.MultipartForm(); err == nil {
		if vs, ok := form.Value[key]; ok && len(vs) > 0 {
			return vs[0], true
		}
	}
	return "", false
}
