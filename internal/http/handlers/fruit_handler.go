package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"fruitstand/internal/domain"
	applog "fruitstand/internal/log"
	"fruitstand/internal/services"
	"fruitstand/internal/validate"
)

const indexPath = "/fruits"

type FruitHandler struct {
	Fruits *services.FruitService
	Errors ErrorPolicy
}

// GET /
func (h *FruitHandler) Home(c *fiber.Ctx) error {
	return c.SendString("Winter is coming....")
}

// GET /fruits/seed
func (h *FruitHandler) Seed(c *fiber.Ctx) error {
	fruits, err := h.Fruits.Seed(c.UserContext())
	if err := h.Errors.Check(c, "fruits.seed.fail", err); err != nil {
		return err
	}
	if fruits == nil {
		fruits = []domain.Fruit{}
	} else {
		applog.Audit(c, "fruits.seed", map[string]any{"count": len(fruits)})
	}
	return c.JSON(fruits)
}

// GET /fruits
func (h *FruitHandler) Index(c *fiber.Ctx) error {
	fruits, err := h.Fruits.List(c.UserContext())
	if err := h.Errors.Check(c, "fruits.list.fail", err); err != nil {
		return err
	}
	return render(c, "fruits/index", fiber.Map{"Fruits": fruits})
}

// GET /fruits/new
func (h *FruitHandler) New(c *fiber.Ctx) error {
	return render(c, "fruits/new", fiber.Map{"Title": "New Fruit"})
}

// GET /fruits/:id
func (h *FruitHandler) Show(c *fiber.Ctx) error {
	f, err := h.find(c)
	if err := h.Errors.Check(c, "fruits.show.fail", err); err != nil {
		return err
	}
	return render(c, "fruits/show", fiber.Map{"Fruit": f})
}

// GET /fruits/:id/edit
func (h *FruitHandler) Edit(c *fiber.Ctx) error {
	f, err := h.find(c)
	if err := h.Errors.Check(c, "fruits.edit.fail", err); err != nil {
		return err
	}
	return render(c, "fruits/edit", fiber.Map{"Title": "Edit Fruit", "Fruit": f})
}

// POST /fruits
func (h *FruitHandler) Create(c *fiber.Ctx) error {
	f, err := h.Fruits.Create(c.UserContext(), validate.FruitForm(c))
	if err != nil {
		if err := h.Errors.Check(c, "fruits.create.fail", err); err != nil {
			return err
		}
	} else {
		applog.Audit(c, "fruits.create", map[string]any{"id": f.ID})
	}
	return c.Redirect(indexPath)
}

// PUT /fruits/:id
func (h *FruitHandler) Update(c *fiber.Ctx) error {
	id, err := h.id(c)
	if err == nil {
		_, err = h.Fruits.Update(c.UserContext(), id, validate.FruitForm(c))
	}
	if err != nil {
		if err := h.Errors.Check(c, "fruits.update.fail", err); err != nil {
			return err
		}
	} else {
		applog.Audit(c, "fruits.update", map[string]any{"id": id})
	}
	return c.Redirect(indexPath)
}

// DELETE /fruits/:id
func (h *FruitHandler) Destroy(c *fiber.Ctx) error {
	id, err := h.id(c)
	if err == nil {
		err = h.Fruits.Delete(c.UserContext(), id)
	}
	if err != nil {
		if err := h.Errors.Check(c, "fruits.delete.fail", err); err != nil {
			return err
		}
	} else {
		applog.Audit(c, "fruits.delete", map[string]any{"id": id})
	}
	return c.Redirect(indexPath)
}

func (h *FruitHandler) id(c *fiber.Ctx) (string, error) {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidID, c.Params("id"))
	}
	return id, nil
}

// find returns nil when the record cannot be loaded, so templates render
// their empty state.
func (h *FruitHandler) find(c *fiber.Ctx) (*domain.Fruit, error) {
	id, err := h.id(c)
	if err != nil {
		return nil, err
	}
	f, err := h.Fruits.Get(c.UserContext(), id)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
