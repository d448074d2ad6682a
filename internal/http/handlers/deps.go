package handlers

import (
	"fruitstand/internal/config"
	"fruitstand/internal/repos"
	"fruitstand/internal/services"

	"github.com/gofiber/fiber/v2"
)

type Deps struct {
	FruitHandler *FruitHandler
}

func NewDeps(store repos.FruitStore, cfg config.Config) *Deps {
	fruitSvc := services.NewFruitService(store)

	return &Deps{
		FruitHandler: &FruitHandler{Fruits: fruitSvc, Errors: NewErrorPolicy(cfg.ErrorMode)},
	}
}

// Register mounts the application routes. Literal paths come before /:id.
func (d *Deps) Register(r fiber.Router) {
	h := d.FruitHandler
	r.Get("/", h.Home)

	r.Get("/fruits/seed", h.Seed)
	r.Get("/fruits", h.Index)
	r.Get("/fruits/new", h.New)
	r.Post("/fruits", h.Create)
	r.Get("/fruits/:id", h.Show)
	r.Get("/fruits/:id/edit", h.Edit)
	r.Put("/fruits/:id", h.Update)
	r.Delete("/fruits/:id", h.Destroy)
}
