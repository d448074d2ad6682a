package services

import (
	"context"
	"fmt"

	"fruitstand/internal/domain"
	"fruitstand/internal/repos"
)

// starters are the records written by Seed, in list order.
var starters = []domain.FruitInput{
	{Name: domain.Str("Orange"), Color: domain.Str("orange"), ReadyToEat: false},
	{Name: domain.Str("Grape"), Color: domain.Str("purple"), ReadyToEat: false},
	{Name: domain.Str("Banana"), Color: domain.Str("orange"), ReadyToEat: false},
	{Name: domain.Str("Strawberry"), Color: domain.Str("red"), ReadyToEat: false},
	{Name: domain.Str("Coconut"), Color: domain.Str("brown"), ReadyToEat: false},
}

type FruitService struct {
	Store repos.FruitStore
}

func NewFruitService(store repos.FruitStore) *FruitService {
	return &FruitService{Store: store}
}

// Seed wipes the store and writes the starter records. The two steps are not
// atomic: a failure after the wipe leaves the store empty.
func (s *FruitService) Seed(ctx context.Context) ([]domain.Fruit, error) {
	if _, err := s.Store.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("seed: delete all: %w", err)
	}
	out, err := s.Store.CreateMany(ctx, starters)
	if err != nil {
		return nil, fmt.Errorf("seed: create: %w", err)
	}
	return out, nil
}

func (s *FruitService) List(ctx context.Context) ([]domain.Fruit, error) {
	out, err := s.Store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list fruits: %w", err)
	}
	return out, nil
}

func (s *FruitService) Get(ctx context.Context, id string) (domain.Fruit, error) {
	f, err := s.Store.Get(ctx, id)
	if err != nil {
		return domain.Fruit{}, fmt.Errorf("get fruit %s: %w", id, err)
	}
	return f, nil
}

func (s *FruitService) Create(ctx context.Context, in domain.FruitInput) (domain.Fruit, error) {
	f, err := s.Store.Create(ctx, in)
	if err != nil {
		return domain.Fruit{}, fmt.Errorf("create fruit: %w", err)
	}
	return f, nil
}

// Update replaces every mutable field of the record.
func (s *FruitService) Update(ctx context.Context, id string, in domain.FruitInput) (domain.Fruit, error) {
	f, err := s.Store.Replace(ctx, id, in)
	if err != nil {
		return domain.Fruit{}, fmt.Errorf("update fruit %s: %w", id, err)
	}
	return f, nil
}

func (s *FruitService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete fruit %s: %w", id, err)
	}
	return nil
}
