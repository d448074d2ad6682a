package services_test

import (
	"context"
	"errors"
	"testing"

	"fruitstand/internal/domain"
	"fruitstand/internal/repos"
	"fruitstand/internal/services"
)

func memstore(t *testing.T) *repos.SQLiteStore {
	t.Helper()
	store, err := repos.OpenSQLite(":memory:", repos.Options{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close(context.Background()) })
	return store
}

func TestFruitService_SeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := services.NewFruitService(memstore(t))

	if _, err := svc.Create(ctx, domain.FruitInput{Name: domain.Str("Leftover")}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		seeded, err := svc.Seed(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(seeded) != 5 {
			t.Fatalf("seed %d: want 5 records, got %d", i, len(seeded))
		}
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []struct{ name, color string }{
		{"Orange", "orange"}, {"Grape", "purple"}, {"Banana", "orange"}, {"Strawberry", "red"}, {"Coconut", "brown"},
	}
	if len(list) != len(want) {
		t.Fatalf("want %d fruits after reseed, got %d", len(want), len(list))
	}
	for i, f := range list {
		if f.Name == nil || *f.Name != want[i].name || f.Color == nil || *f.Color != want[i].color || f.ReadyToEat {
			t.Fatalf("fruit %d: want %s/%s not ready, got %+v", i, want[i].name, want[i].color, f)
		}
	}
}

func TestFruitService_UpdateReplacesAllFields(t *testing.T) {
	ctx := context.Background()
	svc := services.NewFruitService(memstore(t))

	f, err := svc.Create(ctx, domain.FruitInput{Name: domain.Str("Mango"), Color: domain.Str("yellow"), ReadyToEat: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Update(ctx, f.ID, domain.FruitInput{Color: domain.Str("green")}); err != nil {
		t.Fatal(err)
	}
	got, err := svc.Get(ctx, f.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != nil || got.Color == nil || *got.Color != "green" || got.ReadyToEat {
		t.Fatalf("want only color=green, got %+v", got)
	}
}

func TestFruitService_WrapsSentinels(t *testing.T) {
	ctx := context.Background()
	svc := services.NewFruitService(memstore(t))

	if _, err := svc.Get(ctx, "nope"); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("want ErrInvalidID, got %v", err)
	}
	missing := "00000000-0000-4000-8000-000000000000"
	if _, err := svc.Get(ctx, missing); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, missing); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

// failingCreate wipes like a real store but cannot insert.
type failingCreate struct {
	repos.FruitStore
	wiped bool
}

func (f *failingCreate) DeleteAll(context.Context) (int64, error) {
	f.wiped = true
	return 0, nil
}

func (f *failingCreate) CreateMany(context.Context, []domain.FruitInput) ([]domain.Fruit, error) {
	return nil, errors.New("disk full")
}

func TestFruitService_SeedWipesBeforeInsert(t *testing.T) {
	store := &failingCreate{}
	_, err := services.NewFruitService(store).Seed(context.Background())
	if err == nil {
		t.Fatal("want error from failed insert")
	}
	if !store.wiped {
		t.Fatal("delete-all must run before insert")
	}
}
