package handlers_test

import (
	"context"
	"testing"

	"fruitstand/internal/config"
)

// mutations leave an audit trail
func TestAuditLogs(t *testing.T) {
	app, store := newFruitApp(t, config.ErrorModeLenient)
	f := mustCreate(t, store, "Melon", "green")

	entries := captureLogs(t, func() {
		do(t, app, "POST", "/fruits", "name=Kiwi")
		do(t, app, "PUT", "/fruits/"+f.ID, "name=Honeydew")
		do(t, app, "DELETE", "/fruits/"+f.ID, "")
		do(t, app, "GET", "/fruits/seed", "")
	})
	for _, action := range []string{"fruits.create", "fruits.update", "fruits.delete", "fruits.seed"} {
		e, ok := findAction(entries, action)
		if !ok {
			t.Fatalf("expected %s log", action)
		}
		if e.Level != "audit" {
			t.Fatalf("%s: want audit level, got %s", action, e.Level)
		}
	}
	if e, _ := findAction(entries, "fruits.delete"); e.Fields["id"] != f.ID {
		t.Fatalf("delete log should carry the id, got %v", e.Fields)
	}
}

// store errors are never dropped on the floor, even when the response hides them
func TestLenientErrorsAreLogged(t *testing.T) {
	app, store := newFruitApp(t, config.ErrorModeLenient)

	entries := captureLogs(t, func() {
		do(t, app, "GET", "/fruits/"+missingID, "")
	})
	e, ok := findAction(entries, "fruits.show.fail")
	if !ok || e.Level != "error" || e.Err == "" {
		t.Fatalf("expected fruits.show.fail error log, got %+v", entries)
	}

	store.Close(context.Background())
	entries = captureLogs(t, func() {
		do(t, app, "POST", "/fruits", "name=Ghost")
	})
	if _, ok := findAction(entries, "fruits.create.fail"); !ok {
		t.Fatal("expected fruits.create.fail log")
	}
	if _, ok := findAction(entries, "fruits.create"); ok {
		t.Fatal("failed create must not be audited")
	}
}
