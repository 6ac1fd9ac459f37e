package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestRepo(t *testing.T) *ConfigRepo {
	t.Helper()
	repo, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSetGet(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	if err := repo.Set(ctx, Entry{Key: "podcast.app_id", Value: "id-1", Category: "podcast"}); err != nil {
		t.Fatal(err)
	}

	v, ok, err := repo.Get(ctx, "podcast.app_id")
	if err != nil || !ok || v != "id-1" {
		t.Fatalf("Get = %q, %v, %v", v, ok, err)
	}

	// Upsert replaces the value.
	if err := repo.Set(ctx, Entry{Key: "podcast.app_id", Value: "id-2", Category: "podcast"}); err != nil {
		t.Fatal(err)
	}
	v, _, _ = repo.Get(ctx, "podcast.app_id")
	if v != "id-2" {
		t.Fatalf("value after upsert = %q, want %q", v, "id-2")
	}

	_, ok, err = repo.Get(ctx, "missing")
	if err != nil || ok {
		t.Fatalf("Get missing = %v, %v, want not found", ok, err)
	}
}

func TestListByCategory(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	entries := []Entry{
		{Key: "podcast.app_id", Value: "id", Category: "podcast"},
		{Key: "doubao.access_token", Value: "tok", Category: "doubao"},
		{Key: "llm.model", Value: "m", Category: "llm"},
	}
	for _, e := range entries {
		if err := repo.Set(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.List(ctx, "podcast")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Key != "podcast.app_id" {
		t.Fatalf("List(podcast) = %+v", got)
	}

	all, err := repo.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("List() returned %d entries, want 3", len(all))
	}
}

func TestByCategories(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	for _, e := range []Entry{
		{Key: "podcast.app_id", Value: "id", Category: "podcast"},
		{Key: "doubao.access_token", Value: "tok", Category: "doubao"},
		{Key: "speakers", Value: `["a","b"]`, Category: "custom"},
		{Key: "llm.model", Value: "m", Category: "llm"},
	} {
		if err := repo.Set(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.ByCategories(ctx, "podcast", "doubao", "custom")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d values, want 3: %v", len(got), got)
	}
	if got["llm.model"] != "" {
		t.Fatal("llm category should be excluded")
	}

	empty, err := repo.ByCategories(ctx)
	if err != nil || len(empty) != 0 {
		t.Fatalf("ByCategories() = %v, %v, want empty", empty, err)
	}
}
