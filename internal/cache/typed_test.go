// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testItem struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func TestTyped_SetGet(t *testing.T) {
	mc := NewMemoryCache(MemoryOptions{})
	defer func() { _ = mc.Close() }()
	tc := NewTyped[[]testItem](mc, time.Minute)
	ctx := context.Background()

	_, ok, err := tc.Get(ctx, "items")
	if err != nil || ok {
		t.Fatalf("Get on empty cache = ok %v err %v", ok, err)
	}

	want := []testItem{{ID: 1, Title: "one"}, {ID: 2, Title: "two"}}
	if err := tc.Set(ctx, "items", want); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := tc.Get(ctx, "items")
	if err != nil || !ok {
		t.Fatalf("Get = ok %v err %v", ok, err)
	}
	if len(got) != 2 || got[1].Title != "two" {
		t.Errorf("Get = %+v", got)
	}

	if err := mc.Delete(ctx, "items"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := tc.Get(ctx, "items"); ok {
		t.Error("Get after Delete should miss")
	}
}

func TestTyped_UndecodableIsMiss(t *testing.T) {
	mc := NewMemoryCache(MemoryOptions{})
	defer func() { _ = mc.Close() }()
	ctx := context.Background()

	_ = mc.Set(ctx, "bad", []byte("{not json"), 0)
	tc := NewTyped[testItem](mc, 0)

	_, ok, err := tc.Get(ctx, "bad")
	if err != nil || ok {
		t.Errorf("Get(bad) = ok %v err %v, want a plain miss", ok, err)
	}
}

func TestTyped_GetOrLoad(t *testing.T) {
	mc := NewMemoryCache(MemoryOptions{})
	defer func() { _ = mc.Close() }()
	tc := NewTyped[testItem](mc, time.Minute)
	ctx := context.Background()

	calls := 0
	load := func(context.Context) (testItem, error) {
		calls++
		return testItem{ID: 7, Title: "loaded"}, nil
	}

	for i := 0; i < 3; i++ {
		v, err := tc.GetOrLoad(ctx, "item", load)
		if err != nil {
			t.Fatalf("GetOrLoad: %v", err)
		}
		if v.ID != 7 {
			t.Errorf("GetOrLoad = %+v", v)
		}
	}
	if calls != 1 {
		t.Errorf("load called %d times, want 1", calls)
	}

	boom := errors.New("boom")
	_, err := tc.GetOrLoad(ctx, "other", func(context.Context) (testItem, error) {
		return testItem{}, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("GetOrLoad err = %v, want boom", err)
	}
	if _, ok, _ := tc.Get(ctx, "other"); ok {
		t.Error("failed load must not be cached")
	}
}

func TestTyped_ClosedBackendStillLoads(t *testing.T) {
	mc := NewMemoryCache(MemoryOptions{})
	_ = mc.Close()
	tc := NewTyped[int](mc, 0)

	v, err := tc.GetOrLoad(context.Background(), "n", func(context.Context) (int, error) { return 42, nil })
	if err != nil || v != 42 {
		t.Errorf("GetOrLoad on closed cache = %d, %v", v, err)
	}
}
