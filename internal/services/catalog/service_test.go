package catalog

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"cafe-system/internal/logger"
	"cafe-system/internal/models"
)

type fakeRepo struct {
	mu    sync.Mutex
	items map[string]models.MenuItem
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]models.MenuItem)}
}

func (r *fakeRepo) CreateItem(_ context.Context, item models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.Name]; ok {
		return models.ErrItemExists
	}
	r.items[item.Name] = item
	return nil
}

func (r *fakeRepo) UpdateItem(_ context.Context, item models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.Name]; !ok {
		return models.ErrItemNotFound
	}
	r.items[item.Name] = item
	return nil
}

func (r *fakeRepo) DeleteItem(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[name]; !ok {
		return models.ErrItemNotFound
	}
	delete(r.items, name)
	return nil
}

func (r *fakeRepo) GetItem(_ context.Context, name string) (models.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[name]
	if !ok {
		return models.MenuItem{}, models.ErrItemNotFound
	}
	return item, nil
}

func (r *fakeRepo) ListByType(_ context.Context, itemType string) ([]models.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []models.MenuItem
	for _, item := range r.items {
		if item.Type == itemType {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (r *fakeRepo) ListAll(_ context.Context) ([]models.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []models.MenuItem
	for _, item := range r.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

var (
	manager  = models.Session{Login: "carol", Role: models.RoleManager}
	employee = models.Session{Login: "bob", Role: models.RoleEmployee}
	customer = models.Session{Login: "alice", Role: models.RoleCustomer}
)

func newTestService(t *testing.T) (*Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	return NewService(repo, logger.New("catalog-test")), repo
}

func TestAddItemManagerOnly(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	latte := models.MenuItem{Name: "Latte", Type: "Drinks", Price: 3.50}

	if err := svc.AddItem(ctx, customer, latte, "req-1"); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("customer: expected ErrUnauthorized, got %v", err)
	}
	if err := svc.AddItem(ctx, employee, latte, "req-2"); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("employee: expected ErrUnauthorized, got %v", err)
	}
	if err := svc.AddItem(ctx, manager, latte, "req-3"); err != nil {
		t.Fatalf("manager AddItem returned error: %v", err)
	}

	got, err := svc.GetItem(ctx, "Latte")
	if err != nil {
		t.Fatalf("GetItem returned error: %v", err)
	}
	if got.Price != 3.50 {
		t.Errorf("price = %v, want 3.50", got.Price)
	}
}

func TestAddItemDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	latte := models.MenuItem{Name: "Latte", Type: "Drinks", Price: 3.50}

	svc.AddItem(ctx, manager, latte, "req-1")
	if err := svc.AddItem(ctx, manager, latte, "req-2"); !errors.Is(err, models.ErrItemExists) {
		t.Errorf("expected ErrItemExists, got %v", err)
	}
}

func TestUpdateItem(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.AddItem(ctx, manager, models.MenuItem{Name: "Latte", Type: "Drinks", Price: 3.50}, "req-1")

	updated := models.MenuItem{Name: "Latte", Type: "Drinks", Price: 3.75, Description: "oat milk"}
	if err := svc.UpdateItem(ctx, manager, updated, "req-2"); err != nil {
		t.Fatalf("UpdateItem returned error: %v", err)
	}

	got, _ := svc.GetItem(ctx, "Latte")
	if got.Price != 3.75 || got.Description != "oat milk" {
		t.Errorf("item = %+v, want updated price and description", got)
	}

	missing := models.MenuItem{Name: "Mocha", Type: "Drinks", Price: 4.00}
	if err := svc.UpdateItem(ctx, manager, missing, "req-3"); !errors.Is(err, models.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
	if err := svc.UpdateItem(ctx, employee, updated, "req-4"); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("employee: expected ErrUnauthorized, got %v", err)
	}
}

func TestRemoveItem(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.AddItem(ctx, manager, models.MenuItem{Name: "Latte", Type: "Drinks", Price: 3.50}, "req-1")

	if err := svc.RemoveItem(ctx, customer, "Latte", "req-2"); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("customer: expected ErrUnauthorized, got %v", err)
	}
	if err := svc.RemoveItem(ctx, manager, "Latte", "req-3"); err != nil {
		t.Fatalf("RemoveItem returned error: %v", err)
	}
	if _, err := svc.GetItem(ctx, "Latte"); !errors.Is(err, models.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound after removal, got %v", err)
	}
	if err := svc.RemoveItem(ctx, manager, "Latte", "req-4"); !errors.Is(err, models.ErrItemNotFound) {
		t.Errorf("removing twice: expected ErrItemNotFound, got %v", err)
	}
}

func TestListByType(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.AddItem(ctx, manager, models.MenuItem{Name: "Latte", Type: "Drinks", Price: 3.50}, "req-1")
	svc.AddItem(ctx, manager, models.MenuItem{Name: "Espresso", Type: "Drinks", Price: 2.00}, "req-2")
	svc.AddItem(ctx, manager, models.MenuItem{Name: "Muffin", Type: "Sweets", Price: 2.25}, "req-3")

	drinks, err := svc.ListByType(ctx, "Drinks")
	if err != nil {
		t.Fatalf("ListByType returned error: %v", err)
	}
	if len(drinks) != 2 {
		t.Fatalf("got %d drinks, want 2", len(drinks))
	}

	all, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d items, want 3", len(all))
	}
}

func TestItemValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		item models.MenuItem
	}{
		{"empty name", models.MenuItem{Type: "Drinks", Price: 1}},
		{"empty type", models.MenuItem{Name: "Latte", Price: 1}},
		{"negative price", models.MenuItem{Name: "Latte", Type: "Drinks", Price: -0.5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.AddItem(ctx, manager, tc.item, "req"); !models.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}
