package order

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cafe-system/internal/logger"
	"cafe-system/internal/models"
)

// fakeRepo is an in-memory Repository. Mutations take a single lock,
// mirroring the per-order serialization the Postgres implementation
// gets from row locking.
type fakeRepo struct {
	mu      sync.Mutex
	catalog map[string]float64
	orders  map[int]*models.Order
	lines   map[int]map[string]*models.OrderLine
	nextID  int
}

func newFakeRepo(catalog map[string]float64) *fakeRepo {
	return &fakeRepo{
		catalog: catalog,
		orders:  make(map[int]*models.Order),
		lines:   make(map[int]map[string]*models.OrderLine),
	}
}

func (r *fakeRepo) CreateOrder(_ context.Context, login, itemName string) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	price, ok := r.catalog[itemName]
	if !ok {
		return models.Order{}, models.ErrItemNotFound
	}

	r.nextID++
	o := &models.Order{ID: r.nextID, Login: login, Total: price, CreatedAt: time.Now().UTC()}
	r.orders[o.ID] = o
	r.lines[o.ID] = map[string]*models.OrderLine{
		itemName: {OrderID: o.ID, ItemName: itemName, Price: price, Status: models.StatusNotStarted, LastUpdated: o.CreatedAt},
	}
	return *o, nil
}

func (r *fakeRepo) AddLine(_ context.Context, orderID int, itemName string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok {
		return 0, models.ErrOrderNotFound
	}
	if o.Paid {
		return 0, models.ErrOrderAlreadyPaid
	}
	price, ok := r.catalog[itemName]
	if !ok {
		return 0, models.ErrItemNotFound
	}
	if _, ok := r.lines[orderID][itemName]; ok {
		return 0, models.ErrDuplicateLine
	}

	r.lines[orderID][itemName] = &models.OrderLine{
		OrderID: orderID, ItemName: itemName, Price: price,
		Status: models.StatusNotStarted, LastUpdated: time.Now().UTC(),
	}
	o.Total += price
	return o.Total, nil
}

func (r *fakeRepo) GetOrder(_ context.Context, orderID int) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok {
		return models.Order{}, models.ErrOrderNotFound
	}
	return *o, nil
}

func (r *fakeRepo) SetPaid(_ context.Context, orderID int, paid bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[orderID]
	if !ok {
		return models.ErrOrderNotFound
	}
	o.Paid = paid
	return nil
}

func (r *fakeRepo) OrdersForUser(_ context.Context, login string, limit int) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var orders []models.Order
	for id := r.nextID; id > 0 && len(orders) < limit; id-- {
		if o, ok := r.orders[id]; ok && o.Login == login {
			orders = append(orders, *o)
		}
	}
	return orders, nil
}

func (r *fakeRepo) OpenOrders(_ context.Context, since time.Time) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var orders []models.Order
	for _, o := range r.orders {
		if !o.Paid && !o.CreatedAt.Before(since) {
			orders = append(orders, *o)
		}
	}
	return orders, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *fakePublisher) PublishEvent(_ context.Context, routingKey string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, routingKey)
	return nil
}

var (
	testCatalog = map[string]float64{
		"Latte":  3.50,
		"Muffin": 2.25,
		"Cookie": 1.75,
	}
	alice = models.Session{Login: "alice", Role: models.RoleCustomer}
	bob   = models.Session{Login: "bob", Role: models.RoleEmployee}
)

func newTestService(repo Repository) *Service {
	return NewService(repo, &fakePublisher{}, logger.New("order-test"))
}

func TestPlaceOrderAndGetTotal(t *testing.T) {
	svc := newTestService(newFakeRepo(testCatalog))
	ctx := context.Background()

	id, err := svc.PlaceOrder(ctx, alice, "alice", "Latte", "req-1")
	if err != nil {
		t.Fatalf("PlaceOrder returned error: %v", err)
	}

	total, err := svc.GetTotal(ctx, alice, id)
	if err != nil {
		t.Fatalf("GetTotal returned error: %v", err)
	}
	if total != 3.50 {
		t.Errorf("total = %v, want 3.50", total)
	}
}

func TestPlaceOrderUnknownItem(t *testing.T) {
	svc := newTestService(newFakeRepo(testCatalog))

	if _, err := svc.PlaceOrder(context.Background(), alice, "alice", "Tiramisu", "req-1"); !errors.Is(err, models.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestAddLineUnknownItemLeavesTotalUnchanged(t *testing.T) {
	svc := newTestService(newFakeRepo(testCatalog))
	ctx := context.Background()

	id, _ := svc.PlaceOrder(ctx, alice, "alice", "Latte", "req-1")
	if _, err := svc.AddLine(ctx, alice, id, "Tiramisu", "req-2"); !errors.Is(err, models.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	total, _ := svc.GetTotal(ctx, alice, id)
	if total != 3.50 {
		t.Errorf("total = %v, want 3.50 after failed add", total)
	}
}

func TestAddLineDuplicateDoesNotDoubleCount(t *testing.T) {
	svc := newTestService(newFakeRepo(testCatalog))
	ctx := context.Background()

	id, _ := svc.PlaceOrder(ctx, alice, "alice", "Latte", "req-1")
	if _, err := svc.AddLine(ctx, alice, id, "Latte", "req-2"); !errors.Is(err, models.ErrDuplicateLine) {
		t.Fatalf("expected ErrDuplicateLine, got %v", err)
	}

	total, _ := svc.GetTotal(ctx, alice, id)
	if total != 3.50 {
		t.Errorf("total = %v, want 3.50 after duplicate add", total)
	}
}

func TestAddLineToUnknownOrder(t *testing.T) {
	svc := newTestService(newFakeRepo(testCatalog))

	if _, err := svc.AddLine(context.Background(), bob, 42, "Latte", "req-1"); !errors.Is(err, models.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestPaidOrderScenario(t *testing.T) {
	svc := newTestService(newFakeRepo(testCatalog))
	ctx := context.Background()

	id, err := svc.PlaceOrder(ctx, alice, "alice", "Latte", "req-1")
	if err != nil {
		t.Fatalf("PlaceOrder returned error: %v", err)
	}

	total, err := svc.AddLine(ctx, alice, id, "Muffin", "req-2")
	if err != nil {
		t.Fatalf("AddLine returned error: %v", err)
	}
	if total != 5.75 {
		t.Fatalf("total = %v, want 5.75", total)
	}

	if err := svc.SetPaid(ctx, bob, id, true, "req-3"); err != nil {
		t.Fatalf("SetPaid returned error: %v", err)
	}

	if _, err := svc.AddLine(ctx, alice, id, "Cookie", "req-4"); !errors.Is(err, models.ErrOrderAlreadyPaid) {
		t.Fatalf("expected ErrOrderAlreadyPaid, got %v", err)
	}

	if total, _ = svc.GetTotal(ctx, bob, id); total != 5.75 {
		t.Errorf("total = %v, want 5.75 after rejected add", total)
	}
}

func TestSetPaidIdempotent(t *testing.T) {
	svc := newTestService(newFakeRepo(testCatalog))
	ctx := context.Background()

	id, _ := svc.PlaceOrder(ctx, alice, "alice", "Latte", "req-1")
	for i := 0; i < 2; i++ {
		if err := svc.SetPaid(ctx, bob, id, true, "req-2"); err != nil {
			t.Fatalf("SetPaid run %d returned error: %v", i+1, err)
		}
	}
}

func TestSetPaidUnknownOrder(t *testing.T) {
	svc := newTestService(newFakeRepo(testCatalog))

	if err := svc.SetPaid(context.Background(), bob, 99, true, "req-1"); !errors.Is(err, models.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestCustomerCannotTouchOthersOrder(t *testing.T) {
	svc := newTestService(newFakeRepo(testCatalog))
	ctx := context.Background()

	id, _ := svc.PlaceOrder(ctx, alice, "alice", "Latte", "req-1")
	mallory := models.Session{Login: "mallory", Role: models.RoleCustomer}

	if _, err := svc.AddLine(ctx, mallory, id, "Muffin", "req-2"); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("AddLine: expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.GetTotal(ctx, mallory, id); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("GetTotal: expected ErrUnauthorized, got %v", err)
	}
	if err := svc.SetPaid(ctx, mallory, id, true, "req-3"); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("SetPaid: expected ErrUnauthorized, got %v", err)
	}
}

func TestCustomerCannotPlaceOrderForOther(t *testing.T) {
	svc := newTestService(newFakeRepo(testCatalog))

	if _, err := svc.PlaceOrder(context.Background(), alice, "dave", "Latte", "req-1"); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestStaffPlacesWalkInOrder(t *testing.T) {
	repo := newFakeRepo(testCatalog)
	svc := newTestService(repo)

	id, err := svc.PlaceOrder(context.Background(), bob, "alice", "Latte", "req-1")
	if err != nil {
		t.Fatalf("PlaceOrder returned error: %v", err)
	}
	o, _ := repo.GetOrder(context.Background(), id)
	if o.Login != "alice" {
		t.Errorf("order owner = %q, want alice", o.Login)
	}
}

func TestValidation(t *testing.T) {
	svc := newTestService(newFakeRepo(testCatalog))
	ctx := context.Background()

	if _, err := svc.PlaceOrder(ctx, alice, "alice", "", "req-1"); !models.IsValidation(err) {
		t.Errorf("empty item name: expected validation error, got %v", err)
	}
	if _, err := svc.PlaceOrder(ctx, alice, "", "Latte", "req-2"); !models.IsValidation(err) {
		t.Errorf("empty login: expected validation error, got %v", err)
	}
	if _, err := svc.ListOrdersForUser(ctx, alice, "alice", 0); !models.IsValidation(err) {
		t.Errorf("zero limit: expected validation error, got %v", err)
	}
}

func TestListOrdersForUser(t *testing.T) {
	svc := newTestService(newFakeRepo(testCatalog))
	ctx := context.Background()

	var last int
	for i := 0; i < 7; i++ {
		last, _ = svc.PlaceOrder(ctx, alice, "alice", "Latte", "req-1")
	}

	orders, err := svc.ListOrdersForUser(ctx, alice, "alice", 5)
	if err != nil {
		t.Fatalf("ListOrdersForUser returned error: %v", err)
	}
	if len(orders) != 5 {
		t.Fatalf("got %d orders, want 5", len(orders))
	}
	if orders[0].ID != last {
		t.Errorf("first order = %d, want most recent %d", orders[0].ID, last)
	}

	mallory := models.Session{Login: "mallory", Role: models.RoleCustomer}
	if _, err := svc.ListOrdersForUser(ctx, mallory, "alice", 5); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for foreign history, got %v", err)
	}
}

func TestListOpenOrders(t *testing.T) {
	svc := newTestService(newFakeRepo(testCatalog))
	ctx := context.Background()

	paidID, _ := svc.PlaceOrder(ctx, alice, "alice", "Latte", "req-1")
	openID, _ := svc.PlaceOrder(ctx, alice, "alice", "Muffin", "req-2")
	svc.SetPaid(ctx, bob, paidID, true, "req-3")

	orders, err := svc.ListOpenOrders(ctx, bob, 24*time.Hour)
	if err != nil {
		t.Fatalf("ListOpenOrders returned error: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != openID {
		t.Errorf("open orders = %+v, want only order %d", orders, openID)
	}

	if _, err := svc.ListOpenOrders(ctx, alice, 24*time.Hour); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for customer, got %v", err)
	}
}

func TestConcurrentAddLinesKeepTotalConsistent(t *testing.T) {
	catalog := make(map[string]float64)
	items := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	for _, name := range items {
		catalog[name] = 1.25
	}
	catalog["base"] = 1.25

	svc := newTestService(newFakeRepo(catalog))
	ctx := context.Background()

	id, err := svc.PlaceOrder(ctx, alice, "alice", "base", "req-1")
	if err != nil {
		t.Fatalf("PlaceOrder returned error: %v", err)
	}

	var wg sync.WaitGroup
	for _, name := range items {
		wg.Add(1)
		go func(item string) {
			defer wg.Done()
			if _, err := svc.AddLine(ctx, alice, id, item, "req-2"); err != nil {
				t.Errorf("AddLine(%s) returned error: %v", item, err)
			}
		}(name)
	}
	wg.Wait()

	total, _ := svc.GetTotal(ctx, alice, id)
	want := 1.25 * float64(len(items)+1)
	if total != want {
		t.Errorf("total = %v, want %v", total, want)
	}
}
