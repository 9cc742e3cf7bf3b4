package handlers

import (
	"context"
	"sort"
	"sync"

	"github.com/01moynul/vegshop-golang/internal/models"
	"github.com/01moynul/vegshop-golang/internal/repository"
)

// memDB is an in-memory stand-in for the two tables. Order placement is
// all-or-nothing, like the real transaction.
type memDB struct {
	mu         sync.Mutex
	vegetables map[string]models.Vegetable
	orders     map[int64]models.Order
	nextID     int64
	err        error
}

func newMemDB() *memDB {
	return &memDB{vegetables: map[string]models.Vegetable{}, orders: map[int64]models.Order{}}
}

type memVegetables struct{ db *memDB }

func (s memVegetables) List(ctx context.Context) ([]models.Vegetable, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.err != nil {
		return nil, s.db.err
	}
	out := []models.Vegetable{}
	for _, v := range s.db.vegetables {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s memVegetables) Create(ctx context.Context, v *models.Vegetable) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.err != nil {
		return s.db.err
	}
	if _, ok := s.db.vegetables[v.ID]; ok {
		return repository.ErrVegetableExists
	}
	s.db.vegetables[v.ID] = *v
	return nil
}

func (s memVegetables) Update(ctx context.Context, v *models.Vegetable) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.err != nil {
		return s.db.err
	}
	if _, ok := s.db.vegetables[v.ID]; ok {
		s.db.vegetables[v.ID] = *v
	}
	return nil
}

func (s memVegetables) Delete(ctx context.Context, id string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.err != nil {
		return s.db.err
	}
	delete(s.db.vegetables, id)
	return nil
}

type memOrders struct{ db *memDB }

func (s memOrders) Place(ctx context.Context, o *models.Order) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.err != nil {
		return 0, s.db.err
	}

	plan, err := models.PlanDeductions(o.Items)
	if err != nil {
		return 0, err
	}
	for _, d := range plan {
		v, ok := s.db.vegetables[d.VegetableID]
		if !ok || int64(v.Stock) < d.Grams {
			return 0, &repository.InsufficientStockError{VegetableID: d.VegetableID, Requested: models.Stock(d.Grams)}
		}
	}
	for _, d := range plan {
		v := s.db.vegetables[d.VegetableID]
		v.Stock -= models.Stock(d.Grams)
		s.db.vegetables[d.VegetableID] = v
	}

	s.db.nextID++
	o.ID = s.db.nextID
	s.db.orders[o.ID] = *o
	return o.ID, nil
}

func (s memOrders) List(ctx context.Context) ([]models.Order, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.err != nil {
		return nil, s.db.err
	}
	out := []models.Order{}
	for _, o := range s.db.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s memOrders) Get(ctx context.Context, id int64) (*models.Order, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.err != nil {
		return nil, s.db.err
	}
	o, ok := s.db.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return &o, nil
}

func (s memOrders) UpdateStatus(ctx context.Context, id int64, update models.StatusUpdate) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if s.db.err != nil {
		return s.db.err
	}
	o, ok := s.db.orders[id]
	if !ok {
		return nil
	}
	status, payment, err := update.Apply(o.Status, o.PaymentStatus)
	if err != nil {
		return err
	}
	o.Status, o.PaymentStatus = status, payment
	s.db.orders[id] = o
	return nil
}

func (s *memDB) stock(id string) models.Stock {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vegetables[id].Stock
}

func (s *memDB) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }
