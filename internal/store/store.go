// Package store holds all session state: catalog, pending drafts, cart, order
// history, marketing feed, and the day's finances. Nothing here survives the
// process.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"storefront/internal/activity"
	"storefront/internal/domain"
)

const (
	performanceBaseline  = 0.5
	performanceIncrement = 0.001
)

// Store is the mutex-guarded in-memory state container for one session.
type Store struct {
	mu           sync.Mutex
	products     []domain.Product
	drafts       []domain.Draft
	cart         []domain.CartItem
	customer     domain.Customer
	posts        []domain.SocialMediaPost
	payouts      []domain.Payout
	dailyRevenue float64
	dailyCosts   float64
	bankBalance  float64
	viewed       map[string]struct{}

	feed    *activity.Log
	now     func() time.Time
	printer *message.Printer
}

// New constructs an empty store with the given starting bank balance.
func New(feed *activity.Log, startingBalance float64) *Store {
	return &Store{
		customer:    domain.Customer{Username: "Guest"},
		bankBalance: startingBalance,
		viewed:      make(map[string]struct{}),
		feed:        feed,
		now:         time.Now,
		printer:     message.NewPrinter(language.English),
	}
}

func (s *Store) money(v float64) string {
	return s.printer.Sprintf("$%.2f", v)
}

// --- Catalog ---

// InsertProduct prepends a product to the catalog.
func (s *Store) InsertProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append([]domain.Product{p}, s.products...)
}

// UpdateProduct applies fn to the product with the given ID under the store
// lock. Returns false if the product does not exist.
func (s *Store) UpdateProduct(id string, fn func(*domain.Product)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			fn(&s.products[i])
			return true
		}
	}
	return false
}

// GetProduct returns a copy of the product with the given ID.
func (s *Store) GetProduct(id string) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			return s.products[i], true
		}
	}
	return domain.Product{}, false
}

// ListPublished returns published products in catalog order.
func (s *Store) ListPublished() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.Status == domain.ProductStatusPublished {
			out = append(out, p)
		}
	}
	return out
}

// ProductNames returns every catalog product name, used to bias draft
// generation away from duplicates.
func (s *Store) ProductNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.products))
	for _, p := range s.products {
		names = append(names, p.Name)
	}
	return names
}

// RecordView counts the first view of a product per session, nudging its
// performance score up by a fixed increment that saturates at 1.
func (s *Store) RecordView(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.viewed[id]; seen {
		return false
	}
	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		s.viewed[id] = struct{}{}
		s.products[i].Views++
		s.products[i].PerformanceScore += performanceIncrement
		if s.products[i].PerformanceScore > 1 {
			s.products[i].PerformanceScore = 1
		}
		return true
	}
	return false
}

// SetSale puts a product on sale at the given percentage discount.
func (s *Store) SetSale(id string, discountPercent float64, slogan string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		p := &s.products[i]
		p.OnSale = true
		p.DiscountPercent = discountPercent
		p.SalePrice = p.Price * (1 - discountPercent/100)
		p.MarketingSlogan = slogan
		return nil
	}
	return domain.ErrNotFound
}

// ClearSale takes a product off sale.
func (s *Store) ClearSale(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		p := &s.products[i]
		p.OnSale = false
		p.DiscountPercent = 0
		p.SalePrice = 0
		p.MarketingSlogan = ""
		return nil
	}
	return domain.ErrNotFound
}

// --- Drafts ---

// PrependDrafts adds freshly generated drafts to the front of the pending set.
func (s *Store) PrependDrafts(drafts []domain.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts = append(append([]domain.Draft{}, drafts...), s.drafts...)
}

// Drafts returns a copy of the pending draft set.
func (s *Store) Drafts() []domain.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Draft, len(s.drafts))
	copy(out, s.drafts)
	return out
}

// TakeDraft removes and returns the draft with the given ID.
func (s *Store) TakeDraft(id string) (domain.Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range s.drafts {
		if d.ID == id {
			s.drafts = append(s.drafts[:i], s.drafts[i+1:]...)
			return d, true
		}
	}
	return domain.Draft{}, false
}

// PeekDraft returns the draft with the given ID without removing it.
func (s *Store) PeekDraft(id string) (domain.Draft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.drafts {
		if d.ID == id {
			return d, true
		}
	}
	return domain.Draft{}, false
}

// --- Cart and checkout ---

// AddToCart adds one unit of a published product to the cart.
func (s *Store) AddToCart(productID string) error {
	s.mu.Lock()
	var product domain.Product
	found := false
	for i := range s.products {
		if s.products[i].ID == productID && s.products[i].Status == domain.ProductStatusPublished {
			product = s.products[i]
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	bumped := false
	for i := range s.cart {
		if s.cart[i].ID == productID {
			s.cart[i].Quantity++
			bumped = true
			break
		}
	}
	if !bumped {
		s.cart = append(s.cart, domain.CartItem{Product: product, Quantity: 1})
	}
	s.mu.Unlock()

	s.feed.Record("Added \""+product.Name+"\" to cart.", domain.LogInfo)
	return nil
}

// RemoveFromCart drops a product from the cart entirely.
func (s *Store) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].ID == productID {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			return
		}
	}
}

// CartItems returns a copy of the cart.
func (s *Store) CartItems() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.cart))
	copy(out, s.cart)
	return out
}

// CartTotal sums effective prices across the cart.
func (s *Store) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for i := range s.cart {
		total += s.cart[i].EffectivePrice() * float64(s.cart[i].Quantity)
	}
	return total
}

// ConfirmPayment turns the current cart into an order, credits the day's
// revenue, and empties the cart. The simulated payment countdown lives outside
// the engine; this is the commit point.
func (s *Store) ConfirmPayment() (domain.Order, error) {
	s.mu.Lock()
	if len(s.cart) == 0 {
		s.mu.Unlock()
		return domain.Order{}, domain.ErrNotFound
	}
	items := make([]domain.CartItem, len(s.cart))
	copy(items, s.cart)
	var total float64
	for i := range items {
		total += items[i].EffectivePrice() * float64(items[i].Quantity)
	}
	order := domain.Order{
		ID:    uuid.NewString(),
		Date:  s.now(),
		Items: items,
		Total: total,
	}
	s.customer.OrderHistory = append([]domain.Order{order}, s.customer.OrderHistory...)
	s.dailyRevenue += total
	s.cart = nil
	s.mu.Unlock()

	s.feed.Record("Order #"+order.ID[:8]+" confirmed for "+s.money(total)+".", domain.LogSuccess)
	return order, nil
}

// Orders returns the customer's order history, newest-first.
func (s *Store) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, len(s.customer.OrderHistory))
	copy(out, s.customer.OrderHistory)
	return out
}

// Customer returns a copy of the session account.
func (s *Store) Customer() domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.customer
	c.OrderHistory = make([]domain.Order, len(s.customer.OrderHistory))
	copy(c.OrderHistory, s.customer.OrderHistory)
	return c
}

// --- Marketing feed ---

// PrependPost adds a marketing post to the front of the feed.
func (s *Store) PrependPost(content string, postType domain.PostType) domain.SocialMediaPost {
	post := domain.SocialMediaPost{
		ID:        uuid.NewString(),
		Timestamp: s.now(),
		Content:   content,
		Type:      postType,
	}
	s.mu.Lock()
	s.posts = append([]domain.SocialMediaPost{post}, s.posts...)
	s.mu.Unlock()
	return post
}

// Posts returns the marketing feed, newest-first.
func (s *Store) Posts() []domain.SocialMediaPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.SocialMediaPost, len(s.posts))
	copy(out, s.posts)
	return out
}

// --- Finances ---

// AccrueCost adds a pipeline stage cost to the day's operating costs.
func (s *Store) AccrueCost(amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dailyCosts += amount
}

// Finance reports the day's revenue and costs plus the bank balance.
func (s *Store) Finance() (revenue, costs, balance float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dailyRevenue, s.dailyCosts, s.bankBalance
}

// Payouts returns the payout history, newest-first.
func (s *Store) Payouts() []domain.Payout {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Payout, len(s.payouts))
	copy(out, s.payouts)
	return out
}

// Payout transfers the day's profit to the bank balance and resets the daily
// counters. It is a no-op when profit is not positive.
func (s *Store) Payout() (domain.Payout, bool) {
	s.mu.Lock()
	profit := s.dailyRevenue - s.dailyCosts
	if profit <= 0 {
		s.mu.Unlock()
		return domain.Payout{}, false
	}
	payout := domain.Payout{
		ID:     uuid.NewString(),
		Date:   s.now(),
		Amount: profit,
	}
	s.bankBalance += profit
	s.payouts = append([]domain.Payout{payout}, s.payouts...)
	s.dailyRevenue = 0
	s.dailyCosts = 0
	s.mu.Unlock()

	s.feed.Record("Successfully paid out "+s.money(profit)+" to bank.", domain.LogSuccess)
	return payout, true
}
