package store

import (
	"io"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"storefront/internal/activity"
	"storefront/internal/domain"
)

func newTestStore() *Store {
	return New(activity.NewLog(zerolog.New(io.Discard)), 150.00)
}

func published(id, name string, price float64) domain.Product {
	return domain.Product{
		ID:               id,
		Name:             name,
		Price:            price,
		Status:           domain.ProductStatusPublished,
		PerformanceScore: 0.5,
		Image:            domain.ProductImage{State: domain.ImageStateReady, URL: "data:image/jpeg;base64,x"},
	}
}

func TestRecordViewSaturates(t *testing.T) {
	s := newTestStore()
	p := published("p1", "Planner", 10)
	p.PerformanceScore = 0.5
	s.InsertProduct(p)

	// Only the first view per session counts.
	if !s.RecordView("p1") {
		t.Fatal("first view not recorded")
	}
	if s.RecordView("p1") {
		t.Fatal("duplicate view recorded")
	}
	got, _ := s.GetProduct("p1")
	if got.Views != 1 {
		t.Errorf("views = %d, want 1", got.Views)
	}
	if math.Abs(got.PerformanceScore-0.501) > 1e-9 {
		t.Errorf("score = %v, want 0.501", got.PerformanceScore)
	}
}

func TestPerformanceScoreConvergesAtOne(t *testing.T) {
	s := newTestStore()
	s.InsertProduct(published("p1", "Planner", 10))

	for i := 0; i < 2000; i++ {
		s.UpdateProduct("p1", func(p *domain.Product) {
			p.PerformanceScore += performanceIncrement
			if p.PerformanceScore > 1 {
				p.PerformanceScore = 1
			}
		})
	}
	got, _ := s.GetProduct("p1")
	if got.PerformanceScore != 1.0 {
		t.Errorf("score = %v, want exactly 1.0", got.PerformanceScore)
	}
}

func TestCartQuantityAndTotal(t *testing.T) {
	s := newTestStore()
	s.InsertProduct(published("p1", "Planner", 10))
	s.InsertProduct(published("p2", "Course", 20))

	if err := s.AddToCart("p1"); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if err := s.AddToCart("p1"); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}
	if err := s.AddToCart("p2"); err != nil {
		t.Fatalf("AddToCart: %v", err)
	}

	items := s.CartItems()
	if len(items) != 2 {
		t.Fatalf("cart lines = %d, want 2", len(items))
	}
	if items[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", items[0].Quantity)
	}
	if total := s.CartTotal(); total != 40 {
		t.Errorf("total = %v, want 40", total)
	}
}

func TestAddToCartRejectsUnknownProduct(t *testing.T) {
	s := newTestStore()
	if err := s.AddToCart("missing"); err != domain.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestConfirmPaymentCreatesOrderAndClearsCart(t *testing.T) {
	s := newTestStore()
	s.InsertProduct(published("p1", "Planner", 10))
	_ = s.AddToCart("p1")

	order, err := s.ConfirmPayment()
	if err != nil {
		t.Fatalf("ConfirmPayment: %v", err)
	}
	if order.Total != 10 {
		t.Errorf("total = %v, want 10", order.Total)
	}
	if len(s.CartItems()) != 0 {
		t.Error("cart not cleared")
	}
	if orders := s.Orders(); len(orders) != 1 || orders[0].ID != order.ID {
		t.Errorf("order history = %+v", orders)
	}
	revenue, _, _ := s.Finance()
	if revenue != 10 {
		t.Errorf("revenue = %v, want 10", revenue)
	}
}

func TestConfirmPaymentEmptyCart(t *testing.T) {
	s := newTestStore()
	if _, err := s.ConfirmPayment(); err == nil {
		t.Fatal("expected error for empty cart")
	}
}

func TestSalePriceAffectsTotals(t *testing.T) {
	s := newTestStore()
	s.InsertProduct(published("p1", "Planner", 100))

	if err := s.SetSale("p1", 25, "Flash sale!"); err != nil {
		t.Fatalf("SetSale: %v", err)
	}
	p, _ := s.GetProduct("p1")
	if p.SalePrice != 75 {
		t.Errorf("sale price = %v, want 75", p.SalePrice)
	}
	_ = s.AddToCart("p1")
	if total := s.CartTotal(); total != 75 {
		t.Errorf("total = %v, want 75", total)
	}

	if err := s.ClearSale("p1"); err != nil {
		t.Fatalf("ClearSale: %v", err)
	}
	p, _ = s.GetProduct("p1")
	if p.OnSale || p.EffectivePrice() != 100 {
		t.Errorf("sale not cleared: %+v", p)
	}
}

func TestPayout(t *testing.T) {
	s := newTestStore()
	s.InsertProduct(published("p1", "Planner", 30))
	_ = s.AddToCart("p1")
	_, _ = s.ConfirmPayment()
	s.AccrueCost(0.035)

	payout, ok := s.Payout()
	if !ok {
		t.Fatal("payout refused with positive profit")
	}
	if math.Abs(payout.Amount-29.965) > 1e-9 {
		t.Errorf("amount = %v, want 29.965", payout.Amount)
	}
	revenue, costs, balance := s.Finance()
	if revenue != 0 || costs != 0 {
		t.Errorf("daily counters not reset: revenue=%v costs=%v", revenue, costs)
	}
	if math.Abs(balance-179.965) > 1e-9 {
		t.Errorf("balance = %v, want 179.965", balance)
	}

	if _, ok := s.Payout(); ok {
		t.Error("payout allowed with zero profit")
	}
}

func TestTakeDraftRemoves(t *testing.T) {
	s := newTestStore()
	s.PrependDrafts([]domain.Draft{{ID: "d1", Name: "A", Description: "a"}, {ID: "d2", Name: "B", Description: "b"}})

	d, ok := s.TakeDraft("d1")
	if !ok || d.Name != "A" {
		t.Fatalf("TakeDraft = %+v, %v", d, ok)
	}
	if drafts := s.Drafts(); len(drafts) != 1 || drafts[0].ID != "d2" {
		t.Errorf("remaining drafts = %+v", drafts)
	}
	if _, ok := s.TakeDraft("d1"); ok {
		t.Error("removed draft still present")
	}
}
