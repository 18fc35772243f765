package domain

import "time"

// CartItem snapshots a product in the cart together with a quantity.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Order is an append-only record of a confirmed checkout.
type Order struct {
	ID    string     `json:"id"`
	Date  time.Time  `json:"date"`
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

// Payout records a transfer of accumulated profit to the bank balance.
type Payout struct {
	ID     string    `json:"id"`
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// Customer holds the single session account and its order history,
// newest-first.
type Customer struct {
	Username     string  `json:"username"`
	OrderHistory []Order `json:"order_history"`
}
