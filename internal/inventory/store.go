package inventory

import (
	"context"
	"math/rand/v2"
)

// Product is a single inventory record. IDs are drawn at random and may
// collide; nothing relies on them being unique.
type Product struct {
	ID    uint8   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock uint8   `json:"stock"`
}

// Store is the ordered product collection shared by all handlers. List must
// return products in insertion order.
type Store interface {
	List(ctx context.Context) ([]Product, error)
	Add(ctx context.Context, name string, price float64) (Product, error)
	Len(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

// IDFunc yields the identifier for a new product.
type IDFunc func() uint8

func RandomID() uint8 {
	return uint8(rand.Uint32N(256))
}

func DefaultProducts() []Product {
	return []Product{
		{ID: 1, Name: "Pizza", Price: 2.50},
		{ID: 2, Name: "Hot Dog", Price: 1.75},
		{ID: 3, Name: "Coca-Cola", Price: 0.90},
	}
}

func newProduct(id IDFunc, name string, price float64) Product {
	return Product{ID: id(), Name: name, Price: price}
}
