package shopping

import "github.com/storefront/core/internal/domain/catalog"

// Wishlist is a product set keyed by id, preserving insertion order.
type Wishlist struct {
	items []catalog.Product
}

// NewWishlist creates an empty wishlist
func NewWishlist() *Wishlist {
	return &Wishlist{items: make([]catalog.Product, 0)}
}

// NewWishlistFromItems restores a wishlist from persisted items,
// de-duplicating by product id.
func NewWishlistFromItems(items []catalog.Product) *Wishlist {
	w := NewWishlist()
	for _, p := range items {
		w.Add(p)
	}
	return w
}

// Add inserts the product unless one with the same id is already present.
// Returns true if the product was newly added.
func (w *Wishlist) Add(product catalog.Product) bool {
	if w.Contains(product.ID) {
		return false
	}
	w.items = append(w.items, product)
	return true
}

// Remove drops the product with the given id, if present
func (w *Wishlist) Remove(productID string) bool {
	for i := range w.items {
		if w.items[i].ID == productID {
			w.items = append(w.items[:i], w.items[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports membership by product id
func (w *Wishlist) Contains(productID string) bool {
	for _, p := range w.items {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// Items returns a copy of the wishlist in insertion order
func (w *Wishlist) Items() []catalog.Product {
	out := make([]catalog.Product, len(w.items))
	copy(out, w.items)
	return out
}

// Len returns the number of wishlist entries
func (w *Wishlist) Len() int {
	return len(w.items)
}
