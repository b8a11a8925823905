package cart

import (
	"errors"

	"github.com/example/afrimarket/internal/domain/product"
)

const AggregateType = "Cart"

// ID is the aggregate id of the storefront's single cart.
const ID = "cart"

var (
	ErrItemNotFound = errors.New("item not in cart")
	ErrEmptyCart    = errors.New("cart is empty")
)

// Item is a product copied into the cart with a quantity attached.
type Item struct {
	product.Product
	Quantity int `json:"quantity"`
}

// Subtotal is price times quantity.
func (i Item) Subtotal() int {
	return i.Price * i.Quantity
}

// Cart holds line items in the order they were first added. It is not
// safe for concurrent use; the owner serialises access.
type Cart struct {
	items []Item
}

func New() *Cart {
	return &Cart{items: make([]Item, 0)}
}

func (c *Cart) indexOf(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Add puts one unit of p in the cart, bumping the quantity when the product
// is already there. It returns the resulting line.
func (c *Cart) Add(p product.Product) Item {
	if i := c.indexOf(p.ID); i >= 0 {
		c.items[i].Quantity++
		return c.items[i]
	}
	item := Item{Product: p, Quantity: 1}
	c.items = append(c.items, item)
	return item
}

// SetQuantity overwrites the quantity of a line as given. Callers clamp.
func (c *Cart) SetQuantity(id string, quantity int) (Item, error) {
	i := c.indexOf(id)
	if i < 0 {
		return Item{}, ErrItemNotFound
	}
	c.items[i].Quantity = quantity
	return c.items[i], nil
}

func (c *Cart) Increment(id string) (Item, error) {
	i := c.indexOf(id)
	if i < 0 {
		return Item{}, ErrItemNotFound
	}
	return c.SetQuantity(id, c.items[i].Quantity+1)
}

// Decrement lowers the quantity by one but never below 1.
func (c *Cart) Decrement(id string) (Item, error) {
	i := c.indexOf(id)
	if i < 0 {
		return Item{}, ErrItemNotFound
	}
	return c.SetQuantity(id, max(1, c.items[i].Quantity-1))
}

// Remove deletes a line. The bool reports whether anything was removed.
func (c *Cart) Remove(id string) (Item, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return Item{}, false
	}
	removed := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	return removed, true
}

// Total is the sum of price x quantity over all lines.
func (c *Cart) Total() int {
	total := 0
	for _, it := range c.items {
		total += it.Subtotal()
	}
	return total
}

// Count is the number of units in the cart.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Items returns a copy of the lines.
func (c *Cart) Items() []Item {
	return Snapshot(c.items)
}

func (c *Cart) Clear() {
	c.items = make([]Item, 0)
}

// Snapshot deep-copies items so later cart edits cannot reach the copy.
func Snapshot(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// Total sums a list of lines, e.g. an order's frozen items.
func Total(items []Item) int {
	total := 0
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}
