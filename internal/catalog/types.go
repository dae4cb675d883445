package catalog

import "encoding/json"

// Category is one menu category as returned by the remote service.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CategoryRef accepts the two shapes the remote service uses for a
// food's category: a plain name string or a full category object.
type CategoryRef struct {
	ID   int
	Name string
}

func (c *CategoryRef) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		c.Name = s
		return nil
	}
	var obj struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	c.ID = obj.ID
	c.Name = obj.Name
	return nil
}

// Food is one sellable item from the remote catalog. Active defaults to
// true when the service omits the field.
type Food struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Price    float64     `json:"price"`
	Active   *bool       `json:"active"`
	Category CategoryRef `json:"category"`
}

// IsActive treats a missing active flag as active.
func (f Food) IsActive() bool {
	return f.Active == nil || *f.Active
}

// MenuItem is a catalog entry grouped under its category name.
type MenuItem struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// OrderItemRef references one food in an order submission.
type OrderItemRef struct {
	FoodID   int `json:"foodId"`
	Quantity int `json:"quantity"`
}

// OrderRequest is the order submission payload the remote service
// expects.
type OrderRequest struct {
	Table        int            `json:"table"`
	Customer     string         `json:"customer"`
	FoodsOrdered []OrderItemRef `json:"foodsOrdered"`
}
