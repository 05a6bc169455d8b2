package mensa

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Price represents the price of a dish. Exactly one of three states holds:
// a numeric amount in euros, a free-text label for per-weight or open-ended
// pricing (e.g. "0.68€ / 100g"), or the zero value meaning the price is
// unknown.
type Price struct {
	Amount float64 `json:"amount,omitempty"`
	Label  string  `json:"label,omitempty"`
}

// PriceOf returns a Price with a known numeric amount.
func PriceOf(amount float64) Price {
	return Price{Amount: amount}
}

// PriceLabel returns a Price described by free text rather than an amount.
func PriceLabel(label string) Price {
	return Price{Label: label}
}

// PriceUnknown is the sentinel for dishes whose price could not be resolved.
var PriceUnknown = Price{}

// Known reports whether the price carries an amount or a label.
func (p Price) Known() bool {
	return p != PriceUnknown
}

// String returns a display representation of the price.
func (p Price) String() string {
	switch {
	case p.Label != "":
		return p.Label
	case p.Amount != 0:
		return strconv.FormatFloat(p.Amount, 'f', 2, 64) + " €"
	default:
		return "N/A"
	}
}

// IngredientSet is an unordered set of canonical ingredient/allergen labels.
type IngredientSet map[string]struct{}

// NewIngredientSet returns a set containing the given labels.
func NewIngredientSet(labels ...string) IngredientSet {
	s := make(IngredientSet, len(labels))
	for _, l := range labels {
		s[l] = struct{}{}
	}
	return s
}

// Add inserts a label into the set.
func (s IngredientSet) Add(label string) {
	s[label] = struct{}{}
}

// Contains reports whether the set holds the label.
func (s IngredientSet) Contains(label string) bool {
	_, ok := s[label]
	return ok
}

// Equal reports whether both sets hold exactly the same labels.
func (s IngredientSet) Equal(other IngredientSet) bool {
	if len(s) != len(other) {
		return false
	}
	for l := range s {
		if _, ok := other[l]; !ok {
			return false
		}
	}
	return true
}

// Labels returns the set's labels in sorted order.
func (s IngredientSet) Labels() []string {
	labels := make([]string, 0, len(s))
	for l := range s {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// MarshalJSON encodes the set as a sorted array for stable output.
func (s IngredientSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Labels())
}

// UnmarshalJSON decodes a JSON array of labels into the set.
func (s *IngredientSet) UnmarshalJSON(data []byte) error {
	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return err
	}
	*s = NewIngredientSet(labels...)
	return nil
}

// Dish represents a single dish on a daily menu. Dishes are value-like:
// constructed once per extracted tuple and not mutated afterwards.
type Dish struct {
	Name        string        `json:"name"`
	Price       Price         `json:"price"`
	Ingredients IngredientSet `json:"ingredients"`
	Type        string        `json:"dish_type"`
}

// NewDish creates a dish. A nil ingredient set is normalized to an empty
// one so that equality and JSON encoding behave uniformly.
func NewDish(name string, price Price, ingredients IngredientSet, dishType string) Dish {
	if ingredients == nil {
		ingredients = IngredientSet{}
	}
	return Dish{Name: name, Price: price, Ingredients: ingredients, Type: dishType}
}

// Equal reports whether two dishes match in name, price, ingredients and
// type.
func (d Dish) Equal(other Dish) bool {
	return d.Name == other.Name &&
		d.Price == other.Price &&
		d.Type == other.Type &&
		d.Ingredients.Equal(other.Ingredients)
}
