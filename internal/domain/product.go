package domain

import (
	"bytes"
	"encoding/json"
)

// OptionalString is a product field that may be absent from the product database.
// Null, missing and wrongly typed JSON values all decode as absent.
type OptionalString struct {
	Value string
	Valid bool
}

// Some returns a present OptionalString
func Some(s string) OptionalString {
	return OptionalString{Value: s, Valid: true}
}

// OrEmpty returns the value, or "" when absent
func (o OptionalString) OrEmpty() string {
	if !o.Valid {
		return ""
	}
	return o.Value
}

// UnmarshalJSON implements json.Unmarshaler
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	*o = OptionalString{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// wrong type: treat as absent
		return nil
	}
	o.Value = s
	o.Valid = true
	return nil
}

// MarshalJSON implements json.Marshaler
func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// IngredientEntry is one element of the structured ingredient list
type IngredientEntry struct {
	Text OptionalString `json:"text"`
	ID   OptionalString `json:"id"`
}

// Label returns the entry text, falling back to its identifier
func (e IngredientEntry) Label() string {
	if e.Text.OrEmpty() != "" {
		return e.Text.Value
	}
	return e.ID.OrEmpty()
}

// IngredientList is the structured ingredient list. A value that is not an
// array decodes as empty, and elements that are not objects are skipped.
type IngredientList []IngredientEntry

// UnmarshalJSON implements json.Unmarshaler
func (l *IngredientList) UnmarshalJSON(data []byte) error {
	*l = nil
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	for _, r := range raw {
		var entry IngredientEntry
		if err := json.Unmarshal(r, &entry); err != nil {
			continue
		}
		*l = append(*l, entry)
	}
	return nil
}

// Product is a food product as returned by the product database
type Product struct {
	Code            OptionalString `json:"code"`
	ProductName     OptionalString `json:"product_name"`
	Brands          OptionalString `json:"brands"`
	ImageURL        OptionalString `json:"image_url"`
	IngredientsText OptionalString `json:"ingredients_text"`
	Ingredients     IngredientList `json:"ingredients"`
	Allergens       OptionalString `json:"allergens"`
	Traces          OptionalString `json:"traces"`
	URL             OptionalString `json:"url"`
}

// DisplayName returns the product name, or a placeholder for unnamed products
func (p *Product) DisplayName() string {
	if p == nil || p.ProductName.OrEmpty() == "" {
		return "Unknown product"
	}
	return p.ProductName.Value
}

// ProductResponse is the envelope returned by the product database
type ProductResponse struct {
	Code          OptionalString `json:"code"`
	Status        int            `json:"status"`
	StatusVerbose string         `json:"status_verbose"`
	Product       *Product       `json:"product"`
}

// MatchResult is the verdict of the ingredient matcher
type MatchResult struct {
	IsSafe           bool     `json:"isSafe"`
	FoundIngredients []string `json:"foundIngredients"`
}

// ScanOutcome is what a caller displays after one scan
type ScanOutcome struct {
	Barcode          string   `json:"barcode"`
	Product          *Product `json:"product"`
	IsSafe           bool     `json:"isSafe"`
	FoundIngredients []string `json:"foundIngredients"`
}
