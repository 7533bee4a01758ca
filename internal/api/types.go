package api

import "strconv"

// User is a person record as returned by the remote collection API.
// Records are never mutated locally.
type User struct {
	ID         int    `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	MaidenName string `json:"maidenName"`
	Age        int    `json:"age"`
	Gender     string `json:"gender"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Username   string `json:"username"`
	BirthDate  string `json:"birthDate"`
	BloodGroup string `json:"bloodGroup"`
	EyeColor   string `json:"eyeColor"`
}

// Product is a catalog record as returned by the remote collection API.
type Product struct {
	ID                 int     `json:"id"`
	Title              string  `json:"title"`
	Brand              string  `json:"brand"`
	Category           string  `json:"category"`
	Price              float64 `json:"price"`
	Rating             float64 `json:"rating"`
	Stock              int     `json:"stock"`
	SKU                string  `json:"sku"`
	DiscountPercentage float64 `json:"discountPercentage"`
	Weight             float64 `json:"weight"`
	AvailabilityStatus string  `json:"availabilityStatus"`
	MinimumOrderQty    int     `json:"minimumOrderQuantity"`
}

// FieldValues returns every field rendered as a string, keyed by its wire
// name. Search and filtering evaluate over these values, not just the
// displayed columns.
func (u User) FieldValues() map[string]string {
	return map[string]string{
		"id":         strconv.Itoa(u.ID),
		"firstName":  u.FirstName,
		"lastName":   u.LastName,
		"maidenName": u.MaidenName,
		"age":        strconv.Itoa(u.Age),
		"gender":     u.Gender,
		"email":      u.Email,
		"phone":      u.Phone,
		"username":   u.Username,
		"birthDate":  u.BirthDate,
		"bloodGroup": u.BloodGroup,
		"eyeColor":   u.EyeColor,
	}
}

// FieldValues returns every field rendered as a string, keyed by its wire
// name.
func (p Product) FieldValues() map[string]string {
	return map[string]string{
		"id":                   strconv.Itoa(p.ID),
		"title":                p.Title,
		"brand":                p.Brand,
		"category":             p.Category,
		"price":                formatNumber(p.Price),
		"rating":               formatNumber(p.Rating),
		"stock":                strconv.Itoa(p.Stock),
		"sku":                  p.SKU,
		"discountPercentage":   formatNumber(p.DiscountPercentage),
		"weight":               formatNumber(p.Weight),
		"availabilityStatus":   p.AvailabilityStatus,
		"minimumOrderQuantity": strconv.Itoa(p.MinimumOrderQty),
	}
}

// formatNumber renders a float without trailing zeros, so "9.99" stays
// "9.99" and "5" stays "5".
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
