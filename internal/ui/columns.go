package ui

// Column describes one table column: the record field it reads and how it
// is displayed.
type Column struct {
	Key   string
	Title string
	Width int
}

// FilterField describes one per-field filter control. Each view gets its
// own descriptor list; the shared browser model never infers the field set
// from which view happens to be mounted.
type FilterField struct {
	Key   string
	Label string
}

var userColumns = []Column{
	{Key: "id", Title: "ID", Width: 4},
	{Key: "firstName", Title: "First Name", Width: 12},
	{Key: "lastName", Title: "Last Name", Width: 12},
	{Key: "maidenName", Title: "Maiden Name", Width: 12},
	{Key: "age", Title: "Age", Width: 4},
	{Key: "gender", Title: "Gender", Width: 8},
	{Key: "email", Title: "Email", Width: 26},
	{Key: "phone", Title: "Phone", Width: 18},
	{Key: "username", Title: "Username", Width: 12},
	{Key: "birthDate", Title: "Birth Date", Width: 10},
	{Key: "bloodGroup", Title: "Blood", Width: 6},
	{Key: "eyeColor", Title: "Eyes", Width: 8},
}

var userFilterFields = []FilterField{
	{Key: "firstName", Label: "Name"},
	{Key: "email", Label: "Email"},
	{Key: "birthDate", Label: "Birth Date"},
	{Key: "gender", Label: "Gender"},
}

var productColumns = []Column{
	{Key: "id", Title: "ID", Width: 4},
	{Key: "title", Title: "Title", Width: 24},
	{Key: "brand", Title: "Brand", Width: 12},
	{Key: "category", Title: "Category", Width: 12},
	{Key: "price", Title: "Price", Width: 8},
	{Key: "rating", Title: "Rating", Width: 6},
	{Key: "stock", Title: "Stock", Width: 6},
	{Key: "discountPercentage", Title: "Discount", Width: 8},
	{Key: "sku", Title: "Sku", Width: 10},
	{Key: "weight", Title: "Weight", Width: 6},
	{Key: "availabilityStatus", Title: "Availability", Width: 12},
	{Key: "minimumOrderQuantity", Title: "Min Order", Width: 9},
}

var productFilterFields = []FilterField{
	{Key: "title", Label: "Title"},
	{Key: "brand", Label: "Brand"},
	{Key: "category", Label: "Category"},
}
