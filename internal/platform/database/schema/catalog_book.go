package schema

// CatalogBookTable represents the 'catalog.book' table
type CatalogBookTable struct {
	Schema        string
	Table         string
	ID            string
	Title         string
	Author        string
	ISBN          string
	Category      string
	Price         string
	PublishedDate string
	CoverImageURL string
	StockQuantity string
	IsAvailable   string
	CreatedAt     string
	UpdatedAt     string
}

// CatalogBook is the schema definition for catalog.book
var CatalogBook = CatalogBookTable{
	Schema:        "catalog",
	Table:         "book",
	ID:            "id",
	Title:         "title",
	Author:        "author",
	ISBN:          "isbn",
	Category:      "category",
	Price:         "price",
	PublishedDate: "publisheddate",
	CoverImageURL: "coverimageurl",
	StockQuantity: "stockquantity",
	IsAvailable:   "isavailable",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}
