package product

import "time"

// Size is a clothing size key for per-size stock counts.
type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

var AllSizes = []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL}

func IsValidSize(s Size) bool {
	for _, known := range AllSizes {
		if s == known {
			return true
		}
	}
	return false
}

// Quantities maps a size to its stock count. The scalar quantity column is
// always kept equal to Total().
type Quantities map[Size]int

func (q Quantities) Total() int {
	total := 0
	for _, n := range q {
		total += n
	}
	return total
}

func (q Quantities) Clone() Quantities {
	cp := make(Quantities, len(q))
	for k, v := range q {
		cp[k] = v
	}
	return cp
}

type Product struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Subcategory string     `json:"subcategory,omitempty"`
	Colour      string     `json:"colour,omitempty"`
	Price       float64    `json:"price"`
	VendorCode  int        `json:"vendorCode"`
	Quantities  Quantities `json:"quantities"`
	Quantity    int        `json:"quantity"`
	Files       []string   `json:"files,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type CreateParams struct {
	Title       string
	Description string
	Category    string
	Subcategory string
	Colour      string
	Price       float64
	Quantities  Quantities
	Files       []string
}

// UpdateParams uses pointers so callers can update a subset of fields.
type UpdateParams struct {
	Title       *string
	Description *string
	Category    *string
	Subcategory *string
	Colour      *string
	Price       *float64
	Quantities  Quantities
	Files       []string
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Filter struct {
	Colours    []string    `json:"colours,omitempty"`
	Sizes      []Size      `json:"sizes,omitempty"`
	PriceRange *PriceRange `json:"priceRange,omitempty"`
}

type Sort string

const (
	SortNone      Sort = ""
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
)

// Page is a 1-based pagination request. The zero value means "everything".
type Page struct {
	Page int
	Size int
}

func (p Page) IsZero() bool { return p.Page == 0 && p.Size == 0 }
