package domain

type Product struct {
	ProductID int
	Name      string
	Price     float64
	Category  string
	Image     string
	Tags      []string
	Slug      string
}
