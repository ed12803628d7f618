package book

// Type is the category a book is shelved under.
type Type string

const (
	TypeComputer Type = "COMPUTER"
	TypeEconomy  Type = "ECONOMY"
	TypeSociety  Type = "SOCIETY"
	TypeLanguage Type = "LANGUAGE"
	TypeScience  Type = "SCIENCE"
)

// Types lists every known category.
var Types = []Type{TypeComputer, TypeEconomy, TypeSociety, TypeLanguage, TypeScience}

// Valid reports whether t is a known category.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Book represents a book entity in the catalogue.
type Book struct {
	ID   int64  // ID is the unique identifier for the book
	Name string // Name is the title; loans refer to books by it
	Type Type   // Type is the book's category
}

// Stat is the number of books in one category.
type Stat struct {
	Type  Type
	Count int64
}
