package catalog

// UnknownCategory labels category ids outside the known table.
const UnknownCategory = "Unknown"

var categoryNames = map[int64]string{
	1: "Clothes",
	2: "Electronics",
	3: "Furniture",
	4: "Shoes",
	5: "Miscellaneous",
}

// CategoryName resolves a category id against the fixed category table.
func CategoryName(id int64) string {
	if name, ok := categoryNames[id]; ok {
		return name
	}
	return UnknownCategory
}

// CategoryFor builds the category reference for a locally synthesized product.
func CategoryFor(id int64) *Category {
	return &Category{ID: id, Name: CategoryName(id)}
}
