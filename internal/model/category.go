package model

// IncomeCategoryID is the category reserved for income entries. It is never
// offered as an expense category.
const IncomeCategoryID = "income"

// OtherCategoryID is the catch-all category for spending that fits nowhere else.
const OtherCategoryID = "other"

// Category is a spending (or income) bucket that expenses and budgets point at.
type Category struct {
	ID    string
	Name  string
	Icon  string
	Color string
}

// DefaultCategories is the category set a fresh database starts with.
var DefaultCategories = []Category{
	{ID: "groceries", Name: "Groceries", Icon: "shopping-cart", Color: "#4CAF50"},
	{ID: "dining", Name: "Dining Out", Icon: "utensils", Color: "#FF9800"},
	{ID: "transport", Name: "Transport", Icon: "car", Color: "#2196F3"},
	{ID: "utilities", Name: "Utilities", Icon: "zap", Color: "#FFC107"},
	{ID: "housing", Name: "Housing", Icon: "home", Color: "#795548"},
	{ID: "entertainment", Name: "Entertainment", Icon: "film", Color: "#9C27B0"},
	{ID: "health", Name: "Health", Icon: "heart", Color: "#F44336"},
	{ID: "shopping", Name: "Shopping", Icon: "shopping-bag", Color: "#E91E63"},
	{ID: IncomeCategoryID, Name: "Income", Icon: "dollar-sign", Color: "#009688"},
	{ID: OtherCategoryID, Name: "Other", Icon: "more-horizontal", Color: "#9E9E9E"},
}

// ExpenseCategories filters out the income category.
func ExpenseCategories(categories []Category) []Category {
	result := make([]Category, 0, len(categories))
	for _, c := range categories {
		if c.ID == IncomeCategoryID {
			continue
		}
		result = append(result, c)
	}
	return result
}

// CategoryNames maps category IDs to display names.
func CategoryNames(categories []Category) map[string]string {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}
