package repository

// DefaultSort newest first
const DefaultSort = "-date"

var sortKeys = []string{"amount", "-amount", "title", "-title", "category", "-category", "date", "-date"}

// fixed ORDER BY fragments per allowed key; request input never reaches SQL
var sortOrders = map[string][]string{
	"amount":    {"expenses.amount ASC"},
	"-amount":   {"expenses.amount DESC"},
	"title":     {"expenses.title ASC"},
	"-title":    {"expenses.title DESC"},
	"category":  {"categories.name ASC"},
	"-category": {"categories.name DESC"},
	"date":      {"expenses.expense_date ASC", "expenses.expense_time ASC", "expenses.id ASC"},
	"-date":     {"expenses.expense_date DESC", "expenses.expense_time DESC", "expenses.id DESC"},
}

// ResolveSort returns requested when it is an allowed sort key, DefaultSort otherwise
func ResolveSort(requested string) string {
	if _, ok := sortOrders[requested]; ok {
		return requested
	}
	return DefaultSort
}

// SortKeys lists the allowed sort keys
func SortKeys() []string {
	keys := make([]string, len(sortKeys))
	copy(keys, sortKeys)
	return keys
}

// orderClauses returns the ORDER BY fragments for a resolved key, with the
// default order appended as tie-breaker so listings are deterministic.
func orderClauses(key string) []string {
	clauses := append([]string{}, sortOrders[key]...)
	if key != "date" && key != "-date" {
		clauses = append(clauses, sortOrders[DefaultSort]...)
	}
	return clauses
}

func needsCategoryJoin(key string) bool {
	return key == "category" || key == "-category"
}
