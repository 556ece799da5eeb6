package model

// CategoryType classifies categories as money in or money out.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// Category is a named bucket transactions are assigned to.
type Category struct {
	ID   int64
	Name string
	Type CategoryType
}
