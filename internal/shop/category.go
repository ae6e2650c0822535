package shop

import (
	"encoding/json"
	"strings"
)

type ExpenseCategory string

const (
	CategoryRent        ExpenseCategory = "Rent"
	CategoryElectricity ExpenseCategory = "Electricity"
	CategoryWater       ExpenseCategory = "Water"
	CategorySalaries    ExpenseCategory = "Salaries"
	CategoryTransport   ExpenseCategory = "Transport"
	CategoryMaintenance ExpenseCategory = "Maintenance"
	CategoryAdvertising ExpenseCategory = "Advertising"
	CategoryOther       ExpenseCategory = "Other"
)

var AllExpenseCategories = []ExpenseCategory{
	CategoryRent,
	CategoryElectricity,
	CategoryWater,
	CategorySalaries,
	CategoryTransport,
	CategoryMaintenance,
	CategoryAdvertising,
	CategoryOther,
}

// Arabic labels written by older clients of the same data format.
var categoryAliases = map[string]ExpenseCategory{
	"إيجار":   CategoryRent,
	"كهرباء":  CategoryElectricity,
	"ماء":     CategoryWater,
	"رواتب":   CategorySalaries,
	"نقل":     CategoryTransport,
	"صيانة":   CategoryMaintenance,
	"إعلانات": CategoryAdvertising,
	"أخرى":    CategoryOther,
}

// ParseExpenseCategory resolves a category name case-insensitively.
func ParseExpenseCategory(s string) (ExpenseCategory, error) {
	s = strings.TrimSpace(s)
	for _, c := range AllExpenseCategories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	if c, ok := categoryAliases[s]; ok {
		return c, nil
	}
	return "", ErrInvalidCategory
}

func ValidExpenseCategory(c ExpenseCategory) bool {
	_, err := ParseExpenseCategory(string(c))
	return err == nil
}

// UnmarshalJSON maps known aliases to their canonical names and keeps unknown
// values as stored.
func (c *ExpenseCategory) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if parsed, err := ParseExpenseCategory(s); err == nil {
		*c = parsed
		return nil
	}
	*c = ExpenseCategory(s)
	return nil
}
