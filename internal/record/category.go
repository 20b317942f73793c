package record

// Categories is the fixed set of record categories. Budgets reference the
// same set.
var Categories = []string{
	"Salary",
	"Freelance",
	"Investments",
	"Rental Income",
	"Gifts",
	"Refunds",
	"Other Income",
	"Food & Drinks",
	"Groceries",
	"Dining Out",
	"Shopping",
	"Housing",
	"Utilities",
	"Transportation",
	"Vehicle",
	"Life & Entertainment",
	"Communication, PC",
	"Financial expenses",
	"Health & Medical",
	"Education",
	"Insurance",
	"Travel",
	"Gifts & Donations",
	"Personal Care",
	"Subscriptions",
	"Taxes",
	"Savings",
	"Pets",
	"Childcare",
	"Hobbies",
	"Debt & Loans",
	"Repairs & Maintenance",
	"Electronics",
	"Clothing & Apparel",
	"Beauty & Wellness",
	"Books & Media",
	"Office Supplies",
	"Gardening",
	"Sports & Fitness",
	"Weddings & Events",
	"Household Supplies",
	"Legal Fees",
	"Charity",
	"Business Expenses",
	"Others",
}

var categorySet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Categories))
	for _, c := range Categories {
		set[c] = struct{}{}
	}

	return set
}()

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c string) bool {
	_, ok := categorySet[c]
	return ok
}
