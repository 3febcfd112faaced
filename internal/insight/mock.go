package insight

import "strings"

// Canned responses for offline mode. These mirror what the live endpoint
// produces closely enough for the views to exercise their rendering.

const mockFinanceSuggestions = `Based on your transaction history and budget information, here are some personalized financial suggestions:

1. Your Food expenses are 15% above your budget. Consider meal planning to reduce grocery costs.

2. You're spending $150 monthly on subscription services. Review these subscriptions to identify any you could eliminate.

3. Your Transportation costs show frequent small transactions. Combining errands could help reduce fuel expenses.

4. Utilities spending increased 20% compared to last month. Check for seasonal adjustments or potential issues.

5. You have no current savings allocation. Consider setting up an automatic transfer of 5-10% of income to a savings account.`

const mockSpendingInsights = `Spending Patterns:
1. Income and Expenses:
- Your primary income source is a monthly salary, credited mid-month.
- Your major expense is rent, accounting for roughly a third of your total income.
- Groceries and fuel are your main recurring variable expenses.

2. Spending Trends:
- Your spending pattern appears to be relatively consistent, with the majority of your expenses being fixed (rent) and recurring (groceries and fuel).
- There are no significant fluctuations or unusual expenses in the data provided.

Potential Savings:
- Rent accounts for a substantial portion of your income; there may be opportunities to explore more cost-effective housing options.
- Grocery spending could be optimized through meal planning or shopping at more affordable stores.

Recommendations:
- Consider setting up a budget and tracking your expenses more closely to identify areas where you can reduce spending.
- Diversify your income sources or explore opportunities for additional income streams to increase your financial resilience.`

// keywordCategory is the offline categorizer: a fixed keyword-to-category
// table over the lowercased description.
func keywordCategory(description string) string {
	desc := strings.ToLower(description)

	rules := []struct {
		keywords []string
		category string
	}{
		{[]string{"grocery", "restaurant"}, "Food"},
		{[]string{"gas", "uber"}, "Transportation"},
		{[]string{"rent", "mortgage"}, "Housing"},
		{[]string{"movie", "netflix"}, "Entertainment"},
		{[]string{"doctor", "pharmacy"}, "Healthcare"},
		{[]string{"salary", "deposit"}, "Income"},
	}

	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(desc, kw) {
				return r.category
			}
		}
	}

	return DefaultCategory
}
