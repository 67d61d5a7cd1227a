package domain

// AccountTemplate describes an account of the default chart.
type AccountTemplate struct {
	Code        string
	Name        string
	AccountType AccountType
}

// DefaultChartOfAccounts is the starter chart for a drilling business.
var DefaultChartOfAccounts = []AccountTemplate{
	{"1000", "Cash on Hand", Asset},
	{"1100", "Bank Account", Asset},
	{"1200", "Mobile Money", Asset},
	{"1300", "Accounts Receivable", Asset},
	{"1400", "Materials Inventory", Asset},
	{"1500", "Worker Loans Receivable", Asset},
	{"1600", "Fixed Assets", Asset},
	{"2000", "Loans Payable", Liability},
	{"2100", "Accounts Payable", Liability},
	{"3000", "Owner's Equity", Equity},
	{"4000", "Contract Revenue", Revenue},
	{"4010", "Rig Fee Revenue", Revenue},
	{"4020", "Materials Sales Revenue", Revenue},
	{"4090", "Other Revenue", Revenue},
	{"5000", "Materials Cost", Expense},
	{"5100", "Wages & Salaries", Expense},
	{"5200", "Operating Expenses", Expense},
	{"5990", "Other Expenses", Expense},
}
