package domain

// Table is a mongo collection name
type Table string

const (
	TableListings       Table = "listings"
	TableEscrowDeposits Table = "escrow_deposits"
	TableDenoms         Table = "denoms"
	TableAssets         Table = "assets"
	TableActivities     Table = "activities"
	TableBankAccounts   Table = "bank_accounts"
	TableHealthCheck    Table = "healthcheck"
)
