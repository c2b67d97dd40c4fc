package dto

// SeedSummary reports what a demo-data seeding run created
type SeedSummary struct {
	UsersCreated        int `json:"usersCreated"`
	TransactionsCreated int `json:"transactionsCreated"`
}
