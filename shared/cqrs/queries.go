package cqrs

// Pagination is a 1-based page request. Both fields are positive.
type Pagination struct {
	Page    int
	PerPage int
}

// ---------- Transaction queries ----------

// GetTransactionQuery fetches a single transaction by its on-chain hash.
type GetTransactionQuery struct {
	TransactionHash string
}

// ListTransactionsQuery fetches one page of all transactions.
type ListTransactionsQuery struct {
	Pagination
}

// ListUserTransactionsQuery fetches one page of a user's transactions.
type ListUserTransactionsQuery struct {
	UserAddress string
	Pagination
}
