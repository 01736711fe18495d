package dynamo

// DynamoDB attribute names used in expressions across all repos.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldLastUsedAt   = "last_used_at"
	fieldCompletedAt  = "completed_at"
	fieldAccountID    = "account_id"
	fieldAccountEmail = "account_email"
)
