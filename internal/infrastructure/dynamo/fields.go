package dynamo

// DynamoDB attribute names referenced outside struct tags.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldErrorID   = "error_id"
	fieldExpiresAt = "expires_at"
)
