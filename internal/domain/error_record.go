package domain

import "time"

// ErrorRecord is a write-once diagnostic document. The service never reads these back.
// ExpiresAt is a Unix timestamp used as DynamoDB TTL; zero means keep forever.
type ErrorRecord struct {
	ErrorID   string    `json:"id" dynamodbav:"error_id" bson:"_id"`
	Timestamp time.Time `json:"timestamp" dynamodbav:"timestamp" bson:"timestamp"`
	Endpoint  string    `json:"endpoint" dynamodbav:"endpoint" bson:"endpoint"`
	Message   string    `json:"message" dynamodbav:"message" bson:"error"`
	Stack     string    `json:"stack,omitempty" dynamodbav:"stack,omitempty" bson:"stack,omitempty"`
	RequestID string    `json:"request_id,omitempty" dynamodbav:"request_id,omitempty" bson:"request_id,omitempty"`
	ExpiresAt int64     `json:"-" dynamodbav:"expires_at,omitempty" bson:"-"`
}
