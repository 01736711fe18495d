package domain

import "time"

// Account is a pre-existing client record. The portal only reads accounts;
// completion never provisions one.
type Account struct {
	AccountID  string    `json:"id" dynamodbav:"account_id"`
	Email      string    `json:"email" dynamodbav:"email"`
	FirstName  string    `json:"first_name" dynamodbav:"first_name"`
	LastName   string    `json:"last_name" dynamodbav:"last_name"`
	OfficeName string    `json:"office_name" dynamodbav:"office_name"`
	OrgType    string    `json:"org_type" dynamodbav:"org_type"`
	CreatedAt  time.Time `json:"created_at" dynamodbav:"created_at"`
}
