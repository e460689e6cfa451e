package models

const KycVerified = "verified"

// Owner is the read-only view of an account this core needs before it
// will create a transaction. The account itself lives with the user
// management service.
type Owner struct {
	ID        string  `json:"ownerId" bson:"_id"`
	Balance   float64 `json:"accountBalance" bson:"account_balance"`
	KycStatus string  `json:"kycStatus" bson:"kyc_status"`
}
