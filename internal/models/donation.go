package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Donation is one payment attempt. TxnID is unique per attempt and frozen
// once a request hash has been computed over it.
type Donation struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TxnID       string             `bson:"txnid" json:"txnid"`
	Amount      string             `bson:"amount" json:"amount"` // canonical two-decimal string, as signed
	Currency    string             `bson:"currency" json:"currency"`
	Purpose     string             `bson:"purpose" json:"purpose"` // productinfo sent to the gateway
	DonorName   string             `bson:"donor_name" json:"donor_name"`
	DonorEmail  string             `bson:"donor_email" json:"donor_email"`
	DonorPhone  string             `bson:"donor_phone,omitempty" json:"donor_phone,omitempty"`
	Method      string             `bson:"method" json:"method"` // payu, upi
	Status      string             `bson:"status" json:"status"` // PENDING, COMPLETED, FAILED, CANCELLED
	Outcome     string             `bson:"outcome,omitempty" json:"outcome,omitempty"` // classifier category on failure
	GatewayRef  string             `bson:"gateway_ref,omitempty" json:"-"`             // gateway-side payment id, if returned
	CompletedAt *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
