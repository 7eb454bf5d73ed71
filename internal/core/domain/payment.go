package domain

import "time"

// Field names double as SOAP element names: json tags must match the
// gateway's schema.

// PaymentData carries a tokenized wallet payment (Apple Pay, Google Pay).
type PaymentData struct {
	TransactionID string `json:"transactionID,omitempty"`
	Network       string `json:"network,omitempty"`
	TokenData     string `json:"tokenData,omitempty"`
}

// Card is a payment card. ExpirationDate accepts MMYY, MM/YY or a full date.
type Card struct {
	EncryptionKeyID   string       `json:"encryptionKeyId,omitempty"`
	EncryptedData     string       `json:"encryptedData,omitempty"`
	Number            string       `json:"number,omitempty"`
	Type              string       `json:"type,omitempty"`
	ExpirationDate    string       `json:"expirationDate,omitempty"`
	Cvx               string       `json:"cvx,omitempty"`
	OwnerBirthdayDate string       `json:"ownerBirthdayDate,omitempty"`
	Password          string       `json:"password,omitempty"`
	CardPresent       string       `json:"cardPresent,omitempty"`
	Cardholder        string       `json:"cardholder,omitempty"`
	Token             string       `json:"token,omitempty"`
	PaymentData       *PaymentData `json:"paymentData,omitempty"`
}

// Wallet is a stored card on the gateway.
type Wallet struct {
	WalletID        string   `json:"walletId"`
	LastName        string   `json:"lastName,omitempty"`
	FirstName       string   `json:"firstName,omitempty"`
	Email           string   `json:"email,omitempty"`
	ShippingAddress *Address `json:"shippingAddress,omitempty"`
	Card            *Card    `json:"card,omitempty"`
	Comment         string   `json:"comment,omitempty"`
	Default         string   `json:"default,omitempty"`
	CardStatus      string   `json:"cardStatus,omitempty"`
	CardBrand       string   `json:"cardBrand,omitempty"`
}

// Address is a postal address.
type Address struct {
	Title     string `json:"title,omitempty"`
	Name      string `json:"name,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Street1   string `json:"street1,omitempty"`
	Street2   string `json:"street2,omitempty"`
	CityName  string `json:"cityName,omitempty"`
	ZipCode   string `json:"zipCode,omitempty"`
	Country   string `json:"country,omitempty"` // ISO 3166-1 alpha-2
	Phone     string `json:"phone,omitempty"`
	PhoneType string `json:"phoneType,omitempty"`
	State     string `json:"state,omitempty"`
}

// OwnerAddress is the billing address attached to a card owner.
type OwnerAddress struct {
	Street   string `json:"street,omitempty"`
	CityName string `json:"cityName,omitempty"`
	ZipCode  string `json:"zipCode,omitempty"`
	Country  string `json:"country,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Owner is the card holder.
type Owner struct {
	LastName       string        `json:"lastName,omitempty"`
	FirstName      string        `json:"firstName,omitempty"`
	BillingAddress *OwnerAddress `json:"billingAddress,omitempty"`
	IssueCardDate  string        `json:"issueCardDate,omitempty"`
}

// Payment describes the money movement. Amount is in minor units.
type Payment struct {
	Amount         int64      `json:"amount"`
	Currency       Currency   `json:"currency,omitempty"`
	Action         ActionCode `json:"action,omitempty"`
	Mode           Mode       `json:"mode,omitempty"`
	ContractNumber string     `json:"contractNumber,omitempty"`
	SoftDescriptor string     `json:"softDescriptor,omitempty"`
}

// Order is the merchant-side order. Date is sent as DD/MM/YYYY HH:mm.
type Order struct {
	Ref      string    `json:"ref,omitempty"`
	Amount   int64     `json:"amount,omitempty"`
	Currency Currency  `json:"currency,omitempty"`
	Date     time.Time `json:"date,omitempty"`
}

// Options are the optional per-call overrides shared by the payment operations.
type Options struct {
	Order           *Order
	ReferencePrefix string
	Currency        Currency
}
