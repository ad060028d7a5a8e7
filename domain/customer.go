package domain

type Customer struct {
	ID             int64   `db:"id" json:"id"`
	Name           string  `db:"name" json:"name"`
	Phone          string  `db:"phone" json:"phone"`
	Email          *string `db:"email" json:"email,omitempty"`
	Address        *string `db:"address" json:"address,omitempty"`
	DateRegistered string  `db:"date_registered" json:"date_registered,omitempty"`
}

// CustomerDetail is a customer plus their purchase history, newest first.
type CustomerDetail struct {
	Customer
	Purchases []Sale `json:"purchases"`
}
