package user

import "time"

type Status string

const (
	StatusActive        Status = "ACTIVE"
	StatusAnonymous     Status = "ANONYMOUS"
	StatusNotRegistered Status = "NOT_REGISTERED"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Hash      string    `json:"-"`
	Salt      string    `json:"-"`
	Status    Status    `json:"status"`
	Role      Role      `json:"role"`
	Addresses []Address `json:"addresses,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Address struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Address  string `json:"address"`
	MoreInfo string `json:"moreInfo,omitempty"`
	ZipCode  string `json:"zipCode,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country,omitempty"`
}

type AddressInput struct {
	Address  string `json:"address"`
	MoreInfo string `json:"moreInfo,omitempty"`
	ZipCode  string `json:"zipCode,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country,omitempty"`
}

type CreateParams struct {
	Email     string
	Phone     string
	FirstName string
	LastName  string
	Hash      string
	Salt      string
	Status    Status
	Role      Role
	Addresses []AddressInput
}

// UpdateParams uses pointers so callers can update a subset of fields.
// A non-nil Addresses slice replaces the user's addresses.
type UpdateParams struct {
	Email     *string
	Phone     *string
	FirstName *string
	LastName  *string
	Addresses []AddressInput
}
