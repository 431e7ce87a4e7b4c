package subscriber

import "time"

type Subscription struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Preferences struct {
	ReceiveNewsletter bool `json:"receiveNewsletter"`
	ProductUpdates    bool `json:"productUpdates"`
}

type SubscribeParams struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// SubscriptionStatus is the wire value for the status endpoint.
type SubscriptionStatus string

const (
	StatusSubscribed   SubscriptionStatus = "SUBSCRIBE"
	StatusUnsubscribed SubscriptionStatus = "UNSUBSCRIBE"
)
