package entity

// Trainer is the authenticated owner of a collection, as asserted by the
// identity provider.
type Trainer struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}
