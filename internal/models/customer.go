package models

// Customer represents a customer record in the registry
type Customer struct {
	ID        int64    `json:"id"`
	FirstName string   `json:"first"`
	LastName  string   `json:"name"`
	Contacts  []string `json:"contacts"`
}

// AddContact appends a contact entry, preserving insertion order
func (c *Customer) AddContact(contact string) {
	c.Contacts = append(c.Contacts, contact)
}

// Validate performs basic validation on customer data
func (c *Customer) Validate() error {
	if c.ID < 0 {
		return ErrInvalidInput("id must not be negative")
	}
	if c.LastName == "" {
		return ErrInvalidInput("name is required")
	}
	return nil
}

// Equal reports whether two customers match field by field,
// contacts compared in order. Delete-by-entity uses this.
func (c *Customer) Equal(other *Customer) bool {
	if other == nil {
		return false
	}
	if c.ID != other.ID || c.FirstName != other.FirstName || c.LastName != other.LastName {
		return false
	}
	if len(c.Contacts) != len(other.Contacts) {
		return false
	}
	for i, contact := range c.Contacts {
		if contact != other.Contacts[i] {
			return false
		}
	}
	return true
}
