package service

import "strings"

// Payload is one raw, unvalidated key/value submission from a client
type Payload map[string]interface{}

// CustomerView is the compact external projection of a customer
type CustomerView struct {
	Name     string `json:"name"`
	First    string `json:"first"`
	Contacts string `json:"contacts"`
}

// BatchResult partitions the payloads of one POST batch. Entries keep
// their input order within each bucket.
type BatchResult struct {
	Malformed []Payload
	Conflicts []Payload
	Accepted  int
}

// Ok reports whether the whole batch was accepted
func (r *BatchResult) Ok() bool {
	return len(r.Malformed) == 0 && len(r.Conflicts) == 0
}

// joinContacts renders the contact list for the compact projection
func joinContacts(contacts []string) string {
	return strings.Join(contacts, "; ")
}
