// internal/model/customer.go
package model

// Customer is the backend's compact customer record, embedded in
// appointments, outreach attempts and message groups.
type Customer struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
