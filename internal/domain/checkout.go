package domain

import "time"

// Customer holds the details entered on the checkout form.
type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	Notes     string `json:"notes,omitempty"`
}

// Confirmation is returned after a checkout submission. No payment is taken.
type Confirmation struct {
	Reference   string     `json:"reference"`
	SessionID   string     `json:"-"`
	UserID      string     `json:"user_id"`
	Customer    Customer   `json:"customer"`
	Items       []CartItem `json:"items"`
	Summary     Summary    `json:"summary"`
	SubmittedAt time.Time  `json:"submitted_at"`
}

// ContactMessage is a submission of the contact form.
type ContactMessage struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
}
