package domain

import "time"

type Profile struct {
	UserID    string
	FullName  string
	Phone     string
	Address   string
	City      string
	Zip       string
	AvatarURL string
	UpdatedAt time.Time
}

// A Session is the identity-provider view of a signed-in user.
type Session struct {
	UserID      string
	Email       string
	AccessToken string
}

type CakeRequest struct {
	ID          int64
	UserID      string
	Title       string
	Description string
	Servings    int
	DueDate     string
	Status      string
	CreatedAt   time.Time
}
