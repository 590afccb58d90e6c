package httphandler

import "time"

type (
	CartLine struct {
		ProductID int `json:"id"`
		Quantity  int `json:"qty"`
	}

	CartView struct {
		Lines []CartLine `json:"lines"`
		Count int        `json:"count"`
	}
)

type Product struct {
	ProductID int      `json:"id"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Category  string   `json:"category"`
	Image     string   `json:"image"`
	Tags      []string `json:"tags"`
	Slug      string   `json:"slug"`
}

type Shipping struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
}

type (
	CheckoutRequest struct {
		UserID       string   `json:"user_id"`
		GuestEmail   string   `json:"guest_email"`
		GuestName    string   `json:"guest_name"`
		Shipping     Shipping `json:"shipping"`
		CaptchaToken string   `json:"captcha_token"`
	}

	CheckoutResponse struct {
		OrderToken string `json:"order_token"`
	}
)

type (
	OrderLine struct {
		ProductID int     `json:"id"`
		Name      string  `json:"name"`
		Price     float64 `json:"price"`
		Quantity  int     `json:"qty"`
	}

	Order struct {
		ID         int64       `json:"id"`
		UserID     string      `json:"user_id,omitempty"`
		GuestEmail string      `json:"guest_email,omitempty"`
		GuestName  string      `json:"guest_name,omitempty"`
		Shipping   *Shipping   `json:"shipping,omitempty"`
		Status     string      `json:"status"`
		Total      float64     `json:"total"`
		Lines      []OrderLine `json:"lines"`
		OrderToken string      `json:"order_token"`
		CreatedAt  time.Time   `json:"created_at"`
	}

	OrderStats struct {
		OwnerKey string  `json:"owner_key"`
		Orders   int64   `json:"orders"`
		Revenue  float64 `json:"revenue"`
	}
)

type Profile struct {
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Zip       string    `json:"zip"`
	AvatarURL string    `json:"avatar_url"`
	UpdatedAt time.Time `json:"updated_at"`
}

type (
	Credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name,omitempty"`
	}

	SessionView struct {
		UserID      string `json:"user_id"`
		Email       string `json:"email"`
		AccessToken string `json:"access_token"`
	}
)

type CakeRequest struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Servings    int       `json:"servings"`
	DueDate     string    `json:"due_date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
