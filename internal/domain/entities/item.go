package entities

import "time"

// Item statuses understood by the backend.
const (
	StatusLost  = "lost"
	StatusFound = "found"
)

// Registration is the body of POST /api/auth/register.
type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
}

// NewItem is the body of POST /api/items/.
type NewItem struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Status        string     `json:"status"`
	LocationName  string     `json:"location_name"`
	Latitude      float64    `json:"latitude"`
	Longitude     float64    `json:"longitude"`
	DateLostFound *time.Time `json:"date_lost_found,omitempty"`
}

// NewMessage is the body of POST /api/messages/.
type NewMessage struct {
	ReceiverID int64  `json:"receiver_id"`
	ItemID     int64  `json:"item_id"`
	Content    string `json:"content"`
}

// Location is the administrative location of an anonymous report.
type Location struct {
	Province string `json:"province"`
	District string `json:"district"`
	Sector   string `json:"sector"`
	Cell     string `json:"cell"`
	Village  string `json:"village"`
	Isibo    string `json:"isibo,omitempty"`
}

// AnonymousReport is the body of POST /api/anonymous/report.
type AnonymousReport struct {
	ReporterName  string   `json:"reporter_name"`
	ReporterPhone string   `json:"reporter_phone"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Status        string   `json:"status"`
	Location      Location `json:"location"`
	ImageURL      string   `json:"image_url,omitempty"`
}
