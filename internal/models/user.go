package models

// Role values issued by the platform backend.
const (
	RoleAdmin   = "admin"
	RoleTrainer = "trainer"
	RoleStudent = "student"
)

// Avatar references an uploaded profile image.
type Avatar struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// Address is the postal address block carried on every user record.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// TradingProfile captures the questionnaire answers attached to a user.
// Field names follow the backend wire format, misspellings included.
type TradingProfile struct {
	TradingExperience string   `json:"trading_exprience"`
	AssetsOfInterest  string   `json:"assets_of_interest"`
	MainGoal          string   `json:"main_goal"`
	RiskAppetite      string   `json:"risk_appetite"`
	PreferredLearning []string `json:"preffered_learning"`
}

// RatingAxis is a single star rating with a free-text comment.
type RatingAxis struct {
	Star    int    `json:"star"`
	Comment string `json:"comment"`
}

// UserRating is the three-axis rating block on trainer records.
type UserRating struct {
	Competence  RatingAxis `json:"competence"`
	Punctuality RatingAxis `json:"punctuality"`
	Behavior    RatingAxis `json:"behavior"`
}

// User is a trainer, student or admin record as returned by the backend.
type User struct {
	ID             string         `json:"_id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Username       string         `json:"username"`
	Phone          string         `json:"phone"`
	Role           string         `json:"role"`
	Avatar         Avatar         `json:"avatar"`
	Address        Address        `json:"address"`
	UserRating     UserRating     `json:"userRating"`
	TradingProfile TradingProfile `json:"treding_profile"`
	UniqueID       string         `json:"uniqueId"`
	CreatedAt      string         `json:"createdAt"`
	UpdatedAt      string         `json:"updatedAt"`
}

// Location renders the city/state pair shown in roster tables.
func (u User) Location() string {
	switch {
	case u.Address.City != "" && u.Address.State != "":
		return u.Address.City + ", " + u.Address.State
	case u.Address.City != "":
		return u.Address.City
	default:
		return u.Address.State
	}
}
