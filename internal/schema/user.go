package schema

type Address struct {
	Id             int     `json:"id"`
	CarOwnerId     int     `json:"carOwnerId"`
	BusinessName   string  `json:"businessName"`
	AddressType    string  `json:"addressType"`
	StreetAddress  string  `json:"streetAddress"`
	City           string  `json:"city"`
	State          string  `json:"state"`
	PostalCode     string  `json:"postalCode"`
	Country        string  `json:"country"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	IsPrimary      bool    `json:"isPrimary"`
	IsActive       bool    `json:"isActive"`
	ContactPerson  string  `json:"contactPerson"`
	PhoneNumber    string  `json:"phoneNumber"`
	Email          string  `json:"email"`
	OperatingHours string  `json:"operatingHours"`
	Description    string  `json:"description"`
}

type User struct {
	Id            int       `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Roles         []string  `json:"roles"`
	IsActive      bool      `json:"isActive"`
	EmailVerified bool      `json:"emailVerified"`
	LogoUrl       string    `json:"logoUrl"`
	Addresses     []Address `json:"addresses"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Role      string `json:"role,omitempty"`
}

// AuthResponse is the normalized shape for login, register and profile
// operations. The upstream profile endpoint sometimes returns the user
// object unwrapped; the normalizer folds that shape into this one.
type AuthResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	User         *User  `json:"user,omitempty"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
