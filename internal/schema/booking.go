package schema

type BookingEquipment struct {
	EquipmentId int `json:"equipmentId"`
	Quantity    int `json:"quantity"`
}

type BookingRequest struct {
	VehicleId       int                `json:"vehicleId" binding:"required"`
	StartDate       string             `json:"startDate" binding:"required"`
	EndDate         string             `json:"endDate" binding:"required"`
	RentalDuration  string             `json:"rentalDuration,omitempty"`
	InsuranceId     int                `json:"insuranceId"`
	PickupLocation  string             `json:"pickupLocation"`
	DropoffLocation string             `json:"dropoffLocation"`
	EquipmentList   []BookingEquipment `json:"equipmentList"`
	SpecialRequests string             `json:"specialRequests,omitempty"`
}

// PaymentResponse is deliberately loose: the payment-initiation endpoint
// returns the redirect URL under one of several field names while the
// upstream contract settles.
type PaymentResponse map[string]any

type BookingRedirect struct {
	RedirectUrl string `json:"redirectUrl"`
}
