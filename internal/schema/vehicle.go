package schema

type VehicleImage struct {
	ColorId      int    `json:"colorId"`
	ColorName    string `json:"colorName"`
	ColorCode    string `json:"colorCode"`
	ColorHexCode string `json:"colorHexCode"`
	ImageUrl     string `json:"imageUrl"`
	ThumbnailUrl string `json:"thumbnailUrl"`
}

type VehicleEquipment struct {
	EquipmentId   int          `json:"equipmentId"`
	EquipmentName string       `json:"equipmentName"`
	Description   string       `json:"description"`
	Category      string       `json:"category"`
	BasePrice     RoundedFloat `json:"basePrice"`
	FullPrice     RoundedFloat `json:"fullPrice"`
	IsAvailable   bool         `json:"isAvailable"`
}

type Vehicle struct {
	Id                  int                `json:"id"`
	CarOwnerId          int                `json:"carOwnerId,omitempty"`
	VehicleMakeName     string             `json:"vehicleMakeName"`
	VehicleModel        string             `json:"vehicleModel"`
	VehicleYear         int                `json:"vehicleYear"`
	BodyTypeName        string             `json:"bodyTypeName"`
	ColorName           string             `json:"colorName"`
	Description         string             `json:"description"`
	OwnerName           string             `json:"ownerName"`
	OwnerEmail          string             `json:"ownerEmail"`
	DailyRentalPrice    RoundedFloat       `json:"dailyRentalPrice"`
	HourlyRentalPrice   RoundedFloat       `json:"hourlyRentalPrice"`
	WeeklyRentalPrice   RoundedFloat       `json:"weeklyRentalPrice"`
	MonthlyRentalPrice  RoundedFloat       `json:"monthlyRentalPrice"`
	Location            string             `json:"location"`
	AvailabilityStatus  string             `json:"availabilityStatus"`
	AvailableFrom       string             `json:"availableFrom"`
	AvailableUntil      string             `json:"availableUntil"`
	DeliveryFee         RoundedFloat       `json:"deliveryFee"`
	DeliveryFeeRequired bool               `json:"deliveryFeeRequired"`
	IsActive            bool               `json:"isActive"`
	TotalRentals        int                `json:"totalRentals"`
	AverageRating       float64            `json:"averageRating"`
	EquipmentList       []VehicleEquipment `json:"equipmentList"`
	ColorImages         []VehicleImage     `json:"colorImages"`
	CreatedAt           string             `json:"createdAt"`
	UpdatedAt           string             `json:"updatedAt"`
}

type Pagination struct {
	CurrentPage      int  `json:"current_page"`
	PageSize         int  `json:"page_size"`
	TotalElements    int  `json:"total_elements"`
	TotalPages       int  `json:"total_pages"`
	NumberOfElements int  `json:"number_of_elements"`
	HasNext          bool `json:"has_next"`
	HasPrevious      bool `json:"has_previous"`
	IsFirst          bool `json:"is_first"`
	IsLast           bool `json:"is_last"`
}

type VehicleSearchResponse struct {
	Pagination Pagination `json:"pagination"`
	Data       []Vehicle  `json:"data"`
}

// VehicleSearchQuery is encoded into the upstream query string with
// go-querystring. Page and PageSize are pointers so that an explicit
// page=0 survives encoding.
type VehicleSearchQuery struct {
	StartDate      string `url:"startDate" form:"startDate" binding:"required"`
	EndDate        string `url:"endDate" form:"endDate" binding:"required"`
	Location       string `url:"location,omitempty" form:"location"`
	PickupLocation string `url:"pickupLocation,omitempty" form:"pickupLocation"`
	Page           *int   `url:"page,omitempty" form:"page"`
	PageSize       *int   `url:"pageSize,omitempty" form:"pageSize"`
	SortBy         string `url:"sortBy,omitempty" form:"sortBy"`
	SortDirection  string `url:"sortDirection,omitempty" form:"sortDirection"`
}
