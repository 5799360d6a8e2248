package schema

type Insurance struct {
	Id                   int          `json:"id"`
	VehicleId            int          `json:"vehicleId,omitempty"`
	VehicleName          string       `json:"vehicleName,omitempty"`
	InsuranceId          int          `json:"insuranceId,omitempty"`
	InsuranceType        string       `json:"insuranceType,omitempty"`
	InsuranceName        string       `json:"insuranceName"`
	InsuranceDescription string       `json:"insuranceDescription,omitempty"`
	CoveragePoints       []string     `json:"coveragePoints,omitempty"`
	DailyPrice           RoundedFloat `json:"dailyPrice"`
	WeeklyPrice          RoundedFloat `json:"weeklyPrice"`
	MonthlyPrice         RoundedFloat `json:"monthlyPrice"`
	IsIncluded           bool         `json:"isIncluded"`
	IsActive             bool         `json:"isActive"`
	ExcessAmount         RoundedFloat `json:"excessAmount,omitempty"`
	DepositAmount        RoundedFloat `json:"depositAmount,omitempty"`
	CoverageLimit        RoundedFloat `json:"coverageLimit,omitempty"`
	MaxClaimValue        RoundedFloat `json:"maxClaimValue,omitempty"`
	OwnerNotes           string       `json:"ownerNotes,omitempty"`
	IsCustom             bool         `json:"isCustom,omitempty"`
	CreatedAt            string       `json:"createdAt,omitempty"`
	UpdatedAt            string       `json:"updatedAt,omitempty"`
}

type Equipment struct {
	Id                      int          `json:"id"`
	CarOwnerVehicleId       int          `json:"carOwnerVehicleId"`
	VehicleDisplayName      string       `json:"vehicleDisplayName,omitempty"`
	ExtraEquipmentId        int          `json:"extraEquipmentId"`
	EquipmentName           string       `json:"equipmentName"`
	EquipmentCategory       string       `json:"equipmentCategory,omitempty"`
	BasePrice               RoundedFloat `json:"basePrice"`
	FullPrice               RoundedFloat `json:"fullPrice"`
	BasePriceWithCommission RoundedFloat `json:"basePriceWithCommission,omitempty"`
	FullPriceWithCommission RoundedFloat `json:"fullPriceWithCommission,omitempty"`
	CommissionPercentage    RoundedFloat `json:"commissionPercentage,omitempty"`
	BaseCommissionAmount    RoundedFloat `json:"baseCommissionAmount,omitempty"`
	FullCommissionAmount    RoundedFloat `json:"fullCommissionAmount,omitempty"`
	AvailableQuantity       int          `json:"availableQuantity"`
	MaxQuantity             int          `json:"maxQuantity"`
	IsAvailable             bool         `json:"isAvailable"`
	Notes                   string       `json:"notes,omitempty"`
	CreatedAt               string       `json:"createdAt,omitempty"`
	UpdatedAt               string       `json:"updatedAt,omitempty"`
}

// DefaultInsurance is the placeholder offered when an owner publishes no
// insurance catalog, so the booking flow always has a selectable option.
func DefaultInsurance() Insurance {
	return Insurance{
		InsuranceName:        "Basic Protection",
		InsuranceDescription: "Standard coverage included with every rental",
		DailyPrice:           0,
		IsIncluded:           true,
		IsActive:             true,
	}
}
