package upstream

import "fmt"

// PathConvention selects which owner-scoped catalog endpoints the
// upstream currently serves. Two conventions exist because the backend
// was mid-migration when this client was written; which one is live is
// picked by configuration, not by code duplication.
type PathConvention string

const (
	PathConventionCurrent PathConvention = "current"
	PathConventionLegacy  PathConvention = "legacy"
)

type Paths struct {
	convention PathConvention
}

func PathsFor(convention PathConvention) Paths {
	if convention != PathConventionLegacy {
		convention = PathConventionCurrent
	}

	return Paths{convention: convention}
}

func (p Paths) OwnerInsurances(ownerId int) string {
	if p.convention == PathConventionLegacy {
		return fmt.Sprintf("/api/owner-insurances/owner/%d", ownerId)
	}

	return fmt.Sprintf("/api/owner-vehicle-insurances/car-owner/%d", ownerId)
}

func (p Paths) OwnerEquipments(ownerId int) string {
	if p.convention == PathConventionLegacy {
		return fmt.Sprintf("/api/owner-equipments/owner/%d", ownerId)
	}

	return fmt.Sprintf("/api/owner-vehicle-equipments/car-owner/%d", ownerId)
}

// FiltersEquipmentByVehicle reports whether equipment listings must be
// narrowed to the requested vehicle. The current endpoints are
// owner-scoped and mix in other vehicles' equipment; the legacy ones
// were already vehicle-bound.
func (p Paths) FiltersEquipmentByVehicle() bool {
	return p.convention == PathConventionCurrent
}
