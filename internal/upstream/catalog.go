package upstream

import (
	"context"
	"net/http"

	"bitbucket.org/crgw/rental-gateway/internal/schema"
	"bitbucket.org/crgw/rental-gateway/internal/tools/requesting"
)

// Catalog lookups are enhancements to the booking flow, not
// preconditions for it. Every failure mode in here degrades to an empty
// or default catalog instead of surfacing an error.

// OwnerInsurances lists the insurance offerings of the vehicle's owner.
// When nothing usable comes back the synthesized Basic Protection entry
// keeps the booking wizard operational.
func (c *Client) OwnerInsurances(ctx context.Context, vehicleId int) []schema.Insurance {
	defaults := []schema.Insurance{schema.DefaultInsurance()}

	vehicle, err := c.VehicleDetails(ctx, vehicleId)
	if err != nil || vehicle.CarOwnerId == 0 {
		c.degraded(vehicleId, "insurances", err)
		return defaults
	}

	var insurances []schema.Insurance
	if !c.fetchCatalog(ctx, c.paths.OwnerInsurances(vehicle.CarOwnerId), "owner insurances", vehicleId, &insurances) {
		return defaults
	}

	if len(insurances) == 0 {
		return defaults
	}

	return insurances
}

// OwnerEquipments lists the bookable extra equipment for the vehicle,
// narrowed to entries that are actually available.
func (c *Client) OwnerEquipments(ctx context.Context, vehicleId int) []schema.Equipment {
	vehicle, err := c.VehicleDetails(ctx, vehicleId)
	if err != nil || vehicle.CarOwnerId == 0 {
		c.degraded(vehicleId, "equipments", err)
		return []schema.Equipment{}
	}

	var equipments []schema.Equipment
	if !c.fetchCatalog(ctx, c.paths.OwnerEquipments(vehicle.CarOwnerId), "owner equipments", vehicleId, &equipments) {
		return []schema.Equipment{}
	}

	filtered := make([]schema.Equipment, 0, len(equipments))
	for _, equipment := range equipments {
		if !equipment.IsAvailable {
			continue
		}

		// owner-scoped listings mix in other vehicles' equipment
		if c.paths.FiltersEquipmentByVehicle() && equipment.CarOwnerVehicleId != vehicleId {
			continue
		}

		filtered = append(filtered, equipment)
	}

	return filtered
}

// fetchCatalog runs one owner-scoped catalog request and reports whether
// dest was populated. 404 and 204 mean "no offerings"; so do HTML and
// unparseable bodies.
func (c *Client) fetchCatalog(ctx context.Context, path string, operation string, vehicleId int, dest any) bool {
	response, err := c.Do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		c.degraded(vehicleId, operation, err)
		return false
	}

	if response.StatusCode == http.StatusNotFound || response.StatusCode == http.StatusNoContent {
		response.Body.Close()
		return false
	}

	if err := requesting.DecodeJSON(response, operation, dest); err != nil {
		c.degraded(vehicleId, operation, err)
		return false
	}

	return true
}

func (c *Client) degraded(vehicleId int, operation string, err error) {
	event := c.logger.Warn().
		Str("label", "catalog-degraded").
		Str("operation", operation).
		Int("vehicleId", vehicleId)
	if err != nil {
		event = event.Err(err)
	}
	event.Msg("continuing without catalog data")
}
