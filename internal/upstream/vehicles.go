package upstream

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bitbucket.org/crgw/rental-gateway/internal/schema"
	"bitbucket.org/crgw/rental-gateway/internal/tools/converting"
	"bitbucket.org/crgw/rental-gateway/internal/tools/requesting"
	"github.com/google/go-querystring/query"
)

const (
	fallbackSearchPage     = 0
	fallbackSearchPageSize = 100
)

// SearchAvailableVehicles queries the availability search. The endpoint
// is public, so no bearer is attached.
func (c *Client) SearchAvailableVehicles(ctx context.Context, searchQuery schema.VehicleSearchQuery) (*schema.VehicleSearchResponse, error) {
	values, err := query.Values(searchQuery)
	if err != nil {
		return nil, err
	}

	path := "/api/vehicles/search/available?" + values.Encode()

	response, err := c.send(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return nil, err
	}

	var result schema.VehicleSearchResponse
	if err := requesting.DecodeJSON(response, "vehicle search", &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// VehicleDetails fetches one vehicle. The detail endpoint sometimes
// omits carOwnerId even though search listings carry it for the same
// vehicle; when that happens the owner id is reconciled via a secondary
// search before the vehicle is returned.
func (c *Client) VehicleDetails(ctx context.Context, vehicleId int) (*schema.Vehicle, error) {
	response, err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/api/vehicles/%d", vehicleId), nil, nil)
	if err != nil {
		return nil, err
	}

	var vehicle schema.Vehicle
	if err := requesting.DecodeJSON(response, "vehicle details", &vehicle); err != nil {
		return nil, err
	}

	if vehicle.CarOwnerId == 0 {
		c.resolveOwnerId(ctx, &vehicle)
	}

	return &vehicle, nil
}

// resolveOwnerId papers over the upstream data gap by scanning a
// near-term availability search for the same vehicle id. Best effort
// only: whatever goes wrong, the vehicle is returned as-is.
func (c *Client) resolveOwnerId(ctx context.Context, vehicle *schema.Vehicle) {
	c.logger.Warn().
		Int("vehicleId", vehicle.Id).
		Msg("vehicle details missing carOwnerId, falling back to search")

	now := time.Now()

	search, err := c.SearchAvailableVehicles(ctx, schema.VehicleSearchQuery{
		StartDate: now.Format("2006-01-02"),
		EndDate:   now.AddDate(0, 0, 1).Format("2006-01-02"),
		Page:      converting.PointerToValue(fallbackSearchPage),
		PageSize:  converting.PointerToValue(fallbackSearchPageSize),
	})
	if err != nil {
		c.logger.Warn().
			Err(err).
			Int("vehicleId", vehicle.Id).
			Msg("owner id fallback search failed")
		return
	}

	for _, candidate := range search.Data {
		if candidate.Id == vehicle.Id && candidate.CarOwnerId != 0 {
			vehicle.CarOwnerId = candidate.CarOwnerId
			return
		}
	}

	c.logger.Warn().
		Int("vehicleId", vehicle.Id).
		Msg("carOwnerId still unknown after fallback search")
}
