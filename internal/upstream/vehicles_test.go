package upstream_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bitbucket.org/crgw/rental-gateway/internal/schema"
	"github.com/stretchr/testify/assert"
)

func TestSearchAvailableVehicles(t *testing.T) {
	ctx := context.Background()

	t.Run("should encode the search parameters into the query string", func(t *testing.T) {
		var handlerFunc http.HandlerFunc
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerFunc(w, r)
		}))
		defer testServer.Close()

		client, _ := testClient(t, testServer.URL)

		handlerFunc = func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/vehicles/search/available", r.URL.Path)
			assert.Equal(t, "", r.Header.Get("Authorization"))

			query := r.URL.Query()
			assert.Equal(t, "2026-09-02", query.Get("startDate"))
			assert.Equal(t, "2026-09-05", query.Get("endDate"))
			assert.Equal(t, "Lisbon", query.Get("location"))
			assert.Equal(t, "2", query.Get("page"))
			assert.False(t, query.Has("pageSize"))

			w.Write([]byte(`{"pagination":{"current_page":2,"total_elements":1},"data":[{"id":12,"carOwnerId":3}]}`))
		}

		page := 2
		result, err := client.SearchAvailableVehicles(ctx, schema.VehicleSearchQuery{
			StartDate: "2026-09-02",
			EndDate:   "2026-09-05",
			Location:  "Lisbon",
			Page:      &page,
		})

		assert.Nil(t, err)
		assert.Equal(t, 2, result.Pagination.CurrentPage)
		assert.Len(t, result.Data, 1)
		assert.Equal(t, 12, result.Data[0].Id)
	})

	t.Run("should keep an explicit page zero in the query", func(t *testing.T) {
		var handlerFunc http.HandlerFunc
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerFunc(w, r)
		}))
		defer testServer.Close()

		client, _ := testClient(t, testServer.URL)

		handlerFunc = func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "0", r.URL.Query().Get("page"))
			w.Write([]byte(`{"data":[]}`))
		}

		page := 0
		_, err := client.SearchAvailableVehicles(ctx, schema.VehicleSearchQuery{
			StartDate: "2026-09-02",
			EndDate:   "2026-09-05",
			Page:      &page,
		})

		assert.Nil(t, err)
	})
}

func TestVehicleDetails(t *testing.T) {
	ctx := context.Background()

	t.Run("should return the vehicle without a fallback when the owner is known", func(t *testing.T) {
		handlerFuncCalledCount := 0
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerFuncCalledCount++
			assert.Equal(t, "/api/vehicles/12", r.URL.Path)
			w.Write([]byte(`{"id":12,"carOwnerId":3,"vehicleMakeName":"Toyota"}`))
		}))
		defer testServer.Close()

		client, _ := testClient(t, testServer.URL)

		vehicle, err := client.VehicleDetails(ctx, 12)

		assert.Nil(t, err)
		assert.Equal(t, 3, vehicle.CarOwnerId)
		assert.Equal(t, "Toyota", vehicle.VehicleMakeName)
		assert.Equal(t, 1, handlerFuncCalledCount)
	})

	t.Run("should reconcile a missing owner id via the availability search", func(t *testing.T) {
		var handlerFunc http.HandlerFunc
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerFunc(w, r)
		}))
		defer testServer.Close()

		client, _ := testClient(t, testServer.URL)

		searchHit := false
		handlerFunc = func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/vehicles/12" {
				w.Write([]byte(`{"id":12,"vehicleMakeName":"Toyota"}`))
				return
			}

			searchHit = true
			assert.Equal(t, "/api/vehicles/search/available", r.URL.Path)

			query := r.URL.Query()
			today := time.Now().Format("2006-01-02")
			tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
			assert.Equal(t, today, query.Get("startDate"))
			assert.Equal(t, tomorrow, query.Get("endDate"))
			assert.Equal(t, "0", query.Get("page"))
			assert.Equal(t, "100", query.Get("pageSize"))

			w.Write([]byte(`{"data":[{"id":11,"carOwnerId":9},{"id":12,"carOwnerId":3}]}`))
		}

		vehicle, err := client.VehicleDetails(ctx, 12)

		assert.Nil(t, err)
		assert.True(t, searchHit)
		assert.Equal(t, 3, vehicle.CarOwnerId)
	})

	t.Run("should return the vehicle as-is when the fallback search fails", func(t *testing.T) {
		var handlerFunc http.HandlerFunc
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerFunc(w, r)
		}))
		defer testServer.Close()

		client, _ := testClient(t, testServer.URL)

		handlerFunc = func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/vehicles/12" {
				w.Write([]byte(`{"id":12}`))
				return
			}

			w.WriteHeader(http.StatusInternalServerError)
		}

		vehicle, err := client.VehicleDetails(ctx, 12)

		assert.Nil(t, err)
		assert.Equal(t, 0, vehicle.CarOwnerId)
	})

	t.Run("should return the vehicle as-is when the search does not list it", func(t *testing.T) {
		var handlerFunc http.HandlerFunc
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerFunc(w, r)
		}))
		defer testServer.Close()

		client, _ := testClient(t, testServer.URL)

		handlerFunc = func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/vehicles/12" {
				w.Write([]byte(`{"id":12}`))
				return
			}

			w.Write([]byte(`{"data":[{"id":99,"carOwnerId":4}]}`))
		}

		vehicle, err := client.VehicleDetails(ctx, 12)

		assert.Nil(t, err)
		assert.Equal(t, 0, vehicle.CarOwnerId)
	})

	t.Run("should surface backend failures", func(t *testing.T) {
		testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(fmt.Sprintf(`{"message":"vehicle %d not found"}`, 12)))
		}))
		defer testServer.Close()

		client, _ := testClient(t, testServer.URL)

		_, err := client.VehicleDetails(ctx, 12)

		assert.True(t, schema.IsCode(err, schema.BackendError))
		assert.Equal(t, "vehicle 12 not found", err.Error())
	})
}
