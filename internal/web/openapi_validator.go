package web

import (
	"net/http"

	"bitbucket.org/crgw/rental-gateway/internal/tools/middleware"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/gin-gonic/gin"
)

// OpenapiValidator validates incoming requests against the served
// document. Validation is advisory infrastructure: a missing or broken
// document disables it instead of taking the service down, and paths
// outside the document (pprof, status) pass through untouched.
func OpenapiValidator(location string) gin.HandlerFunc {
	route := loadOpenapiRouter(location)
	if route == nil {
		return func(c *gin.Context) {}
	}

	return func(c *gin.Context) {
		matched, pathParams, err := route.FindRoute(c.Request)
		if err != nil {
			c.Next()
			return
		}

		input := &openapi3filter.RequestValidationInput{
			Request:    c.Request,
			PathParams: pathParams,
			Route:      matched,
			Options: &openapi3filter.Options{
				AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
			},
		}

		if err := openapi3filter.ValidateRequest(c.Request.Context(), input); err != nil {
			middleware.HandleError(c, http.StatusBadRequest, "Request validation failed", err)
			return
		}

		c.Next()
	}
}

func loadOpenapiRouter(location string) routers.Router {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromFile(location)
	if err != nil {
		return nil
	}

	if err := doc.Validate(loader.Context); err != nil {
		return nil
	}

	route, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil
	}

	return route
}
