package api

import (
	"net/http"

	"smart-waste/internal/metrics"
	"smart-waste/internal/modules/analysis"
	"smart-waste/internal/modules/assignments"
	"smart-waste/internal/modules/bins"
	"smart-waste/internal/modules/collections"
	"smart-waste/internal/modules/households"
	"smart-waste/internal/modules/maintenance"
	"smart-waste/internal/modules/routes"
	"smart-waste/internal/modules/sensors"
	"smart-waste/internal/modules/users"
	"smart-waste/internal/modules/vehicles"
	"smart-waste/internal/modules/wastetypes"

	"github.com/labstack/echo/v4"
)

// Handlers collects every module handler the router wires up.
type Handlers struct {
	Households  *households.Handler
	Bins        *bins.Handler
	Analysis    *analysis.Handler
	Routes      *routes.Handler
	Users       *users.Handler
	Vehicles    *vehicles.Handler
	Collections *collections.Handler
	Sensors     *sensors.Handler
	Maintenance *maintenance.Handler
	WasteTypes  *wastetypes.Handler
	Assignments *assignments.Handler
}

// SetupRoutes sets up all the API endpoints for the application.
func SetupRoutes(e *echo.Echo, h Handlers) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Welcome to the Smart Waste Management API!"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := e.Group("/api")

	householdGroup := api.Group("/households")
	{
		householdGroup.GET("", h.Households.List)
		householdGroup.POST("", h.Households.Create)
		householdGroup.GET("/:id", h.Households.Get)
		householdGroup.PUT("/:id", h.Households.Update)
		householdGroup.DELETE("/:id", h.Households.Delete)
	}

	binGroup := api.Group("/bins")
	{
		binGroup.GET("", h.Bins.List)
		binGroup.POST("", h.Bins.Create)
		binGroup.GET("/:id", h.Bins.Get)
		binGroup.PUT("/:id", h.Bins.Update)
		binGroup.DELETE("/:id", h.Bins.Delete)
	}

	analysisGroup := api.Group("/analysis")
	{
		analysisGroup.GET("/far-households", h.Analysis.FarHouseholds)
		analysisGroup.POST("/suggest", h.Analysis.SuggestBin)
		analysisGroup.GET("/suggested", h.Analysis.ListSuggestions)
		analysisGroup.DELETE("/suggested", h.Analysis.ClearSuggestions)
		analysisGroup.GET("/bin-coverage/:binId", h.Analysis.BinCoverage)
		analysisGroup.GET("/avg-distance-per-ward", h.Analysis.AvgDistancePerWard)
	}

	routeGroup := api.Group("/routes")
	{
		routeGroup.GET("", h.Routes.ListRoutes)
		routeGroup.POST("", h.Routes.CreateRoute)
		routeGroup.GET("/:routeId", h.Routes.GetRoute)
		routeGroup.PUT("/:routeId", h.Routes.UpdateRoute)
		routeGroup.DELETE("/:routeId", h.Routes.DeleteRoute)

		// Ordered stop management
		routeGroup.GET("/:routeId/bins", h.Routes.ListBins)
		routeGroup.POST("/:routeId/bins", h.Routes.AddBin)
		routeGroup.DELETE("/:routeId/bins/:binId", h.Routes.RemoveBin)
	}

	userGroup := api.Group("/users")
	{
		userGroup.GET("", h.Users.List)
		userGroup.POST("", h.Users.Create)
		userGroup.GET("/:id", h.Users.Get)
		userGroup.PUT("/:id", h.Users.Update)
		userGroup.DELETE("/:id", h.Users.Delete)
	}

	vehicleGroup := api.Group("/vehicles")
	{
		vehicleGroup.GET("", h.Vehicles.List)
		vehicleGroup.POST("", h.Vehicles.Create)
		vehicleGroup.GET("/:id", h.Vehicles.Get)
		vehicleGroup.PUT("/:id", h.Vehicles.Update)
		vehicleGroup.DELETE("/:id", h.Vehicles.Delete)
	}

	collectionGroup := api.Group("/collections")
	{
		collectionGroup.GET("", h.Collections.List)
		collectionGroup.POST("", h.Collections.Create)
		collectionGroup.GET("/:id", h.Collections.Get)
		collectionGroup.PUT("/:id", h.Collections.Update)
		collectionGroup.DELETE("/:id", h.Collections.Delete)
	}

	sensorGroup := api.Group("/sensors")
	{
		sensorGroup.GET("", h.Sensors.List)
		sensorGroup.POST("", h.Sensors.Create)
		sensorGroup.GET("/:id", h.Sensors.Get)
		sensorGroup.PUT("/:id", h.Sensors.Update)
		sensorGroup.DELETE("/:id", h.Sensors.Delete)
	}

	maintenanceGroup := api.Group("/maintenance")
	{
		maintenanceGroup.GET("", h.Maintenance.List)
		maintenanceGroup.POST("", h.Maintenance.Create)
		maintenanceGroup.GET("/:id", h.Maintenance.Get)
		maintenanceGroup.PUT("/:id", h.Maintenance.Update)
		maintenanceGroup.DELETE("/:id", h.Maintenance.Delete)
	}

	wasteTypeGroup := api.Group("/waste-types")
	{
		wasteTypeGroup.GET("", h.WasteTypes.List)
		wasteTypeGroup.POST("", h.WasteTypes.Create)
		wasteTypeGroup.GET("/:id", h.WasteTypes.Get)
		wasteTypeGroup.PUT("/:id", h.WasteTypes.Update)
		wasteTypeGroup.DELETE("/:id", h.WasteTypes.Delete)
	}

	assignmentGroup := api.Group("/assignments")
	{
		assignmentGroup.GET("", h.Assignments.List)
		assignmentGroup.POST("", h.Assignments.Create)
		assignmentGroup.GET("/household/:householdId", h.Assignments.ListByHousehold)
		assignmentGroup.GET("/bin/:binId", h.Assignments.ListByBin)
		assignmentGroup.GET("/:id", h.Assignments.Get)
		assignmentGroup.PUT("/:id", h.Assignments.Update)
		assignmentGroup.DELETE("/:id", h.Assignments.Delete)
	}
}
