// Package http exposes the pricing use cases over a JSON API served by echo.
package http

import (
	"net/http"
	"strconv"
	"strings"

	"pricing/internal/core/application/usecases/commands"
	"pricing/internal/core/application/usecases/queries"
	"pricing/internal/core/domain/model/result"
	"pricing/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server maps HTTP requests onto command and query handlers.
type Server struct {
	// Command handlers
	calculateHandler commands.CalculatePriceCommandHandler
	compareHandler   commands.CompareCarriersCommandHandler
	bulkHandler      commands.BulkCalculateCommandHandler
	discountsHandler commands.ApplyDiscountsCommandHandler

	// Query handlers
	resolveZoneHandler  queries.ResolveZoneQueryHandler
	listCarriersHandler queries.ListCarriersQueryHandler
	listZonesHandler    queries.ListZonesQueryHandler

	snapshotVersion func() string
}

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	Calculate    commands.CalculatePriceCommandHandler
	Compare      commands.CompareCarriersCommandHandler
	Bulk         commands.BulkCalculateCommandHandler
	Discounts    commands.ApplyDiscountsCommandHandler
	ResolveZone  queries.ResolveZoneQueryHandler
	ListCarriers queries.ListCarriersQueryHandler
	ListZones    queries.ListZonesQueryHandler
}

// NewServer creates a server. snapshotVersion reports the published rule
// snapshot on the health endpoint.
func NewServer(h Handlers, snapshotVersion func() string) *Server {
	return &Server{
		calculateHandler:    h.Calculate,
		compareHandler:      h.Compare,
		bulkHandler:         h.Bulk,
		discountsHandler:    h.Discounts,
		resolveZoneHandler:  h.ResolveZone,
		listCarriersHandler: h.ListCarriers,
		listZonesHandler:    h.ListZones,
		snapshotVersion:     snapshotVersion,
	}
}

// Register mounts the API routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/quotes", s.CalculateQuote)
	api.POST("/quotes/compare", s.CompareCarriers)
	api.POST("/quotes/bulk", s.BulkCalculate)
	api.POST("/discounts/apply", s.ApplyDiscounts)
	api.GET("/zones/resolve", s.ResolveZone)
	api.GET("/zones", s.GetZones)
	api.GET("/carriers", s.GetCarriers)
}

// CompareRequest is the body of POST /api/v1/quotes/compare.
type CompareRequest struct {
	commands.ShipmentRequest

	Carriers []string `json:"carriers"`
}

// BulkRequest is the body of POST /api/v1/quotes/bulk.
type BulkRequest struct {
	Items            []commands.ShipmentRequest `json:"items"`
	StopOnFirstError bool                       `json:"stopOnFirstError"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status          string `json:"status"`
	SnapshotVersion string `json:"snapshotVersion"`
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	version := ""
	if s.snapshotVersion != nil {
		version = s.snapshotVersion()
	}
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", SnapshotVersion: version})
}

// CalculateQuote handles POST /api/v1/quotes - prices one shipment.
func (s *Server) CalculateQuote(c echo.Context) error {
	var req commands.ShipmentRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	cmd, err := commands.NewCalculatePriceCommand(req)
	if err != nil {
		return writeError(c, err)
	}
	quote, err := s.calculateHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, quote)
}

// CompareCarriers handles POST /api/v1/quotes/compare.
func (s *Server) CompareCarriers(c echo.Context) error {
	var req CompareRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	cmd, err := commands.NewCompareCarriersCommand(req.ShipmentRequest, req.Carriers)
	if err != nil {
		return writeError(c, err)
	}
	resp, err := s.compareHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// BulkCalculate handles POST /api/v1/quotes/bulk.
func (s *Server) BulkCalculate(c echo.Context) error {
	var req BulkRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	cmd, err := commands.NewBulkCalculateCommand(req.Items, req.StopOnFirstError)
	if err != nil {
		return writeError(c, err)
	}
	resp, err := s.bulkHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// ApplyDiscounts handles POST /api/v1/discounts/apply - runs the discount
// engine on a caller supplied base price.
func (s *Server) ApplyDiscounts(c echo.Context) error {
	var req commands.DiscountRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	cmd, err := commands.NewApplyDiscountsCommand(req)
	if err != nil {
		return writeError(c, err)
	}
	res, err := s.discountsHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, discountResponse(res))
}

// ResolveZone handles GET /api/v1/zones/resolve?country=&postalCode=&lat=&lng=.
func (s *Server) ResolveZone(c echo.Context) error {
	lat, latErr := floatParam(c, "lat")
	lng, lngErr := floatParam(c, "lng")
	if latErr != nil || lngErr != nil {
		var violations []errs.Violation
		if latErr != nil {
			violations = append(violations, errs.Violation{Field: "lat", Message: "must be a number"})
		}
		if lngErr != nil {
			violations = append(violations, errs.Violation{Field: "lng", Message: "must be a number"})
		}
		return writeError(c, errs.NewValidationError(violations...))
	}

	query, err := queries.NewResolveZoneQuery(c.QueryParam("country"), c.QueryParam("postalCode"), lat, lng)
	if err != nil {
		return writeError(c, err)
	}
	res, err := s.resolveZoneHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// GetZones handles GET /api/v1/zones[?all=true].
func (s *Server) GetZones(c echo.Context) error {
	all, _ := strconv.ParseBool(c.QueryParam("all"))
	zones, err := s.listZonesHandler.Handle(c.Request().Context(), queries.NewListZonesQuery(all))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, zones)
}

// GetCarriers handles GET /api/v1/carriers - lists active carriers.
func (s *Server) GetCarriers(c echo.Context) error {
	carriers, err := s.listCarriersHandler.Handle(c.Request().Context(), queries.NewListCarriersQuery())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, carriers)
}

// DiscountResponse is the wire form of a discount run.
type DiscountResponse struct {
	result.RuleResult

	// Valid is false when rule violations stopped the run.
	Valid bool `json:"valid"`
}

func discountResponse(res result.RuleResult) DiscountResponse {
	return DiscountResponse{RuleResult: res, Valid: len(res.Errors) == 0}
}

func floatParam(c echo.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil //nolint:nilnil // absent parameter
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
