package http

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redsalud/agenda-engine/internal/config"
	"github.com/redsalud/agenda-engine/internal/core/domain"
	"github.com/redsalud/agenda-engine/internal/core/ports/in"
	"github.com/redsalud/agenda-engine/internal/utils"
)

// AgendaController serves the form-validation surface of the admin UI.
// Violations and conflicts travel back as 200 responses with valid=false;
// they are outcomes, not errors. Only malformed requests and transport
// failures map onto error statuses.
type AgendaController struct {
	agendaUseCase in.AgendaUseCase
	statusUseCase in.StatusUseCase
	cfg           *config.Config
	location      *time.Location
}

func NewAgendaController(agendaUseCase in.AgendaUseCase, statusUseCase in.StatusUseCase, cfg *config.Config) *AgendaController {
	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		loc = time.UTC
	}

	return &AgendaController{
		agendaUseCase: agendaUseCase,
		statusUseCase: statusUseCase,
		cfg:           cfg,
		location:      loc,
	}
}

func (c *AgendaController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.POST("/agenda/:providerId/validate", c.validateAgenda)
		api.POST("/agenda/:providerId/slots", c.generateSlots)
		api.GET("/providers/:providerId/status", c.providerStatus)
		api.GET("/affiliates/:affiliateId/status", c.affiliateStatus)
	}
}

type AgendaEntryRequest struct {
	Days                []string `json:"days" binding:"required,min=1"`
	Start               string   `json:"start" binding:"required"`
	End                 string   `json:"end" binding:"required"`
	SlotDurationMinutes int      `json:"slotDurationMinutes" binding:"required"`
	SpecialtyRef        string   `json:"specialtyRef"`
	LocationAddress     string   `json:"locationAddress" binding:"required"`
}

type ValidateAgendaRequest struct {
	Entries []AgendaEntryRequest `json:"entries" binding:"required,min=1"`
}

type GenerateSlotsRequest struct {
	Address string `json:"address" binding:"required"`
	Day     string `json:"day" binding:"required"`
}

func (c *AgendaController) validateAgenda(ctx *gin.Context) {
	providerID, err := uuid.Parse(ctx.Param("providerId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid provider ID format"})
		return
	}

	var req ValidateAgendaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposed := make([]domain.AgendaEntry, 0, len(req.Entries))
	for i, raw := range req.Entries {
		entry, err := domain.NewScheduleEntry(raw.Days, raw.Start, raw.End, raw.SlotDurationMinutes, raw.SpecialtyRef)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error":      err.Error(),
				"entryIndex": i,
			})
			return
		}
		proposed = append(proposed, domain.AgendaEntry{
			ScheduleEntry:   entry,
			LocationAddress: raw.LocationAddress,
		})
	}

	verdict, err := c.agendaUseCase.ValidateAgenda(ctx.Request.Context(), providerID, proposed)
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, verdict)
}

func (c *AgendaController) generateSlots(ctx *gin.Context) {
	providerID, err := uuid.Parse(ctx.Param("providerId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid provider ID format"})
		return
	}

	var req GenerateSlotsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	day, err := domain.ParseWeekday(req.Day)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slots, err := c.agendaUseCase.GenerateAgendaSlots(ctx.Request.Context(), providerID, req.Address, day)
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, slots)
}

func (c *AgendaController) providerStatus(ctx *gin.Context) {
	providerID, err := uuid.Parse(ctx.Param("providerId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid provider ID format"})
		return
	}

	asOf, ok := c.asOfDate(ctx)
	if !ok {
		return
	}

	status, err := c.statusUseCase.ResolveProviderStatus(ctx.Request.Context(), providerID, asOf)
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, status)
}

func (c *AgendaController) affiliateStatus(ctx *gin.Context) {
	affiliateID, err := uuid.Parse(ctx.Param("affiliateId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid affiliate ID format"})
		return
	}

	asOf, ok := c.asOfDate(ctx)
	if !ok {
		return
	}

	status, err := c.statusUseCase.ResolveAffiliateStatus(ctx.Request.Context(), affiliateID, asOf)
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, status)
}

// asOfDate reads the optional asOf query parameter, defaulting to today in
// the configured timezone. The engine itself never reads the clock; the
// default is resolved here at the edge.
func (c *AgendaController) asOfDate(ctx *gin.Context) (domain.Date, bool) {
	raw := ctx.Query("asOf")
	if raw == "" {
		return domain.DateOf(utils.Today(c.location)), true
	}

	asOf, err := domain.ParseDate(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date format, expected YYYY-MM-DD"})
		return domain.Date{}, false
	}
	return asOf, true
}

func (c *AgendaController) renderError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidTimeFormat),
		errors.Is(err, domain.ErrUnknownWeekday):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (c *AgendaController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range c.cfg.Auth.BasicClients {
			if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
				subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
				ctx.Next()
				return
			}
		}

		ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}
