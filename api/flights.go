package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/flightdesk/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/search", h.search)
	router.GET("/:id", h.get)
}

func (h *FlightHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponses(list))
}

func (h *FlightHandler) search(c *gin.Context) {
	from, to, date := c.Query("from"), c.Query("to"), c.Query("departureDate")
	if from == "" || to == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required search parameters"})
		return
	}

	passengers := 1
	if raw := c.Query("passengers"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "passengers must be an integer"})
			return
		}
		passengers = n
	}

	found, err := h.service.Search(c.Request.Context(), flights.SearchQuery{
		Origin:        from,
		Destination:   to,
		DepartureDate: date,
		Passengers:    passengers,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponses(found))
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(*flight))
}
