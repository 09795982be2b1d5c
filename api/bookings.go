package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/service/booking"
	"github.com/Domenick1991/flightdesk/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type BookingHandler struct {
	service booking.BookingUseCase
	flights flights.FlightUseCase
}

type passengerRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
}

type createBookingRequest struct {
	FlightID         string             `json:"flightId" binding:"required"`
	Passengers       int                `json:"passengers"`
	PassengerDetails []passengerRequest `json:"passengerDetails" binding:"dive"`
}

func NewBookingHandler(service booking.BookingUseCase, flights flights.FlightUseCase) *BookingHandler {
	return &BookingHandler{service: service, flights: flights}
}

// Register expects the group to be behind RequireAuth.
func (h *BookingHandler) Register(router *gin.RouterGroup, idempotency gin.HandlerFunc) {
	router.POST("", idempotency, h.create)
	router.GET("/my-bookings", h.myBookings)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		UserID:     c.GetString(ctxUserID),
		FlightID:   req.FlightID,
		Passengers: req.Passengers,
		PassengerDetails: lo.Map(req.PassengerDetails, func(p passengerRequest, _ int) domain.Passenger {
			return domain.Passenger(p)
		}),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	// The booking is already recorded; a failed flight read only drops the
	// embedded flight from the response.
	flight, err := h.flights.GetByID(c.Request.Context(), created.FlightID)
	if err != nil {
		flight = nil
	}
	c.JSON(http.StatusCreated, toBookingResponse(*created, flight))
}

// myBookings joins each booking with the flight's current state. A flight
// that no longer exists is omitted from its booking.
func (h *BookingHandler) myBookings(c *gin.Context) {
	ctx := c.Request.Context()
	list, err := h.service.ListByUser(ctx, c.GetString(ctxUserID))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]bookingResponse, 0, len(list))
	for _, b := range list {
		flight, err := h.flights.GetByID(ctx, b.FlightID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			writeError(c, err)
			return
		}
		resp = append(resp, toBookingResponse(b, flight))
	}
	c.JSON(http.StatusOK, resp)
}
