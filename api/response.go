package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/service/users"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

type endpointResponse struct {
	Airport string `json:"airport"`
	City    string `json:"city"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

type flightResponse struct {
	ID             string           `json:"id"`
	FlightNumber   string           `json:"flightNumber"`
	Airline        string           `json:"airline"`
	Departure      endpointResponse `json:"departure"`
	Arrival        endpointResponse `json:"arrival"`
	Duration       string           `json:"duration"`
	Price          float64          `json:"price"`
	AvailableSeats int              `json:"availableSeats"`
	TotalSeats     int              `json:"totalSeats"`
	Aircraft       string           `json:"aircraft"`
	Class          string           `json:"class"`
}

type bookingResponse struct {
	ID               string             `json:"id"`
	UserID           string             `json:"userId"`
	FlightID         string             `json:"flightId"`
	Passengers       int                `json:"passengers"`
	PassengerDetails []domain.Passenger `json:"passengerDetails"`
	TotalPrice       float64            `json:"totalPrice"`
	Status           string             `json:"status"`
	CreatedAt        string             `json:"createdAt"`
	Flight           *flightResponse    `json:"flight,omitempty"`
}

type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	CreatedAt string `json:"createdAt"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func centsToAmount(cents int64) float64 {
	return float64(cents) / 100
}

func toFlightResponse(f domain.Flight) flightResponse {
	return flightResponse{
		ID:             f.ID,
		FlightNumber:   f.FlightNumber,
		Airline:        f.Airline,
		Departure:      endpointResponse(f.Departure),
		Arrival:        endpointResponse(f.Arrival),
		Duration:       f.Duration,
		Price:          centsToAmount(f.PriceCents),
		AvailableSeats: f.AvailableSeats,
		TotalSeats:     f.TotalSeats,
		Aircraft:       f.Aircraft,
		Class:          f.FareClass,
	}
}

func toFlightResponses(flights []domain.Flight) []flightResponse {
	return lo.Map(flights, func(f domain.Flight, _ int) flightResponse {
		return toFlightResponse(f)
	})
}

func toBookingResponse(b domain.Booking, flight *domain.Flight) bookingResponse {
	resp := bookingResponse{
		ID:               b.ID,
		UserID:           b.UserID,
		FlightID:         b.FlightID,
		Passengers:       b.Passengers,
		PassengerDetails: b.PassengerDetails,
		TotalPrice:       centsToAmount(b.TotalPriceCents),
		Status:           string(b.Status),
		CreatedAt:        b.CreatedAt.Format(time.RFC3339),
	}
	if resp.PassengerDetails == nil {
		resp.PassengerDetails = []domain.Passenger{}
	}
	if flight != nil {
		fr := toFlightResponse(*flight)
		resp.Flight = &fr
	}
	return resp
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func toAuthResponse(res *users.AuthResult) authResponse {
	return authResponse{Token: res.Token, User: toUserResponse(res.User)}
}

// writeError maps service errors onto HTTP statuses. Unexpected errors are
// attached to the context for the request logger and hidden from the client.
func writeError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors

	switch {
	case errors.Is(err, domain.ErrFlightNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Flight not found"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, domain.ErrInsufficientCapacity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough seats available"})
	case errors.Is(err, domain.ErrInvalidPassengerDetails), errors.Is(err, domain.ErrInvalidSeatCount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": verrs.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong!"})
	}
}
