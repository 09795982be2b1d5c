package domain

type Endpoint struct {
	Airport string
	City    string
	Date    string
	Time    string
}

type Flight struct {
	ID             string
	FlightNumber   string
	Airline        string
	Departure      Endpoint
	Arrival        Endpoint
	Duration       string
	PriceCents     int64
	TotalSeats     int
	AvailableSeats int
	Aircraft       string
	FareClass      string
}

// HasSeats reports whether at least n seats are still available.
func (f Flight) HasSeats(n int) bool {
	return f.AvailableSeats >= n
}
