package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/carrental/internal/database/settings"
	"github.com/mrlokans/carrental/internal/entities"
	"github.com/mrlokans/carrental/internal/services"
)

// RentalsController serves the bookings tab and /api/rentals.
type RentalsController struct {
	desk         RentalDesk
	exportStatus ExportStatusReader
	exports      bool
}

func NewRentalsController(desk RentalDesk, exportStatus ExportStatusReader, exportsEnabled bool) *RentalsController {
	return &RentalsController{
		desk:         desk,
		exportStatus: exportStatus,
		exports:      exportsEnabled,
	}
}

type bookingRequest struct {
	CarID      json.RawMessage `json:"car_id"`
	CustomerID json.RawMessage `json:"customer_id"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
}

// Page handles GET /rentals[?status=]
func (rc *RentalsController) Page(c *gin.Context) {
	status, err := services.ParseRentalStatus(c.Query("status"))
	if err != nil {
		redirectWithError(c, "/rentals", err)
		return
	}

	rentals, err := rc.desk.ListRentals(status)
	if err != nil {
		respondInternalError(c, err, "list rentals")
		return
	}
	cars, err := rc.desk.ListCars()
	if err != nil {
		respondInternalError(c, err, "list cars")
		return
	}
	customers, err := rc.desk.ListCustomers()
	if err != nil {
		respondInternalError(c, err, "list customers")
		return
	}

	carLabels := make(map[uint]string, len(rentals))
	customerLabels := make(map[uint]string, len(rentals))
	for _, r := range rentals {
		carLabels[r.CarID] = fmt.Sprintf("#%d (deleted)", r.CarID)
		customerLabels[r.CustomerID] = fmt.Sprintf("#%d", r.CustomerID)
	}
	available := make([]entities.Car, 0, len(cars))
	for _, car := range cars {
		carLabels[car.ID] = fmt.Sprintf("#%d %s %s", car.ID, car.Brand, car.Model)
		if car.IsAvailable() {
			available = append(available, car)
		}
	}
	for _, customer := range customers {
		customerLabels[customer.ID] = fmt.Sprintf("#%d %s", customer.ID, customer.Name)
	}

	data := gin.H{
		"Title":          "Rentals",
		"Rentals":        rentals,
		"Status":         string(status),
		"AvailableCars":  available,
		"Customers":      customers,
		"CarLabels":      carLabels,
		"CustomerLabels": customerLabels,
		"ExportsEnabled": rc.exports,
		"LastExport":     settings.ExportStatus{Status: "never"},
	}
	if rc.exportStatus != nil {
		if last, err := rc.exportStatus.LastExport(); err == nil {
			data["LastExport"] = last
		}
	}

	c.HTML(http.StatusOK, "rentals.html", pageData(c, "rentals", data))
}

// Create handles POST /rentals (form)
func (rc *RentalsController) Create(c *gin.Context) {
	var input services.BookingInput
	_ = c.ShouldBind(&input)

	rental, err := rc.desk.BookRental(input)
	if err != nil {
		redirectWithError(c, "/rentals", err)
		return
	}
	redirectWithNotice(c, "/rentals",
		fmt.Sprintf("Rental %s booked. Total %d.", rental.Reference, rental.TotalPrice))
}

// Return handles POST /rentals/:id/return (form)
func (rc *RentalsController) Return(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, err := rc.desk.ReturnRental(id); err != nil {
		redirectWithError(c, "/rentals", err)
		return
	}
	redirectWithNotice(c, "/rentals", "Car returned successfully.")
}

// Delete handles POST /rentals/:id/delete (form)
func (rc *RentalsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := rc.desk.DeleteRental(id); err != nil {
		redirectWithError(c, "/rentals", err)
		return
	}
	redirectWithNotice(c, "/rentals", fmt.Sprintf("Rental #%d deleted.", id))
}

// List handles GET /api/rentals[?status=]
func (rc *RentalsController) List(c *gin.Context) {
	status, err := services.ParseRentalStatus(c.Query("status"))
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	rentals, err := rc.desk.ListRentals(status)
	if err != nil {
		respondInternalError(c, err, "list rentals")
		return
	}
	respondList(c, rentals)
}

// Get handles GET /api/rentals/:id
func (rc *RentalsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	rental, err := rc.desk.GetRental(id)
	if err != nil {
		respondDeskError(c, err, "rental")
		return
	}
	c.JSON(http.StatusOK, rental)
}

// CreateAPI handles POST /api/rentals
func (rc *RentalsController) CreateAPI(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid JSON body")
		return
	}

	rental, err := rc.desk.BookRental(services.BookingInput{
		CarID:      jsonText(req.CarID),
		CustomerID: jsonText(req.CustomerID),
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		respondDeskError(c, err, "rental")
		return
	}
	respondCreated(c, rental)
}

// ReturnAPI handles POST /api/rentals/:id/return
func (rc *RentalsController) ReturnAPI(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	rental, err := rc.desk.ReturnRental(id)
	if err != nil {
		respondDeskError(c, err, "rental")
		return
	}
	respondSuccess(c, "car returned", rental)
}

// DeleteAPI handles DELETE /api/rentals/:id
func (rc *RentalsController) DeleteAPI(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := rc.desk.DeleteRental(id); err != nil {
		respondDeskError(c, err, "rental")
		return
	}
	respondSuccess(c, "rental deleted", gin.H{"id": id})
}
