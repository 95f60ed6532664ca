package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/carrental/internal/services"
)

// CarsController serves the car inventory tab and /api/cars.
type CarsController struct {
	desk CarDesk
}

func NewCarsController(desk CarDesk) *CarsController {
	return &CarsController{desk: desk}
}

// carRequest accepts the daily price as a JSON number or a string; the
// desk does the integer validation either way.
type carRequest struct {
	Model       string          `json:"model"`
	Brand       string          `json:"brand"`
	PricePerDay json.RawMessage `json:"price_per_day"`
}

// Page handles GET /cars[?q=]
func (cc *CarsController) Page(c *gin.Context) {
	query := c.Query("q")
	cars, err := cc.desk.SearchCars(query)
	if err != nil {
		respondInternalError(c, err, "list cars")
		return
	}

	c.HTML(http.StatusOK, "cars.html", pageData(c, "cars", gin.H{
		"Title": "Cars",
		"Cars":  cars,
		"Query": query,
	}))
}

// Create handles POST /cars (form)
func (cc *CarsController) Create(c *gin.Context) {
	car, err := cc.desk.AddCar(services.CarInput{
		Model: c.PostForm("model"),
		Brand: c.PostForm("brand"),
		Price: c.PostForm("price_per_day"),
	})
	if err != nil {
		redirectWithError(c, "/cars", err)
		return
	}
	redirectWithNotice(c, "/cars", fmt.Sprintf("Car #%d added.", car.ID))
}

// Delete handles POST /cars/:id/delete (form)
func (cc *CarsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := cc.desk.DeleteCar(id); err != nil {
		redirectWithError(c, "/cars", err)
		return
	}
	redirectWithNotice(c, "/cars", fmt.Sprintf("Car #%d deleted.", id))
}

// List handles GET /api/cars
func (cc *CarsController) List(c *gin.Context) {
	cars, err := cc.desk.ListCars()
	if err != nil {
		respondInternalError(c, err, "list cars")
		return
	}
	respondList(c, cars)
}

// Search handles GET /api/cars/search?q=
func (cc *CarsController) Search(c *gin.Context) {
	cars, err := cc.desk.SearchCars(c.Query("q"))
	if err != nil {
		respondInternalError(c, err, "search cars")
		return
	}
	respondList(c, cars)
}

// Get handles GET /api/cars/:id
func (cc *CarsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	car, err := cc.desk.GetCar(id)
	if err != nil {
		respondDeskError(c, err, "car")
		return
	}
	c.JSON(http.StatusOK, car)
}

// Rentals handles GET /api/cars/:id/rentals
func (cc *CarsController) Rentals(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	rentals, err := cc.desk.CarRentals(id)
	if err != nil {
		respondDeskError(c, err, "car")
		return
	}
	respondList(c, rentals)
}

// CreateAPI handles POST /api/cars
func (cc *CarsController) CreateAPI(c *gin.Context) {
	var req carRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid JSON body")
		return
	}

	car, err := cc.desk.AddCar(services.CarInput{
		Model: req.Model,
		Brand: req.Brand,
		Price: jsonText(req.PricePerDay),
	})
	if err != nil {
		respondDeskError(c, err, "car")
		return
	}
	respondCreated(c, car)
}

// DeleteAPI handles DELETE /api/cars/:id
func (cc *CarsController) DeleteAPI(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := cc.desk.DeleteCar(id); err != nil {
		respondDeskError(c, err, "car")
		return
	}
	respondSuccess(c, "car deleted", gin.H{"id": id})
}
