package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/carrental/internal/services"
)

// CustomersController serves the customer roster tab and /api/customers.
type CustomersController struct {
	desk CustomerDesk
}

func NewCustomersController(desk CustomerDesk) *CustomersController {
	return &CustomersController{desk: desk}
}

// Page handles GET /customers[?q=]
func (cc *CustomersController) Page(c *gin.Context) {
	query := c.Query("q")
	customers, err := cc.desk.SearchCustomers(query)
	if err != nil {
		respondInternalError(c, err, "list customers")
		return
	}

	c.HTML(http.StatusOK, "customers.html", pageData(c, "customers", gin.H{
		"Title":     "Customers",
		"Customers": customers,
		"Query":     query,
	}))
}

// Create handles POST /customers (form)
func (cc *CustomersController) Create(c *gin.Context) {
	var input services.CustomerInput
	_ = c.ShouldBind(&input)

	customer, err := cc.desk.AddCustomer(input)
	if err != nil {
		redirectWithError(c, "/customers", err)
		return
	}
	redirectWithNotice(c, "/customers", fmt.Sprintf("Customer #%d added.", customer.ID))
}

// Delete handles POST /customers/:id/delete (form)
func (cc *CustomersController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := cc.desk.DeleteCustomer(id); err != nil {
		redirectWithError(c, "/customers", err)
		return
	}
	redirectWithNotice(c, "/customers", fmt.Sprintf("Customer #%d deleted.", id))
}

// List handles GET /api/customers
func (cc *CustomersController) List(c *gin.Context) {
	customers, err := cc.desk.ListCustomers()
	if err != nil {
		respondInternalError(c, err, "list customers")
		return
	}
	respondList(c, customers)
}

// Search handles GET /api/customers/search?q=
func (cc *CustomersController) Search(c *gin.Context) {
	customers, err := cc.desk.SearchCustomers(c.Query("q"))
	if err != nil {
		respondInternalError(c, err, "search customers")
		return
	}
	respondList(c, customers)
}

// Get handles GET /api/customers/:id
func (cc *CustomersController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	customer, err := cc.desk.GetCustomer(id)
	if err != nil {
		respondDeskError(c, err, "customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// CreateAPI handles POST /api/customers
func (cc *CustomersController) CreateAPI(c *gin.Context) {
	var input services.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid JSON body")
		return
	}

	customer, err := cc.desk.AddCustomer(input)
	if err != nil {
		respondDeskError(c, err, "customer")
		return
	}
	respondCreated(c, customer)
}

// DeleteAPI handles DELETE /api/customers/:id
func (cc *CustomersController) DeleteAPI(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := cc.desk.DeleteCustomer(id); err != nil {
		respondDeskError(c, err, "customer")
		return
	}
	respondSuccess(c, "customer deleted", gin.H{"id": id})
}
