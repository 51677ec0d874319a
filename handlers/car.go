package handlers

import (
	"net/http"
	"strconv"

	"swatrental/models"
	"swatrental/services/catalog"
	"swatrental/utils"

	"github.com/gin-gonic/gin"
)

type CarHandler struct {
	Service catalog.CatalogService
}

func NewCarHandler(svc catalog.CatalogService) *CarHandler {
	return &CarHandler{Service: svc}
}

// carFilter reads the listing filters from the query string.
func carFilter(c *gin.Context) (models.CarFilter, error) {
	f := models.CarFilter{
		Category:     c.Query("category"),
		Transmission: c.Query("transmission"),
	}
	if v := c.Query("available"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, utils.Validation("available must be true or false")
		}
		f.Available = &b
	}
	if v := c.Query("seats"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, utils.Validation("seats must be a number")
		}
		f.MinSeats = n
	}
	for name, dst := range map[string]*float64{"minPrice": &f.MinPrice, "maxPrice": &f.MaxPrice} {
		if v := c.Query(name); v != "" {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return f, utils.Validation(name + " must be a number")
			}
			*dst = n
		}
	}
	return f, nil
}

func (h *CarHandler) ListCars(c *gin.Context) {
	filter, err := carFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	cars, err := h.Service.ListCars(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, cars, len(cars))
}

func (h *CarHandler) GetCar(c *gin.Context) {
	car, err := h.Service.GetCar(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, car)
}

// CreateCar handles POST /cars. New cars are available unless the body says otherwise.
func (h *CarHandler) CreateCar(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	car := models.Car{Available: true}
	if err := c.ShouldBindJSON(&car); err != nil {
		badRequest(c, err)
		return
	}
	created, err := h.Service.CreateCar(c.Request.Context(), actor, car)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, created)
}

func (h *CarHandler) UpdateCar(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var update models.CarUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, err)
		return
	}
	car, err := h.Service.UpdateCar(c.Request.Context(), actor, c.Param("id"), update)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, car)
}

func (h *CarHandler) DeleteCar(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := h.Service.DeleteCar(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Car removed", nil)
}
