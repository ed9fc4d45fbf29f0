package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/flightboard/internal/repository"
	"github.com/Domenick1991/flightboard/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:number", h.get)
	router.GET("/:number/events", h.events)
}

func (h *FlightHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "flight not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) events(c *gin.Context) {
	events, err := h.service.EventsByFlight(c.Request.Context(), c.Param("number"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, events)
}
