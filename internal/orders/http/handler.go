package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"order-fulfillment/internal/orders"

	"github.com/gin-gonic/gin"
)

type OrderProcessor interface {
	ProcessOrder(ctx context.Context, products []orders.Product) error
}

type ProductStore interface {
	GetProduct(ctx context.Context, id int64) (orders.Product, error)
	GetOrder(ctx context.Context, id int64) (orders.Order, error)
}

type Handler struct {
	processor OrderProcessor
	store     ProductStore
}

func NewHandler(processor OrderProcessor, store ProductStore) *Handler {
	return &Handler{processor: processor, store: store}
}

type processOrderResponse struct {
	ID int64 `json:"id" example:"1"`
}

type errorResponse struct {
	Error string `json:"error" example:"order not found"`
}

// ProcessOrder godoc
// @Summary      Process an order
// @Description  Runs every product in the order through its fulfillment rules.
// @Tags         orders
// @Produce      json
// @Param        id   path      int  true  "Order ID"
// @Success      200  {object}  processOrderResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /orders/{id}/process [post]
func (h *Handler) ProcessOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}

	order, err := h.store.GetOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to load order"})
		return
	}

	if err := h.processor.ProcessOrder(c.Request.Context(), order.Products); err != nil {
		// Bad catalog data (unknown type, absent date fields) is the
		// caller's problem to fix, not a server fault.
		if errors.Is(err, orders.ErrUnsupportedProductType) || errors.Is(err, orders.ErrMissingDateFields) {
			c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to process order"})
		return
	}

	c.JSON(http.StatusOK, processOrderResponse{ID: order.ID})
}

// GetProduct godoc
// @Summary      Get a product by ID
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  orders.Product
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /products/{id} [get]
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid product id"})
		return
	}

	product, err := h.store.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to get product"})
		return
	}

	c.JSON(http.StatusOK, product)
}
