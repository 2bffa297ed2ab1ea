package http

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/Dehaka844/chatbot-pedidos/internal/services"

	"github.com/gin-gonic/gin"
)

const IdempotencyHeader = "Idempotency-Key"

type Handler struct {
	chat   *services.ChatService
	orders *services.OrderService
	menu   *services.MenuService
}

func NewHandler(chat *services.ChatService, orders *services.OrderService, menu *services.MenuService) *Handler {
	return &Handler{chat: chat, orders: orders, menu: menu}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/menu", h.ListMenu)
	r.POST("/chat", h.Chat)
	r.POST("/orders", h.CreateOrder)
	r.GET("/orders/:id", h.GetOrder)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Chat always answers 200 with a {response_for_user, cart} body.
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	// an empty body, sized or chunked, means an empty history
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Printf("[%s] chat: bad request body: %v", RequestID(c), err)
		c.Data(http.StatusOK, gin.MIMEJSON, services.FallbackBody())
		return
	}

	result := h.chat.Reply(c.Request.Context(), req.ConversationHistory)
	if result.Fallback {
		log.Printf("[%s] chat: critical error, returning fallback: %v", RequestID(c), result.Err)
	}
	c.Data(http.StatusOK, gin.MIMEJSON, result.Body)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.orders.PlaceOrder(c.Request.Context(), c.GetHeader(IdempotencyHeader), req.toDomain())
	if err != nil {
		if errors.Is(err, services.ErrEmptyOrder) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, services.ErrOrderInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		log.Printf("[%s] orders: save failed: %v", RequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save order"})
		return
	}

	c.JSON(http.StatusCreated, CreateOrderResponse{ID: id})
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, err := h.orders.GetOrderById(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) ListMenu(c *gin.Context) {
	products, err := h.menu.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}
