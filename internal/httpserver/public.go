package httpserver

import (
	"net/http"
	"strconv"

	"animateme/internal/domain"
	"animateme/internal/service/checkout"
	inboxsvc "animateme/internal/service/inbox"
	quotesvc "animateme/internal/service/quote"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func registerPublic(api *gin.RouterGroup, deps Deps) {
	api.GET("/settings", settingsHandler(deps.Settings))
	api.GET("/pages/:page", pageHandler(deps.Settings))
	api.GET("/blog/:postId", blogPostHandler(deps.Settings))

	if deps.Quote != nil {
		api.POST("/quote/estimate", estimateHandler(deps.Quote))
		api.POST("/quote/requests", quoteRequestHandler(deps.Quote))
	}
	if deps.Inbox != nil {
		api.POST("/contact", contactHandler(deps.Inbox))
		api.POST("/subscribers", subscribeHandler(deps.Inbox))
	}
	if deps.Products != nil {
		api.GET("/estore", estoreHandler(deps.Products, deps.EstoreCategories))
	}
	if deps.Catalog != nil {
		api.GET("/estore/catalog", catalogHandler(deps.Catalog))
	}
	if deps.Checkout != nil {
		api.GET("/checkout/:productId", checkoutHandler(deps.Checkout))
		api.POST("/checkout/:productId/orders", placeOrderHandler(deps.Checkout))
	}
}

func settingsHandler(store SettingsStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Settings-Generation", strconv.FormatUint(store.Generation(), 10))
		c.JSON(http.StatusOK, store.Snapshot())
	}
}

func pageHandler(store SettingsStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := c.Param("page")
		if !domain.IsPageKey(page) {
			writeError(c, domain.ErrNotFound)
			return
		}
		block := store.Snapshot().Page(page)
		if block == nil {
			block = map[string]interface{}{}
		}
		c.JSON(http.StatusOK, gin.H{"page": page, "content": block})
	}
}

func blogPostHandler(store SettingsStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, ok := store.Snapshot().BlogPost(c.Param("postId"))
		if !ok {
			writeError(c, domain.ErrNotFound)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

type estimateRequest struct {
	AnimationType  string  `json:"animation_type"`
	AnimationStyle string  `json:"animation_style"`
	Duration       float64 `json:"duration"`
}

func estimateHandler(svc QuoteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req estimateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, errBadRequest)
			return
		}
		c.JSON(http.StatusOK, svc.Estimate(c.Request.Context(), req.AnimationType, req.AnimationStyle, req.Duration))
	}
}

func quoteRequestHandler(svc QuoteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in quotesvc.RequestInput
		if err := c.ShouldBindJSON(&in); err != nil {
			writeError(c, errBadRequest)
			return
		}
		saved, err := svc.Submit(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, saved)
	}
}

func contactHandler(svc InboxService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in inboxsvc.ContactInput
		if err := c.ShouldBindJSON(&in); err != nil {
			writeError(c, errBadRequest)
			return
		}
		saved, err := svc.Contact(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, saved)
	}
}

func subscribeHandler(svc InboxService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in domain.Subscriber
		if err := c.ShouldBindJSON(&in); err != nil {
			writeError(c, errBadRequest)
			return
		}
		saved, err := svc.Subscribe(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, saved)
	}
}

func estoreHandler(products ProductLister, categories CategoryLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := products.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		cats := []domain.EstoreCategory{}
		if categories != nil {
			if cats, err = categories.List(c.Request.Context()); err != nil {
				writeError(c, err)
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"products": items, "categories": cats})
	}
}

func catalogHandler(cat Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := cat.Products(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func checkoutHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uuidParam(c, "productId")
		if !ok {
			return
		}
		page, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

func placeOrderHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uuidParam(c, "productId")
		if !ok {
			return
		}
		var in checkout.OrderInput
		if err := c.ShouldBindJSON(&in); err != nil {
			writeError(c, errBadRequest)
			return
		}
		placed, err := svc.PlaceOrder(c.Request.Context(), id, in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, placed)
	}
}

// uuidParam reads a uuid path parameter. Malformed ids are answered with 404
// since no row can match them.
func uuidParam(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if err := uuid.Validate(id); err != nil {
		writeError(c, domain.ErrNotFound)
		return "", false
	}
	return id, true
}
