package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"animateme/internal/domain"
	"animateme/internal/service/usermgmt"
	"github.com/gin-gonic/gin"
)

func registerAdmin(g *gin.RouterGroup, deps Deps) error {
	g.Use(limitBody(deps.MaxUploadBytes))

	g.GET("/status", statusHandler(deps.Settings))
	g.POST("/refresh", refreshHandler(deps.Settings))

	seen := map[string]bool{}
	for _, r := range deps.Resources {
		name := r.Name()
		if seen[name] {
			return fmt.Errorf("admin resource %q registered twice", name)
		}
		seen[name] = true

		rg := g.Group("/" + name)
		rg.GET("", resourceListHandler(r))
		rg.POST("", resourceSaveHandler(r, false))
		rg.PUT("", resourceReplaceHandler(r))
		rg.PUT("/:id", resourceSaveHandler(r, true))
		rg.DELETE("/:id", resourceDeleteHandler(r))
	}

	if deps.Inbox != nil {
		if seen["subscribers"] || seen["contacts"] || seen["quote-requests"] {
			return errors.New("inbox routes collide with an admin resource")
		}
		g.GET("/contacts", func(c *gin.Context) { respond[[]domain.ContactSubmission](c, http.StatusOK)(deps.Inbox.Contacts(c.Request.Context())) })
		g.DELETE("/contacts/:id", idHandler(deps.Inbox.DeleteContact))
		g.GET("/quote-requests", func(c *gin.Context) { respond[[]domain.QuoteRequest](c, http.StatusOK)(deps.Inbox.QuoteRequests(c.Request.Context())) })
		g.DELETE("/quote-requests/:id", idHandler(deps.Inbox.DeleteQuoteRequest))
		g.GET("/subscribers", func(c *gin.Context) {
			respond[[]domain.Subscriber](c, http.StatusOK)(deps.Inbox.Subscribers(c.Request.Context(), c.Query("search")))
		})
		g.POST("/subscribers", subscribeHandler(deps.Inbox))
		g.DELETE("/subscribers/:id", idHandler(deps.Inbox.DeleteSubscriber))
		g.GET("/subscribers/export", exportSubscribersHandler(deps.Inbox))
	}

	if deps.Checkout != nil {
		g.GET("/orders", func(c *gin.Context) { respond[[]domain.EstoreOrder](c, http.StatusOK)(deps.Checkout.Orders(c.Request.Context())) })
		g.PATCH("/orders/:id", orderStatusHandler(deps.Checkout))
	}

	if deps.Users != nil {
		registerUsers(g.Group("/users"), deps.Users)
	}
	return nil
}

// limitBody caps request bodies; larger uploads fail while being read.
func limitBody(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		}
		c.Next()
	}
}

// respond writes v or the error. It lets list handlers pass a (value, error)
// pair straight through.
func respond[T any](c *gin.Context, status int) func(v T, err error) {
	return func(v T, err error) {
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(status, v)
	}
}

func statusHandler(store SettingsStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"initialized": store.Initialized(),
			"loading":     store.Loading(),
			"generation":  store.Generation(),
		})
	}
}

// refreshHandler re-reads every resource. Partial failures still publish a
// snapshot, so only cancellation is an error.
func refreshHandler(store SettingsStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Refresh(c.Request.Context()); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"generation": store.Generation()})
	}
}

func resourceListHandler(r AdminResource) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond[interface{}](c, http.StatusOK)(r.List(c.Request.Context()))
	}
}

func resourceSaveHandler(r AdminResource, update bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := ""
		status := http.StatusCreated
		if update {
			id = c.Param("id")
			if !r.ValidID(id) {
				writeError(c, domain.ErrNotFound)
				return
			}
			status = http.StatusOK
		}
		respond[interface{}](c, status)(r.Save(c, id))
	}
}

func resourceReplaceHandler(r AdminResource) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond[interface{}](c, http.StatusOK)(r.ReplaceAll(c))
	}
}

func resourceDeleteHandler(r AdminResource) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if !r.ValidID(id) {
			writeError(c, domain.ErrNotFound)
			return
		}
		if err := r.Delete(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func idHandler(del func(ctx context.Context, id string) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uuidParam(c, "id")
		if !ok {
			return
		}
		if err := del(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func exportSubscribersHandler(svc InboxService) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := fmt.Sprintf("subscribers-%s.csv", time.Now().UTC().Format("20060102"))
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
		c.Status(http.StatusOK)
		if _, err := svc.ExportSubscribers(c.Request.Context(), c.Query("search"), c.Writer); err != nil {
			_ = c.Error(err)
		}
	}
}

type orderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func orderStatusHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uuidParam(c, "id")
		if !ok {
			return
		}
		var req orderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, errBadRequest)
			return
		}
		respond[*domain.EstoreOrder](c, http.StatusOK)(svc.UpdateStatus(c.Request.Context(), id, req.Status))
	}
}

type roleRequest struct {
	Role string `json:"role" binding:"required"`
}

func registerUsers(g *gin.RouterGroup, svc UserAdmin) {
	g.GET("", func(c *gin.Context) {
		respond[[]domain.User](c, http.StatusOK)(svc.List(c.Request.Context(), currentUser(c)))
	})
	// Action envelope used by the dashboard's users page.
	g.POST("/actions", func(c *gin.Context) {
		var req usermgmt.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, errBadRequest)
			return
		}
		respond[interface{}](c, http.StatusOK)(svc.Dispatch(c.Request.Context(), currentUser(c), req))
	})
	g.PATCH("/:id/role", func(c *gin.Context) {
		id, ok := uuidParam(c, "id")
		if !ok {
			return
		}
		var req roleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, errBadRequest)
			return
		}
		respond[*domain.User](c, http.StatusOK)(svc.UpdateRole(c.Request.Context(), currentUser(c), id, req.Role))
	})
	g.PUT("/:id/password", func(c *gin.Context) {
		id, ok := uuidParam(c, "id")
		if !ok {
			return
		}
		var req passwordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, errBadRequest)
			return
		}
		if err := svc.UpdatePassword(c.Request.Context(), currentUser(c), id, req.Password); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
	})
	g.DELETE("/:id", func(c *gin.Context) {
		id, ok := uuidParam(c, "id")
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), currentUser(c), id); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}
