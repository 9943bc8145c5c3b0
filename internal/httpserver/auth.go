package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type resetRequest struct {
	Email string `json:"email" binding:"required"`
}

type passwordRequest struct {
	Password string `json:"password" binding:"required"`
}

func registerAuth(g *gin.RouterGroup, svc AuthService) {
	g.POST("/login", loginHandler(svc))
	g.POST("/logout", logoutHandler(svc))
	g.POST("/reset-password", resetPasswordHandler(svc))
	g.POST("/update-password", updatePasswordHandler(svc))
	g.POST("/create-admin", createAdminHandler(svc))
	g.GET("/session", gate(svc), sessionHandler)
}

func loginHandler(svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, errBadRequest)
			return
		}
		sess, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, sess)
	}
}

func logoutHandler(svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if err := svc.Logout(c.Request.Context(), token); err != nil {
				writeError(c, err)
				return
			}
		}
		c.Status(http.StatusNoContent)
	}
}

func resetPasswordHandler(svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req resetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, errBadRequest)
			return
		}
		if err := svc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"message": "If the account exists, a reset link has been sent."})
	}
}

// updatePasswordHandler accepts either a session or a recovery token as the
// bearer.
func updatePasswordHandler(svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		var req passwordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, errBadRequest)
			return
		}
		if err := svc.UpdatePassword(c.Request.Context(), token, req.Password); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
	}
}

func createAdminHandler(svc AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, errBadRequest)
			return
		}
		u, err := svc.CreateAdmin(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}

func sessionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": currentUser(c)})
}
