package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/hitbridge/traffic-exchange/pkg/helpers"
	"github.com/hitbridge/traffic-exchange/pkg/response"
)

// Context keys set by Auth on success.
const (
	CtxUserIDKey   = "userID"
	CtxClientIDKey = "clientID"
)

// Auth validates the access token cookie and ensures an active session
// exists in Redis with a matching session id. It sets the user id and client
// id in the Gin context on success.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "not authenticated", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			resp := response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}

		if rdb != nil {
			key := "user:session:" + strconv.Itoa(claims.UserID)
			data, err := rdb.HGetAll(c.Request.Context(), key).Result()
			if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
				resp := response.Error[any](c, http.StatusUnauthorized, "session not found", nil)
				c.AbortWithStatusJSON(resp.Status, resp)
				return
			}
			c.Set(CtxClientIDKey, data["client_id"])
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}
