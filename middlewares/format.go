package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// HttpError logs an error and writes an HTTP error response to the client. Details,
// when given, are returned under "details".
func HttpError(c *gin.Context, message string, status int, err error, details ...interface{}) {
	evt := log.Warn()
	if status >= 500 {
		evt = log.Error()
	}
	evt.Err(err).Int("status", status).Str("path", c.Request.URL.Path).Msg(message)

	body := gin.H{"error": message}
	if len(details) > 0 && details[0] != nil {
		body["details"] = details[0]
	}
	c.AbortWithStatusJSON(status, body)
}
