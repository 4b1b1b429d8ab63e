package gin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rohancyriac029/reviewcord/errors"
	"github.com/rohancyriac029/reviewcord/services"
)

type HandlerFunc func(*gin.Context) (interface{}, error)

// created wraps a handler result that should be written with a 201.
type created struct {
	body interface{}
}

// JSONFormatter renders a handler's result as JSON and maps errors to
// status codes. Duplicate rejections carry the matched paper so the
// client can surface it.
func JSONFormatter(next HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := next(c.Copy())
		if err != nil {
			if dup, ok := err.(*services.DuplicateError); ok {
				c.JSON(http.StatusConflict, map[string]interface{}{
					"message":      dup.Error(),
					"isDuplicate":  true,
					"matchedPaper": dup.Matched,
				})
				return
			}

			code := http.StatusInternalServerError
			if err, ok := err.(errors.Error); ok {
				code = err.Code()
			}

			c.JSON(code, map[string]interface{}{
				"message": err.Error(),
			})
			return
		}

		code := http.StatusOK
		if cr, ok := res.(created); ok {
			code = http.StatusCreated
			res = cr.body
		}

		c.JSON(code, res)
	}
}
