package graph

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Handler serves GraphQL over POST. Responses are always 200 with any
// failures reported in the errors list, per the GraphQL-over-HTTP
// convention; only an unreadable body gets a 400.
func Handler(executor *Executor) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req Request
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, Response{
				Errors: gqlerror.List{gqlerror.Errorf("invalid request body: %v", err)},
			})
			return
		}

		ctx.JSON(http.StatusOK, executor.Execute(ctx, &req))
	}
}
