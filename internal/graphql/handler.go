package graphql

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
	"github.com/lshigami/canvassing/internal/middleware"
)

// GinHandler serves the /graphql endpoint. Plain HTTP requests go through
// graphql-go's handler; websocket upgrade requests are handed to the
// subscription transport.
func GinHandler(schema graphql.Schema) gin.HandlerFunc {
	httpHandler := handler.New(&handler.Config{
		Schema:     &schema,
		Pretty:     true,
		Playground: true,
	})
	wsHandler := newWSHandler(schema)

	return func(ctx *gin.Context) {
		req := ctx.Request.WithContext(identityContext(ctx))
		if isWebsocketUpgrade(ctx) {
			wsHandler.ServeHTTP(ctx.Writer, req)
			return
		}
		httpHandler.ServeHTTP(ctx.Writer, req)
	}
}

// identityContext copies whatever identity the HTTP middleware resolved
// (JWT user and/or organization API key) onto the request context so field
// resolvers can see it.
func identityContext(ctx *gin.Context) context.Context {
	reqCtx := ctx.Request.Context()
	if userID, ok := middleware.CurrentUserID(ctx); ok {
		reqCtx = context.WithValue(reqCtx, CtxUserID, userID)
		if role, ok := ctx.Get(middleware.ContextUserRole); ok {
			if s, ok := role.(string); ok {
				reqCtx = context.WithValue(reqCtx, CtxUserRole, s)
			}
		}
	}
	if orgID, ok := middleware.CurrentOrganizationID(ctx); ok {
		reqCtx = context.WithValue(reqCtx, CtxOrganizationID, orgID)
	}
	return reqCtx
}

func isWebsocketUpgrade(ctx *gin.Context) bool {
	return ctx.IsWebsocket()
}
