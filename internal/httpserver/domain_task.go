package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	taskHTTP "ai-task-manager/internal/task/delivery/http"
)

// setupTaskDomain registers the /api/v1/tasks routes.
func (srv HTTPServer) setupTaskDomain(ctx context.Context, api *gin.RouterGroup) {
	h := taskHTTP.New(srv.l, srv.taskUC, srv.dateMath)
	taskHTTP.RegisterRoutes(api, h, srv.mw)

	srv.l.Infof(ctx, "Task domain registered")
}
