package router

import (
	"context"
	"errors"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"resume-screen-go/internal/api/handler"
	"resume-screen-go/internal/storage"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, resumeHandler *handler.ResumeHandler, analyticsHandler *handler.AnalyticsHandler) {
	api := h.Group("/api/v1")

	api.POST("/resume/upload", func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		resp, err := resumeHandler.HandleResumeUpload(c, file, fileHeader.Filename)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}

		ctx.JSON(consts.StatusOK, resp)
	})

	api.GET("/resume/:id", func(c context.Context, ctx *app.RequestContext) {
		id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "无效的记录ID"})
			return
		}

		resp, err := resumeHandler.HandleGetResume(c, id)
		if err != nil {
			if errors.Is(err, storage.ErrRecordNotFound) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": "resume not found"})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}

		ctx.JSON(consts.StatusOK, resp)
	})

	api.GET("/resume/:id/file", func(c context.Context, ctx *app.RequestContext) {
		id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "无效的记录ID"})
			return
		}

		data, contentType, err := resumeHandler.HandleGetResumeFile(c, id)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrRecordNotFound):
				ctx.JSON(consts.StatusNotFound, utils.H{"error": "resume not found"})
			case errors.Is(err, handler.ErrOriginalFileUnavailable):
				ctx.JSON(consts.StatusNotFound, utils.H{"error": "original file not available"})
			default:
				ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			}
			return
		}

		ctx.Data(consts.StatusOK, contentType, data)
	})

	api.GET("/analytics/dashboard", func(c context.Context, ctx *app.RequestContext) {
		summary, err := analyticsHandler.HandleDashboard(c)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, summary)
	})

	api.GET("/analytics/ranking", func(c context.Context, ctx *app.RequestContext) {
		chart, err := analyticsHandler.HandleRanking(c)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, chart)
	})

	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}
