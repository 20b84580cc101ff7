// Package catalog serves the tags collection in the json-server wire format
// the tag browser reads.
package catalog

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/4oBuko/tag-browser/internal/middleware"
	"github.com/4oBuko/tag-browser/internal/models"
	"github.com/4oBuko/tag-browser/internal/myerrors"
	"github.com/4oBuko/tag-browser/internal/repositories"
	"github.com/4oBuko/tag-browser/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var Endpoints = struct {
	TagGetAll string
	TagGet    string
	TagCreate string
	Health    string
}{
	TagGetAll: "/tags",
	TagGet:    "/tags/:id",
	TagCreate: "/tags",
	Health:    "/health",
}

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	tagService services.TagService
}

func NewServer(address string, tagService services.TagService, logger logrus.FieldLogger) *Server {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(logger))
	router.Use(gin.Recovery())

	server := &Server{
		router: router,
		httpServer: &http.Server{
			Addr:              address,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		tagService: tagService,
	}
	router.GET(Endpoints.TagGetAll, server.handleGetAllTags)
	router.GET(Endpoints.TagGet, server.handleGetTag)
	router.POST(Endpoints.TagCreate, server.handleAddTag)
	router.GET(Endpoints.Health, func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return server
}

func (s *Server) handleGetAllTags(ctx *gin.Context) {
	var query models.TagsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid tags query: " + err.Error(),
		})
		return
	}

	page, err := s.tagService.List(ctx, query)
	if err != nil {
		ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"message": "error while attempting to fetch tags: " + err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, page)
}

func (s *Server) handleGetTag(ctx *gin.Context) {
	tag, err := s.tagService.GetById(ctx, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrTagNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{
				"message": err.Error(),
			})
			return
		}
		ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"message": "failed to get tag by id: " + err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, tag)
}

func (s *Server) handleAddTag(ctx *gin.Context) {
	var tag models.NewTag
	if err := ctx.ShouldBindJSON(&tag); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "incorrect tag format: " + err.Error(),
		})
		return
	}

	newTag, err := s.tagService.Add(ctx, tag)
	if err != nil {
		if err, ok := err.(*myerrors.RequestError); ok {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"message": err.Error(),
			})
			return
		}
		ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"message": "attempt to add new tag failed: " + err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusCreated, newTag)
}

func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Handler() http.Handler {
	return s.router
}
