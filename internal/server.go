package tagbrowser

import (
	"context"
	_ "embed"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/4oBuko/tag-browser/internal/browser"
	"github.com/4oBuko/tag-browser/internal/middleware"
	"github.com/4oBuko/tag-browser/internal/pagination"
	"github.com/4oBuko/tag-browser/internal/query"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

//go:embed templates/tags.html
var tagsTemplate string

const sessionCookie = "tag_browser_session"

var Endpoints = struct {
	Tags   string
	Filter string
	Draft  string
	Health string
}{
	Tags:   "/",
	Filter: "/filter",
	Draft:  "/draft",
	Health: "/health",
}

type Options struct {
	Address        string
	RenderWait     time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	sessions   *browser.Store
	renderWait time.Duration
	logger     logrus.FieldLogger
}

func NewServer(sessions *browser.Store, opts Options, logger logrus.FieldLogger) *Server {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(logger))
	router.Use(gin.Recovery())
	router.Use(middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst, Endpoints.Draft))
	router.SetHTMLTemplate(template.Must(template.New("tags.html").Parse(tagsTemplate)))

	server := &Server{
		router: router,
		httpServer: &http.Server{
			Addr:              opts.Address,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		sessions:   sessions,
		renderWait: opts.RenderWait,
		logger:     logger,
	}
	router.GET(Endpoints.Tags, server.handleTags)
	router.POST(Endpoints.Filter, server.handleFilter)
	router.POST(Endpoints.Draft, server.handleDraft)
	router.GET(Endpoints.Health, server.handleHealth)
	return server
}

type tagsPage struct {
	View       browser.View
	Pagination *pagination.Control
	Loading    bool
	Refresh    bool
	Empty      bool
}

func newTagsPage(view browser.View) tagsPage {
	page := tagsPage{
		View:    view,
		Loading: view.Status == browser.StatusLoading,
		Refresh: view.Status == browser.StatusLoading,
	}
	if view.Page != nil {
		control := pagination.New(view.Page.Pages, view.Page.Items, view.State.Page, view.State)
		page.Pagination = &control
		page.Empty = len(view.Page.Data) == 0 && !view.Stale
	}
	return page
}

func (s *Server) handleTags(ctx *gin.Context) {
	state := query.FromValues(ctx.Request.URL.Query())
	session := s.session(ctx)
	session.Navigate(state)

	view := session.Await(ctx.Request.Context(), s.renderWait)
	status := http.StatusOK
	if view.Status == browser.StatusFailed {
		status = http.StatusBadGateway
	}
	ctx.HTML(status, "tags.html", newTagsPage(view))
}

func (s *Server) handleFilter(ctx *gin.Context) {
	session := s.session(ctx)
	next := session.Submit(ctx.PostForm(query.FilterParam))
	ctx.Redirect(http.StatusSeeOther, next.Href(Endpoints.Tags))
}

func (s *Server) handleDraft(ctx *gin.Context) {
	session := s.session(ctx)
	session.Type(ctx.PostForm(query.FilterParam))
	ctx.Status(http.StatusNoContent)
}

func (s *Server) handleHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// session returns the visitor's session and refreshes the cookie when a new
// one had to be created.
func (s *Server) session(ctx *gin.Context) *browser.Session {
	id, _ := ctx.Cookie(sessionCookie)
	session := s.sessions.Session(id)
	if session.Id() != id {
		ctx.SetSameSite(http.SameSiteLaxMode)
		ctx.SetCookie(sessionCookie, session.Id(), 0, "/", "", false, true)
	}
	return session
}

func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Serve(listener net.Listener) error {
	return s.httpServer.Serve(listener)
}

func (s *Server) Shutdown(ctx context.Context) error {
	defer s.sessions.Close()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Handler() http.Handler {
	return s.router
}
