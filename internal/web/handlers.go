package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amiyamandal-dev/bizbrief/internal/auth"
	"github.com/amiyamandal-dev/bizbrief/internal/comments"
	"github.com/amiyamandal-dev/bizbrief/internal/config"
	"github.com/amiyamandal-dev/bizbrief/internal/domain"
	"github.com/amiyamandal-dev/bizbrief/internal/events"
	"github.com/amiyamandal-dev/bizbrief/internal/feed"
	"github.com/amiyamandal-dev/bizbrief/internal/loop"
	"github.com/amiyamandal-dev/bizbrief/internal/validator"
	"github.com/amiyamandal-dev/bizbrief/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// Backend is everything the browser UI asks of the REST backend
type Backend interface {
	feed.ArticleAPI
	comments.API
	Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error)
	Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthResult, error)
	SavedArticles(ctx context.Context, token string) ([]domain.SavedArticle, error)
}

// WebHandler handles web UI requests. Each request builds its controllers
// on an inline scheduler, so a handler runs like one turn of the UI loop.
type WebHandler struct {
	api       Backend
	ui        config.UIConfig
	validator *validator.Validator
	renderer  *comments.Renderer
	logger    *logger.Logger
	templates map[string]*template.Template
}

// NewWebHandler creates a new web handler
func NewWebHandler(api Backend, ui config.UIConfig, log *logger.Logger) *WebHandler {
	if log == nil {
		log = logger.Nop()
	}

	funcMap := template.FuncMap{
		"upper": strings.ToUpper,
		"add":   func(a, b int) int { return a + b },
	}

	templates := make(map[string]*template.Template)
	for _, name := range []string{"home", "article", "auth", "profile", "error"} {
		templates[name] = template.Must(
			template.New(name).Funcs(funcMap).ParseFS(templateFS, "templates/base.html", "templates/"+name+".html"),
		)
	}

	return &WebHandler{
		api:       api,
		ui:        ui,
		validator: validator.New(),
		renderer:  comments.NewRenderer(),
		logger:    log.WithComponent("web-handler"),
		templates: templates,
	}
}

func (h *WebHandler) render(c *gin.Context, status int, name string, data gin.H) {
	sess := GetSession(c)
	data["Username"] = auth.Username(sess.Token())
	data["LoggedIn"] = sess.LoggedIn()
	if _, ok := data["Notice"]; !ok {
		data["Notice"] = c.Query("notice")
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := h.templates[name].ExecuteTemplate(c.Writer, "base.html", data); err != nil {
		h.logger.Error("Template error", "template", name, "error", err)
		c.String(http.StatusInternalServerError, "Template error")
	}
}

// noticeCollector captures Notice events of one request
func noticeCollector(bus *events.Bus) *string {
	var notice string
	bus.Subscribe(func(e events.Event) {
		if n, ok := e.(events.Notice); ok {
			notice = n.Message
		}
	})
	return &notice
}

func queryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return n
}

// HomePage renders the article list
func (h *WebHandler) HomePage(c *gin.Context) {
	state := listState{
		Q:      strings.TrimSpace(c.Query("q")),
		Chip:   c.Query("chip"),
		Domain: c.Query("domain"),
		Page:   queryInt(c, "page", 1),
		Group:  queryInt(c, "group", -1),
	}

	browser := feed.NewBrowser(c.Request.Context(), feed.Options{
		API:       h.api,
		Session:   GetSession(c),
		Scheduler: loop.Inline{},
		Logger:    h.logger,
		GroupSize: h.ui.PageGroupSize,
	})
	defer browser.Close()

	filter := feed.Filter{}
	switch {
	case state.Chip != "":
		filter = feed.Filter{Kind: feed.FilterChip, Value: state.Chip}
		// a chip and a domain share one slot
		state.Domain = ""
	case state.Domain != "":
		filter = feed.Filter{Kind: feed.FilterDomain, Value: state.Domain}
	}
	browser.Search().Restore(state.Q, filter)
	browser.Pager().SelectPage(state.Page)
	browser.Start()

	pager := browser.Pager()
	if state.Group >= 0 {
		pager.SetGroup(state.Group)
	}
	state.Page = pager.Current()
	state.Group = pager.Group()

	list := browser.List()
	view := list.View()
	data := gin.H{
		"Title":   "BizBrief",
		"State":   state,
		"Query":   browser.Search().Committed(),
		"Chips":   h.ui.Chips,
		"Domains": h.ui.Domains,
		"View":    view.String(),
		"Error":   list.ErrorMessage(),
		"Empty":   feed.EmptyMessage,
		"Items":   listItems(list.Articles(), pager.Current(), browser.Search().Committed()),
		"Pages":   pager.Pages(),
		"Current": pager.Current(),
		"HasPrev": pager.HasPrevGroup(),
		"HasNext": pager.HasNextGroup(),
		"Group":   pager.Group(),
		"Return":  c.Request.URL.RequestURI(),
	}
	h.render(c, http.StatusOK, "home", data)
}

// Upvote handles the upvote button of a list row
func (h *WebHandler) Upvote(c *gin.Context) {
	h.mutateArticle(c, func(a *feed.Actions, id string) {
		a.Upvote(c.Request.Context(), id, nil)
	})
}

// Save handles the save button of a list row
func (h *WebHandler) Save(c *gin.Context) {
	h.mutateArticle(c, func(a *feed.Actions, id string) {
		a.Save(c.Request.Context(), id, nil)
	})
}

func (h *WebHandler) mutateArticle(c *gin.Context, run func(a *feed.Actions, id string)) {
	bus := events.NewBus()
	notice := noticeCollector(bus)
	actions := feed.NewActions(h.api, GetSession(c), loop.Inline{}, bus, h.logger)

	run(actions, c.Param("id"))

	if authRedirected(c) {
		return
	}
	// the list refetches when the browser follows the redirect
	c.Redirect(http.StatusSeeOther, withNotice(safeReturn(c.PostForm("return")), *notice))
}

// ErrorPage renders a message page
func (h *WebHandler) ErrorPage(c *gin.Context, status int, message string) {
	h.render(c, status, "error", gin.H{
		"Title":   "Error",
		"Message": message,
	})
}

// NotFound renders the 404 page
func (h *WebHandler) NotFound(c *gin.Context) {
	h.ErrorPage(c, http.StatusNotFound, "Page not found")
}
