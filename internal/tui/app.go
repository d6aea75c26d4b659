// Package tui is the interactive terminal client. It runs the same
// controllers as the browser UI on the bubbletea event loop.
package tui

import (
	"context"
	"strings"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amiyamandal-dev/bizbrief/internal/comments"
	"github.com/amiyamandal-dev/bizbrief/internal/config"
	"github.com/amiyamandal-dev/bizbrief/internal/domain"
	"github.com/amiyamandal-dev/bizbrief/internal/events"
	"github.com/amiyamandal-dev/bizbrief/internal/feed"
	"github.com/amiyamandal-dev/bizbrief/internal/loop"
	"github.com/amiyamandal-dev/bizbrief/internal/session"
	"github.com/amiyamandal-dev/bizbrief/pkg/logger"
)

// Backend is everything the terminal client asks of the REST backend
type Backend interface {
	feed.ArticleAPI
	comments.API
	Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error)
	Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthResult, error)
}

// Options configures the terminal client
type Options struct {
	API       Backend
	Session   *session.Session
	Scheduler loop.Scheduler
	Clock     clock.Clock
	UI        config.UIConfig
	Logger    *logger.Logger
}

type page int

const (
	pageList page = iota
	pageComments
	pageLogin
)

const defaultWidth = 80

// App is the root bubbletea model. Controller callbacks arrive as runMsg
// and run inside Update, so every controller method runs on the program loop.
type App struct {
	ctx    context.Context
	opts   Options
	bus    *events.Bus
	styles Styles
	logger *logger.Logger

	page   page
	back   page
	width  int
	height int
	notice string

	list     *listPage
	comments *commentsPage
	login    *loginPage
}

// New creates the terminal client
func New(ctx context.Context, opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	opts.Logger = log

	a := &App{
		ctx:    ctx,
		opts:   opts,
		bus:    events.NewBus(),
		styles: DefaultStyles(),
		logger: log.WithComponent("tui"),
		width:  defaultWidth,
	}
	a.list = newListPage(a)
	a.login = newLoginPage(a)

	a.bus.Subscribe(func(e events.Event) {
		if n, ok := e.(events.Notice); ok {
			a.notice = n.Message
		}
	})
	opts.Session.OnInvalidate(a.showLogin)
	opts.Session.OnAuthRequired(a.showLogin)
	return a
}

// Init issues the first list fetch
func (a *App) Init() tea.Cmd {
	return func() tea.Msg {
		return runMsg{fn: a.list.browser.Start}
	}
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runMsg:
		msg.fn()
		return a, nil

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.list.setWidth(msg.Width)
		if a.comments != nil {
			a.comments.setWidth(msg.Width)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		a.notice = ""

		switch a.page {
		case pageComments:
			return a, a.comments.update(msg)
		case pageLogin:
			return a, a.login.update(msg)
		default:
			return a, a.list.update(msg)
		}
	}
	return a, nil
}

// View renders the current page
func (a *App) View() string {
	var sb strings.Builder

	sb.WriteString(a.header())
	sb.WriteString("\n\n")

	switch a.page {
	case pageComments:
		sb.WriteString(a.comments.view())
	case pageLogin:
		sb.WriteString(a.login.view())
	default:
		sb.WriteString(a.list.view())
	}

	if a.notice != "" {
		sb.WriteString("\n")
		sb.WriteString(a.styles.Notice.Render(a.notice))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (a *App) header() string {
	title := a.styles.Header.Render("BizBrief")
	if name := a.opts.Session.Username(); name != "" {
		return title + "  " + a.styles.Meta.Render("Logged in as "+name)
	}
	if a.opts.Session.LoggedIn() {
		return title + "  " + a.styles.Meta.Render("Logged in")
	}
	return title
}

// showLogin is the session observer: a missing or rejected credential
// sends the user to the login page
func (a *App) showLogin() {
	if a.page == pageLogin {
		return
	}
	a.back = a.page
	a.page = pageLogin
	a.login.reset(false)
}

// loggedIn returns from the login page and refetches with the new credential
func (a *App) loggedIn() {
	a.page = a.back
	if a.page == pageComments && a.comments != nil {
		a.comments.thread.Load()
		return
	}
	a.page = pageList
	a.list.browser.Refresh()
}

func (a *App) openComments(articleID string) {
	if a.comments != nil {
		a.comments.close()
	}
	a.comments = newCommentsPage(a, articleID)
	a.page = pageComments
}

func (a *App) closeComments() {
	if a.comments != nil {
		a.comments.close()
		a.comments = nil
	}
	a.page = pageList
}

func (a *App) closeLogin() {
	if a.back == pageComments && a.comments != nil {
		a.page = pageComments
		return
	}
	a.page = pageList
}

// Close releases the controllers
func (a *App) Close() {
	if a.comments != nil {
		a.comments.close()
	}
	a.list.browser.Close()
}
