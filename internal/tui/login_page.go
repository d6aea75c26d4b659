package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amiyamandal-dev/bizbrief/internal/domain"
	"github.com/amiyamandal-dev/bizbrief/internal/validator"
)

const loginHelp = "tab next field • enter submit • ctrl+t login/sign up • esc back"

// loginPage is the login and signup form
type loginPage struct {
	app       *App
	validator *validator.Validator

	signup bool
	fields []textinput.Model
	focus  int
	busy   bool
	err    string
	info   string
}

func newLoginPage(a *App) *loginPage {
	p := &loginPage{app: a, validator: validator.New()}
	p.reset(false)
	return p
}

func newField(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 100
	ti.Width = 40
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

// reset rebuilds the form in login or signup mode
func (p *loginPage) reset(signup bool) {
	p.signup = signup
	p.busy = false
	p.err = ""
	p.info = ""
	if signup {
		p.fields = []textinput.Model{
			newField("Username", false),
			newField("Email", false),
			newField("Password", true),
		}
	} else {
		p.fields = []textinput.Model{
			newField("Username or email", false),
			newField("Password", true),
		}
	}
	p.setFocus(0)
}

func (p *loginPage) setFocus(i int) tea.Cmd {
	p.focus = i
	var cmd tea.Cmd
	for j := range p.fields {
		if j == i {
			cmd = p.fields[j].Focus()
		} else {
			p.fields[j].Blur()
		}
	}
	return cmd
}

func (p *loginPage) value(i int) string {
	return p.fields[i].Value()
}

func (p *loginPage) update(msg tea.KeyMsg) tea.Cmd {
	if p.busy {
		return nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		p.app.closeLogin()
		return nil
	case tea.KeyCtrlT:
		p.reset(!p.signup)
		return nil
	case tea.KeyTab, tea.KeyDown:
		return p.setFocus((p.focus + 1) % len(p.fields))
	case tea.KeyShiftTab, tea.KeyUp:
		return p.setFocus((p.focus + len(p.fields) - 1) % len(p.fields))
	case tea.KeyEnter:
		if p.focus < len(p.fields)-1 {
			return p.setFocus(p.focus + 1)
		}
		p.submit()
		return nil
	}

	var cmd tea.Cmd
	p.fields[p.focus], cmd = p.fields[p.focus].Update(msg)
	return cmd
}

func (p *loginPage) submit() {
	p.err = ""
	p.info = ""
	if p.signup {
		p.submitSignup()
	} else {
		p.submitLogin()
	}
}

func (p *loginPage) submitLogin() {
	req := domain.LoginRequest{
		Identifier: strings.TrimSpace(p.value(0)),
		Password:   p.value(1),
	}
	if err := p.validator.Validate(req); err != nil {
		p.err = domain.UserMessage(err)
		return
	}

	p.busy = true
	api, ctx := p.app.opts.API, p.app.ctx
	p.app.opts.Scheduler.Go(func() func() {
		res, err := api.Login(ctx, req)
		return func() {
			p.busy = false
			switch {
			case errors.Is(err, domain.ErrNotFound):
				p.reset(true)
				p.fields[0].SetValue(req.Identifier)
				p.err = domain.UserNotFoundMessage
			case err != nil:
				p.app.logger.Warn("Login failed", "error", err)
				p.err = domain.FormMessage(err)
			case res.Token == "":
				p.err = domain.FormFailureMessage
			default:
				p.finish(res.Token)
			}
		}
	})
}

func (p *loginPage) submitSignup() {
	req := domain.SignupRequest{
		Username: strings.TrimSpace(p.value(0)),
		Email:    strings.TrimSpace(p.value(1)),
		Password: p.value(2),
	}
	if err := p.validator.Validate(req); err != nil {
		p.err = domain.UserMessage(err)
		return
	}

	p.busy = true
	api, ctx := p.app.opts.API, p.app.ctx
	p.app.opts.Scheduler.Go(func() func() {
		res, err := api.Signup(ctx, req)
		return func() {
			p.busy = false
			switch {
			case err != nil:
				p.app.logger.Warn("Signup failed", "error", err)
				p.err = domain.FormMessage(err)
			case res.Pending():
				msg := res.Message
				if msg == "" {
					msg = domain.VerifyEmailMessage
				}
				p.reset(false)
				p.fields[0].SetValue(req.Username)
				p.info = msg
			default:
				p.finish(res.Token)
			}
		}
	})
}

func (p *loginPage) finish(token string) {
	if err := p.app.opts.Session.SetToken(token); err != nil {
		p.app.logger.Error("Failed to store credential", "error", err)
		p.err = domain.FormFailureMessage
		return
	}
	p.reset(false)
	p.app.loggedIn()
}

func (p *loginPage) view() string {
	st := p.app.styles
	var sb strings.Builder

	title := "Login"
	if p.signup {
		title = "Sign up"
	}
	sb.WriteString(st.Selected.Render(title))
	sb.WriteString("\n\n")

	if p.err != "" {
		sb.WriteString(st.Error.Render(p.err))
		sb.WriteString("\n\n")
	}
	if p.info != "" {
		sb.WriteString(st.Notice.Render(p.info))
		sb.WriteString("\n\n")
	}

	for _, f := range p.fields {
		sb.WriteString(st.Input.Render(f.View()))
		sb.WriteString("\n")
	}
	if p.busy {
		sb.WriteString(st.Meta.Render("Please wait..."))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(st.Help.Render(loginHelp))
	return sb.String()
}
