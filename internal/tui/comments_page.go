package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/amiyamandal-dev/bizbrief/internal/comments"
	"github.com/amiyamandal-dev/bizbrief/internal/domain"
	"github.com/amiyamandal-dev/bizbrief/internal/feed"
)

const commentsHelp = "↑/↓ select • r reply • e edit • c comment • ctrl+s send • esc back"

const indentWidth = 2

type compose int

const (
	composeNone compose = iota
	composeRoot
	composeReply
	composeEdit
)

// commentsPage shows one article with its threaded comments
type commentsPage struct {
	app    *App
	thread *comments.Thread
	area   textarea.Model
	bodies *bodyRenderer

	cursor    int
	composing compose
	target    string
	width     int
}

func newCommentsPage(a *App, articleID string) *commentsPage {
	thread := comments.NewThread(a.ctx, articleID, comments.ThreadOptions{
		API:       a.opts.API,
		Session:   a.opts.Session,
		Scheduler: a.opts.Scheduler,
		Bus:       a.bus,
		Logger:    a.opts.Logger,
	})
	thread.Load()

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.SetHeight(4)
	ta.SetWidth(a.width - 4)

	return &commentsPage{
		app:    a,
		thread: thread,
		area:   ta,
		bodies: newBodyRenderer(a.width - 4),
		width:  a.width,
	}
}

func (p *commentsPage) setWidth(w int) {
	p.width = w
	p.area.SetWidth(max(20, w-4))
	p.bodies = newBodyRenderer(w - 4)
}

func (p *commentsPage) close() {
	p.thread.Close()
}

func (p *commentsPage) selected() (comments.Row, bool) {
	rows := p.thread.Rows()
	if p.cursor < 0 || p.cursor >= len(rows) {
		return comments.Row{}, false
	}
	return rows[p.cursor], true
}

func (p *commentsPage) update(msg tea.KeyMsg) tea.Cmd {
	if p.composing != composeNone {
		return p.updateCompose(msg)
	}

	switch msg.String() {
	case "esc", "b", "q":
		p.app.closeComments()
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.thread.Rows())-1 {
			p.cursor++
		}
	case "r":
		if row, ok := p.selected(); ok && p.authorized() {
			p.thread.Editor().StartReply(row.Comment.ID)
			return p.startCompose(composeReply, row.Comment.ID, p.thread.Editor().ReplyDraft(row.Comment.ID))
		}
	case "e":
		if row, ok := p.selected(); ok && p.thread.CanEdit(row.Comment) && p.authorized() {
			ed := p.thread.Editor()
			ed.StartEdit(row.Comment.ID, row.Comment.Content)
			return p.startCompose(composeEdit, row.Comment.ID, ed.EditDraft(row.Comment.ID))
		}
	case "c":
		if p.authorized() {
			return p.startCompose(composeRoot, "", p.thread.Editor().RootDraft())
		}
	case "R":
		p.thread.Load()
	}
	return nil
}

// authorized asks the session for a credential; without one the session
// observers switch to the login page
func (p *commentsPage) authorized() bool {
	_, err := p.app.opts.Session.RequireAuth()
	return err == nil
}

func (p *commentsPage) startCompose(mode compose, target, draft string) tea.Cmd {
	p.composing = mode
	p.target = target
	p.area.SetValue(draft)
	return p.area.Focus()
}

func (p *commentsPage) stopCompose() {
	p.composing = composeNone
	p.target = ""
	p.area.Blur()
	p.area.Reset()
}

func (p *commentsPage) updateCompose(msg tea.KeyMsg) tea.Cmd {
	ed := p.thread.Editor()

	switch msg.Type {
	case tea.KeyEsc:
		if p.composing != composeRoot {
			ed.Cancel()
		}
		p.stopCompose()
		return nil
	case tea.KeyCtrlS:
		p.submit()
		return nil
	}

	var cmd tea.Cmd
	p.area, cmd = p.area.Update(msg)
	switch p.composing {
	case composeReply:
		ed.SetReplyDraft(p.target, p.area.Value())
	case composeEdit:
		ed.SetEditDraft(p.target, p.area.Value())
	case composeRoot:
		ed.SetRootDraft(p.area.Value())
	}
	return cmd
}

func (p *commentsPage) submit() {
	mode, target := p.composing, p.target
	done := func(err error) {
		// a newer box may have been opened meanwhile
		if err == nil && p.composing == mode && p.target == target {
			p.stopCompose()
		}
	}

	ctx := p.app.ctx
	switch mode {
	case composeReply:
		p.thread.Reply(ctx, target, done)
	case composeEdit:
		p.thread.Edit(ctx, target, done)
	case composeRoot:
		p.thread.Comment(ctx, done)
	}
}

func (p *commentsPage) view() string {
	st := p.app.styles
	th := p.thread

	if err := th.Err(); err != nil {
		return st.Error.Render(domain.UserMessage(err)) + "\n\n" + st.Help.Render(commentsHelp)
	}
	if th.Loading() && th.Article() == nil {
		return st.Meta.Render("Loading...")
	}

	var sb strings.Builder
	article := th.Article()
	sb.WriteString(st.Selected.Render(article.Headline))
	sb.WriteString("\n")
	sb.WriteString(st.Meta.Render(fmt.Sprintf("%s | %d comments", article.Link, comments.Count(th.Forest()))))
	sb.WriteString("\n\n")

	if p.composing == composeRoot {
		sb.WriteString(p.area.View())
		sb.WriteString("\n\n")
	}

	for i, row := range th.Rows() {
		indent := strings.Repeat(" ", row.Depth*indentWidth)
		marker := "  "
		if i == p.cursor {
			marker = st.Selected.Render("> ")
		}

		sb.WriteString(indent + marker + st.Meta.Render(row.Comment.Username+" | "+feed.Ago(row.Comment.CreatedAt)))
		sb.WriteString("\n")

		if p.composing == composeEdit && p.target == row.Comment.ID {
			sb.WriteString(p.area.View())
		} else {
			sb.WriteString(indentLines(p.bodies.render(row.Comment.Content), indent+"  "))
		}
		sb.WriteString("\n")

		if p.composing == composeReply && p.target == row.Comment.ID {
			sb.WriteString(p.area.View())
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(st.Help.Render(commentsHelp))
	return sb.String()
}

func indentLines(s, indent string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = indent + l
	}
	return strings.Join(lines, "\n")
}

// bodyRenderer renders comment markdown for the terminal, caching by content
type bodyRenderer struct {
	renderer *glamour.TermRenderer
	cache    map[string]string
}

func newBodyRenderer(width int) *bodyRenderer {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		r = nil
	}
	return &bodyRenderer{renderer: r, cache: make(map[string]string)}
}

func (b *bodyRenderer) render(content string) string {
	if out, ok := b.cache[content]; ok {
		return out
	}
	out := content
	if b.renderer != nil {
		if rendered, err := b.renderer.Render(content); err == nil {
			out = strings.Trim(rendered, "\n")
		}
	}
	b.cache[content] = out
	return out
}
