package comments

// Mode is what the viewer is doing on a comment
type Mode int

const (
	ModeNone Mode = iota
	ModeReplying
	ModeEditing
)

// Editor tracks the reply and edit boxes of a thread. At most one comment
// is being replied to and at most one edited; opening one box closes the
// other. Drafts are kept per comment and per mode.
type Editor struct {
	replying string
	editing  string
	replies  map[string]string
	edits    map[string]string
	root     string
}

// NewEditor creates an editor with no open box
func NewEditor() *Editor {
	return &Editor{
		replies: make(map[string]string),
		edits:   make(map[string]string),
	}
}

// StartReply opens the reply box under id
func (e *Editor) StartReply(id string) {
	e.editing = ""
	e.replying = id
}

// StartEdit opens the edit box of id, seeded with its current content
// unless a draft exists
func (e *Editor) StartEdit(id, content string) {
	e.replying = ""
	e.editing = id
	if _, ok := e.edits[id]; !ok {
		e.edits[id] = content
	}
}

// Cancel closes whichever box is open, keeping its draft
func (e *Editor) Cancel() {
	e.replying = ""
	e.editing = ""
}

// Replying returns the comment whose reply box is open
func (e *Editor) Replying() string { return e.replying }

// Editing returns the comment whose edit box is open
func (e *Editor) Editing() string { return e.editing }

// ModeOf reports the box open on id
func (e *Editor) ModeOf(id string) Mode {
	switch id {
	case "":
		return ModeNone
	case e.replying:
		return ModeReplying
	case e.editing:
		return ModeEditing
	}
	return ModeNone
}

// SetReplyDraft keeps the reply text typed under comment id
func (e *Editor) SetReplyDraft(id, text string) {
	e.replies[id] = text
}

// ReplyDraft returns the reply text typed under comment id
func (e *Editor) ReplyDraft(id string) string {
	return e.replies[id]
}

// SetEditDraft keeps the edited body of comment id
func (e *Editor) SetEditDraft(id, text string) {
	e.edits[id] = text
}

// EditDraft returns the edited body of comment id
func (e *Editor) EditDraft(id string) string {
	return e.edits[id]
}

// SetRootDraft keeps the text of a new top-level comment
func (e *Editor) SetRootDraft(text string) {
	e.root = text
}

// RootDraft returns the text of a new top-level comment
func (e *Editor) RootDraft() string {
	return e.root
}

// ReplySent clears the reply draft of id and closes its box
func (e *Editor) ReplySent(id string) {
	delete(e.replies, id)
	if e.replying == id {
		e.replying = ""
	}
}

// EditSent clears the edit draft of id and leaves edit mode
func (e *Editor) EditSent(id string) {
	delete(e.edits, id)
	if e.editing == id {
		e.editing = ""
	}
}

// RootSent clears the root comment box
func (e *Editor) RootSent() {
	e.root = ""
}
