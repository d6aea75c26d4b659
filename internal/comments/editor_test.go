package comments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditorModesExclude(t *testing.T) {
	e := NewEditor()

	e.StartReply("c1")
	assert.Equal(t, ModeReplying, e.ModeOf("c1"))

	e.StartEdit("c2", "original")
	assert.Equal(t, ModeEditing, e.ModeOf("c2"))
	assert.Equal(t, ModeNone, e.ModeOf("c1"))
	assert.Equal(t, "", e.Replying())
	assert.Equal(t, "original", e.EditDraft("c2"))

	e.StartReply("c3")
	assert.Equal(t, "", e.Editing())
	assert.Equal(t, "c3", e.Replying())

	e.StartReply("c4")
	assert.Equal(t, ModeNone, e.ModeOf("c3"))
	assert.Equal(t, ModeNone, e.ModeOf(""))
}

func TestEditorDrafts(t *testing.T) {
	e := NewEditor()

	e.StartEdit("c1", "original")
	e.SetEditDraft("c1", "changed")
	e.Cancel()
	e.StartEdit("c1", "original")
	assert.Equal(t, "changed", e.EditDraft("c1"))

	e.EditSent("c1")
	assert.Equal(t, "", e.EditDraft("c1"))
	assert.Equal(t, "", e.Editing())

	e.StartReply("c2")
	e.SetReplyDraft("c2", "agreed")
	e.ReplySent("c2")
	assert.Equal(t, "", e.ReplyDraft("c2"))
	assert.Equal(t, "", e.Replying())

	e.SetRootDraft("first!")
	e.RootSent()
	assert.Equal(t, "", e.RootDraft())
}
