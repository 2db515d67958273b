package session_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freshtrack/client/api"
	"github.com/freshtrack/client/session"
)

func assignmentSession(t *testing.T) *session.Session {
	t.Helper()
	a := &api.Assessment{ID: "a-3", Type: api.KindAssignment}
	sess := session.New(a, 0)
	sess.Activate()
	return sess
}

func TestAssignmentRequiresTextOrFile(t *testing.T) {
	sess := assignmentSession(t)

	require.Error(t, sess.Buffer().Validate())

	sess.Buffer().Text = "   \n\t "
	require.Error(t, sess.Buffer().Validate(), "whitespace only is still empty")

	sess.Buffer().Text = "my writeup"
	require.NoError(t, sess.Buffer().Validate())
}

func TestAttachFile(t *testing.T) {
	sess := assignmentSession(t)

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello freshtrack"), 0o644))

	require.NoError(t, sess.Buffer().AttachFile(path))
	file := sess.Buffer().File
	require.NotNil(t, file)
	require.Equal(t, "notes.txt", file.Name)
	require.EqualValues(t, 16, file.Size)
	require.Contains(t, file.MIME, "text/plain")

	// file alone satisfies validation, and its metadata rides on the payload
	require.NoError(t, sess.Buffer().Validate())
	req := sess.BuildRequest()
	require.Equal(t, "notes.txt", req.FileName)
	require.Contains(t, req.FileMIME, "text/plain")

	sess.Buffer().RemoveFile()
	require.Error(t, sess.Buffer().Validate())
}

func TestAttachFileRejectsOversize(t *testing.T) {
	sess := assignmentSession(t)

	path := filepath.Join(t.TempDir(), "huge.bin")
	data := bytes.Repeat([]byte{0x42}, session.MaxAttachmentBytes+1)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	err := sess.Buffer().AttachFile(path)
	require.Error(t, err)
	// the rejected file never enters the buffer
	require.Nil(t, sess.Buffer().File)
}

func TestAttachFileMissing(t *testing.T) {
	sess := assignmentSession(t)
	require.Error(t, sess.Buffer().AttachFile(filepath.Join(t.TempDir(), "absent")))
	require.Nil(t, sess.Buffer().File)
}

func TestCodeRequiresNonEmptySource(t *testing.T) {
	a := &api.Assessment{ID: "a-4", Type: api.KindCode}
	sess := session.New(a, 0)
	sess.Activate()

	require.Error(t, sess.Buffer().Validate())
	sess.Buffer().Code = "print('hi')"
	require.NoError(t, sess.Buffer().Validate())
}

func TestSummaryWordCounts(t *testing.T) {
	sess := assignmentSession(t)
	sess.Buffer().Text = "  one two\nthree   four "

	require.NoError(t, sess.RequestSubmit())
	sum := sess.Summary()
	require.Equal(t, 4, sum.WordCount)
	require.Equal(t, len(sess.Buffer().Text), sum.CharCount)
}
