package session

import (
	"fmt"
	"os"
	"strings"

	"github.com/wailsapp/mimetype"
)

// MaxAttachmentBytes bounds assignment attachments; larger files are
// rejected before they enter the buffer.
const MaxAttachmentBytes = 10 << 20 // 10 MiB

// Buffer holds the in-progress, not-yet-submitted input for the
// current attempt. Exactly one of the kind-specific field groups is in
// use.
type Buffer struct {
	kind        string
	questionIDs []string

	// quiz
	Answers map[string]string

	// code
	Code     string
	Language string

	// assignment
	Text string
	File *Attachment
}

// Attachment is a locally selected file. Only its metadata lives in
// the buffer; the content never leaves the machine from here.
type Attachment struct {
	Name string
	Path string
	Size int64
	MIME string
}

func newBuffer(kind string, questionIDs []string, language string) Buffer {
	return Buffer{
		kind:        kind,
		questionIDs: questionIDs,
		Answers:     map[string]string{},
		Language:    language,
	}
}

// Answer records the selected answer for a question.
func (b *Buffer) Answer(questionID, answer string) {
	b.Answers[questionID] = answer
}

// AnsweredCount counts questions with a recorded answer.
func (b *Buffer) AnsweredCount() int {
	n := 0
	for _, id := range b.questionIDs {
		if _, ok := b.Answers[id]; ok {
			n++
		}
	}
	return n
}

func (b *Buffer) UnansweredCount() int {
	return len(b.questionIDs) - b.AnsweredCount()
}

// AttachFile validates and records an assignment attachment. Oversize
// files are rejected here with a blocking validation message.
func (b *Buffer) AttachFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return ErrAttachmentUnreadable().SetDebug(err)
	}
	if info.Size() > MaxAttachmentBytes {
		return ErrAttachmentTooLarge()
	}
	mime := "application/octet-stream"
	if detected, err := mimetype.DetectFile(path); err == nil {
		mime = detected.String()
	}
	b.File = &Attachment{
		Name: info.Name(),
		Path: path,
		Size: info.Size(),
		MIME: mime,
	}
	return nil
}

func (b *Buffer) RemoveFile() {
	b.File = nil
}

// Validate gates a manual submission. Partial quiz answers are allowed
// (the gate warns about unanswered questions); code needs non-empty
// source; an assignment needs trimmed text or an attachment.
func (b *Buffer) Validate() error {
	switch b.kind {
	case "quiz":
		if b.AnsweredCount() == 0 {
			return ErrNoAnswers()
		}
	case "code":
		if strings.TrimSpace(b.Code) == "" {
			return ErrEmptyCode()
		}
	case "assignment":
		if strings.TrimSpace(b.Text) == "" && b.File == nil {
			return ErrEmptyAssignment()
		}
	default:
		return fmt.Errorf("unknown assessment kind: %s", b.kind)
	}
	return nil
}

func (b *Buffer) summary() Summary {
	sum := Summary{
		Answered:   b.AnsweredCount(),
		Unanswered: b.UnansweredCount(),
	}
	text := b.Text
	if b.kind == "code" {
		text = b.Code
	}
	trimmed := strings.TrimSpace(text)
	if trimmed != "" {
		sum.WordCount = len(strings.Fields(trimmed))
	}
	sum.CharCount = len(text)
	if b.File != nil {
		sum.FileName = b.File.Name
	}
	return sum
}
