package utils

import (
	"path"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/itchan-dev/threadboard/shared/config"
	"github.com/itchan-dev/threadboard/shared/errors"
)

// TextValidator checks emptiness and rune length of user text against configured limits.
// Input is expected to be sanitized already.
type TextValidator struct {
	limits config.Limits
}

func New(limits config.Limits) *TextValidator {
	return &TextValidator{limits: limits}
}

func (v *TextValidator) Title(title string) error {
	return checkLen("Title", title, v.limits.TitleMaxLen)
}

func (v *TextValidator) Content(content string) error {
	return checkLen("Content", content, v.limits.ContentMaxLen)
}

func (v *TextValidator) Writer(writer string) error {
	return checkLen("Writer", writer, v.limits.WriterMaxLen)
}

// Reply checks reply text, which has its own, usually shorter, limit.
func (v *TextValidator) Reply(content string) error {
	return checkLen("Content", content, v.limits.ReplyMaxLen)
}

// Attachments checks the number of attachment names. Zero means no limit.
func (v *TextValidator) Attachments(names []string) error {
	if v.limits.MaxAttachments > 0 && len(names) > v.limits.MaxAttachments {
		return errors.NewValidationError("Too many attachments")
	}
	return nil
}

func checkLen(field, s string, maxLen int) error {
	if strings.TrimSpace(s) == "" {
		return errors.NewValidationError(field + " is required")
	}
	if maxLen > 0 && utf8.RuneCountInString(s) > maxLen {
		return errors.NewValidationError(field + " is too long")
	}
	return nil
}

// AttachmentName turns a client supplied file name into the stored name
// "<uuid>_<base name>". Directory components are dropped.
func AttachmentName(name string) (string, error) {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	if base == "." || base == "/" || base == ".." || base == "" {
		return "", errors.NewValidationError("Attachment name is invalid")
	}
	return uuid.NewString() + "_" + base, nil
}
