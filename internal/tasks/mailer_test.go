package tasks

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage("noreply@hospital.local", "jane@example.com", "Reminder", "<p>hi</p>", nil))

	assert.Contains(t, msg, "From: noreply@hospital.local\r\n")
	assert.Contains(t, msg, "To: jane@example.com\r\n")
	assert.Contains(t, msg, "Subject: Reminder\r\n")
	assert.Contains(t, msg, "Content-Type: text/html")
	assert.Contains(t, msg, "<p>hi</p>")
	assert.NotContains(t, msg, "multipart/mixed")
}

func TestBuildMessageWithAttachment(t *testing.T) {
	content := []byte("id,name\n1,flu\n")
	msg := string(buildMessage("noreply@hospital.local", "jane@example.com", "Export", "<p>attached</p>", &Attachment{
		Filename: "treatments.csv",
		Content:  content,
	}))

	assert.Contains(t, msg, "multipart/mixed")
	assert.Contains(t, msg, `filename="treatments.csv"`)
	assert.Contains(t, msg, base64.StdEncoding.EncodeToString(content))
	// Closing boundary terminates the message.
	assert.True(t, strings.HasSuffix(msg, "--hospital-mail-boundary--\r\n"))
}
