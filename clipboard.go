package main

import (
	"html"
	"os/exec"
	"regexp"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func isRTF(text string) bool {
	return strings.HasPrefix(text, "{\\rtf") || strings.Contains(text, "\\rtf1")
}

func isHTML(text string) bool {
	t := strings.TrimSpace(text)
	return strings.HasPrefix(t, "<") &&
		(strings.Contains(t, "<html") || strings.Contains(t, "<body") || strings.Contains(t, "<div") || strings.Contains(t, "<p"))
}

var (
	htmlBreak = regexp.MustCompile(`(?i)<br\s*/?>|</p>|</div>|</li>`)
	htmlTag   = regexp.MustCompile(`<[^>]*>`)
	rtfBreak  = regexp.MustCompile(`\\(par|line)\b ?`)
	rtfHex    = regexp.MustCompile(`\\'[0-9a-fA-F]{2}`)
	rtfWord   = regexp.MustCompile(`\\[a-zA-Z]+-?[0-9]* ?`)
	rtfGroup  = regexp.MustCompile(`\{\\\*[^{}]*\}|\{\\(fonttbl|colortbl|stylesheet|info)[^{}]*(\{[^{}]*\}[^{}]*)*\}`)
)

func extractTextFromHTML(s string) string {
	s = htmlBreak.ReplaceAllString(s, "\n")
	s = htmlTag.ReplaceAllString(s, "")
	return html.UnescapeString(s)
}

// extractTextFromRTF keeps the visible text of simple RTF: destination groups
// are dropped, paragraph controls become line breaks, other controls vanish.
func extractTextFromRTF(s string) string {
	s = rtfGroup.ReplaceAllString(s, "")
	s = rtfBreak.ReplaceAllString(s, "\n")
	s = strings.NewReplacer(`\\`, "\x00bs", `\{`, "\x00lb", `\}`, "\x00rb").Replace(s)
	s = rtfHex.ReplaceAllString(s, "")
	s = rtfWord.ReplaceAllString(s, "")
	s = strings.NewReplacer("{", "", "}", "").Replace(s)
	return strings.NewReplacer("\x00bs", `\`, "\x00lb", "{", "\x00rb", "}").Replace(s)
}

// cleanClipboardText turns pasted rich text into plain lines suitable for a
// text element.
func cleanClipboardText(text string) string {
	switch {
	case isRTF(text):
		text = extractTextFromRTF(text)
	case isHTML(text):
		text = extractTextFromHTML(text)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' || r >= 32 && r != 0x7f {
			b.WriteRune(r)
		}
	}
	lines := strings.Split(b.String(), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}
