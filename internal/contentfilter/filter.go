// Package contentfilter screens free-text fields users send to each other —
// join-request messages and booking review text — before they are persisted.
package contentfilter

import (
	"regexp"
	"sync"
)

var BannedWords = []string{
	"fuck", "fucking", "shit", "shitty", "bullshit",
	"asshole", "bastard", "bitch",
	"spam", "scam", "scammer", "phishing",
}

type Filter struct {
	bannedWordRegexps   []*regexp.Regexp
	urlPattern          *regexp.Regexp
	repeatedCharPattern *regexp.Regexp
	compiled            bool
	mu                  sync.RWMutex
}

func New() *Filter {
	f := &Filter{}
	f.compilePatterns()
	return f
}

func (f *Filter) compilePatterns() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.compiled {
		return
	}

	f.bannedWordRegexps = make([]*regexp.Regexp, 0, len(BannedWords))
	for _, word := range BannedWords {
		pattern := `(?i)\b` + regexp.QuoteMeta(word) + `\b`
		re, err := regexp.Compile(pattern)
		if err == nil {
			f.bannedWordRegexps = append(f.bannedWordRegexps, re)
		}
	}

	f.urlPattern = regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`)
	f.repeatedCharPattern = regexp.MustCompile(`(!{4,}|\?{4,}|\.{4,})`)
	f.compiled = true
}

// Check returns false with a reason code when the text must be rejected.
// Empty text always passes; required-field checks belong to the caller.
func (f *Filter) Check(text string) (bool, string) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if text == "" {
		return true, ""
	}
	for _, re := range f.bannedWordRegexps {
		if re.MatchString(text) {
			return false, "inappropriate_language"
		}
	}
	if f.urlPattern.MatchString(text) {
		return false, "url_not_allowed"
	}
	if f.repeatedCharPattern.MatchString(text) {
		return false, "spam_detected"
	}
	return true, ""
}

// RejectionMessage maps a reason code to a user-visible message.
func RejectionMessage(reason string) string {
	messages := map[string]string{
		"inappropriate_language": "This text contains inappropriate language.",
		"url_not_allowed":        "URLs and web links are not allowed.",
		"spam_detected":          "This text appears to be spam.",
	}
	if msg, ok := messages[reason]; ok {
		return msg
	}
	return "This text was rejected by the content filter."
}
