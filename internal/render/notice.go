package render

import (
	"fmt"
	"strings"
	"sync"
)

// Notice is a non-fatal message about a render, shown to the user.
type Notice struct {
	Kind        string   `json:"kind"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

const noticeKind = "notice"

func (n Notice) String() string {
	if len(n.Suggestions) == 0 {
		return n.Message
	}
	return fmt.Sprintf("%s (did you mean %s?)", n.Message, strings.Join(n.Suggestions, ", "))
}

type noticeLog struct {
	mu      sync.Mutex
	notices []Notice
}

func (l *noticeLog) add(n Notice) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.notices = append(l.notices, n)
}

func (l *noticeLog) list() []Notice {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Notice(nil), l.notices...)
}
