package game

import "fmt"

// NoticeLevel controls the color of a notice on the HUD.
type NoticeLevel uint8

const (
	NoticeInfo      NoticeLevel = iota // cyan
	NoticeWarning                      // yellow
	NoticeFailure                      // red
	NoticeReward                       // green
	NoticePromotion                    // white
)

func (l NoticeLevel) String() string {
	switch l {
	case NoticeWarning:
		return "warning"
	case NoticeFailure:
		return "failure"
	case NoticeReward:
		return "reward"
	case NoticePromotion:
		return "promotion"
	default:
		return "info"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l NoticeLevel) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *NoticeLevel) UnmarshalText(b []byte) error {
	for lv := NoticeInfo; lv <= NoticePromotion; lv++ {
		if lv.String() == string(b) {
			*l = lv
			return nil
		}
	}
	return fmt.Errorf("unknown notice level %q", b)
}

// Notice is one line of player-facing feedback.
type Notice struct {
	Text  string      `json:"text"`
	Level NoticeLevel `json:"level"`
	At    float64     `json:"at"` // session seconds
}

// NoticeLog is a bounded FIFO of notices.
type NoticeLog struct {
	notices []Notice
	maxSize int
	width   int
}

// NewNoticeLog keeps the most recent maxSize lines, wrapping at width columns.
func NewNoticeLog(maxSize, width int) *NoticeLog {
	return &NoticeLog{
		notices: make([]Notice, 0, maxSize),
		maxSize: maxSize,
		width:   width,
	}
}

// Add appends a notice, evicting the oldest lines if full.
func (l *NoticeLog) Add(at float64, level NoticeLevel, text string) {
	for _, line := range wrapText(text, l.width) {
		n := Notice{Text: line, Level: level, At: at}
		if len(l.notices) >= l.maxSize {
			copy(l.notices, l.notices[1:])
			l.notices[len(l.notices)-1] = n
		} else {
			l.notices = append(l.notices, n)
		}
	}
}

// Recent returns a copy of the last n notices (or fewer if the log is shorter).
func (l *NoticeLog) Recent(n int) []Notice {
	n = min(n, len(l.notices))
	return append([]Notice(nil), l.notices[len(l.notices)-n:]...)
}

// Len returns the number of stored lines.
func (l *NoticeLog) Len() int { return len(l.notices) }

// Clear drops every notice.
func (l *NoticeLog) Clear() { l.notices = l.notices[:0] }

// wrapText splits text into lines no longer than maxWidth.
func wrapText(s string, maxWidth int) []string {
	if maxWidth <= 0 || len(s) <= maxWidth {
		return []string{s}
	}
	words := splitWords(s)
	if len(words) == 0 {
		return []string{""}
	}
	var result []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > maxWidth {
			result = append(result, line)
			line = w
		} else {
			line += " " + w
		}
	}
	return append(result, line)
}

// splitWords splits on whitespace.
func splitWords(s string) []string {
	var words []string
	word := ""
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' {
			if word != "" {
				words = append(words, word)
				word = ""
			}
		} else {
			word += string(r)
		}
	}
	if word != "" {
		words = append(words, word)
	}
	return words
}
