package records

import (
	"slices"
	"strings"
	"time"

	"github.com/mcncl/gamedata/internal/decoder"
	"github.com/mcncl/gamedata/internal/models"
)

// Notice is one in-game announcement.
type Notice struct {
	Title       string
	Content     string
	PostingDate time.Time
	IsPublic    bool
	UUID        string
	InDate      string
	ImageKey    string
	LinkURL     string
	IsRead      bool
}

// unescapeNewlines turns the literal two-character sequence \n, which the
// notice editor stores, into a real newline.
func unescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

// DecodeNotice reads one tagged notice row. IsRead is left false; see MarkRead.
func DecodeNotice(t decoder.Tagged, row models.Container) Notice {
	return Notice{
		Title:       unescapeNewlines(t.String(row, "title", "")),
		Content:     unescapeNewlines(t.String(row, "content", "")),
		PostingDate: t.Time(row, "postingDate", time.Time{}),
		IsPublic:    t.String(row, "isPublic", "") == "y",
		UUID:        t.String(row, "uuid", ""),
		InDate:      t.String(row, "inDate", ""),
		ImageKey:    t.String(row, "imageKey", ""),
		LinkURL:     t.String(row, "linkUrl", ""),
	}
}

// DecodeNotices decodes rows in order.
func DecodeNotices(t decoder.Tagged, rows []models.Container) []Notice {
	notices := make([]Notice, len(rows))
	for i, row := range rows {
		notices[i] = DecodeNotice(t, row)
	}
	return notices
}

// MarkRead sets IsRead on every notice whose UUID is in seen. It returns
// the marked notices and seen with the UUIDs of notices that no longer
// exist removed, ready to be stored again.
func MarkRead(notices []Notice, seen []string) ([]Notice, []string) {
	marked := slices.Clone(notices)
	live := make(map[string]struct{}, len(notices))
	for i := range marked {
		live[marked[i].UUID] = struct{}{}
		marked[i].IsRead = slices.Contains(seen, marked[i].UUID)
	}

	kept := make([]string, 0, len(seen))
	for _, uuid := range seen {
		if _, ok := live[uuid]; ok {
			kept = append(kept, uuid)
		}
	}
	return marked, kept
}
