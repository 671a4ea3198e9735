package records

import (
	"time"

	"github.com/mcncl/gamedata/internal/decoder"
	"github.com/mcncl/gamedata/internal/models"
)

// PostType is the mailbox a post was delivered to.
type PostType int

const (
	Admin PostType = iota
	Rank
	Coupon
	User
)

var postTypeNames = [...]string{
	Admin:  "Admin",
	Rank:   "Rank",
	Coupon: "Coupon",
	User:   "User",
}

func (p PostType) String() string {
	if p < 0 || int(p) >= len(postTypeNames) {
		return "PostType(?)"
	}
	return postTypeNames[p]
}

// PostTypes resolves mailbox names.
var PostTypes = decoder.NewEnumSet(Admin, Rank, Coupon, User)

// Post is one piece of mail with attached items.
type Post struct {
	Type           PostType
	Title          string
	Content        string
	ExpirationDate time.Time
	SentDate       time.Time
	InDate         string
	Items          []PostItem
}

// PostItem is an item attached to a post.
type PostItem struct {
	ItemID string
	Count  int
}

// DecodePosts reads the flattened "postList" of a mailbox response.
func DecodePosts(d decoder.Flat, postType PostType, envelope models.FlatObject) []Post {
	list := d.Array(envelope, "postList")
	posts := make([]Post, 0, len(list))
	for _, raw := range list {
		row, ok := raw.(models.FlatObject)
		if !ok {
			continue
		}
		posts = append(posts, DecodePost(d, postType, row))
	}
	return posts
}

// DecodePost reads a single flattened post.
func DecodePost(d decoder.Flat, postType PostType, row models.FlatObject) Post {
	p := Post{
		Type:           postType,
		Title:          d.String(row, "title", ""),
		Content:        d.String(row, "content", ""),
		ExpirationDate: d.Time(row, "expirationDate", time.Time{}),
		SentDate:       d.Time(row, "sentDate", time.Time{}),
		InDate:         d.String(row, "inDate", ""),
	}

	items := d.Array(row, "items")
	p.Items = make([]PostItem, 0, len(items))
	for _, raw := range items {
		item, ok := raw.(models.FlatObject)
		if !ok {
			continue
		}
		p.Items = append(p.Items, PostItem{
			ItemID: d.String(d.Object(item, "item"), "itemId", ""),
			Count:  d.Int(item, "itemCount", 0),
		})
	}
	return p
}
