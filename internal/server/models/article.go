package models

import "time"

// Article is a public-site post. Date is the display string shown on the
// page; ordering uses CreatedAt. The four file fields are object keys in
// the media bucket and may be empty.
type Article struct {
	ID        int64
	Title     string
	Date      string
	Body      string
	ImgThumb  string
	ImgMain   string
	File      string
	FileName  string
	Author    string
	UserUID   string
	CreatedAt time.Time
}
