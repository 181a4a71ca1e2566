package models

import "time"

// GalleryMedia is one uploaded gallery item. Media is the object key inside
// the bucket's gallery folder; Month is 1–12 and Year a four-digit string,
// matching how the archive pages are grouped.
type GalleryMedia struct {
	ID        int64
	Month     int
	Year      string
	Media     string
	Author    string
	UserUID   string
	CreatedAt time.Time
}
