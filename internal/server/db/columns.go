package db

// Table names a relation in the schema. Only the four known tables pass
// validation; anything else never reaches SQL text.
type Table string

const (
	TableUsers    Table = "users"
	TableArticles Table = "articles"
	TableEvents   Table = "events"
	TableGallery  Table = "gallery"
)

var knownTables = map[Table]struct{}{
	TableUsers:    {},
	TableArticles: {},
	TableEvents:   {},
	TableGallery:  {},
}

// Valid reports membership in the closed table set.
func (t Table) Valid() bool {
	_, ok := knownTables[t]
	return ok
}

// Column names a column in the schema. Identifiers are never accepted as
// arbitrary strings: every dynamic statement validates its columns against
// this closed enumeration before interpolation, which is the injection
// defense for identifier positions (values always travel as parameters).
type Column string

const (
	ColID         Column = "ID"
	ColUsername   Column = "username"
	ColPassword   Column = "password"
	ColEmail      Column = "email"
	ColMembership Column = "membership"
	ColUID        Column = "uid"
	ColSID        Column = "sid"

	ColTitle    Column = "title"
	ColDate     Column = "date"
	ColBody     Column = "body"
	ColFile     Column = "file"
	ColFileName Column = "fileName"
	ColImgThumb Column = "imgThumb"
	ColImgMain  Column = "imgMain"

	ColStartDateTime Column = "startDateTime"
	ColEndDateTime   Column = "endDateTime"
	ColRecurring     Column = "recurring"
	ColAllDay        Column = "allDay"
	ColDescription   Column = "description"

	ColMonth Column = "month"
	ColYear  Column = "year"
	ColMedia Column = "media"

	ColAuthor    Column = "author"
	ColUserUID   Column = "userUid"
	ColCreatedAt Column = "createdAt"
)

var knownColumns = map[Column]struct{}{
	ColID:            {},
	ColUsername:      {},
	ColPassword:      {},
	ColEmail:         {},
	ColMembership:    {},
	ColUID:           {},
	ColSID:           {},
	ColTitle:         {},
	ColDate:          {},
	ColBody:          {},
	ColFile:          {},
	ColFileName:      {},
	ColImgThumb:      {},
	ColImgMain:       {},
	ColStartDateTime: {},
	ColEndDateTime:   {},
	ColRecurring:     {},
	ColAllDay:        {},
	ColDescription:   {},
	ColMonth:         {},
	ColYear:          {},
	ColMedia:         {},
	ColAuthor:        {},
	ColUserUID:       {},
	ColCreatedAt:     {},
}

// Valid reports membership in the closed column set.
func (c Column) Valid() bool {
	_, ok := knownColumns[c]
	return ok
}

// quoteIdent renders a validated identifier for SQL text. The schema uses
// mixed-case column names, so every identifier is double-quoted.
func quoteIdent(name string) string {
	return `"` + name + `"`
}
