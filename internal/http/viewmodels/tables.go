package viewmodels

// SortColumn is one sortable table header. Href carries the full query string
// for the next click; Indicator is the arrow glyph for the active column.
type SortColumn struct {
	Field     string
	Label     string
	Href      string
	Indicator string
}

// TableData is the shared shape of both list screens: the derived page window
// plus everything the template needs to rebuild hrefs.
type TableData struct {
	Query         string
	SortField     string
	Dir           string
	Columns       []SortColumn
	Page          int
	TotalPages    int
	TotalFiltered int
	TotalHeld     int
	ShowingFrom   int
	ShowingTo     int
	HasPrev       bool
	HasNext       bool
	PrevHref      string
	NextHref      string
	RefreshHref   string
	SearchAction  string
}

// UserRow pairs a held record with its per-row action state. Controls render
// disabled while Pending is true.
type UserRow struct {
	Record      UserRecord
	Pending     bool
	Suspended   bool
	StatusVerb  string // form value for the status toggle
	StatusLabel string // button label for the status toggle
	PlanValue   string // form value for the plan toggle
	PlanLabel   string
}

type UsersViewData struct {
	Layout       LayoutData
	Table        TableData
	Rows         []UserRow
	ErrorMessage string // set only when nothing could be loaded at all
}

type AdminRow struct {
	Record  AdminRecord
	Pending bool
}

type AdminsViewData struct {
	Layout       LayoutData
	Table        TableData
	Rows         []AdminRow
	InviteEmail  string
	ErrorMessage string
}
