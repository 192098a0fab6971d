package domain

// UserSort enumerates the accepted list orderings.
type UserSort string

const (
	SortCreatedAtAsc  UserSort = "createdAt:1"
	SortCreatedAtDesc UserSort = "createdAt:-1"
	SortFullNameAsc   UserSort = "fullName:1"
	SortFullNameDesc  UserSort = "fullName:-1"
)

// Valid reports whether s is one of the accepted sort keys.
func (s UserSort) Valid() bool {
	switch s {
	case SortCreatedAtAsc, SortCreatedAtDesc, SortFullNameAsc, SortFullNameDesc:
		return true
	}
	return false
}

// ListParams is a validated, defaulted pagination request.
type ListParams struct {
	Page  int
	Limit int
	Sort  UserSort
}

// UserPage is one page of a user listing.
type UserPage struct {
	Items []SafeUser
	Page  int
	Limit int
	Total int64
	Pages int
}

// NewUserPage assembles a page, deriving the page count from total and
// limit. An empty collection still reports one page; a never-nil Items
// slice keeps the JSON rendering as [] rather than null.
func NewUserPage(items []SafeUser, params ListParams, total int64) UserPage {
	pages := int((total + int64(params.Limit) - 1) / int64(params.Limit))
	if pages < 1 {
		pages = 1
	}
	if items == nil {
		items = []SafeUser{}
	}
	return UserPage{
		Items: items,
		Page:  params.Page,
		Limit: params.Limit,
		Total: total,
		Pages: pages,
	}
}
