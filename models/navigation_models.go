package models

// Section is the layout of one page section as measured by the page
type Section struct {
	ID     string  `json:"id"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// NavLink is a sidebar link and whether it is highlighted
type NavLink struct {
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

// ActiveSectionRequest carries the scroll position and section layout
type ActiveSectionRequest struct {
	ScrollY  float64   `json:"scroll_y"`
	Offset   *float64  `json:"offset,omitempty"`
	Sections []Section `json:"sections"`
}

// ActiveSectionResponse names the section to highlight
type ActiveSectionResponse struct {
	BaseResponse
	Current string    `json:"current"`
	Links   []NavLink `json:"links"`
}
