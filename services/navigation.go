package services

import "portfolio/models"

// DefaultHighlightOffset is how far above a section's top the highlight switches
const DefaultHighlightOffset = 150.0

// ActiveSection returns the id of the last section (in document order)
// whose top, minus offset, the scroll position has reached. It returns ""
// when the page is above every section.
func ActiveSection(sections []models.Section, scrollY, offset float64) string {
	current := ""
	for _, section := range sections {
		if scrollY >= section.Top-offset {
			current = section.ID
		}
	}
	return current
}

// NavLinks marks the sidebar link pointing at the current section
func NavLinks(sections []models.Section, current string) []models.NavLink {
	links := make([]models.NavLink, 0, len(sections))
	for _, section := range sections {
		href := "#" + section.ID
		links = append(links, models.NavLink{
			Href:   href,
			Active: current != "" && href == "#"+current,
		})
	}
	return links
}
