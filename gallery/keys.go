// Package gallery holds the view-layer controllers shared by every Showcase
// surface: the read-through cache that paints last-known content instantly,
// the incremental feed pager, and the optimistic reaction control.
package gallery

import "strconv"

// Cache keys. These match the web client's localStorage keys so a shared
// store serves both surfaces.
const (
	KeyFeaturedProjects = "featured_projects"
	KeyCommunityPage1   = "community_projects_p1"
	KeyLeaderboardAll   = "leaderboard_all"
	KeyLeaderboardWeek  = "leaderboard_weekly"

	// KeyTopCreators is the legacy key older revisions wrote; it is still
	// read for first paint but never written back.
	KeyTopCreators = "top_creators"
)

// KeyProject returns the cache key for one project's detail payload.
func KeyProject(id int) string { return "project_" + strconv.Itoa(id) }
