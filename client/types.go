package client

import "regexp"

// ------------------------------
// Core domain types and payloads
// ------------------------------

// Page wraps the backend's paginated list shape. Next and Previous are full
// URLs or null; the client only cares whether Next is present.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// HasNext reports whether another page exists.
func (p *Page[T]) HasNext() bool { return p.Next != nil && *p.Next != "" }

// Project is a student-created project as returned by the gallery API.
// List responses carry the summary fields; the detail endpoint additionally
// fills Comments and RelatedProjects.
type Project struct {
	ID             int            `json:"id"`
	Title          string         `json:"project_title"`
	StudentName    string         `json:"student_name"`
	CourseName     string         `json:"course_name"`
	VideoURL       string         `json:"project_video_recording"`
	CreatedAt      string         `json:"created_at"`
	Reactions      map[string]int `json:"reactions,omitempty"`
	TotalReactions int            `json:"total_reactions"`
	CommentCount   int            `json:"comment_count"`

	// Detail-only fields.
	Comments        []Comment `json:"comments,omitempty"`
	RelatedProjects []Project `json:"related_projects,omitempty"`
}

// Comment is append-only from the client's view; the backend assigns IDs and
// ordering.
type Comment struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	Text       string `json:"text"`
	CreatedAt  string `json:"created_at"`
	ParentUUID string `json:"parent_uuid,omitempty"`
}

// Reaction is the server's record of one emoji reaction.
type Reaction struct {
	UUID      string `json:"uuid"`
	Kind      string `json:"reaction_type"`
	CreatedAt string `json:"created_at"`
}

// Parent is a parent/guardian account. JWTToken is only present in the
// creation response.
type Parent struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	JWTToken    string `json:"jwt_token,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// LeaderboardEntry is one creator on the leaderboard.
type LeaderboardEntry struct {
	LearnerUID     string `json:"learner_uid"`
	Name           string `json:"name"`
	Rank           int    `json:"rank"`
	CourseName     string `json:"course_name,omitempty"`
	ProjectCount   int    `json:"project_count"`
	TotalReactions int    `json:"total_reactions"`
}

// WeeklyLeaderboard is a frozen weekly snapshot.
type WeeklyLeaderboard struct {
	Count     int                `json:"count"`
	WeekStart string             `json:"week_start"`
	WeekEnd   string             `json:"week_end"`
	Results   []LeaderboardEntry `json:"results"`
}

// LearnRequestResult is the polymorphic learn-request response: SignupURL
// for anonymous callers, RequestID for authenticated ones.
type LearnRequestResult struct {
	Message   string `json:"message"`
	SignupURL string `json:"signup_url,omitempty"`
	RequestID int    `json:"request_id,omitempty"`
}

var driveFileID = regexp.MustCompile(`/d/([^/]+)`)

// DriveEmbedURL rewrites a Google Drive share link into its embeddable
// preview form. Returns "" when url is not a Drive file link.
func DriveEmbedURL(url string) string {
	m := driveFileID.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return "https://drive.google.com/file/d/" + m[1] + "/preview"
}
