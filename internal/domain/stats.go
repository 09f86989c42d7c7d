package domain

import "time"

// Bucket is one entry of a categorical distribution.
type Bucket struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// MonthCount is one point of a monthly series, Month formatted as "2006-01".
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type ProjectStats struct {
	TotalProjects           int          `json:"total_projects"`
	CategoryDistribution    []Bucket     `json:"category_distribution"`
	IntegrationDistribution []Bucket     `json:"integration_distribution"` // required / optional / none
	RecentProjects          []Project    `json:"recent_projects"`
	ProjectsOverTime        []MonthCount `json:"projects_over_time"`
}

type BoardStats struct {
	TotalPosts    int `json:"total_posts"`
	TotalComments int `json:"total_comments"` // sum of Post.CommentCount
	// First bucket is always "all" with the total post count.
	CategoryDistribution []Bucket     `json:"category_distribution"`
	PopularPosts         []Post       `json:"popular_posts"`
	PostsOverTime        []MonthCount `json:"posts_over_time"`
}

type Contributor struct {
	AuthorID    string `json:"author_id"`
	DisplayName string `json:"display_name"`
	PostCount   int    `json:"post_count"`
}

// EstimatedSeries marks a slice that has no telemetry source behind it.
// Available stays false and Points are zero-filled placeholders.
type EstimatedSeries struct {
	Available bool     `json:"available"`
	Note      string   `json:"note"`
	Points    []Bucket `json:"points"`
}

type UserStats struct {
	TotalUsers      int             `json:"total_users"`
	TotalVisitors   int64           `json:"total_visitors"`
	TopContributors []Contributor   `json:"top_contributors"`
	HourlyVisits    EstimatedSeries `json:"hourly_visits"`
	DailyActivity   EstimatedSeries `json:"daily_activity"`
}

type TechUsage struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type ProjectTechCount struct {
	ProjectID    string `json:"project_id"`
	Title        string `json:"title"`
	Technologies int    `json:"technologies"`
	Tools        int    `json:"tools"`
	Total        int    `json:"total"`
}

type TechStackStats struct {
	TopTechnologies   []TechUsage        `json:"top_technologies"`
	TopTools          []TechUsage        `json:"top_tools"`
	ProjectTechCounts []ProjectTechCount `json:"project_tech_counts"`
}

// DashboardSnapshot is the aggregated dashboard at LastUpdated.
type DashboardSnapshot struct {
	Projects    ProjectStats   `json:"projects"`
	Board       BoardStats     `json:"board"`
	Users       UserStats      `json:"users"`
	TechStack   TechStackStats `json:"tech_stack"`
	Degraded    []string       `json:"degraded,omitempty"` // slices replaced with zero values
	LastUpdated time.Time      `json:"last_updated"`
}

// Slice names used in DashboardSnapshot.Degraded
const (
	SliceProjects  = "projects"
	SliceBoard     = "board"
	SliceUsers     = "users"
	SliceTechStack = "tech_stack"
)
