package models

// Dashboard is the admin overview: resource totals plus the latest messages.
type Dashboard struct {
	Projects            int64     `json:"projects"`
	Collections         int64     `json:"collections"`
	Expertise           int64     `json:"expertise"`
	Team                int64     `json:"team"`
	Testimonials        int64     `json:"testimonials"`
	PendingTestimonials int64     `json:"pendingTestimonials"`
	Messages            int64     `json:"messages"`
	UnreadMessages      int64     `json:"unreadMessages"`
	RecentMessages      []Message `json:"recentMessages"`
}
