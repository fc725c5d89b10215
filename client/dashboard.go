package client

import (
	"context"

	"github.com/princinho/stonevitrine/models"
	"golang.org/x/sync/errgroup"
)

const recentMessages = 5

// Dashboard builds the admin overview from the list endpoints, the way the
// back office page does. Requires a session.
func (c *Client) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var (
		projects     []models.Project
		collections  []models.Collection
		expertise    []models.Expertise
		team         []models.TeamMember
		testimonials []models.Testimonial
		messages     []models.Message
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { projects, err = c.Projects(ctx); return })
	g.Go(func() (err error) { collections, err = c.Collections(ctx); return })
	g.Go(func() (err error) { expertise, err = c.Expertise(ctx); return })
	g.Go(func() (err error) { team, err = c.Team(ctx); return })
	g.Go(func() (err error) { testimonials, err = c.Testimonials(ctx); return })
	g.Go(func() (err error) { messages, err = c.Messages(ctx, false); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &models.Dashboard{
		Projects:     int64(len(projects)),
		Collections:  int64(len(collections)),
		Expertise:    int64(len(expertise)),
		Team:         int64(len(team)),
		Testimonials: int64(len(testimonials)),
		Messages:     int64(len(messages)),
	}
	for _, t := range testimonials {
		if !t.IsApproved {
			d.PendingTestimonials++
		}
	}
	for _, m := range messages {
		if !m.Read {
			d.UnreadMessages++
		}
	}
	// the inbox is already sorted newest first
	if len(messages) > recentMessages {
		messages = messages[:recentMessages]
	}
	d.RecentMessages = append([]models.Message{}, messages...)
	return d, nil
}
