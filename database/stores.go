package database

import (
	"github.com/princinho/stonevitrine/models"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Stores groups one repository per persisted resource.
type Stores struct {
	Users        Repository[models.User]
	Collections  Repository[models.Collection]
	Projects     Repository[models.Project]
	Team         Repository[models.TeamMember]
	Testimonials Repository[models.Testimonial]
	Expertise    Repository[models.Expertise]
	Messages     Repository[models.Message]
	Settings     Repository[models.Settings]
}

func NewMongoStores(db *mongo.Database) *Stores {
	return &Stores{
		Users:        NewMongoRepository[models.User](db.Collection(UsersCollection)),
		Collections:  NewMongoRepository[models.Collection](db.Collection(CollectionsCollection)),
		Projects:     NewMongoRepository[models.Project](db.Collection(ProjectsCollection)),
		Team:         NewMongoRepository[models.TeamMember](db.Collection(TeamCollection)),
		Testimonials: NewMongoRepository[models.Testimonial](db.Collection(TestimonialsCollection)),
		Expertise:    NewMongoRepository[models.Expertise](db.Collection(ExpertiseCollection)),
		Messages:     NewMongoRepository[models.Message](db.Collection(MessagesCollection)),
		Settings:     NewMongoRepository[models.Settings](db.Collection(SettingsCollection)),
	}
}

// NewMemoryStores backs every resource with process memory. Data is lost on exit.
func NewMemoryStores() *Stores {
	return &Stores{
		Users:        NewMemoryRepository[models.User]("username"),
		Collections:  NewMemoryRepository[models.Collection](),
		Projects:     NewMemoryRepository[models.Project](),
		Team:         NewMemoryRepository[models.TeamMember](),
		Testimonials: NewMemoryRepository[models.Testimonial](),
		Expertise:    NewMemoryRepository[models.Expertise](),
		Messages:     NewMemoryRepository[models.Message](),
		Settings:     NewMemoryRepository[models.Settings](),
	}
}
