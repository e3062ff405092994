package db

import "commfeed/internal/models"

// SeedDocument builds the document written when the slot is first created.
func SeedDocument() *models.Document {
	return &models.Document{
		Posts: []models.Post{},
		Users: []models.User{
			{
				ID:          "user1",
				Name:        "John Doe",
				Avatar:      "https://via.placeholder.com/40",
				Communities: []string{"Tech Enthusiasts", "Book Club", "Fitness Community"},
			},
		},
		Communities: []models.Community{
			{ID: "tech", Name: "Tech Enthusiasts", Members: 1200, Icon: "fa-code"},
			{ID: "books", Name: "Book Club", Members: 856, Icon: "fa-book"},
			{ID: "fitness", Name: "Fitness Community", Members: 1500, Icon: "fa-dumbbell"},
		},
	}
}
