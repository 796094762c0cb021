package kafka

import "time"

// RecipeActivityEvent represents an activity on a recipe: a lifecycle
// change by its author or a favorite toggle by any user.
type RecipeActivityEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	RecipeID   uint      `json:"recipe_id"`
	RecipeName string    `json:"recipe_name"`
	AuthorID   uint      `json:"author_id"`
	ActorID    uint      `json:"actor_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeRecipeCreated   = "recipe.created"
	EventTypeRecipeUpdated   = "recipe.updated"
	EventTypeRecipeDeleted   = "recipe.deleted"
	EventTypeFavoriteAdded   = "favorite.added"
	EventTypeFavoriteRemoved = "favorite.removed"
)

// Kafka topics
const (
	TopicRecipeActivity = "recipe-activity"
)
