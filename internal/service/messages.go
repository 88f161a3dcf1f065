package service

import (
	"errors"
	"fmt"

	"wikibot/internal/domain"
)

// NoMatchMessage is shown when a query shares no weighted terms with the topic.
const NoMatchMessage = "I'm sorry, I couldn't find relevant information."

// TopicSetMessage confirms a loaded topic.
func TopicSetMessage(title string) string {
	return fmt.Sprintf("Topic set to '%s'. Let's chat!", title)
}

// Message renders err as text for the user.
func Message(err error) string {
	var fe *domain.FetchError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrEmptyTopic):
		return "Please enter a topic."
	case errors.Is(err, domain.ErrEmptyQuery):
		return "Please enter a question."
	case errors.Is(err, domain.ErrNoTopicSet):
		return "Please set a topic first."
	case errors.Is(err, domain.ErrNoPriorAnswer):
		return "Please ask a question first!"
	case errors.Is(err, domain.ErrNotFound):
		return "Couldn't fetch the topic. Try a different topic!"
	case errors.As(err, &fe) && fe.Err != nil:
		return fmt.Sprintf("Network error: %v. Please check your connection and try again.", fe.Err)
	case errors.Is(err, domain.ErrNetwork):
		return "Network error. Please check your connection and try again."
	default:
		return "Something went wrong: " + err.Error()
	}
}
