package topic

import (
	"strconv"
	"strings"
)

// Topic is one learning theme for a lesson.
type Topic struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Icon        string   `json:"icon"`
	Description string   `json:"description"`
	Vocabulary  []string `json:"vocabulary"`
	AgeRange    string   `json:"age_range"` // "min-max", e.g. "6-11"
}

// Default returns the built-in lesson topics.
func Default() []Topic {
	return []Topic{
		{
			ID:          "animals",
			Title:       "Animals",
			Icon:        "🐶",
			Description: "Learn about pets, farm animals, and wild animals",
			Vocabulary:  []string{"dog", "cat", "bird", "fish", "cow", "pig", "lion", "elephant"},
			AgeRange:    "6-11",
		},
		{
			ID:          "colors",
			Title:       "Colors",
			Icon:        "🌈",
			Description: "Discover all the beautiful colors around us",
			Vocabulary:  []string{"red", "blue", "green", "yellow", "orange", "purple", "pink", "black"},
			AgeRange:    "6-8",
		},
		{
			ID:          "family",
			Title:       "Family",
			Icon:        "👨‍👩‍👧‍👦",
			Description: "Meet your family members and relatives",
			Vocabulary:  []string{"mother", "father", "sister", "brother", "grandmother", "grandfather", "baby"},
			AgeRange:    "6-9",
		},
		{
			ID:          "food",
			Title:       "Food",
			Icon:        "🍎",
			Description: "Explore delicious foods and drinks",
			Vocabulary:  []string{"apple", "banana", "bread", "milk", "water", "cake", "pizza", "rice"},
			AgeRange:    "6-11",
		},
		{
			ID:          "numbers",
			Title:       "Numbers",
			Icon:        "🔢",
			Description: "Count from 1 to 20 and learn basic math",
			Vocabulary:  []string{"one", "two", "three", "four", "five", "six", "seven", "eight", "nine", "ten"},
			AgeRange:    "6-8",
		},
		{
			ID:          "body",
			Title:       "Body Parts",
			Icon:        "👤",
			Description: "Learn about your body and how to take care of it",
			Vocabulary:  []string{"head", "eyes", "nose", "mouth", "hands", "feet", "ears", "legs"},
			AgeRange:    "7-10",
		},
		{
			ID:          "clothes",
			Title:       "Clothes",
			Icon:        "👕",
			Description: "Dress up and learn about different clothes",
			Vocabulary:  []string{"shirt", "pants", "dress", "shoes", "hat", "socks", "jacket", "skirt"},
			AgeRange:    "7-11",
		},
		{
			ID:          "weather",
			Title:       "Weather",
			Icon:        "☀️",
			Description: "Talk about sunny, rainy, and snowy days",
			Vocabulary:  []string{"sunny", "rainy", "cloudy", "windy", "hot", "cold", "warm", "cool"},
			AgeRange:    "8-11",
		},
		{
			ID:          "school",
			Title:       "School",
			Icon:        "🎒",
			Description: "Learn about school, teachers, and friends",
			Vocabulary:  []string{"teacher", "student", "book", "pencil", "desk", "chair", "classroom", "playground"},
			AgeRange:    "6-11",
		},
		{
			ID:          "toys",
			Title:       "Toys",
			Icon:        "🧸",
			Description: "Play with your favorite toys and games",
			Vocabulary:  []string{"doll", "ball", "car", "toy", "game", "puzzle", "blocks", "teddy bear"},
			AgeRange:    "6-9",
		},
	}
}

// ForAge keeps only the topics appropriate for the student's age. Topics
// with an unparseable range are kept.
func ForAge(topics []Topic, age int) []Topic {
	filtered := make([]Topic, 0, len(topics))
	for _, t := range topics {
		min, max, ok := t.ageBounds()
		if !ok || (age >= min && age <= max) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// Find returns the topic with the given id, or nil.
func Find(topics []Topic, id string) *Topic {
	for i := range topics {
		if topics[i].ID == id {
			return &topics[i]
		}
	}
	return nil
}

func (t Topic) ageBounds() (min, max int, ok bool) {
	parts := strings.SplitN(t.AgeRange, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	min, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	max, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return min, max, true
}
