package main

import (
	"github.com/rs/zerolog"

	"github.com/flashdeck/flashdeck-api/store"
)

type seedCard struct {
	front string
	back  string
	tags  []string
}

var seedTags = []struct {
	name  string
	color string
}{
	{"Math", "#3b82f6"},
	{"Physics", "#8b5cf6"},
	{"Chemistry", "#10b981"},
	{"Biology", "#f59e0b"},
	{"Computer Science", "#ef4444"},
}

var seedCards = []seedCard{
	{
		front: "What is the Pythagorean theorem?",
		back:  "In a right triangle, the square of the length of the hypotenuse equals the sum of the squares of the lengths of the other two sides. Expressed as: $a^2 + b^2 = c^2$",
		tags:  []string{"Math"},
	},
	{
		front: "Define vector in mathematics",
		back:  "A vector is a quantity that has both magnitude and direction. It can be represented as $\\vec{v} = (x, y, z)$ in 3D space.",
		tags:  []string{"Math"},
	},
	{
		front: "What is Newton's Second Law of Motion?",
		back:  "The acceleration of an object is directly proportional to the net force acting on it and inversely proportional to its mass. Expressed as: $F = ma$",
		tags:  []string{"Physics"},
	},
	{
		front: "What is the periodic table?",
		back:  "The periodic table is a tabular arrangement of chemical elements, organized by atomic number, electron configuration, and recurring chemical properties.",
		tags:  []string{"Chemistry"},
	},
	{
		front: "Explain the concept of Big O notation",
		back:  "Big O notation is used to describe the performance or complexity of an algorithm. It describes the worst-case scenario and can be used to describe execution time or space used. Example: $O(n)$ is linear time complexity.",
		tags:  []string{"Computer Science"},
	},
}

// seedDatabase loads the sample deck for ownerID. Skips any step whose data
// already exists so it can run more than once.
func seedDatabase(st *store.Store, ownerID string, logger zerolog.Logger) error {
	existing, err := st.AllTags(ownerID)
	if err != nil {
		return err
	}

	tagIDs := make(map[string]uint, len(seedTags))
	for _, tag := range existing {
		tagIDs[tag.Name] = tag.ID
	}

	if len(existing) == 0 {
		logger.Info().Msg("seeding tags")
		for _, t := range seedTags {
			tag, err := st.CreateTag(ownerID, t.name, t.color)
			if err != nil {
				return err
			}
			tagIDs[tag.Name] = tag.ID
		}
	} else {
		logger.Info().Msg("tags already exist, skipping tag seeding")
	}

	cards, err := st.AllFlashcards(ownerID)
	if err != nil {
		return err
	}
	if len(cards) > 0 {
		logger.Info().Msg("flashcards already exist, skipping flashcard seeding")
		return nil
	}

	logger.Info().Msg("seeding flashcards")
	for _, c := range seedCards {
		var ids []uint
		for _, name := range c.tags {
			if id, ok := tagIDs[name]; ok {
				ids = append(ids, id)
			}
		}
		if _, err := st.CreateFlashcard(ownerID, c.front, c.back, ids); err != nil {
			return err
		}
	}

	logger.Info().Str("owner", ownerID).Msg("seeding complete")
	return nil
}
