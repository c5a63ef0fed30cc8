package catalog

import (
	"time"

	"github.com/desertthunder/shelf/internal/models"
)

// Seed returns the starter catalog used when the store is empty.
func Seed() []*models.Item {
	return []*models.Item{
		models.NewBook("The Master and Margarita", "Mikhail Bulgakov"),
		models.NewBook("War and Peace", "Lev Tolstoy"),
		models.NewEBook("The Lord of the Rings", "J. R. R. Tolkien", 500),
		models.NewBook("Cloud Atlas", "David Mitchell"),
		models.NewAudioBook("1984", "George Orwell", 11*time.Hour+22*time.Minute),
		models.NewMagazine("National Geographic", "Nathan Lump", 1),
	}
}

// SeedRegistry adds the starter catalog to r.
func SeedRegistry(r *Registry) error {
	for _, item := range Seed() {
		if _, err := r.Add(item); err != nil {
			return err
		}
	}
	return nil
}
