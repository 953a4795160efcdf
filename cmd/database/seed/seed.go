package seeding

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"foodgram/entities"
	"foodgram/pkg/ingredient"
	"foodgram/pkg/tag"

	"gorm.io/gorm"
)

type ingredientRecord struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

type tagRecord struct {
	Name  string
	Color string
	Slug  string
}

var defaultTags = []tagRecord{
	{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
	{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
	{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
}

// Seed imports the ingredient catalog from a JSON file and makes sure the
// default tag set exists. Re-running it is safe: rows are matched on their
// natural keys, never duplicated.
func Seed(db *gorm.DB, ingredientsPath string) error {
	ctx := context.Background()

	data, err := os.ReadFile(ingredientsPath)
	if err != nil {
		return fmt.Errorf("reading ingredients file: %w", err)
	}

	var records []ingredientRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parsing ingredients file: %w", err)
	}

	ingredientRepository := ingredient.NewIngredientRepository(db)
	for _, record := range records {
		if record.Name == "" || record.MeasurementUnit == "" {
			continue
		}
		err := ingredientRepository.FirstOrCreateIngredient(ctx, &entities.Ingredient{
			Name:            record.Name,
			MeasurementUnit: record.MeasurementUnit,
		})
		if err != nil {
			return fmt.Errorf("importing ingredient %q: %w", record.Name, err)
		}
	}

	tagService := tag.NewTagService(tag.NewTagRepository(db), nil)
	for _, record := range defaultTags {
		if err := tagService.ImportTag(ctx, record.Name, record.Color, record.Slug); err != nil {
			return fmt.Errorf("importing tag %q: %w", record.Slug, err)
		}
	}

	fmt.Printf("Seeded %d ingredients and %d tags\n", len(records), len(defaultTags))
	return nil
}
