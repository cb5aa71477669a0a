package category_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/cattree/pkg/category"
)

func ExampleFlatten() {
	forest := []category.Category{
		{ID: "1", Name: "Electronics", Children: []category.Category{
			{ID: "2", Name: "Phones"},
			{ID: "3", Name: "Laptops"},
		}},
		{ID: "4", Name: "Garden"},
	}

	for _, row := range category.Flatten(forest) {
		parent := "-"
		if row.ParentName != nil {
			parent = *row.ParentName
		}
		fmt.Printf("%s%s (parent: %s)\n", strings.Repeat("  ", row.Level), row.Name, parent)
	}
	// Output:
	// Electronics (parent: -)
	//   Phones (parent: Electronics)
	//   Laptops (parent: Electronics)
	// Garden (parent: -)
}

func ExampleFilterColumnsOf() {
	categories := []category.Category{
		{ID: "1", Type: "A"},
		{ID: "2", Type: "B"},
		{ID: "3", Type: "A"},
		{ID: "4", Type: ""},
	}

	for _, col := range category.FilterColumnsOf(categories) {
		fmt.Printf("%s:", col.Title)
		for _, o := range col.Options {
			fmt.Printf(" %s", o.Value)
		}
		fmt.Println()
	}
	// Output:
	// Type: A B
	// Created By:
}
