//-------------------------------------------------------------------------
//
// salesgen - International Sales Data Generator
//
// Copyright (c) 2025 - 2026, Meridian Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package sales

import (
	"testing"

	"github.com/meridiandata/salesgen/internal/apps"
	"github.com/meridiandata/salesgen/internal/config"
)

func testGenerator(seed uint64, vol config.GenerationConfig) *Generator {
	return NewGenerator(nil, apps.GeneratorConfig{Volumes: vol, Seed: seed})
}

func planDepth(plan []categoryNode, i int) int {
	depth := 1
	for plan[i].Parent >= 0 {
		i = plan[i].Parent
		depth++
	}
	return depth
}

func TestPlanCategoriesRespectsBudget(t *testing.T) {
	for _, budget := range []int{12, 25, 40, 100} {
		for seed := uint64(1); seed <= 50; seed++ {
			vol := config.DefaultGeneration()
			vol.ProductCategories = budget
			g := testGenerator(seed, vol)

			plan := g.planCategories()
			if len(plan) > budget {
				t.Fatalf("seed %d budget %d: planned %d categories",
					seed, budget, len(plan))
			}
			if len(plan) == 0 {
				t.Fatalf("seed %d budget %d: empty category plan", seed, budget)
			}
		}
	}
}

func TestPlanCategoriesDepthAndUniqueness(t *testing.T) {
	g := testGenerator(12, config.DefaultGeneration())

	plan := g.planCategories()
	seen := make(map[string]bool, len(plan))
	for i := range plan {
		if d := planDepth(plan, i); d > 3 {
			t.Errorf("category %q has depth %d", plan[i].Name, d)
		}
		if seen[plan[i].Name] {
			t.Errorf("duplicate category name %q", plan[i].Name)
		}
		seen[plan[i].Name] = true
		if plan[i].Parent >= i {
			t.Errorf("category %q references a later parent", plan[i].Name)
		}
	}
}

func TestPlanCategoriesTinyBudget(t *testing.T) {
	vol := config.DefaultGeneration()
	vol.ProductCategories = 3
	g := testGenerator(13, vol)

	plan := g.planCategories()
	if len(plan) > 3 {
		t.Fatalf("planned %d categories with budget 3", len(plan))
	}
	for _, node := range plan {
		if node.Parent != -1 {
			t.Errorf("tiny budget should produce only roots, got child %q", node.Name)
		}
	}
}

func TestCategoryLevels(t *testing.T) {
	plan := []categoryNode{
		{Name: "A", Parent: -1},
		{Name: "A - Sub", Parent: 0},
		{Name: "A - Sub - Deep", Parent: 1},
		{Name: "B", Parent: -1},
	}
	levels, orphans := categoryLevels(plan, maxCategoryLevels)
	if len(orphans) != 0 {
		t.Fatalf("unexpected orphans: %v", orphans)
	}

	placedAt := make(map[int]int)
	for lvl, idxs := range levels {
		for _, i := range idxs {
			placedAt[i] = lvl
		}
	}
	if len(placedAt) != len(plan) {
		t.Fatalf("placed %d of %d nodes", len(placedAt), len(plan))
	}
	for i, node := range plan {
		if node.Parent < 0 {
			continue
		}
		if placedAt[node.Parent] >= placedAt[i] {
			t.Errorf("node %q placed at level %d, parent at %d", node.Name, placedAt[i], placedAt[node.Parent])
		}
	}
}

func TestCategoryLevelsDropsOrphans(t *testing.T) {
	plan := []categoryNode{
		{Name: "A", Parent: -1},
		{Name: "Orphan", Parent: 99},
	}
	levels, orphans := categoryLevels(plan, maxCategoryLevels)
	if len(levels) == 0 || len(levels[0]) != 1 {
		t.Fatalf("expected root level with one node, got %v", levels)
	}
	if len(orphans) != 1 || orphans[0] != 1 {
		t.Fatalf("expected orphan index 1, got %v", orphans)
	}
}

func TestCategoryLevelsDepthCap(t *testing.T) {
	// A chain deeper than the cap leaves its tail orphaned.
	plan := make([]categoryNode, 7)
	plan[0] = categoryNode{Name: "root", Parent: -1}
	for i := 1; i < len(plan); i++ {
		plan[i] = categoryNode{Name: string(rune('a' + i)), Parent: i - 1}
	}
	levels, orphans := categoryLevels(plan, 5)
	if len(levels) != 5 {
		t.Fatalf("expected 5 levels, got %d", len(levels))
	}
	if len(orphans) != 2 {
		t.Fatalf("expected 2 orphans beyond the cap, got %d", len(orphans))
	}
}

func TestProductSpecsShape(t *testing.T) {
	g := testGenerator(14, config.DefaultGeneration())
	f := g.locales.fakerFor(localeEnUS)

	tests := []struct {
		category string
		wantKeys []string
	}{
		{"Electronics - Word Systems", []string{"brand", "model", "warranty_months"}},
		{"Industrial Equipment", []string{"power_rating", "voltage", "certification"}},
		{"Office Supplies - Tools", []string{"material", "color", "dimensions"}},
		{"Textiles", []string{"type", "grade", "weight"}},
	}
	for _, tt := range tests {
		name, specs := g.productSpecs(f, tt.category)
		if name == "" {
			t.Errorf("%s: empty product name", tt.category)
		}
		for _, key := range tt.wantKeys {
			if _, ok := specs[key]; !ok {
				t.Errorf("%s: missing spec key %q", tt.category, key)
			}
		}
	}
}

func TestTitleWord(t *testing.T) {
	if got := titleWord("widget"); got != "Widget" {
		t.Errorf("got %q", got)
	}
	if got := titleWord(""); got != "" {
		t.Errorf("got %q", got)
	}
}
