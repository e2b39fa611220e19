// Package catalog loads the predefined advantages, disadvantages and
// skills offered when building a sheet.
package catalog

import (
	"strings"

	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
)

// Advantage is a predefined advantage template
type Advantage struct {
	Name        string `json:"name" yaml:"name"`
	Cost        int    `json:"cost" yaml:"cost"`
	Description string `json:"description" yaml:"description"`
}

// Disadvantage is a predefined disadvantage template; Cost is negative
type Disadvantage struct {
	Name        string `json:"name" yaml:"name"`
	Cost        int    `json:"cost" yaml:"cost"`
	Description string `json:"description" yaml:"description"`
}

// Skill is a predefined skill template
type Skill struct {
	Name        string           `json:"name" yaml:"name"`
	Attribute   gurps.Attribute  `json:"attribute" yaml:"attribute"`
	Difficulty  gurps.Difficulty `json:"difficulty" yaml:"difficulty"`
	Description string           `json:"description" yaml:"description"`
}

// Kind names one of the catalog lists
type Kind string

// Catalog lists
const (
	KindAdvantage    Kind = "advantage"
	KindDisadvantage Kind = "disadvantage"
	KindSkill        Kind = "skill"
)

// Catalog is the merged set of predefined options
type Catalog struct {
	Advantages    []Advantage    `json:"advantages" yaml:"advantages"`
	Disadvantages []Disadvantage `json:"disadvantages" yaml:"disadvantages"`
	Skills        []Skill        `json:"skills" yaml:"skills"`
}

// Empty returns a catalog with no options
func Empty() *Catalog {
	return &Catalog{
		Advantages:    []Advantage{},
		Disadvantages: []Disadvantage{},
		Skills:        []Skill{},
	}
}

// FindAdvantage looks an advantage up by name, ignoring case
func (c *Catalog) FindAdvantage(name string) (Advantage, bool) {
	return find(c.Advantages, name, func(a Advantage) string { return a.Name })
}

// FindDisadvantage looks a disadvantage up by name, ignoring case
func (c *Catalog) FindDisadvantage(name string) (Disadvantage, bool) {
	return find(c.Disadvantages, name, func(d Disadvantage) string { return d.Name })
}

// FindSkill looks a skill up by name, ignoring case
func (c *Catalog) FindSkill(name string) (Skill, bool) {
	return find(c.Skills, name, func(s Skill) string { return s.Name })
}

// Merge folds other into c. An entry whose name is already present
// replaces the earlier one in place.
func (c *Catalog) Merge(other *Catalog) {
	if other == nil {
		return
	}
	c.Advantages = merge(c.Advantages, other.Advantages, func(a Advantage) string { return a.Name })
	c.Disadvantages = merge(c.Disadvantages, other.Disadvantages, func(d Disadvantage) string { return d.Name })
	c.Skills = merge(c.Skills, other.Skills, func(s Skill) string { return s.Name })
}

func find[T any](items []T, name string, nameOf func(T) string) (T, bool) {
	for _, item := range items {
		if strings.EqualFold(nameOf(item), strings.TrimSpace(name)) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func merge[T any](base, extra []T, nameOf func(T) string) []T {
	index := make(map[string]int, len(base))
	for i, item := range base {
		index[strings.ToLower(nameOf(item))] = i
	}
	for _, item := range extra {
		key := strings.ToLower(nameOf(item))
		if key == "" {
			continue
		}
		if i, ok := index[key]; ok {
			base[i] = item
			continue
		}
		index[key] = len(base)
		base = append(base, item)
	}
	return base
}
