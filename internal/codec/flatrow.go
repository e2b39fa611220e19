package codec

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
)

// The flat-row layout is a header row plus one data row. Collections are
// packed into a single cell: entries joined by entrySep, each entry a list
// of "key:value" pairs joined by pairSep.
const (
	entrySep = "|"
	pairSep  = "§"
)

type column struct {
	name   string
	encode func(c *gurps.Character) string
	decode func(c *gurps.Character, v string)
}

func stringColumn(name string, field func(c *gurps.Character) *string) column {
	return column{
		name:   name,
		encode: func(c *gurps.Character) string { return *field(c) },
		decode: func(c *gurps.Character, v string) { *field(c) = v },
	}
}

// intColumn keeps the default when the cell is not a number
func intColumn(name string, field func(c *gurps.Character) *int) column {
	return column{
		name:   name,
		encode: func(c *gurps.Character) string { return strconv.Itoa(*field(c)) },
		decode: func(c *gurps.Character, v string) {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				*field(c) = n
			}
		},
	}
}

func floatColumn(name string, field func(c *gurps.Character) *float64) column {
	return column{
		name:   name,
		encode: func(c *gurps.Character) string { return strconv.FormatFloat(*field(c), 'f', -1, 64) },
		decode: func(c *gurps.Character, v string) {
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				*field(c) = f
			}
		},
	}
}

// timeColumn leaves the cell empty for an unset time
func timeColumn(name string, field func(c *gurps.Character) *time.Time) column {
	return column{
		name: name,
		encode: func(c *gurps.Character) string {
			if field(c).IsZero() {
				return ""
			}
			return field(c).UTC().Format(time.RFC3339Nano)
		},
		decode: func(c *gurps.Character, v string) {
			if t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(v)); err == nil {
				*field(c) = t.UTC()
			}
		},
	}
}

func entriesColumn[T any](name string, field func(c *gurps.Character) *[]T) column {
	return column{
		name:   name,
		encode: func(c *gurps.Character) string { return encodeEntries(*field(c)) },
		decode: func(c *gurps.Character, v string) { *field(c) = decodeEntries[T](v) },
	}
}

// flatColumns is the header order written by every exporter so far; the
// trailing columns were added later and are optional on read.
var flatColumns = []column{
	stringColumn("name", func(c *gurps.Character) *string { return &c.Name }),
	stringColumn("player", func(c *gurps.Character) *string { return &c.Player }),
	intColumn("pointTotal", func(c *gurps.Character) *int { return &c.PointTotal }),
	intColumn("unspentPoints", func(c *gurps.Character) *int { return &c.UnspentPoints }),
	stringColumn("height", func(c *gurps.Character) *string { return &c.Height }),
	stringColumn("weight", func(c *gurps.Character) *string { return &c.Weight }),
	stringColumn("age", func(c *gurps.Character) *string { return &c.Age }),
	stringColumn("appearance", func(c *gurps.Character) *string { return &c.Appearance }),
	intColumn("sizeModifier", func(c *gurps.Character) *int { return &c.SizeModifier }),
	stringColumn("techLevel", func(c *gurps.Character) *string { return &c.TechLevel }),
	intColumn("techLevelCost", func(c *gurps.Character) *int { return &c.TechLevelCost }),
	intColumn("ST", func(c *gurps.Character) *int { return &c.ST }),
	intColumn("DX", func(c *gurps.Character) *int { return &c.DX }),
	intColumn("IQ", func(c *gurps.Character) *int { return &c.IQ }),
	intColumn("HT", func(c *gurps.Character) *int { return &c.HT }),
	intColumn("HP", func(c *gurps.Character) *int { return &c.HP }),
	intColumn("Will", func(c *gurps.Character) *int { return &c.Will }),
	intColumn("Per", func(c *gurps.Character) *int { return &c.Per }),
	intColumn("FP", func(c *gurps.Character) *int { return &c.FP }),
	floatColumn("basicSpeed", func(c *gurps.Character) *float64 { return &c.BasicSpeed }),
	intColumn("basicMove", func(c *gurps.Character) *int { return &c.BasicMove }),
	intColumn("basicLift", func(c *gurps.Character) *int { return &c.BasicLift }),
	stringColumn("damageThrust", func(c *gurps.Character) *string { return &c.DamageThrust }),
	stringColumn("damageSwing", func(c *gurps.Character) *string { return &c.DamageSwing }),
	intColumn("dodgeModifier", func(c *gurps.Character) *int { return &c.DodgeModifier }),
	intColumn("parryModifier", func(c *gurps.Character) *int { return &c.ParryModifier }),
	intColumn("blockModifier", func(c *gurps.Character) *int { return &c.BlockModifier }),
	floatColumn("currentWeight", func(c *gurps.Character) *float64 { return &c.CurrentWeight }),
	entriesColumn("advantages", func(c *gurps.Character) *[]gurps.Advantage { return &c.Advantages }),
	entriesColumn("disadvantages", func(c *gurps.Character) *[]gurps.Disadvantage { return &c.Disadvantages }),
	entriesColumn("skills", func(c *gurps.Character) *[]gurps.Skill { return &c.Skills }),
	entriesColumn("equipment", func(c *gurps.Character) *[]gurps.Equipment { return &c.Equipment }),
	entriesColumn("languages", func(c *gurps.Character) *[]gurps.Language { return &c.Languages }),
	entriesColumn("status", func(c *gurps.Character) *[]gurps.Status { return &c.Status }),
	entriesColumn("reputation", func(c *gurps.Character) *[]gurps.Reputation { return &c.Reputation }),
	entriesColumn("culturalFamiliarities", func(c *gurps.Character) *[]gurps.CulturalFamiliarity { return &c.CulturalFamiliarities }),
	entriesColumn("reactionModifiers", func(c *gurps.Character) *[]gurps.ReactionModifier { return &c.ReactionModifiers }),
	entriesColumn("spells", func(c *gurps.Character) *[]gurps.Spell { return &c.Spells }),
	{
		name:   "equipmentSimple",
		encode: func(c *gurps.Character) string { return strings.Join(c.EquipmentSimple, entrySep) },
		decode: func(c *gurps.Character, v string) { c.EquipmentSimple = splitNonEmpty(v, entrySep) },
	},
	stringColumn("campaignLore", func(c *gurps.Character) *string { return &c.CampaignLore }),
	{
		// empty means "not recorded", so the loader infers the flags
		name: "overrides",
		encode: func(c *gurps.Character) string {
			if c.Overrides == nil {
				return ""
			}
			return encodeEntry(*c.Overrides)
		},
		decode: func(c *gurps.Character, v string) {
			if strings.TrimSpace(v) == "" {
				return
			}
			o := decodeEntry[gurps.Overrides](v)
			c.Overrides = &o
		},
	},
	stringColumn("id", func(c *gurps.Character) *string { return &c.ID }),
	stringColumn("playerId", func(c *gurps.Character) *string { return &c.PlayerID }),
	timeColumn("createdAt", func(c *gurps.Character) *time.Time { return &c.CreatedAt }),
	timeColumn("updatedAt", func(c *gurps.Character) *time.Time { return &c.UpdatedAt }),
}

// FlatColumns returns the header row written by the CSV encoder
func FlatColumns() []string {
	out := make([]string, len(flatColumns))
	for i, col := range flatColumns {
		out[i] = col.name
	}
	return out
}

func encodeFlatRow(c *gurps.Character) ([]byte, error) {
	row := make([]string, len(flatColumns))
	for i, col := range flatColumns {
		row[i] = col.encode(c)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(FlatColumns()); err != nil {
		return nil, err
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeFlatRow reads the first data row over c. Unknown headers are
// ignored and missing cells keep their defaults.
func decodeFlatRow(data []byte, c *gurps.Character) error {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return err
	}
	if len(records) < 2 {
		return fmt.Errorf("expected a header row and a data row, got %d rows", len(records))
	}

	header, values := records[0], records[1]
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	for _, col := range flatColumns {
		i, ok := index[col.name]
		if !ok || i >= len(values) {
			continue
		}
		col.decode(c, values[i])
	}
	return nil
}

func splitNonEmpty(s, sep string) []string {
	out := []string{}
	if strings.TrimSpace(s) == "" {
		return out
	}
	for _, part := range strings.Split(s, sep) {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
