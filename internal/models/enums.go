package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Difficulty is an ordinal 1-5 tag. It is only ever compared for equality.
type Difficulty int

const (
	// AnyDifficulty disables difficulty filtering.
	AnyDifficulty Difficulty = 0
	MinDifficulty Difficulty = 1
	MaxDifficulty Difficulty = 5
)

func (d Difficulty) Valid() bool {
	return d >= MinDifficulty && d <= MaxDifficulty
}

// Label returns the human readable name shown next to a difficulty picker.
func (d Difficulty) Label() string {
	switch d {
	case 1:
		return "Very Easy"
	case 2:
		return "Easy"
	case 3:
		return "Medium"
	case 4:
		return "Hard"
	case 5:
		return "Very Hard"
	default:
		return "Any"
	}
}

// ParseDifficulty accepts "", "0" or "any" as AnyDifficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "any" {
		return AnyDifficulty, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return AnyDifficulty, fmt.Errorf("difficulty %q is not a number", s)
	}
	d := Difficulty(n)
	if d != AnyDifficulty && !d.Valid() {
		return AnyDifficulty, fmt.Errorf("difficulty %d out of range %d-%d", n, MinDifficulty, MaxDifficulty)
	}
	return d, nil
}

// Variant names one of the games.
type Variant string

const (
	VariantTrend    Variant = "trend"
	VariantBudget   Variant = "budget"
	VariantShopping Variant = "shopping"
	VariantGuess    Variant = "guess"
	VariantMemory   Variant = "memory"
)

var Variants = []Variant{VariantTrend, VariantBudget, VariantShopping, VariantGuess, VariantMemory}

func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.TrimSpace(strings.ToLower(s)))
	for _, known := range Variants {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown variant %q", s)
}

// TrendClass is the qualitative shape of a price series.
type TrendClass string

const (
	TrendIncreasing TrendClass = "increasing"
	TrendDecreasing TrendClass = "decreasing"
	TrendStable     TrendClass = "stable"
	TrendVolatile   TrendClass = "volatile"
)

func (t TrendClass) Valid() bool {
	switch t {
	case TrendIncreasing, TrendDecreasing, TrendStable, TrendVolatile:
		return true
	}
	return false
}

// Confidence is how sure the player claims to be about a prediction.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return true
	}
	return false
}

// Priority is the tier of a shopping item.
type Priority string

const (
	PriorityEssential Priority = "essential"
	PriorityImportant Priority = "important"
	PriorityOptional  Priority = "optional"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityEssential, PriorityImportant, PriorityOptional:
		return true
	}
	return false
}

type DataQuality string

const (
	QualityLow    DataQuality = "low"
	QualityMedium DataQuality = "medium"
	QualityHigh   DataQuality = "high"
)

type Category string

const (
	CategoryGrocery    Category = "grocery"
	CategoryFood       Category = "food"
	CategoryTransport  Category = "transport"
	CategoryHome       Category = "home"
	CategoryServices   Category = "services"
	CategoryHealth     Category = "health"
	CategoryStationery Category = "stationery"
)

// CardFace tells which side of a pair a memory card shows.
type CardFace string

const (
	FaceName  CardFace = "name"
	FacePrice CardFace = "price"
)

// MemoryLevel is the memory game's own difficulty scale.
type MemoryLevel string

const (
	LevelEasy   MemoryLevel = "easy"
	LevelMedium MemoryLevel = "medium"
	LevelHard   MemoryLevel = "hard"
)

func ParseMemoryLevel(s string) (MemoryLevel, error) {
	switch l := MemoryLevel(strings.ToLower(strings.TrimSpace(s))); l {
	case LevelEasy, LevelMedium, LevelHard:
		return l, nil
	}
	return "", fmt.Errorf("level must be 'easy', 'medium', or 'hard'")
}
