// internal/models/enums.go
package models

import (
	"fmt"
)

// TimeTier is a weekly time budget, used both for a creator's availability
// and for a niche's production intensity.
type TimeTier string

const (
	TimeUnder5 TimeTier = "under5"
	Time5To10  TimeTier = "5to10"
	Time10To15 TimeTier = "10to15"
	Time15Plus TimeTier = "15plus"
)

// TimeTiers lists the tiers from lightest to heaviest commitment.
var TimeTiers = []TimeTier{TimeUnder5, Time5To10, Time10To15, Time15Plus}

func (t TimeTier) Valid() bool {
	switch t {
	case TimeUnder5, Time5To10, Time10To15, Time15Plus:
		return true
	}
	return false
}

// MonetizationTier is an ordered monthly revenue target.
type MonetizationTier string

const (
	Monetization500     MonetizationTier = "$500/month"
	Monetization2000    MonetizationTier = "$2000/month"
	Monetization5000    MonetizationTier = "$5000/month"
	MonetizationMaximum MonetizationTier = "maximum growth"
)

// MonetizationTiers is the authoritative tier order. Position in this slice
// is the tier index used by the monetization ceiling rule.
var MonetizationTiers = []MonetizationTier{
	Monetization500,
	Monetization2000,
	Monetization5000,
	MonetizationMaximum,
}

// Index returns the position of t in MonetizationTiers, or -1.
func (t MonetizationTier) Index() int {
	for i, tier := range MonetizationTiers {
		if tier == t {
			return i
		}
	}
	return -1
}

func (t MonetizationTier) Valid() bool {
	return t.Index() >= 0
}

type Trend string

const (
	TrendGrowing   Trend = "growing"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

func (t Trend) Valid() bool {
	switch t {
	case TrendGrowing, TrendStable, TrendDeclining:
		return true
	}
	return false
}

type Competition string

const (
	CompetitionLow    Competition = "Low"
	CompetitionMedium Competition = "Medium"
	CompetitionHigh   Competition = "High"
)

func (c Competition) Valid() bool {
	switch c {
	case CompetitionLow, CompetitionMedium, CompetitionHigh:
		return true
	}
	return false
}

// LongTailLabel is the wire form of the long-tail ceiling.
const LongTailLabel = "long-tail"

// Ceiling is a niche's monetization ceiling: either one of the ordered
// monetization tiers or the long-tail category, which has no fixed ceiling.
// The zero value is invalid.
type Ceiling struct {
	tier     MonetizationTier
	longTail bool
}

// Tiered returns a ceiling capped at tier.
func Tiered(tier MonetizationTier) Ceiling {
	return Ceiling{tier: tier}
}

// LongTail returns the long-tail ceiling.
func LongTail() Ceiling {
	return Ceiling{longTail: true}
}

func (c Ceiling) IsLongTail() bool {
	return c.longTail
}

// Tier returns the capped tier. ok is false for long-tail ceilings.
func (c Ceiling) Tier() (tier MonetizationTier, ok bool) {
	if c.longTail {
		return "", false
	}
	return c.tier, true
}

func (c Ceiling) Valid() bool {
	return c.longTail || c.tier.Valid()
}

func (c Ceiling) String() string {
	if c.longTail {
		return LongTailLabel
	}
	return string(c.tier)
}

// ParseCeiling accepts a monetization tier label or "long-tail".
func ParseCeiling(s string) (Ceiling, error) {
	if s == LongTailLabel {
		return LongTail(), nil
	}
	tier := MonetizationTier(s)
	if !tier.Valid() {
		return Ceiling{}, fmt.Errorf("unknown monetization ceiling %q", s)
	}
	return Tiered(tier), nil
}

func (c Ceiling) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid monetization ceiling")
	}
	return []byte(c.String()), nil
}

func (c *Ceiling) UnmarshalText(text []byte) error {
	parsed, err := ParseCeiling(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
