package catalog

import "niche-workers/internal/common/validation"

// documentSchema covers structure and types only. Enumerated values are left
// to scoring.ValidateCatalog so they report INVALID_ENUM_VALUE, and an empty
// niches list reports EMPTY_CATALOG.
var documentSchema = validation.MustCompile("micro-niche catalog", `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["niches"],
  "properties": {
    "niches": {
      "type": "array",
      "items": {
        "type": "object",
        "required": [
          "id", "name", "skillSignals", "productionIntensity", "monetizationCeiling",
          "cpmRange", "monetizationTimelineMonths", "audienceLoyalty", "contentSaturation",
          "searchTrend", "competitionLevel"
        ],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "name": {"type": "string"},
          "underservedAngle": {"type": "string"},
          "skillSignals": {"type": "array", "items": {"type": "string"}},
          "productionIntensity": {"type": "string"},
          "monetizationCeiling": {"type": "string"},
          "cpmRange": {
            "type": "array",
            "items": {"type": "number", "minimum": 0},
            "minItems": 2,
            "maxItems": 2
          },
          "monetizationTimelineMonths": {"type": "number", "exclusiveMinimum": 0},
          "audienceLoyalty": {"type": "number", "minimum": 0, "maximum": 10},
          "contentSaturation": {"type": "number", "minimum": 0, "maximum": 10},
          "searchTrend": {"type": "string"},
          "competitionLevel": {"type": "string"},
          "formatMix": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`)
