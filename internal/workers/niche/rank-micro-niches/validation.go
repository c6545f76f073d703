package rankmicroniches

import "niche-workers/internal/common/validation"

// Enumerated values are checked by the scorer so they surface as
// INVALID_ENUM_VALUE rather than a schema failure.
var inputSchema = validation.MustCompile("rank-micro-niches input", `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["interestsText", "timeAvailability", "monetizationGoal"],
  "properties": {
    "interestsText":    {"type": "string", "maxLength": 4000},
    "timeAvailability": {"type": "string"},
    "monetizationGoal": {"type": "string"},
    "topN":             {"type": "integer", "minimum": 0}
  }
}`)

// inputVariables restricts job activation to the variables the worker reads.
var inputVariables = []string{"interestsText", "timeAvailability", "monetizationGoal", "topN"}

func GetInputSchema() *validation.Schema {
	return inputSchema
}
