package scoremicroniche

import "niche-workers/internal/common/validation"

var inputSchema = validation.MustCompile("score-micro-niche input", `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["nicheId", "interestsText", "timeAvailability", "monetizationGoal"],
  "properties": {
    "nicheId":          {"type": "string", "minLength": 1},
    "interestsText":    {"type": "string", "maxLength": 4000},
    "timeAvailability": {"type": "string"},
    "monetizationGoal": {"type": "string"}
  }
}`)

var inputVariables = []string{"nicheId", "interestsText", "timeAvailability", "monetizationGoal"}

func GetInputSchema() *validation.Schema {
	return inputSchema
}
