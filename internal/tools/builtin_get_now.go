package tools

import (
	"fmt"
	"time"

	"github.com/paulrobello/auto-tool-agent/internal/models"
)

type NowTool models.Specification

var GetNow = NowTool{
	Name:        "get_now",
	Description: "Get the current date and time. Returns RFC3339 by default, or a custom Go layout if 'format' is given.",
	Inputs: &models.InputSchema{
		Type:     "object",
		Required: make([]string, 0),
		Properties: map[string]models.ParameterObject{
			"format": {
				Type:        "string",
				Description: "Optional Go time layout, e.g. '2006-01-02 15:04:05'. Defaults to RFC3339.",
			},
			"utc": {
				Type:        "boolean",
				Description: "If true, returns time in UTC instead of local time.",
			},
			"unix": {
				Type:        "boolean",
				Description: "If true, returns the current Unix timestamp in seconds. Overrides 'format'.",
			},
		},
	},
}

func (n NowTool) Call(input models.Input) (string, error) {
	now := time.Now()
	if v, ok := input["utc"].(bool); ok && v {
		now = now.UTC()
	}
	if v, ok := input["unix"].(bool); ok && v {
		return fmt.Sprintf("%v", now.Unix()), nil
	}
	layout := time.RFC3339
	if format, ok := input["format"].(string); ok && format != "" {
		layout = format
	}
	return now.Format(layout), nil
}

func (n NowTool) Specification() models.Specification {
	return models.Specification(GetNow)
}
