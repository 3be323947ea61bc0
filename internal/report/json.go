package report

import (
	"encoding/json"

	"seoanalyzer/internal/model"
)

// JSONRenderer writes the report exactly as the API returns it under "data".
type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

func (r *JSONRenderer) Render(rep *model.Report) ([]byte, error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (r *JSONRenderer) Extension() string {
	return ".json"
}
