package main

import (
	"c4kit/internal/view"
	"c4kit/internal/workspace"
)

// ValidateResponse is the output of `c4kit validate`
type ValidateResponse struct {
	Path          string        `json:"path"`
	Name          string        `json:"name,omitempty"`
	Schema        string        `json:"schema"`
	Elements      int           `json:"elements"`
	Relationships int           `json:"relationships"`
	Views         []ViewSummary `json:"views"`
}

// ViewSummary describes one view in a ValidateResponse
type ViewSummary struct {
	Key   string `json:"key"`
	Scope string `json:"scope,omitempty"`
	Steps int    `json:"steps"`
}

// StepsResponse lists the steps of one view
type StepsResponse struct {
	View        string     `json:"view"`
	Description string     `json:"description,omitempty"`
	Scope       string     `json:"scope,omitempty"`
	Steps       []StepLine `json:"steps"`
}

// StepLine is one step, with participants by name
type StepLine struct {
	Order        string `json:"order"`
	Source       string `json:"source"`
	Destination  string `json:"destination"`
	Description  string `json:"description"`
	Technology   string `json:"technology,omitempty"`
	Response     bool   `json:"response,omitempty"`
	Relationship string `json:"relationship"`
}

// ExportResponse reports a document written by `c4kit export --out`
type ExportResponse struct {
	Path       string `json:"path"`
	DocumentID string `json:"documentId"`
	Format     string `json:"format"`
	Compressed bool   `json:"compressed"`
	Views      int    `json:"views"`
	Bytes      int64  `json:"bytes"`
}

// HydrateResponse lists the views restored from a document
type HydrateResponse struct {
	Document string          `json:"document"`
	Views    []StepsResponse `json:"views"`
}

func newValidateResponse(path string, ws *workspace.Workspace) *ValidateResponse {
	resp := &ValidateResponse{
		Path:          path,
		Name:          ws.Name,
		Schema:        ws.Schema,
		Elements:      len(ws.Model.Elements()),
		Relationships: len(ws.Model.Relationships()),
		Views:         make([]ViewSummary, 0, len(ws.Views)),
	}
	for _, v := range ws.Views {
		summary := ViewSummary{Key: v.Key(), Steps: len(v.Steps())}
		if v.Element() != nil {
			summary.Scope = v.Element().Name()
		}
		resp.Views = append(resp.Views, summary)
	}
	return resp
}

func newStepsResponse(v *view.DynamicView) StepsResponse {
	resp := StepsResponse{
		View:        v.Key(),
		Description: v.Description(),
		Steps:       make([]StepLine, 0, len(v.Steps())),
	}
	if v.Element() != nil {
		resp.Scope = v.Element().Name()
	}
	for _, s := range v.Steps() {
		resp.Steps = append(resp.Steps, StepLine{
			Order:        s.Order(),
			Source:       s.Source().Name(),
			Destination:  s.Destination().Name(),
			Description:  s.Description(),
			Technology:   s.Relationship().Technology(),
			Response:     s.Response(),
			Relationship: s.Relationship().ID(),
		})
	}
	return resp
}
