package domain

// stepTemplate is the canonical checklist every project carries, in fixed
// order. Client input never adds, removes, or reorders entries.
var stepTemplate = []Step{
	{ID: "inquiry", Title: "Inquiry Received"},
	{ID: "intake", Title: "Client Intake & Site Visit"},
	{ID: "quote", Title: "Quote & Proposal Sent"},
	{ID: "deposit", Title: "Deposit Received"},
	{ID: "design", Title: "Design & Drawings"},
	{ID: "approval", Title: "Client Design Approval"},
	{ID: "materials", Title: "Materials Ordered"},
	{ID: "fabrication", Title: "Fabrication"},
	{ID: "finishing", Title: "Finishing & Sealing"},
	{ID: "qa", Title: "Quality Check"},
	{ID: "delivery", Title: "Delivery Scheduled"},
	{ID: "install", Title: "Installation"},
	{ID: "walkthrough", Title: "Final Walkthrough"},
	{ID: "complete", Title: "Project Complete"},
}

// StepCount is the fixed number of checklist entries per project.
const StepCount = 14

// StepTemplate returns a copy of the canonical checklist with default values
// (note/date empty, done false).
func StepTemplate() []Step {
	out := make([]Step, len(stepTemplate))
	copy(out, stepTemplate)
	return out
}

// NormalizeSteps merges untyped client input against the step template and
// returns a complete checklist: exactly the template ids, in template order.
//
// raw is the decoded JSON value of the request's "steps" field. It may be
// nil, not a list, or contain malformed entries; anything that is not an
// object with a string id is dropped. Duplicate ids keep the last occurrence.
// Unknown ids are discarded. title/note/date are taken from the input when
// the key is present with a string value (an explicit empty string counts);
// done follows JSON truthiness. The function is pure and idempotent.
func NormalizeSteps(raw any) []Step {
	byID := make(map[string]map[string]any)
	if list, ok := raw.([]any); ok {
		for _, entry := range list {
			obj, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			id, ok := obj["id"].(string)
			if !ok {
				continue
			}
			// last occurrence wins
			byID[id] = obj
		}
	}

	out := make([]Step, len(stepTemplate))
	for i, tpl := range stepTemplate {
		s := tpl
		in := byID[tpl.ID]
		if v, ok := in["title"].(string); ok {
			s.Title = v
		}
		if v, ok := in["note"].(string); ok {
			s.Note = v
		}
		if v, ok := in["date"].(string); ok {
			s.Date = v
		}
		if v, ok := in["done"]; ok {
			s.Done = truthy(v)
		}
		out[i] = s
	}
	return out
}

// NormalizeStepList completes a typed step list (a stored record) against the
// template. Stored field values are kept verbatim for matching ids; template
// ids absent from the input get defaults, unknown ids are dropped, duplicates
// keep the last occurrence.
func NormalizeStepList(in []Step) []Step {
	byID := make(map[string]Step, len(in))
	for _, s := range in {
		byID[s.ID] = s
	}

	out := make([]Step, len(stepTemplate))
	for i, tpl := range stepTemplate {
		s := tpl
		if stored, ok := byID[tpl.ID]; ok {
			s.Title = stored.Title
			s.Note = stored.Note
			s.Date = stored.Date
			s.Done = stored.Done
		}
		out[i] = s
	}
	return out
}

// truthy mirrors JSON truthiness for decoded values: null, false, 0 and ""
// are false; everything else (including objects and arrays) is true.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return true
	}
}
