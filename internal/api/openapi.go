package api

import (
	"fmt"

	"github.com/JaimeStill/sage/internal/config"
	"github.com/JaimeStill/sage/pkg/openapi"
)

// buildSpec generates the OpenAPI document for the API module. The spec is
// serialized once at startup and served as static bytes.
func buildSpec(cfg *config.Config) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"RunCommand": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"query":      {Type: "string", Description: "Query text to run through the pipeline"},
				"session_id": {Type: "string", Description: "Session identifier for short-term memory"},
			},
			Required: []string{"query"},
		},
		"RunResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"query":           {Type: "string"},
				"session_id":      {Type: "string"},
				"final_answer":    {Type: "string"},
				"classification":  {Type: "object"},
				"reasoning_steps": {Type: "array", Items: &openapi.Schema{Type: "object"}},
				"tools_used":      {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"record_id":       {Type: "string", Format: "uuid"},
				"cached":          {Type: "boolean"},
			},
		},
		"CacheStats": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"size":     {Type: "integer"},
				"capacity": {Type: "integer"},
				"hits":     {Type: "integer"},
				"misses":   {Type: "integer"},
				"hit_rate": {Type: "number"},
			},
		},
		"Prompt": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"name":         {Type: "string"},
				"stage":        {Type: "string"},
				"instructions": {Type: "string"},
				"description":  {Type: "string"},
				"active":       {Type: "boolean"},
			},
		},
		"Conversation": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"session_id": {Type: "string"},
				"query":      {Type: "string"},
				"label":      {Type: "string"},
				"handler":    {Type: "string"},
				"answer":     {Type: "string"},
				"created_at": {Type: "string", Format: "date-time"},
			},
		},
		"NoteContent": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"content": {Type: "string"},
				"entries": {Type: "integer"},
			},
		},
	})

	spec.Paths["/queries"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Run a query through the classification pipeline",
			Tags:        []string{"queries"},
			RequestBody: openapi.RequestBodyJSON("RunCommand", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Completed run", "RunResult"),
				400: openapi.ResponseRef("BadRequest"),
			},
		},
	}

	spec.Paths["/queries/stats"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:     "Result cache statistics",
			Tags:        []string{"queries"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Cache counters", "CacheStats"),
			},
		},
	}

	spec.Paths["/prompts"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:     "List prompt overrides",
			Tags:        []string{"prompts"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paged prompts", "Prompt"),
			},
		},
		Post: &openapi.Operation{
			Summary:     "Create a prompt override",
			Tags:        []string{"prompts"},
			RequestBody: openapi.RequestBodyJSON("Prompt", true),
			Responses: map[int]*openapi.Response{
				201: openapi.ResponseJSON("Created prompt", "Prompt"),
				400: openapi.ResponseRef("BadRequest"),
				409: openapi.ResponseRef("Conflict"),
			},
		},
	}

	spec.Paths["/prompts/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:     "Find a prompt override",
			Tags:        []string{"prompts"},
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Prompt identifier")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Prompt", "Prompt"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/conversations"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:     "List recorded conversations",
			Tags:        []string{"conversations"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Paged conversations", "Conversation"),
			},
		},
	}

	spec.Paths["/conversations/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:     "Find a conversation record",
			Tags:        []string{"conversations"},
			Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Conversation identifier")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Conversation", "Conversation"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/notes"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:     "Read accumulated notes",
			Tags:        []string{"notes"},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Note content", "NoteContent"),
			},
		},
	}

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("serialize openapi spec: %w", err)
	}

	return data, nil
}
