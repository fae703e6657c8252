package dto

import (
	"encoding/json"

	"orghub.app/api-server/internal/model"
)

type InsertDocumentRequest struct {
	Body json.RawMessage `json:"body" binding:"required"`
}

type DocumentResponse struct {
	Body json.RawMessage `json:"body"`
	ID   int64           `json:"id,string"`
}

func ToDocumentResponse(doc *model.Document) *DocumentResponse {
	return &DocumentResponse{
		ID:   doc.ID,
		Body: doc.Body,
	}
}

func ToDocumentResponses(docs []model.Document) []DocumentResponse {
	result := make([]DocumentResponse, len(docs))
	for i := range docs {
		result[i] = *ToDocumentResponse(&docs[i])
	}
	return result
}
