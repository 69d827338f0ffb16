// Package models defines core data structures for records, requests, and answers.
package models

// VectorRecord is a stored document with its embedding. The JSON field names
// (Id, Text, Vector) are the on-disk persistence format of the vector store.
type VectorRecord struct {
	ID     string    `json:"Id"`
	Text   string    `json:"Text"`
	Vector []float32 `json:"Vector"`
}

// Clone returns a deep copy of the record (the vector is copied).
func (r VectorRecord) Clone() VectorRecord {
	vec := make([]float32, len(r.Vector))
	copy(vec, r.Vector)
	return VectorRecord{ID: r.ID, Text: r.Text, Vector: vec}
}

// SearchHit is a single similarity search result. Score is cosine similarity
// in [-1, 1]; records whose vector length does not match the query score -1.
type SearchHit struct {
	Record VectorRecord `json:"record"`
	Score  float64      `json:"score"`
}
