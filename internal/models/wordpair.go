package models

// Relation classifies a word pair as synonyms or antonyms.
type Relation string

const (
	RelationSynonym Relation = "synonym"
	RelationAntonym Relation = "antonym"
)

// Valid reports whether r is one of the two known relations.
func (r Relation) Valid() bool {
	return r == RelationSynonym || r == RelationAntonym
}

// WordPair is an immutable catalog entry: two words joined by a relation.
// The catalog is static, read-only, and shared by every session.
type WordPair struct {
	WordA    string   `json:"wordA"`
	WordB    string   `json:"wordB"`
	Relation Relation `json:"relation"`
}
