package faq

// FAQ is one curated question/answer pair from the knowledge file.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
