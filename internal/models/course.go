package models

// Coordinator is the trainer reference embedded in a course.
type Coordinator struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar Avatar `json:"avatar"`
}

// Module is one section of a course with its attached material lists.
type Module struct {
	ID         string        `json:"_id"`
	Name       string        `json:"name"`
	Video      []interface{} `json:"video"`
	Resources  []interface{} `json:"resources"`
	Assignment []interface{} `json:"assignment"`
}

// Course is a course record as returned by the backend.
type Course struct {
	ID          string        `json:"_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Photo       string        `json:"photo"`
	Price       float64       `json:"price"`
	OfferPrice  float64       `json:"offerPrice"`
	Coordinator []Coordinator `json:"coordinator"`
	Modules     []Module      `json:"modules"`
	Enrolled    []interface{} `json:"enrolled"`
}
