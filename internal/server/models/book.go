package models

// Book is a catalog record owned by exactly one user.
type Book struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Author  string `json:"author"`
	OwnerID int64  `json:"owner_id"`
}
