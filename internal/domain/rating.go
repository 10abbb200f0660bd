package domain

// Rating is a third-party score owned by exactly one movie.
type Rating struct {
	ID      int64
	MovieID int64
	Source  string
	Value   string
}
