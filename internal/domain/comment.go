package domain

// MaxCommentBodyLength is the width of the comment_body column.
const MaxCommentBodyLength = 100

// Comment is free text attached to a movie.
type Comment struct {
	ID      int64
	MovieID int64
	Body    string
}
