package repoargs

type CreateComment struct {
	UserID    int64
	ProductID int64
	ParentID  *int64
	Text      string
}

type CreateReview struct {
	UserID    int64
	ProductID int64
	Title     string
	Content   string
	Rating    int32
}

type UpdateReview struct {
	Title   *string
	Content *string
	Rating  *int32
}