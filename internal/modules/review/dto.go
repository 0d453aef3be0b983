package review

type CreateReviewRequest struct {
	Place   int64  `json:"place" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required,max=2000"`
}
